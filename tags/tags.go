package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Platform = donburi.NewTag().SetName("Platform")
	Star     = donburi.NewTag().SetName("Star")
	Door     = donburi.NewTag().SetName("Door")
	Warp     = donburi.NewTag().SetName("Warp")
)
