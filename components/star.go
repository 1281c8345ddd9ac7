package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

// StarData is a collectible. It disappears on pickup.
type StarData struct {
	TileGID tilemap.GlobalID
	Area    geom.Rect[geom.Subpixels]
}

var Star = donburi.NewComponentType[StarData]()
