package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/shared/geom"
)

// WarpData is a trigger region that sends the player to another level.
type WarpData struct {
	Area        geom.Rect[geom.Subpixels]
	Destination string
}

var Warp = donburi.NewComponentType[WarpData]()
