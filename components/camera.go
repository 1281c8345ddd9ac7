package components

import (
	"github.com/automoto/skelly/shared/geom"
	"github.com/yohamta/donburi"
)

// CameraData tracks where the map is drawn relative to the screen.
// The offset is applied to everything except the hud.
type CameraData struct {
	MapOffset  geom.Point[geom.Subpixels]
	PlayerDraw geom.Point[geom.Subpixels]

	// False until the first frame has placed the viewport, so the
	// pan speed limit only applies between frames.
	Placed bool
}

var Camera = donburi.NewComponentType[CameraData]()
