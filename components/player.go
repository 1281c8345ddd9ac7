package components

import (
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Position geom.Point[geom.Subpixels]
	Delta    geom.Point[geom.Subpixels]

	FacingRight bool
	IsIdle      bool
	IsDead      bool
	StuckInWall bool

	// Collision session state carried between ticks.
	CurrentPlatform    *donburi.Entry
	CurrentDoor        *donburi.Entry
	CurrentSlopes      tilemap.IDSet
	CurrentSwitchTiles tilemap.IDSet
}

// rawBounds returns the hitbox within the 24x24 sprite, in pixels.
// Side probes use a narrower box so the player can slip through
// one-tile gaps.
func rawBounds(d geom.Direction, crouching bool) (geom.Pixels, geom.Pixels, geom.Pixels, geom.Pixels) {
	if crouching {
		return 8, 14, 8, 9
	}
	switch d {
	case geom.DirUp:
		return 8, 4, 8, 4
	case geom.DirDown:
		return 8, 19, 8, 4
	case geom.DirRight:
		return 12, 4, 4, 14
	case geom.DirLeft:
		return 8, 4, 4, 14
	default:
		return 8, 4, 8, 19
	}
}

// BoundsRect returns the hitbox in subpixels to check when moving in
// the given direction.
func (p *PlayerData) BoundsRect(d geom.Direction, crouching bool) geom.Rect[geom.Subpixels] {
	x, y, w, h := rawBounds(d, crouching)
	return geom.Rect[geom.Subpixels]{
		X: p.Position.X + x.AsSubpixels(),
		Y: p.Position.Y + y.AsSubpixels(),
		W: w.AsSubpixels(),
		H: h.AsSubpixels(),
	}
}

var Player = donburi.NewComponentType[PlayerData]()
