package components

import (
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/switchstate"
	"github.com/automoto/skelly/shared/tilemap"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Name    string
	MapPath string
	Map     *tilemap.TileMap

	Switches *switchstate.State

	// Platforms in map document order. Collision keeps the later of two
	// equally close platforms, so the order has to be stable.
	Platforms []*donburi.Entry

	// Terminal fall speed, either the map's override or the default.
	Gravity geom.Subpixels

	StarCount int
	Frame     uint64
}

var Level = donburi.NewComponentType[LevelData]()
