// Package tilemap models Tiled maps as collision geometry with
// subpixel precision. Movement is resolved one direction at a time by
// probing the tiles an actor overlaps and keeping the most restrictive
// offset.
package tilemap

import (
	"fmt"
	"image/color"

	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/switchstate"
)

// TileLayer is one grid of gids. At most one layer per map may be
// flagged as the player layer.
type TileLayer struct {
	Name   string
	Player bool

	width, height int
	tiles         []GlobalID
}

func NewTileLayer(name string, width, height int, tiles []GlobalID, player bool) (*TileLayer, error) {
	if len(tiles) != width*height {
		return nil, fmt.Errorf("layer %s has %d tiles, want %d", name, len(tiles), width*height)
	}
	return &TileLayer{
		Name:   name,
		Player: player,
		width:  width,
		height: height,
		tiles:  tiles,
	}, nil
}

func (l *TileLayer) At(row, col int) GlobalID {
	if row < 0 || row >= l.height || col < 0 || col >= l.width {
		panic(fmt.Sprintf("tile indices must be valid: (%d, %d)", row, col))
	}
	return l.tiles[row*l.width+col]
}

type TileMap struct {
	Width      int
	Height     int
	TileWidth  geom.Pixels
	TileHeight geom.Pixels

	Background color.Color
	Dark       bool

	// Gravity overrides the engine default when the map sets one, in
	// subpixels per frame per frame.
	Gravity *geom.Subpixels

	Objects []*MapObject

	tilesets    []*TileSet
	layers      []*TileLayer
	playerLayer int
}

func New(width, height int, tileWidth, tileHeight geom.Pixels, layers []*TileLayer, tilesets []*TileSet) (*TileMap, error) {
	if len(tilesets) == 0 {
		return nil, fmt.Errorf("at least one tileset must be present")
	}
	m := &TileMap{
		Width:       width,
		Height:      height,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
		tilesets:    tilesets,
		layers:      layers,
		playerLayer: -1,
	}
	for i, layer := range layers {
		if !layer.Player {
			continue
		}
		if m.playerLayer >= 0 {
			return nil, fmt.Errorf("too many player layers")
		}
		m.playerLayer = i
	}
	return m, nil
}

// Layers returns the draw-ordered tile layers.
func (m *TileMap) Layers() []*TileLayer { return m.layers }

// PlayerLayerIndex is -1 when no layer is flagged as the player layer.
func (m *TileMap) PlayerLayerIndex() int { return m.playerLayer }

// Lookup resolves a gid to its tileset and local id. Layer data naming
// a tile outside every tileset is corrupt, so this panics.
func (m *TileMap) Lookup(gid GlobalID) (*TileSet, LocalID) {
	for _, ts := range m.tilesets {
		if id, ok := ts.LocalIDOf(gid); ok {
			return ts, id
		}
	}
	panic(fmt.Sprintf("invalid tile gid %d", gid))
}

// Properties returns nil for tiles with no property entry.
func (m *TileMap) Properties(gid GlobalID) *TileProperties {
	ts, id := m.Lookup(gid)
	return ts.Properties(id)
}

func (m *TileMap) SlopeAt(gid GlobalID) *Slope {
	ts, id := m.Lookup(gid)
	return ts.SlopeAt(id)
}

// TileRect is the tile's position in the map, in pixels.
func (m *TileMap) TileRect(row, col int) geom.Rect[geom.Pixels] {
	return geom.Rect[geom.Pixels]{
		X: m.TileWidth * geom.Pixels(col),
		Y: m.TileHeight * geom.Pixels(row),
		W: m.TileWidth,
		H: m.TileHeight,
	}
}

func (m *TileMap) isConditionMet(gid GlobalID, switches *switchstate.State) bool {
	props := m.Properties(gid)
	if props == nil || props.Condition == "" {
		return true
	}
	return switches.IsConditionTrue(props.Condition)
}

// isSolidInDirection handles one-way tiles. The oneway property names
// the side the tile blocks from, so "N" stops a downward probe.
// Backwards probes pass through one-way tiles entirely.
func (m *TileMap) isSolidInDirection(gid GlobalID, d geom.Direction, isBackwards bool) bool {
	props := m.Properties(gid)
	if props == nil || props.OneWay == "" {
		return true
	}
	if isBackwards {
		return false
	}
	switch d {
	case geom.DirUp:
		return props.OneWay == "S"
	case geom.DirDown:
		return props.OneWay == "N"
	case geom.DirRight:
		return props.OneWay == "W"
	case geom.DirLeft:
		return props.OneWay == "E"
	}
	return true
}

// TryMoveTo finds how far the actor must back up, having already been
// moved, so that it no longer overlaps the map in the given direction.
// Offsets are zero when nothing was hit.
func (m *TileMap) TryMoveTo(playerRect geom.Rect[geom.Subpixels], d geom.Direction, switches *switchstate.State, isBackwards bool) MoveResult {
	var result MoveResult

	rightEdge := (m.TileWidth * geom.Pixels(m.Width)).AsSubpixels()
	bottomEdge := (m.TileHeight * geom.Pixels(m.Height)).AsSubpixels()

	// The map edge acts as a solid border.
	switch d {
	case geom.DirLeft:
		if playerRect.X < 0 {
			result.HardOffset = -playerRect.X
			result.SoftOffset = result.HardOffset
			return result
		}
	case geom.DirUp:
		if playerRect.Y < 0 {
			result.HardOffset = -playerRect.Y
			result.SoftOffset = result.HardOffset
			return result
		}
	case geom.DirRight:
		if playerRect.Right() >= rightEdge {
			result.HardOffset = (rightEdge - playerRect.Right()) - 1
			result.SoftOffset = result.HardOffset
			return result
		}
	case geom.DirDown:
		if playerRect.Bottom() >= bottomEdge {
			result.HardOffset = (bottomEdge - playerRect.Bottom()) - 1
			result.SoftOffset = result.HardOffset
			return result
		}
	}

	row1 := int(playerRect.Top() / m.TileHeight.AsSubpixels())
	col1 := int(playerRect.Left() / m.TileWidth.AsSubpixels())
	row2 := int(playerRect.Bottom() / m.TileHeight.AsSubpixels())
	col2 := int(playerRect.Right() / m.TileWidth.AsSubpixels())

	if row1 < 0 {
		row1 = 0
	}
	if col1 < 0 {
		col1 = 0
	}
	if row2 < 0 {
		row2 = 0
	}
	if col2 < 0 {
		col2 = 0
	}

	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			tileRect := geom.RectToSubpixels(m.TileRect(row, col))
			for _, layer := range m.layers {
				if !layer.Player && m.playerLayer >= 0 {
					continue
				}
				tileGID := layer.At(row, col)
				if tileGID == 0 {
					continue
				}
				tileset, tileID := m.Lookup(tileGID)
				if !m.isConditionMet(tileGID, switches) {
					props := m.Properties(tileGID)
					if props == nil || props.Alternate == nil {
						continue
					}
					// Use an alt tile instead of the original.
					tileID = *props.Alternate
					tileGID = tileset.GlobalIDOf(tileID)
				}
				solid := true
				if props := m.Properties(tileGID); props != nil {
					solid = props.Solid
				}
				if !solid {
					continue
				}
				if !m.isSolidInDirection(tileGID, d, isBackwards) {
					continue
				}

				tileBounds := tileRect
				if props := m.Properties(tileGID); props != nil {
					tileBounds = geom.Rect[geom.Subpixels]{
						X: tileBounds.X + props.HitboxLeft.AsSubpixels(),
						Y: tileBounds.Y + props.HitboxTop.AsSubpixels(),
						W: tileBounds.W - (props.HitboxLeft + props.HitboxRight).AsSubpixels(),
						H: tileBounds.H - (props.HitboxTop + props.HitboxBottom).AsSubpixels(),
					}
				}
				softOffset := geom.TryMoveToBounds(playerRect, tileBounds, d)
				hardOffset := softOffset

				if slope := tileset.SlopeAt(tileID); slope != nil {
					hardOffset = slope.TryMoveToBounds(playerRect, tileBounds, d)
				}

				result.considerTile(tileGID, hardOffset, softOffset, d)
			}
		}
	}
	return result
}

// GetPreferredView reports camera overrides from any non-tile object the
// player overlaps. Later objects win.
func (m *TileMap) GetPreferredView(playerRect geom.Rect[geom.Subpixels]) (preferredX, preferredY *geom.Subpixels) {
	for _, obj := range m.Objects {
		if obj.GID != 0 {
			continue
		}
		if !playerRect.Intersects(geom.RectToSubpixels(obj.Position)) {
			continue
		}
		if obj.PreferredX != nil {
			x := obj.PreferredX.AsSubpixels()
			preferredX = &x
		}
		if obj.PreferredY != nil {
			y := obj.PreferredY.AsSubpixels()
			preferredY = &y
		}
	}
	return preferredX, preferredY
}

// MoveResult tracks two offsets so an actor can be "on" a slope even
// when a taller block sits beside it. The hard offset stops the actor;
// the soft offset is what being on a slope would allow.
type MoveResult struct {
	HardOffset geom.Subpixels
	SoftOffset geom.Subpixels
	TileIDs    IDSet
}

func (r *MoveResult) considerTile(gid GlobalID, hardOffset, softOffset geom.Subpixels, d geom.Direction) {
	if geom.CmpInDirection(hardOffset, r.HardOffset, d) < 0 {
		r.HardOffset = hardOffset
	}

	switch c := geom.CmpInDirection(softOffset, r.SoftOffset, d); {
	case c < 0:
		var ids IDSet
		ids.Insert(gid)
		r.SoftOffset = softOffset
		r.TileIDs = ids
	case c == 0:
		r.TileIDs.Insert(gid)
	}
}
