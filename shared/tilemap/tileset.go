package tilemap

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lafriks/go-tiled"

	"github.com/automoto/skelly/shared/geom"
)

// GlobalID is a tile gid as stored in layer data; zero means empty.
type GlobalID uint32

// LocalID indexes a tile within a single tileset.
type LocalID uint32

// TileProperties is the collision-relevant property set of one tile.
// Tiles without an entry behave as plain solid blocks.
type TileProperties struct {
	Solid     bool
	Switch    string
	Condition string
	Alternate *LocalID
	OneWay    string
	Slope     bool
	LeftY     geom.Pixels
	RightY    geom.Pixels

	HitboxLeft   geom.Pixels
	HitboxTop    geom.Pixels
	HitboxRight  geom.Pixels
	HitboxBottom geom.Pixels

	Deadly bool
}

type Frame struct {
	Tile     LocalID
	Duration int // milliseconds
}

type TileSet struct {
	Name       string
	FirstGID   GlobalID
	TileWidth  geom.Pixels
	TileHeight geom.Pixels
	TileCount  int
	Columns    int

	// Image is nil when the tileset was built without an asset source,
	// like in tests.
	Image *ebiten.Image

	props      map[LocalID]*TileProperties
	slopes     map[LocalID]*Slope
	animations map[LocalID][]Frame
}

// NewTileSet builds the collision model for one parsed tileset. Invalid
// enum properties are load errors, not runtime surprises.
func NewTileSet(src *tiled.Tileset) (*TileSet, error) {
	ts := &TileSet{
		Name:       src.Name,
		FirstGID:   GlobalID(src.FirstGID),
		TileWidth:  geom.Pixels(src.TileWidth),
		TileHeight: geom.Pixels(src.TileHeight),
		TileCount:  src.TileCount,
		Columns:    src.Columns,
		props:      make(map[LocalID]*TileProperties),
		slopes:     make(map[LocalID]*Slope),
		animations: make(map[LocalID][]Frame),
	}
	for _, tile := range src.Tiles {
		id := LocalID(tile.ID)
		if len(tile.Animation) > 0 {
			frames := make([]Frame, 0, len(tile.Animation))
			for _, f := range tile.Animation {
				frames = append(frames, Frame{Tile: LocalID(f.TileID), Duration: int(f.Duration)})
			}
			ts.animations[id] = frames
		}
		if len(tile.Properties) == 0 {
			continue
		}
		props, err := parseTileProperties(tile.Properties)
		if err != nil {
			return nil, fmt.Errorf("tileset %s tile %d: %w", src.Name, tile.ID, err)
		}
		ts.props[id] = props
		if props.Slope {
			ts.slopes[id] = &Slope{
				LeftY:  props.LeftY.AsSubpixels(),
				RightY: props.RightY.AsSubpixels(),
			}
		}
	}
	return ts, nil
}

func parseTileProperties(src tiled.Properties) (*TileProperties, error) {
	p := &TileProperties{
		Solid:        boolProp(src, "solid", true),
		Switch:       src.GetString("switch"),
		Condition:    src.GetString("condition"),
		OneWay:       src.GetString("oneway"),
		Slope:        boolProp(src, "slope", false),
		LeftY:        geom.Pixels(src.GetInt("left_y")),
		RightY:       geom.Pixels(src.GetInt("right_y")),
		HitboxLeft:   geom.Pixels(src.GetInt("hitbox_left")),
		HitboxTop:    geom.Pixels(src.GetInt("hitbox_top")),
		HitboxRight:  geom.Pixels(src.GetInt("hitbox_right")),
		HitboxBottom: geom.Pixels(src.GetInt("hitbox_bottom")),
		Deadly:       boolProp(src, "deadly", false),
	}
	if alt, ok := propValue(src, "alternate"); ok {
		n, err := strconv.Atoi(alt)
		if err != nil {
			return nil, fmt.Errorf("invalid alternate tile %q: %w", alt, err)
		}
		id := LocalID(n)
		p.Alternate = &id
	}
	if p.OneWay != "" {
		if _, err := geom.ParseDirection(p.OneWay); err != nil {
			return nil, fmt.Errorf("invalid oneway: %w", err)
		}
	}
	return p, nil
}

// boolProp distinguishes an absent property from an explicit false, which
// go-tiled's GetBool cannot.
func boolProp(src tiled.Properties, name string, def bool) bool {
	v, ok := propValue(src, name)
	if !ok {
		return def
	}
	return v == "true" || v == "1"
}

func propValue(src tiled.Properties, name string) (string, bool) {
	for _, p := range src {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// LocalIDOf maps a gid into this tileset, if it belongs here.
func (ts *TileSet) LocalIDOf(gid GlobalID) (LocalID, bool) {
	if gid < ts.FirstGID || gid >= ts.FirstGID+GlobalID(ts.TileCount) {
		return 0, false
	}
	return LocalID(gid - ts.FirstGID), true
}

func (ts *TileSet) GlobalIDOf(id LocalID) GlobalID {
	return ts.FirstGID + GlobalID(id)
}

// Properties returns nil for tiles with no property entry.
func (ts *TileSet) Properties(id LocalID) *TileProperties {
	return ts.props[id]
}

func (ts *TileSet) SlopeAt(id LocalID) *Slope {
	return ts.slopes[id]
}

// SourceRect locates a tile within the tileset image.
func (ts *TileSet) SourceRect(id LocalID) geom.Rect[geom.Pixels] {
	if int(id) >= ts.TileCount {
		panic(fmt.Sprintf("tile %d out of range for tileset %s", id, ts.Name))
	}
	row := int(id) / ts.Columns
	col := int(id) % ts.Columns
	return geom.Rect[geom.Pixels]{
		X: ts.TileWidth * geom.Pixels(col),
		Y: ts.TileHeight * geom.Pixels(row),
		W: ts.TileWidth,
		H: ts.TileHeight,
	}
}

// Animated reports whether the tile carries an animation.
func (ts *TileSet) Animated(id LocalID) bool {
	return len(ts.animations[id]) > 0
}

// FrameAt resolves a tile's animation against the frame counter, stepping
// at the 60 Hz tick rate. Unanimated tiles return themselves.
func (ts *TileSet) FrameAt(id LocalID, tick int) LocalID {
	frames := ts.animations[id]
	if len(frames) == 0 {
		return id
	}
	total := 0
	for _, f := range frames {
		total += f.Duration
	}
	if total <= 0 {
		return id
	}
	ms := tick * 1000 / 60 % total
	for _, f := range frames {
		ms -= f.Duration
		if ms < 0 {
			return f.Tile
		}
	}
	return frames[len(frames)-1].Tile
}
