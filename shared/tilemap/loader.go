package tilemap

import (
	"bytes"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"path/filepath"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/lafriks/go-tiled"

	"github.com/automoto/skelly/shared/geom"
)

// Load parses a TMX file and builds the collision model. It takes an
// fs.FS so callers can pass embed.FS; tileset images resolve relative
// to the map file through the same filesystem.
func Load(fsys fs.FS, tmxPath string) (*TileMap, error) {
	log.Printf("loading tilemap from %s", tmxPath)
	src, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	baseDir := filepath.Dir(tmxPath)

	tilesets := make([]*TileSet, 0, len(src.Tilesets))
	for _, srcSet := range src.Tilesets {
		ts, err := NewTileSet(srcSet)
		if err != nil {
			return nil, err
		}
		if srcSet.Image != nil {
			img, err := loadImage(fsys, filepath.Join(baseDir, srcSet.Image.Source))
			if err != nil {
				return nil, fmt.Errorf("tileset %s: %w", srcSet.Name, err)
			}
			ts.Image = img
		}
		tilesets = append(tilesets, ts)
	}

	layers := make([]*TileLayer, 0, len(src.Layers))
	for _, srcLayer := range src.Layers {
		tiles := make([]GlobalID, len(srcLayer.Tiles))
		for i, t := range srcLayer.Tiles {
			if t.IsNil() {
				continue
			}
			tiles[i] = GlobalID(t.Tileset.FirstGID) + GlobalID(t.ID)
		}
		player := boolProp(srcLayer.Properties, "player", false)
		layer, err := NewTileLayer(srcLayer.Name, src.Width, src.Height, tiles, player)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	m, err := New(src.Width, src.Height, geom.Pixels(src.TileWidth), geom.Pixels(src.TileHeight), layers, tilesets)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", tmxPath, err)
	}

	m.Dark = boolProp(src.Properties, "is_dark", false)
	if v, ok := propValue(src.Properties, "gravity"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid gravity %q: %w", v, err)
		}
		g := geom.Subpixels(n)
		m.Gravity = &g
	}
	m.Background = color.Black
	if v := src.Properties.GetString("background_color"); v != "" {
		c, err := parseHexColor(v)
		if err != nil {
			return nil, err
		}
		m.Background = c
	}

	for _, og := range src.ObjectGroups {
		for _, o := range og.Objects {
			obj, err := parseMapObject(o)
			if err != nil {
				return nil, fmt.Errorf("map %s object %d: %w", tmxPath, o.ID, err)
			}
			m.Objects = append(m.Objects, obj)
		}
	}

	return m, nil
}

func loadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, nil
}
