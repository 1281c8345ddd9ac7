package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

var (
	//go:embed all:levels
	levelFS embed.FS

	//go:embed all:images
	imageFS embed.FS
)

// LevelFS exposes the embedded level data to the tilemap loader.
func LevelFS() fs.FS { return levelFS }

// ImageLoader handles loading and caching of sprite images
type ImageLoader struct {
	cache map[string]*ebiten.Image
}

func NewImageLoader() *ImageLoader {
	return &ImageLoader{
		cache: make(map[string]*ebiten.Image),
	}
}

var imageLoader = NewImageLoader()

func (l *ImageLoader) MustLoadImage(path string) *ebiten.Image {
	if img, ok := l.cache[path]; ok {
		return img
	}

	imgBytes, err := imageFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("Failed to read image file %s: %v", path, err))
	}

	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		panic(fmt.Sprintf("Failed to create image from bytes for %s: %v", path, err))
	}

	l.cache[path] = img

	return img
}

// PlayerSheet is one row of 24x24 frames.
func PlayerSheet() *ebiten.Image {
	return imageLoader.MustLoadImage("images/sprites/skelly.png")
}

// SpringSheet is one row of 8x8 frames, fully extended first.
func SpringSheet() *ebiten.Image {
	return imageLoader.MustLoadImage("images/sprites/spring.png")
}

// DoorSheet is a grid of 32x32 cells. A door object can name its own
// sheet to look different from the rest.
func DoorSheet(override string) *ebiten.Image {
	if override != "" {
		return imageLoader.MustLoadImage(override)
	}
	return imageLoader.MustLoadImage("images/sprites/door.png")
}

// ButtonSheet is one row of 8x8 frames per color. The "!white" switch
// color has no art of its own and borrows the black button.
func ButtonSheet(color string) *ebiten.Image {
	if color == "!white" {
		color = "black"
	}
	return imageLoader.MustLoadImage(fmt.Sprintf("images/sprites/buttons/%s.png", color))
}

// ListLevels returns the embedded level paths in name order.
func ListLevels() []string {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		panic(fmt.Sprintf("Failed to read levels directory: %v", err))
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".tmx" {
			paths = append(paths, filepath.Join("levels", entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		panic("No level files found in assets/levels directory")
	}

	return paths
}

// LevelName turns "levels/lava.tmx" into "lava".
func LevelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// RenderThumbnail draws a whole level into one image for the level
// select screen.
func RenderThumbnail(levelPath string) (*ebiten.Image, error) {
	levelMap, err := tiled.LoadFile(levelPath, tiled.WithFileSystem(levelFS))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", levelPath, err)
	}

	renderer, err := render.NewRendererWithFileSystem(levelMap, levelFS)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := renderer.RenderVisibleLayers(); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", levelPath, err)
	}

	return ebiten.NewImageFromImage(renderer.Result), nil
}
