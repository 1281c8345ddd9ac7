package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

type FontName string

const (
	Main  FontName = "main"
	Small FontName = "small"
	Title FontName = "title"
)

// One embedded TTF serves every face. The sizes are fixed for the
// 320x180 surface.
var sizes = map[FontName]float64{
	Main:  10,
	Small: 8,
	Title: 16,
}

var fonts = map[FontName]font.Face{}

// Load parses the TTF once and registers a face per size.
func Load(ttf []byte) error {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	for name, size := range sizes {
		fonts[name] = truetype.NewFace(parsed, &truetype.Options{Size: size})
	}
	return nil
}

func (f FontName) Get() font.Face {
	face, ok := fonts[f]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", f))
	}
	return face
}

// Width measures the advance of s in whole pixels.
func (f FontName) Width(s string) int {
	return font.MeasureString(f.Get(), s).Ceil()
}
