package assets

import (
	"embed"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

var (
	// DarknessShader blacks out everything outside the light sources on
	// dark maps.
	DarknessShader *ebiten.Shader
)

// LoadShaders compiles and caches all shaders
func LoadShaders() error {
	var err error

	darkSrc, err := shaderFS.ReadFile("shaders/darkness.kage")
	if err != nil {
		return err
	}
	DarknessShader, err = ebiten.NewShader(darkSrc)
	if err != nil {
		return err
	}

	return nil
}
