package config

import "image/color"

// Config holds general game configuration. The game renders to a fixed
// 320x180 surface and scales it up to the window.
type Config struct {
	RenderWidth  int
	RenderHeight int
	WindowScale  int
	TickRate     int
	Title        string
}

// Global configuration instance
var C *Config

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ToastOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 127}
	MenuShade    = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	TitleColor   = color.RGBA{R: 221, G: 178, B: 255, A: 255}
	SelectColor  = color.RGBA{R: 255, G: 255, B: 100, A: 255}
)

func init() {
	C = &Config{
		RenderWidth:  320,
		RenderHeight: 180,
		WindowScale:  4,
		TickRate:     60,
		Title:        "Skelly",
	}
}
