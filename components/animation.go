package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// AnimationData drives a sprite drawn from a single-row sheet of
// fixed-size frames.
type AnimationData struct {
	Sheet       *ebiten.Image
	FrameWidth  int
	FrameHeight int

	Frame       int
	Counter     int // ticks until the next frame advance
	IdleCounter int
}

// FrameImage returns the subimage for the current frame.
func (a *AnimationData) FrameImage() *ebiten.Image {
	x := a.Frame * a.FrameWidth
	return a.Sheet.SubImage(image.Rect(x, 0, x+a.FrameWidth, a.FrameHeight)).(*ebiten.Image)
}

var Animation = donburi.NewComponentType[AnimationData]()
