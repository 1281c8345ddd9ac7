package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/shared/geom"
)

// ToastData is the banner that slides in along the top of the screen
// and retracts once its counter runs out.
type ToastData struct {
	Text     string
	Position geom.Subpixels
	Counter  int
}

var Toast = donburi.NewComponentType[ToastData]()
