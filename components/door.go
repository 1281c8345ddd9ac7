package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/shared/geom"
)

// DoorState tracks a door through its unlock and close animations.
type DoorState int

const (
	DoorLocked DoorState = iota
	DoorUnlocking
	DoorOpen
	DoorClosing
	DoorClosed
)

// DoorData is a level exit. A locked door counts down the stars the
// player still needs before it will open.
type DoorData struct {
	State          DoorState
	StarsNeeded    int
	StarsRemaining int
	Frame          int
	Active         bool
	Destination    string
	Position       geom.Point[geom.Subpixels]
}

var Door = donburi.NewComponentType[DoorData]()
