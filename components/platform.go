package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

// PlatformData is the state shared by every moving piece of level
// furniture: moving platforms, bagels, conveyors, springs and buttons.
type PlatformData struct {
	TileGID  tilemap.GlobalID
	Position geom.Rect[geom.Subpixels]
	Delta    geom.Point[geom.Subpixels]
	Solid    bool
	Occupied bool
}

var Platform = donburi.NewComponentType[PlatformData]()

// MovingData drives a platform that travels between two points.
type MovingData struct {
	Direction geom.Direction
	Overflow  tilemap.Overflow
	Distance  geom.Subpixels
	Speed     geom.Subpixels
	Start     geom.Point[geom.Subpixels]
	End       geom.Point[geom.Subpixels]
	Condition string
	Forward   bool
}

var Moving = donburi.NewComponentType[MovingData]()

// BagelData drives a platform that drops away after being stood on.
type BagelData struct {
	OriginalY geom.Subpixels
	Falling   bool
	Remaining int
}

var Bagel = donburi.NewComponentType[BagelData]()

// ConveyorData marks a platform that slides the player sideways.
// The push speed lives in the base delta and never changes.
type ConveyorData struct{}

var Conveyor = donburi.NewComponentType[ConveyorData]()

// SpringData drives a platform that compresses and launches the player.
// Pos is how far the pad has sunk below its rest position.
type SpringData struct {
	Up           bool
	Pos          geom.Subpixels
	StallCounter int
	Launch       bool
}

var Spring = donburi.NewComponentType[SpringData]()

// ButtonData drives a floor button that flips switch state.
type ButtonData struct {
	Type        tilemap.ButtonType
	Color       string
	Level       int
	Clicked     bool
	WasOccupied bool
	OriginalY   geom.Subpixels
}

var Button = donburi.NewComponentType[ButtonData]()
