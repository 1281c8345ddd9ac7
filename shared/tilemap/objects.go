package tilemap

import (
	"fmt"
	"strconv"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/skelly/shared/geom"
)

// Overflow says what a moving platform does on reaching the end of its run.
type Overflow int

const (
	OverflowOscillate Overflow = iota
	OverflowWrap
	OverflowClamp
)

func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "oscillate":
		return OverflowOscillate, nil
	case "wrap":
		return OverflowWrap, nil
	case "clamp":
		return OverflowClamp, nil
	}
	return 0, fmt.Errorf("invalid overflow %q", s)
}

type ButtonType int

const (
	ButtonToggle ButtonType = iota
	ButtonOneShot
	ButtonMomentary
	ButtonSmart
)

func ParseButtonType(s string) (ButtonType, error) {
	switch s {
	case "toggle":
		return ButtonToggle, nil
	case "oneshot":
		return ButtonOneShot, nil
	case "momentary":
		return ButtonMomentary, nil
	case "smart":
		return ButtonSmart, nil
	}
	return 0, fmt.Errorf("invalid button type %q", s)
}

// MapObject is one Tiled object with its typed property surface. Which
// entity it spawns is decided by the type flags, checked in factory order.
type MapObject struct {
	ID       int
	GID      GlobalID
	Position geom.Rect[geom.Pixels]

	Platform bool
	Bagel    bool
	Spring   bool
	Button   bool
	Door     bool
	Star     bool
	Spawn    bool

	Solid bool

	PreferredX *geom.Pixels
	PreferredY *geom.Pixels

	Distance  int
	Speed     *geom.Pixels
	Condition string
	Overflow  Overflow
	Direction geom.Direction
	Convey    geom.Direction // DirNone unless the object is a conveyor

	ButtonType ButtonType
	Color      string

	Sprite      string
	Destination string
	StarsNeeded int

	FacingLeft bool
	DX, DY     geom.Pixels

	Warp *string
}

func parseMapObject(src *tiled.Object) (*MapObject, error) {
	props := src.Properties
	o := &MapObject{
		ID:  int(src.ID),
		GID: GlobalID(src.GID),
		Position: geom.Rect[geom.Pixels]{
			X: geom.Pixels(src.X),
			Y: geom.Pixels(src.Y),
			W: geom.Pixels(src.Width),
			H: geom.Pixels(src.Height),
		},
		Platform:    boolProp(props, "platform", false),
		Bagel:       boolProp(props, "bagel", false),
		Spring:      boolProp(props, "spring", false),
		Button:      boolProp(props, "button", false),
		Door:        boolProp(props, "door", false),
		Star:        boolProp(props, "star", false),
		Spawn:       boolProp(props, "spawn", false),
		Solid:       boolProp(props, "solid", false),
		Condition:   props.GetString("condition"),
		Color:       props.GetString("color"),
		Sprite:      props.GetString("sprite"),
		Destination: props.GetString("destination"),
		FacingLeft:  boolProp(props, "facing_left", false),
	}

	// Tile objects anchor at their bottom-left corner in Tiled.
	if o.GID != 0 {
		o.Position.Y -= o.Position.H
	}

	var err error
	if o.Distance, err = intProp(props, "distance", 0); err != nil {
		return nil, err
	}
	if o.StarsNeeded, err = intProp(props, "stars_needed", 0); err != nil {
		return nil, err
	}
	dx, err := intProp(props, "dx", 0)
	if err != nil {
		return nil, err
	}
	dy, err := intProp(props, "dy", 0)
	if err != nil {
		return nil, err
	}
	o.DX, o.DY = geom.Pixels(dx), geom.Pixels(dy)

	if v, ok := propValue(props, "preferred_x"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid preferred_x %q: %w", v, err)
		}
		px := geom.Pixels(n)
		o.PreferredX = &px
	}
	if v, ok := propValue(props, "preferred_y"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid preferred_y %q: %w", v, err)
		}
		py := geom.Pixels(n)
		o.PreferredY = &py
	}
	if v, ok := propValue(props, "speed"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid speed %q: %w", v, err)
		}
		spd := geom.Pixels(n)
		o.Speed = &spd
	}

	overflow := props.GetString("overflow")
	if overflow == "" {
		overflow = "oscillate"
	}
	if o.Overflow, err = ParseOverflow(overflow); err != nil {
		return nil, err
	}

	direction := props.GetString("direction")
	if direction == "" {
		direction = "N"
	}
	if o.Direction, err = geom.ParseDirection(direction); err != nil {
		return nil, err
	}

	if convey, ok := propValue(props, "convey"); ok {
		d, err := geom.ParseDirection(convey)
		if err != nil {
			return nil, fmt.Errorf("invalid convey: %w", err)
		}
		if d != geom.DirLeft && d != geom.DirRight {
			return nil, fmt.Errorf("invalid convey %q: must be W or E", convey)
		}
		o.Convey = d
	}

	buttonType := props.GetString("button_type")
	if buttonType == "" {
		buttonType = "toggle"
	}
	if o.ButtonType, err = ParseButtonType(buttonType); err != nil {
		return nil, err
	}

	if v, ok := propValue(props, "warp"); ok {
		o.Warp = &v
	}

	return o, nil
}

func intProp(src tiled.Properties, name string, def int) (int, error) {
	v, ok := propValue(src, name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}
