package geom

import "fmt"

// Direction is the axis direction a collision probe travels in.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

// ParseDirection reads the compass notation used by tile and object
// properties (oneway, convey).
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N":
		return DirUp, nil
	case "S":
		return DirDown, nil
	case "W":
		return DirLeft, nil
	case "E":
		return DirRight, nil
	}
	return DirNone, fmt.Errorf("invalid direction %q", s)
}

// CmpInDirection orders two collision offsets by how soon they stop an
// actor moving in d. A negative result means a is more restrictive than b;
// aggregation keeps whichever offset compares less.
func CmpInDirection(a, b Subpixels, d Direction) int {
	var sign Subpixels
	switch d {
	case DirUp, DirLeft:
		sign = b - a
	default:
		sign = a - b
	}
	return int(sign.Sign())
}

// TryMoveToBounds returns how far the actor must be displaced along d to
// clear target, or zero when the rects do not strictly overlap. The offset
// is signed: positive for Up/Left corrections, negative for Down/Right.
func TryMoveToBounds(actor, target Rect[Subpixels], d Direction) Subpixels {
	if actor.Bottom() <= target.Top() ||
		actor.Top() >= target.Bottom() ||
		actor.Right() <= target.Left() ||
		actor.Left() >= target.Right() {
		return 0
	}
	switch d {
	case DirUp:
		return target.Bottom() - actor.Top()
	case DirDown:
		return target.Top() - actor.Bottom()
	case DirRight:
		return target.Left() - actor.Right()
	case DirLeft:
		return target.Right() - actor.Left()
	}
	panic("TryMoveToBounds needs a direction")
}
