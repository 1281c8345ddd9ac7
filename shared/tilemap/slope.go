package tilemap

import "github.com/automoto/skelly/shared/geom"

// Slope is a tile whose surface runs from LeftY subpixels below the tile
// top at the left edge to RightY at the right edge.
type Slope struct {
	LeftY  geom.Subpixels
	RightY geom.Subpixels
}

// TryMoveToBounds returns how far a downward-moving actor must be pushed
// back so its bottom rests on the slope surface, interpolated at the
// actor's horizontal center. Only Down probes interact with slopes and the
// result is never positive; a slope stops a fall, it never drags the actor
// deeper.
func (s *Slope) TryMoveToBounds(actor, target geom.Rect[geom.Subpixels], d geom.Direction) geom.Subpixels {
	if actor.Bottom() <= target.Top() ||
		actor.Top() >= target.Bottom() ||
		actor.Right() <= target.Left() ||
		actor.Left() >= target.Right() {
		return 0
	}
	if d != geom.DirDown {
		return 0
	}

	actorCenterX := (actor.Left() + actor.Right()) / 2

	var targetY geom.Subpixels
	switch {
	case actorCenterX < target.Left():
		targetY = target.Top() + s.LeftY
	case actorCenterX > target.Right():
		targetY = target.Top() + s.RightY
	default:
		xOffset := actorCenterX - target.X
		rise := int64(s.RightY - s.LeftY)
		targetY = target.Y + geom.Subpixels(rise*int64(xOffset)/int64(target.W)) + s.LeftY
	}

	if targetY < actor.Bottom() {
		return targetY - actor.Bottom()
	}
	return 0
}
