package config

// AnimationDef is an inclusive frame range on a sprite sheet row.
// Advancing past Last wraps back to First.
type AnimationDef struct {
	First int
	Last  int
}

// PlayerAnimations maps a display state to its frame range on the
// player sheet, a single row of 24x24 frames.
var PlayerAnimations = map[string]AnimationDef{
	"standing":     {First: 0, Last: 1},
	"idle":         {First: 2, Last: 5},
	"jumping":      {First: 6, Last: 6},
	"falling":      {First: 7, Last: 7},
	"wall_sliding": {First: 8, Last: 8},
	"crouching":    {First: 9, Last: 9},
	"dead":         {First: 10, Last: 10},
}

// NextFrame clamps frame into the range, snapping back to First when
// the current frame belongs to some other state's range.
func (d AnimationDef) NextFrame(frame int) int {
	if frame < d.First || frame > d.Last {
		return d.First
	}
	return frame
}
