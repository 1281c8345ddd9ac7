package components

import (
	"github.com/automoto/skelly/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	Current config.StateID

	// Wall stick gives a short window to jump away from a wall
	// before sliding resumes.
	WallStickCounter     int
	WallStickFacingRight bool
	WallSlideCounter     int

	CoyoteCounter    int
	JumpGraceCounter int
	SpringCounter    int
}

var State = donburi.NewComponentType[StateData]()
