package components

import "github.com/yohamta/donburi"

// TransitionKind names what the scene should do once the tick finishes.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionSwitchLevel
	TransitionKillScreen
	TransitionPop
)

// TransitionData is written by systems that want to leave the current
// scene. The scene reads and clears it after each update.
type TransitionData struct {
	Kind TransitionKind
	Path string
}

var Transition = donburi.NewComponentType[TransitionData]()
