package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
)

// getLevel returns the level singleton once the factory has spawned it.
func getLevel(ecs *ecs.ECS) (*components.LevelData, bool) {
	entry, ok := components.Level.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Level.Get(entry), true
}

// AdvanceFrame bumps the level's tick counter. Runs first so every
// other system sees the same frame number.
func AdvanceFrame(ecs *ecs.ECS) {
	if level, ok := getLevel(ecs); ok {
		level.Frame++
	}
}

// RequestTransition asks the scene to leave once the tick finishes.
// The first request in a tick wins.
func RequestTransition(ecs *ecs.ECS, kind components.TransitionKind, path string) {
	t := getOrCreateTransition(ecs)
	if t.Kind != components.TransitionNone {
		return
	}
	t.Kind = kind
	t.Path = path
}

// TransitionPending reports whether some system already asked to leave.
// Systems that come later in the tick use it to stand down.
func TransitionPending(ecs *ecs.ECS) bool {
	return getOrCreateTransition(ecs).Kind != components.TransitionNone
}

// TakeTransition returns any pending transition and clears it.
func TakeTransition(ecs *ecs.ECS) components.TransitionData {
	t := getOrCreateTransition(ecs)
	out := *t
	*t = components.TransitionData{}
	return out
}

func getOrCreateTransition(ecs *ecs.ECS) *components.TransitionData {
	entry, ok := components.Transition.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Transition))
	}
	return components.Transition.Get(entry)
}
