package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
)

// UpdateWarps switches levels when the player stands inside a warp
// zone.
func UpdateWarps(ecs *ecs.ECS) {
	if TransitionPending(ecs) {
		return
	}
	playerEntry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	state := components.State.Get(playerEntry)
	playerRect := player.BoundsRect(geom.DirNone, state.Current == cfg.StateCrouching)

	for e := range components.Warp.Iter(ecs.World) {
		warp := components.Warp.Get(e)
		if playerRect.Intersects(warp.Area) {
			RequestTransition(ecs, components.TransitionSwitchLevel, warp.Destination)
			return
		}
	}
}
