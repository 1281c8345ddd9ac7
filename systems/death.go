package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
)

// UpdateDeath sends the player to the kill screen once something has
// killed them. Runs after the collectible checks so a star grabbed on
// the same tick as a spike still counts.
func UpdateDeath(ecs *ecs.ECS) {
	if TransitionPending(ecs) {
		return
	}
	level, ok := getLevel(ecs)
	if !ok {
		return
	}
	playerEntry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}

	if components.Player.Get(playerEntry).IsDead {
		RequestTransition(ecs, components.TransitionKillScreen, level.MapPath)
	}
}
