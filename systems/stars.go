package systems

import (
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
)

// UpdateStars collects any stars the player is touching.
func UpdateStars(ecs *ecs.ECS) {
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
	player := components.Player.Get(playerEntry)
	state := components.State.Get(playerEntry)
	playerRect := player.BoundsRect(geom.DirNone, state.Current == cfg.StateCrouching)

	var collected []*donburi.Entry
	components.Star.Each(ecs.World, func(e *donburi.Entry) {
		if playerRect.Intersects(components.Star.Get(e).Area) {
			collected = append(collected, e)
		}
	})

	for _, e := range collected {
		ecs.World.Remove(e.Entity())
		PlaySFX(ecs, cfg.SoundStar)
		level.StarCount++
		ShowToast(ecs, fmt.Sprintf("STARS x %d", level.StarCount))
	}
}
