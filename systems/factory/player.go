package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
)

func CreatePlayer(ecs *ecs.ECS) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	components.Player.SetValue(player, components.PlayerData{
		Position: geom.Point[geom.Subpixels]{
			X: cfg.Player.DefaultX.AsSubpixels(),
			Y: cfg.Player.DefaultY.AsSubpixels(),
		},
		FacingRight: true,
	})
	components.State.SetValue(player, components.StateData{
		Current:          cfg.StateStanding,
		WallStickCounter: cfg.Player.WallStickTime,
		WallSlideCounter: cfg.Player.WallSlideTime,
		CoyoteCounter:    cfg.Player.CoyoteTime,
	})
	components.Animation.SetValue(player, components.AnimationData{
		Sheet:       assets.PlayerSheet(),
		FrameWidth:  24,
		FrameHeight: 24,
		Counter:     cfg.Player.FramesPerFrame,
		IdleCounter: cfg.Player.IdleTime,
	})
	return player
}
