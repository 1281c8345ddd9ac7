package archetypes

import (
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.State,
		components.Animation,
	)
	MovingPlatform = newArchetype(
		tags.Platform,
		components.Platform,
		components.Moving,
	)
	Bagel = newArchetype(
		tags.Platform,
		components.Platform,
		components.Bagel,
	)
	Conveyor = newArchetype(
		tags.Platform,
		components.Platform,
		components.Conveyor,
	)
	Spring = newArchetype(
		tags.Platform,
		components.Platform,
		components.Spring,
		components.Animation,
	)
	Button = newArchetype(
		tags.Platform,
		components.Platform,
		components.Button,
		components.Animation,
	)
	Door = newArchetype(
		tags.Door,
		components.Door,
		components.Animation,
	)
	Star = newArchetype(
		tags.Star,
		components.Star,
	)
	Warp = newArchetype(
		tags.Warp,
		components.Warp,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Toast = newArchetype(
		components.Toast,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
