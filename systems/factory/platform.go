package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

// setBasePlatform fills the component shared by every platform variant.
func setBasePlatform(platform *donburi.Entry, obj *tilemap.MapObject) {
	components.Platform.SetValue(platform, components.PlatformData{
		TileGID:  obj.GID,
		Position: geom.RectToSubpixels(obj.Position),
		Solid:    obj.Solid,
	})
}

func CreateMovingPlatform(ecs *ecs.ECS, m *tilemap.TileMap, obj *tilemap.MapObject) *donburi.Entry {
	platform := archetypes.MovingPlatform.Spawn(ecs)
	setBasePlatform(platform, obj)

	var distMult, sx, sy geom.Subpixels
	switch obj.Direction {
	case geom.DirUp:
		distMult, sx, sy = m.TileHeight.AsSubpixels(), 0, -1
	case geom.DirDown:
		distMult, sx, sy = m.TileHeight.AsSubpixels(), 0, 1
	case geom.DirLeft:
		distMult, sx, sy = m.TileWidth.AsSubpixels(), -1, 0
	case geom.DirRight:
		distMult, sx, sy = m.TileWidth.AsSubpixels(), 1, 0
	}

	speed := cfg.Platform.DefaultSpeed
	if obj.Speed != nil {
		speed = *obj.Speed
	}

	distance := distMult * geom.Subpixels(obj.Distance)
	start := geom.Point[geom.Subpixels]{
		X: obj.Position.X.AsSubpixels(),
		Y: obj.Position.Y.AsSubpixels(),
	}
	components.Moving.SetValue(platform, components.MovingData{
		Direction: obj.Direction,
		Overflow:  obj.Overflow,
		Distance:  distance,
		// Map speeds are in sixteenths of a pixel per frame.
		Speed:     speed.AsSubpixels() / cfg.Platform.SpeedDivisor,
		Start:     start,
		End:       start.Add(geom.Point[geom.Subpixels]{X: distance * sx, Y: distance * sy}),
		Condition: obj.Condition,
		Forward:   true,
	})
	return platform
}

func CreateBagel(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	platform := archetypes.Bagel.Spawn(ecs)
	setBasePlatform(platform, obj)
	components.Bagel.SetValue(platform, components.BagelData{
		OriginalY: obj.Position.Y.AsSubpixels(),
		Remaining: cfg.Bagel.WaitTime,
	})
	return platform
}

func CreateConveyor(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	platform := archetypes.Conveyor.Spawn(ecs)
	setBasePlatform(platform, obj)
	components.Conveyor.SetValue(platform, components.ConveyorData{})

	speed := cfg.Platform.DefaultConveyorSpeed
	if obj.Speed != nil {
		speed = *obj.Speed
	}
	dx := speed.AsSubpixels() / cfg.Platform.SpeedDivisor
	if obj.Convey == geom.DirLeft {
		dx = -dx
	}
	// The belt itself never moves, only its surface delta.
	components.Platform.Get(platform).Delta.X = dx
	return platform
}

func CreateSpring(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	platform := archetypes.Spring.Spawn(ecs)
	setBasePlatform(platform, obj)
	components.Spring.SetValue(platform, components.SpringData{
		StallCounter: cfg.Spring.StallFrames,
	})
	components.Animation.SetValue(platform, components.AnimationData{
		Sheet:       assets.SpringSheet(),
		FrameWidth:  8,
		FrameHeight: 8,
	})
	return platform
}

func CreateButton(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	platform := archetypes.Button.Spawn(ecs)
	setBasePlatform(platform, obj)

	color := obj.Color
	if color == "" {
		color = "red"
	}
	components.Button.SetValue(platform, components.ButtonData{
		Type:      obj.ButtonType,
		Color:     color,
		OriginalY: obj.Position.Y.AsSubpixels(),
	})
	// A pressed button carries the player down with it.
	components.Platform.Get(platform).Delta.Y = geom.Pixels(1).AsSubpixels()

	components.Animation.SetValue(platform, components.AnimationData{
		Sheet:       assets.ButtonSheet(color),
		FrameWidth:  8,
		FrameHeight: 8,
	})
	return platform
}
