package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/components"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

func CreateDoor(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	door := archetypes.Door.Spawn(ecs)

	state := components.DoorOpen
	if obj.StarsNeeded > 0 {
		state = components.DoorLocked
	}
	components.Door.SetValue(door, components.DoorData{
		State:          state,
		StarsNeeded:    obj.StarsNeeded,
		StarsRemaining: obj.StarsNeeded,
		Destination:    obj.Destination,
		Position: geom.Point[geom.Subpixels]{
			X: obj.Position.X.AsSubpixels(),
			Y: obj.Position.Y.AsSubpixels(),
		},
	})
	components.Animation.SetValue(door, components.AnimationData{
		Sheet:       assets.DoorSheet(obj.Sprite),
		FrameWidth:  32,
		FrameHeight: 32,
	})
	return door
}
