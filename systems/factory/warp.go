package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/components"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

func CreateWarp(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	warp := archetypes.Warp.Spawn(ecs)
	components.Warp.SetValue(warp, components.WarpData{
		Area:        geom.RectToSubpixels(obj.Position),
		Destination: *obj.Warp,
	})
	return warp
}
