package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/components"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

func CreateStar(ecs *ecs.ECS, obj *tilemap.MapObject) *donburi.Entry {
	star := archetypes.Star.Spawn(ecs)
	components.Star.SetValue(star, components.StarData{
		TileGID: obj.GID,
		Area:    geom.RectToSubpixels(obj.Position),
	})
	return star
}
