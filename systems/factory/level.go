package factory

import (
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/switchstate"
	"github.com/automoto/skelly/shared/tilemap"
)

// CreateLevel loads a map and spawns everything in it: the player, the
// platforms, the doors, stars and warps, plus the camera and the level
// name toast. Objects spawn in map document order so that collision
// tie-breaking stays stable.
func CreateLevel(ecs *ecs.ECS, mapPath string) (*donburi.Entry, error) {
	m, err := tilemap.Load(assets.LevelFS(), mapPath)
	if err != nil {
		return nil, fmt.Errorf("create level %s: %w", mapPath, err)
	}

	level := archetypes.Level.Spawn(ecs)

	gravity := cfg.Player.MaxGravity
	if m.Gravity != nil {
		gravity = *m.Gravity
	}
	levelData := &components.LevelData{
		Name:     assets.LevelName(mapPath),
		MapPath:  mapPath,
		Map:      m,
		Switches: switchstate.New(),
		Gravity:  gravity,
	}

	player := CreatePlayer(ecs)
	playerData := components.Player.Get(player)
	stateData := components.State.Get(player)

	for _, obj := range m.Objects {
		if obj.Platform {
			levelData.Platforms = append(levelData.Platforms, CreateMovingPlatform(ecs, m, obj))
		}
		if obj.Bagel {
			levelData.Platforms = append(levelData.Platforms, CreateBagel(ecs, obj))
		}
		if obj.Convey != geom.DirNone {
			levelData.Platforms = append(levelData.Platforms, CreateConveyor(ecs, obj))
		}
		if obj.Spring {
			levelData.Platforms = append(levelData.Platforms, CreateSpring(ecs, obj))
		}
		if obj.Button {
			levelData.Platforms = append(levelData.Platforms, CreateButton(ecs, obj))
		}
		if obj.Spawn {
			playerData.Position = geom.Point[geom.Subpixels]{
				X: obj.Position.X.AsSubpixels(),
				Y: obj.Position.Y.AsSubpixels(),
			}
			playerData.Delta = geom.Point[geom.Subpixels]{
				X: obj.DX.AsSubpixels(),
				Y: obj.DY.AsSubpixels(),
			}
			playerData.FacingRight = !obj.FacingLeft
			stateData.Current = cfg.StateJumping
		}
		if obj.Door {
			CreateDoor(ecs, obj)
		}
		if obj.Star {
			CreateStar(ecs, obj)
		}
		if obj.Warp != nil {
			CreateWarp(ecs, obj)
		}
	}

	components.Level.Set(level, levelData)

	CreateCamera(ecs)
	CreateToast(ecs, levelData.Name)

	return level, nil
}
