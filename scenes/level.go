package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/systems"
	"github.com/automoto/skelly/systems/factory"
)

// LevelScene runs one level from load until a door, warp, death or the
// pause menu sends the player somewhere else.
type LevelScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	mapPath      string
	returnTo     interface{}
}

// NewLevelScene builds the world for one level. An error means the map
// itself is bad; callers decide whether that is fatal.
func NewLevelScene(sc SceneChanger, mapPath string, returnTo interface{}) (*LevelScene, error) {
	ls := &LevelScene{
		sceneChanger: sc,
		mapPath:      mapPath,
		returnTo:     returnTo,
	}
	ls.ecs = ecs.NewECS(donburi.NewWorld())

	// Audio and the pause menu keep running while the simulation is
	// frozen.
	ls.ecs.AddSystem(systems.UpdateAudio)
	ls.ecs.AddSystem(systems.UpdatePause)

	// The simulation runs in a fixed order: platforms move first so the
	// player can ride them, then the player, then everything that
	// reacts to where the player ended up.
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.AdvanceFrame))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdatePlatforms))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdatePlayer))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdateDoors))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdateWarps))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdateStars))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdateDeath))
	ls.ecs.AddSystem(systems.WithPauseCheck(systems.UpdateToast))

	ls.ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ls.ecs.AddRenderer(cfg.Default, systems.DrawHud)
	ls.ecs.AddRenderer(cfg.Default, systems.DrawPause)

	if _, err := factory.CreateLevel(ls.ecs, mapPath); err != nil {
		return nil, err
	}

	// Remember where the player got to, even before any stars.
	systems.SaveLevelProgress(mapPath, 0)
	systems.PlayMusic(ls.ecs)
	return ls, nil
}

func (ls *LevelScene) Update(in replay.Snapshot) {
	systems.SetSnapshot(ls.ecs, in)
	ls.ecs.Update()

	t := systems.TakeTransition(ls.ecs)
	switch t.Kind {
	case components.TransitionSwitchLevel:
		log.Printf("switching to level %s", t.Path)
		systems.SaveLevelProgress(ls.mapPath, ls.starCount())
		next, err := NewLevelScene(ls.sceneChanger, t.Path, ls.returnTo)
		if err != nil {
			log.Printf("Warning: could not load level %s: %v", t.Path, err)
			systems.FadeOutMusic(ls.ecs)
			ls.sceneChanger.ChangeScene(ls.returnTo)
			return
		}
		ls.sceneChanger.ChangeScene(next)
	case components.TransitionKillScreen:
		systems.FadeOutMusic(ls.ecs)
		ls.sceneChanger.ChangeScene(NewKillScreen(ls.sceneChanger, ls, t.Path, ls.returnTo))
	case components.TransitionPop:
		systems.SaveLevelProgress(ls.mapPath, ls.starCount())
		systems.FadeOutMusic(ls.ecs)
		ls.sceneChanger.ChangeScene(ls.returnTo)
	}
}

func (ls *LevelScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)
	ls.ecs.Draw(screen)
}

func (ls *LevelScene) starCount() int {
	if entry, ok := components.Level.First(ls.ecs.World); ok {
		return components.Level.Get(entry).StarCount
	}
	return 0
}
