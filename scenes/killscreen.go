package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/systems"
)

// KillScreen shows the frozen level under a red wash until the player
// either retries or backs out to the level select.
type KillScreen struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	previous     *LevelScene
	retryPath    string
	returnTo     interface{}
	fade         *gween.Tween
	shade        float32
}

func NewKillScreen(sc SceneChanger, previous *LevelScene, retryPath string, returnTo interface{}) *KillScreen {
	ks := &KillScreen{
		sceneChanger: sc,
		previous:     previous,
		retryPath:    retryPath,
		returnTo:     returnTo,
		fade:         gween.New(0, 127, 0.5, ease.Linear),
	}

	// A bare world so the music fade keeps ticking.
	ks.ecs = ecs.NewECS(donburi.NewWorld())
	ks.ecs.AddSystem(systems.UpdateAudio)
	return ks
}

func (ks *KillScreen) Update(in replay.Snapshot) {
	ks.ecs.Update()

	if ks.fade != nil {
		value, finished := ks.fade.Update(1.0 / 60.0)
		ks.shade = value
		if finished {
			ks.fade = nil
		}
	}

	if in.OkClicked || in.JumpClicked {
		next, err := NewLevelScene(ks.sceneChanger, ks.retryPath, ks.returnTo)
		if err != nil {
			log.Printf("Warning: could not reload level %s: %v", ks.retryPath, err)
			ks.sceneChanger.ChangeScene(ks.returnTo)
			return
		}
		ks.sceneChanger.ChangeScene(next)
		return
	}
	if in.CancelClicked {
		ks.sceneChanger.ChangeScene(ks.returnTo)
	}
}

func (ks *KillScreen) Draw(screen *ebiten.Image) {
	ks.previous.Draw(screen)

	// Premultiplied red wash.
	a := uint8(ks.shade)
	vector.DrawFilledRect(
		screen,
		0, 0,
		float32(cfg.C.RenderWidth), float32(cfg.C.RenderHeight),
		color.RGBA{R: a, A: a},
		false,
	)

	face := fonts.Main.Get()
	label := "DEAD"
	x := (cfg.C.RenderWidth - fonts.Main.Width(label)) / 2
	y := cfg.C.RenderHeight/2 + face.Metrics().Ascent.Ceil()/2
	text.Draw(screen, label, face, x, y, cfg.White) //nolint:staticcheck // TODO: migrate to text/v2
}
