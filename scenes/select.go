package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/assets"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/systems"
	"github.com/automoto/skelly/ui"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
	Quit()
}

const (
	thumbWidth      = 96
	thumbHeight     = 54
	titleBobSeconds = 1.2
)

// LevelSelectScene is the root scene: pick a level, play it, come back.
type LevelSelectScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	ui           *ui.LevelSelectUI
	levels       []string
	selected     int
	needsRefresh bool

	bob       *gween.Tween
	bobDown   bool
	bobOffset float32

	once sync.Once
}

func NewLevelSelectScene(sc SceneChanger) *LevelSelectScene {
	return &LevelSelectScene{sceneChanger: sc}
}

func (s *LevelSelectScene) Update(in replay.Snapshot) {
	s.once.Do(s.configure)
	s.ecs.Update()
	s.ui.Update()

	// Star counts may have changed while a level was up.
	if s.needsRefresh {
		s.needsRefresh = false
		s.ui.SetSelected(s.selected)
	}

	value, finished := s.bob.Update(1.0 / 60.0)
	s.bobOffset = value
	if finished {
		s.bobDown = !s.bobDown
		if s.bobDown {
			s.bob = gween.New(-2, 2, titleBobSeconds, ease.InOutQuad)
		} else {
			s.bob = gween.New(2, -2, titleBobSeconds, ease.InOutQuad)
		}
	}

	count := len(s.levels)
	if in.MenuUpClicked {
		s.selected = (s.selected - 1 + count) % count
		s.ui.SetSelected(s.selected)
	}
	if in.MenuDownClicked {
		s.selected = (s.selected + 1) % count
		s.ui.SetSelected(s.selected)
	}
	if in.OkClicked {
		s.choose(s.selected)
		return
	}
	if in.CancelClicked {
		s.sceneChanger.Quit()
	}
}

func (s *LevelSelectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if s.ui == nil {
		return
	}
	s.ui.UI.Draw(screen)

	face := fonts.Title.Get()
	title := cfg.C.Title
	x := (cfg.C.RenderWidth - fonts.Title.Width(title)) / 2
	y := 18 + int(s.bobOffset)
	text.Draw(screen, title, face, x, y, cfg.TitleColor) //nolint:staticcheck // TODO: migrate to text/v2
}

func (s *LevelSelectScene) configure() {
	s.ecs = ecs.NewECS(donburi.NewWorld())
	s.ecs.AddSystem(systems.UpdateAudio)

	s.levels = assets.ListLevels()
	entries := make([]ui.LevelEntry, 0, len(s.levels))
	for _, path := range s.levels {
		thumb, err := assets.RenderThumbnail(path)
		if err != nil {
			log.Printf("Warning: no thumbnail for %s: %v", path, err)
		}
		entries = append(entries, ui.LevelEntry{
			Path:  path,
			Name:  assets.LevelName(path),
			Thumb: scaleThumb(thumb),
		})
	}
	s.ui = ui.NewLevelSelectUI(entries, func(index int) {
		s.selected = index
		s.choose(index)
	})

	// Start the cursor on whatever was played last.
	if last := systems.LastPlayedLevel(); last != "" {
		for i, path := range s.levels {
			if path == last {
				s.selected = i
			}
		}
	}
	s.ui.SetSelected(s.selected)

	s.bobDown = true
	s.bob = gween.New(-2, 2, titleBobSeconds, ease.InOutQuad)
}

func (s *LevelSelectScene) choose(index int) {
	path := s.levels[index]
	level, err := NewLevelScene(s.sceneChanger, path, s)
	if err != nil {
		log.Printf("Warning: could not load level %s: %v", path, err)
		return
	}
	s.needsRefresh = true
	s.sceneChanger.ChangeScene(level)
}

// scaleThumb shrinks a full map render down to the preview box.
func scaleThumb(src *ebiten.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	dst := ebiten.NewImage(thumbWidth, thumbHeight)
	op := &ebiten.DrawImageOptions{}
	bounds := src.Bounds()
	op.GeoM.Scale(
		float64(thumbWidth)/float64(bounds.Dx()),
		float64(thumbHeight)/float64(bounds.Dy()),
	)
	dst.DrawImage(src, op)
	return dst
}
