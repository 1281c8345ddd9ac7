package systems

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
)

// UpdatePause handles the pause toggle and the pause menu.
// Runs BEFORE the gameplay systems so pausing freezes the same tick.
func UpdatePause(ecs *ecs.ECS) {
	pause := GetOrCreatePause(ecs)
	input := Snapshot(ecs)

	if !pause.IsPaused {
		if input.CancelClicked {
			pause.IsPaused = true
			pause.SelectedOption = components.MenuResume
			PauseMusic(ecs)
		}
		return
	}

	if input.CancelClicked {
		pause.IsPaused = false
		ResumeMusic(ecs)
		return
	}

	// Navigate menu with wrap-around
	numOptions := len(cfg.PauseMenu.Options)
	if input.MenuUpClicked {
		pause.SelectedOption = components.PauseMenuOption(
			(int(pause.SelectedOption) - 1 + numOptions) % numOptions,
		)
		PlaySFX(ecs, cfg.SoundClick)
	}
	if input.MenuDownClicked {
		pause.SelectedOption = components.PauseMenuOption(
			(int(pause.SelectedOption) + 1) % numOptions,
		)
		PlaySFX(ecs, cfg.SoundClick)
	}

	if input.OkClicked {
		PlaySFX(ecs, cfg.SoundClick)
		switch pause.SelectedOption {
		case components.MenuResume:
			pause.IsPaused = false
			ResumeMusic(ecs)
		case components.MenuRestart:
			pause.IsPaused = false
			if level, ok := getLevel(ecs); ok {
				RequestTransition(ecs, components.TransitionSwitchLevel, level.MapPath)
			}
		case components.MenuVolume:
			CycleMusicVolume(ecs)
			SaveSettings(ecs)
		case components.MenuExit:
			pause.IsPaused = false
			RequestTransition(ecs, components.TransitionPop, "")
		}
	}
}

// DrawPause renders the pause overlay and menu.
func DrawPause(ecs *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(ecs)
	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.MenuShade,
		false,
	)

	fontFace := fonts.Main.Get()
	const itemHeight = 14.0
	totalMenuHeight := float64(len(cfg.PauseMenu.Options)) * itemHeight
	startY := (height - totalMenuHeight) / 2

	for i, option := range cfg.PauseMenu.Options {
		label := option
		if components.PauseMenuOption(i) == components.MenuVolume {
			label = fmt.Sprintf("%s: %d%%", option, int(GetMusicVolume()*100))
		}

		textColor := cfg.White
		if components.PauseMenuOption(i) == pause.SelectedOption {
			textColor = cfg.SelectColor
			label = "> " + label
		}

		x := int((width - float64(fonts.Main.Width(label))) / 2)
		y := startY + float64(i)*itemHeight

		text.Draw(screen, label, fontFace, x, int(y)+itemHeight, textColor)
	}
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused {
			return
		}
		system(e)
	}
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ent := ecs.World.Entry(ecs.World.Create(components.Pause))
		components.Pause.SetValue(ent, components.PauseData{
			IsPaused:       false,
			SelectedOption: components.MenuResume,
		})
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
