package main

import (
	_ "embed"
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
	"github.com/automoto/skelly/scenes"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/systems"
)

//go:embed assets/fonts/retro.ttf
var retroFont []byte

type Scene interface {
	Update(in replay.Snapshot)
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds   image.Rectangle
	scene    Scene
	frame    uint64
	recorder *replay.Recorder
	record   bool
	playback bool
	quit     bool
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

// Quit ends the game loop after the current tick.
func (g *Game) Quit() {
	g.quit = true
}

func NewGame(levelPath string, recorder *replay.Recorder, record, playback bool) *Game {
	if err := fonts.Load(retroFont); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	if err := assets.LoadShaders(); err != nil {
		log.Fatalf("Failed to load shaders: %v", err)
	}
	systems.PreloadAllSFX()

	g := &Game{
		bounds:   image.Rectangle{},
		recorder: recorder,
		record:   record,
		playback: playback,
	}

	selectScene := scenes.NewLevelSelectScene(g)
	if levelPath != "" {
		level, err := scenes.NewLevelScene(g, levelPath, selectScene)
		if err != nil {
			log.Fatalf("Failed to load level %s: %v", levelPath, err)
		}
		g.scene = level
	} else {
		g.scene = selectScene
	}

	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.frame++
	var snap replay.Snapshot
	if g.playback {
		snap = g.recorder.Playback(g.frame)
	} else {
		snap = systems.PollSnapshot()
		if g.record {
			g.recorder.Record(g.frame, snap)
		}
	}

	g.scene.Update(snap)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.RenderWidth, config.C.RenderHeight)
	return config.C.RenderWidth, config.C.RenderHeight
}

func main() {
	levelPath := flag.String("level", "", "jump straight into a level file instead of the select screen")
	recordPath := flag.String("record", "", "record inputs to a replay file")
	playbackPath := flag.String("playback", "", "play inputs back from a replay file")
	flag.Parse()

	if *recordPath != "" && *playbackPath != "" {
		log.Fatal("cannot record and play back at the same time")
	}

	recorder := replay.NewRecorder()
	if *playbackPath != "" {
		if err := recorder.Load(*playbackPath); err != nil {
			log.Fatalf("Failed to load recording: %v", err)
		}
	}

	ebiten.SetWindowSize(
		config.C.RenderWidth*config.C.WindowScale,
		config.C.RenderHeight*config.C.WindowScale,
	)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(saved)
	}

	game := NewGame(*levelPath, recorder, *recordPath != "", *playbackPath != "")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	if *recordPath != "" {
		if err := recorder.Save(*recordPath); err != nil {
			log.Printf("Warning: could not save recording: %v", err)
		}
	}
}
