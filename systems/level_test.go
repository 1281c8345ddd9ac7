package systems

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/replay"
)

func TestStarCollection(t *testing.T) {
	w := newTestWorld(t, buildMap(t, floorPlace()))
	w.spawnPlayer(32, 57, cfg.StateStanding)

	near := archetypes.Star.Spawn(w.ecs)
	components.Star.SetValue(near, components.StarData{
		Area: geom.Rect[geom.Subpixels]{X: 1280, Y: 2000, W: 256, H: 256},
	})
	far := archetypes.Star.Spawn(w.ecs)
	components.Star.SetValue(far, components.StarData{
		Area: geom.Rect[geom.Subpixels]{X: 3000, Y: 200, W: 256, H: 256},
	})

	UpdateStars(w.ecs)

	if w.level.StarCount != 1 {
		t.Fatalf("star count = %d, want 1", w.level.StarCount)
	}
	remaining := 0
	components.Star.Each(w.ecs.World, func(*donburi.Entry) { remaining++ })
	if remaining != 1 {
		t.Fatalf("stars left = %d, want only the far one", remaining)
	}

	entry, ok := components.Toast.First(w.ecs.World)
	if !ok {
		t.Fatal("pickup should show a toast")
	}
	toast := components.Toast.Get(entry)
	if toast.Text != "STARS x 1" || toast.Counter != cfg.Toast.Time {
		t.Errorf("toast = %q counter %d, want a fresh STARS x 1", toast.Text, toast.Counter)
	}

	// Standing next to the far star collects nothing more.
	UpdateStars(w.ecs)
	if w.level.StarCount != 1 {
		t.Errorf("star count = %d, want still 1", w.level.StarCount)
	}
}

func TestDoorUnlockAndEnter(t *testing.T) {
	w := newTestWorld(t, buildMap(t, floorPlace()))
	w.spawnPlayer(32, 57, cfg.StateStanding)

	entry := archetypes.Door.Spawn(w.ecs)
	components.Door.SetValue(entry, components.DoorData{
		State:       components.DoorLocked,
		StarsNeeded: 2,
		Destination: "levels/next.tmx",
		Position:    geom.Point[geom.Subpixels]{X: px(24), Y: px(56)},
	})
	door := components.Door.Get(entry)

	UpdateDoors(w.ecs)
	if door.State != components.DoorLocked || door.StarsRemaining != 2 {
		t.Fatalf("state = %v remaining = %d, want locked and short two stars", door.State, door.StarsRemaining)
	}
	if w.playerData().CurrentDoor == nil {
		t.Fatal("player is standing in the doorway")
	}

	w.level.StarCount = 2
	for i := 0; i < 40; i++ {
		UpdateDoors(w.ecs)
	}
	if door.State != components.DoorOpen {
		t.Fatalf("state = %v, want open once the stars are in", door.State)
	}

	// Up enters the door instead of jumping.
	w.step(replay.Snapshot{JumpClicked: true, JumpDown: true})
	if got := w.stateData().Current; got != cfg.StateStopped {
		t.Fatalf("state = %v, want the player frozen in the door", got)
	}
	if door.State != components.DoorClosing {
		t.Fatalf("door state = %v, want closing", door.State)
	}

	for i := 0; i < 40; i++ {
		UpdateDoors(w.ecs)
	}
	if door.State != components.DoorClosed {
		t.Fatalf("door state = %v, want closed", door.State)
	}
	tr := TakeTransition(w.ecs)
	if tr.Kind != components.TransitionSwitchLevel || tr.Path != "levels/next.tmx" {
		t.Errorf("transition = %v %q, want a switch to levels/next.tmx", tr.Kind, tr.Path)
	}
}

func TestWarpTriggersTransition(t *testing.T) {
	w := newTestWorld(t, buildMap(t, floorPlace()))
	w.spawnPlayer(32, 57, cfg.StateStanding)

	warp := archetypes.Warp.Spawn(w.ecs)
	components.Warp.SetValue(warp, components.WarpData{
		Area:        geom.Rect[geom.Subpixels]{X: 1280, Y: 1952, W: 512, H: 512},
		Destination: "levels/secret.tmx",
	})

	UpdateWarps(w.ecs)
	tr := TakeTransition(w.ecs)
	if tr.Kind != components.TransitionSwitchLevel || tr.Path != "levels/secret.tmx" {
		t.Fatalf("transition = %v %q, want a switch to levels/secret.tmx", tr.Kind, tr.Path)
	}
	if TransitionPending(w.ecs) {
		t.Fatal("taking the transition should clear it")
	}

	// An earlier request in the same tick wins over the warp.
	RequestTransition(w.ecs, components.TransitionKillScreen, "")
	UpdateWarps(w.ecs)
	tr = TakeTransition(w.ecs)
	if tr.Kind != components.TransitionKillScreen {
		t.Errorf("transition = %v, want the kill screen kept", tr.Kind)
	}
}

func TestToastSlide(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())

	ShowToast(e, "READY?")
	entry, ok := components.Toast.First(e.World)
	if !ok {
		t.Fatal("toast entity should exist")
	}
	toast := components.Toast.Get(entry)
	if toast.Text != "READY?" || toast.Counter != cfg.Toast.Time {
		t.Fatalf("toast = %q counter %d, want fresh banner", toast.Text, toast.Counter)
	}
	if toast.Position != -cfg.Toast.Height.AsSubpixels() {
		t.Fatalf("position = %d, want parked off screen", toast.Position)
	}

	// Slides fully in, then hangs there for the rest of the timer.
	for i := 0; i < 24; i++ {
		UpdateToast(e)
	}
	if toast.Position != 0 || toast.Counter != cfg.Toast.Time-24 {
		t.Fatalf("position = %d counter = %d, want on screen with time left", toast.Position, toast.Counter)
	}
	for i := 0; i < cfg.Toast.Time-24; i++ {
		UpdateToast(e)
	}
	if toast.Counter != 0 || toast.Position != 0 {
		t.Fatalf("counter = %d position = %d, want timer spent on screen", toast.Counter, toast.Position)
	}

	// Then slides back out and stays put.
	for i := 0; i < 24; i++ {
		UpdateToast(e)
	}
	if toast.Position != -cfg.Toast.Height.AsSubpixels() {
		t.Fatalf("position = %d, want retracted", toast.Position)
	}
	UpdateToast(e)
	if toast.Position != -cfg.Toast.Height.AsSubpixels() {
		t.Errorf("position = %d, want clamped off screen", toast.Position)
	}
}
