package systems

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/shared/tilemap"
)

func (w *testWorld) addMovingPlatform(pos geom.Rect[geom.Subpixels], solid bool, m components.MovingData) *donburi.Entry {
	e := archetypes.MovingPlatform.Spawn(w.ecs)
	components.Platform.SetValue(e, components.PlatformData{Position: pos, Solid: solid})
	components.Moving.SetValue(e, m)
	w.level.Platforms = append(w.level.Platforms, e)
	return e
}

func (w *testWorld) addBagel(pos geom.Rect[geom.Subpixels]) *donburi.Entry {
	e := archetypes.Bagel.Spawn(w.ecs)
	components.Platform.SetValue(e, components.PlatformData{Position: pos})
	components.Bagel.SetValue(e, components.BagelData{
		OriginalY: pos.Y,
		Remaining: cfg.Bagel.WaitTime,
	})
	w.level.Platforms = append(w.level.Platforms, e)
	return e
}

func (w *testWorld) addSpring(pos geom.Rect[geom.Subpixels]) *donburi.Entry {
	e := archetypes.Spring.Spawn(w.ecs)
	components.Platform.SetValue(e, components.PlatformData{Position: pos, Solid: true})
	components.Spring.SetValue(e, components.SpringData{StallCounter: cfg.Spring.StallFrames})
	w.level.Platforms = append(w.level.Platforms, e)
	return e
}

func (w *testWorld) addButton(typ tilemap.ButtonType, color string, pos geom.Rect[geom.Subpixels]) *donburi.Entry {
	e := archetypes.Button.Spawn(w.ecs)
	components.Platform.SetValue(e, components.PlatformData{Position: pos})
	components.Button.SetValue(e, components.ButtonData{
		Type:      typ,
		Color:     color,
		OriginalY: pos.Y,
	})
	w.level.Platforms = append(w.level.Platforms, e)
	return e
}

func (w *testWorld) addConveyor(pos geom.Rect[geom.Subpixels], dx geom.Subpixels) *donburi.Entry {
	e := archetypes.Conveyor.Spawn(w.ecs)
	components.Platform.SetValue(e, components.PlatformData{
		Position: pos,
		Delta:    geom.Point[geom.Subpixels]{X: dx},
	})
	components.Conveyor.SetValue(e, components.ConveyorData{})
	w.level.Platforms = append(w.level.Platforms, e)
	return e
}

func TestMovingPlatformCarriesPlayer(t *testing.T) {
	w := newTestWorld(t, buildMap(t, nil))
	plat := w.addMovingPlatform(
		geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 768, H: 256},
		false,
		components.MovingData{
			Direction: geom.DirRight,
			Overflow:  tilemap.OverflowOscillate,
			Distance:  1280,
			Speed:     16,
			Start:     geom.Point[geom.Subpixels]{X: 2048, Y: 2304},
			End:       geom.Point[geom.Subpixels]{X: 3328, Y: 2304},
			Forward:   true,
		},
	)
	// Standing on the platform's left end.
	w.spawnPlayer(66, 49, cfg.StateStanding)

	w.run(20, replay.Snapshot{})

	if got := components.Platform.Get(plat).Position.X; got != 2048+20*16 {
		t.Errorf("platform x = %d, want %d", got, 2048+20*16)
	}
	p := w.playerData()
	// The ride starts one frame late: the player only picks up the
	// delta after landing registers.
	if p.Position.X != px(66)+19*16 {
		t.Errorf("player x = %d, want %d", p.Position.X, px(66)+19*16)
	}
	if p.Position.Y != px(49) {
		t.Errorf("player y = %d, want %d", p.Position.Y, px(49))
	}
	if p.CurrentPlatform == nil {
		t.Error("player should still be riding the platform")
	}
	if got := w.stateData().Current; got != cfg.StateStanding {
		t.Errorf("state = %v, want standing", got)
	}
}

func TestMovingPlatformOscillates(t *testing.T) {
	w := newTestWorld(t, buildMap(t, nil))
	plat := w.addMovingPlatform(
		geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 256, H: 256},
		false,
		components.MovingData{
			Direction: geom.DirRight,
			Overflow:  tilemap.OverflowOscillate,
			Distance:  160,
			Speed:     16,
			Start:     geom.Point[geom.Subpixels]{X: 2048, Y: 2304},
			End:       geom.Point[geom.Subpixels]{X: 2208, Y: 2304},
			Forward:   true,
		},
	)
	p := components.Platform.Get(plat)
	m := components.Moving.Get(plat)

	for i := 0; i < 10; i++ {
		UpdatePlatforms(w.ecs)
	}
	if p.Position.X != 2208 {
		t.Fatalf("x after 10 = %d, want 2208 at the end of the run", p.Position.X)
	}

	UpdatePlatforms(w.ecs)
	if p.Position.X != 2192 || m.Forward {
		t.Fatalf("x after 11 = %d forward=%v, want 2192 heading back", p.Position.X, m.Forward)
	}

	for i := 0; i < 9; i++ {
		UpdatePlatforms(w.ecs)
	}
	if p.Position.X != 2048 {
		t.Fatalf("x after 20 = %d, want 2048 back at the start", p.Position.X)
	}

	UpdatePlatforms(w.ecs)
	if p.Position.X != 2064 || !m.Forward {
		t.Errorf("x after 21 = %d forward=%v, want 2064 heading out again", p.Position.X, m.Forward)
	}
}

func TestConditionalPlatformParksAtStart(t *testing.T) {
	w := newTestWorld(t, buildMap(t, nil))
	plat := w.addMovingPlatform(
		geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 256, H: 256},
		false,
		components.MovingData{
			Direction: geom.DirRight,
			Overflow:  tilemap.OverflowOscillate,
			Distance:  1280,
			Speed:     16,
			Start:     geom.Point[geom.Subpixels]{X: 2048, Y: 2304},
			End:       geom.Point[geom.Subpixels]{X: 3328, Y: 2304},
			Condition: "red",
			Forward:   true,
		},
	)
	p := components.Platform.Get(plat)

	for i := 0; i < 5; i++ {
		UpdatePlatforms(w.ecs)
	}
	if p.Position.X != 2048 || p.Delta.X != 0 {
		t.Fatalf("x = %d delta = %d, want parked at start", p.Position.X, p.Delta.X)
	}

	w.level.Switches.ApplyCommand("red")
	for i := 0; i < 5; i++ {
		UpdatePlatforms(w.ecs)
	}
	if p.Position.X != 2048+5*16 {
		t.Fatalf("x = %d, want %d once the condition holds", p.Position.X, 2048+5*16)
	}

	w.level.Switches.ApplyCommand("!red")
	for i := 0; i < 6; i++ {
		UpdatePlatforms(w.ecs)
	}
	if p.Position.X != 2048 || p.Delta.X != 0 {
		t.Errorf("x = %d delta = %d, want returned and parked", p.Position.X, p.Delta.X)
	}
}

func TestBagelFallsAndResets(t *testing.T) {
	w := newTestWorld(t, buildMap(t, nil))
	plat := w.addBagel(geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 256, H: 256})
	w.spawnPlayer(60, 49, cfg.StateStanding)

	p := components.Platform.Get(plat)
	b := components.Bagel.Get(plat)

	// Landing on frame 1 starts the countdown on frame 2.
	w.run(31, replay.Snapshot{})
	if !b.Falling {
		t.Fatal("bagel should give way after being stood on")
	}
	if p.Position.Y != 2304 || b.Remaining != cfg.Bagel.FallTime {
		t.Fatalf("y = %d remaining = %d, want drop just starting", p.Position.Y, b.Remaining)
	}

	// Nine frames in it has built up to 18 per frame.
	w.run(9, replay.Snapshot{})
	if p.Position.Y != 2304+90 || p.Delta.Y != 18 {
		t.Fatalf("y = %d delta = %d, want it accelerating away", p.Position.Y, p.Delta.Y)
	}

	w.run(141, replay.Snapshot{})
	if b.Falling {
		t.Fatal("bagel should have respawned")
	}
	if p.Position.Y != 2304 || b.Remaining != cfg.Bagel.WaitTime {
		t.Errorf("y = %d remaining = %d, want reset to the original spot", p.Position.Y, b.Remaining)
	}
}

func TestSpringLaunch(t *testing.T) {
	setup := func(t *testing.T) (*testWorld, *donburi.Entry) {
		t.Helper()
		w := newTestWorld(t, buildMap(t, nil))
		plat := w.addSpring(geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 256, H: 256})
		w.spawnPlayer(60, 49, cfg.StateStanding)
		return w, plat
	}

	t.Run("passive bounce", func(t *testing.T) {
		w, plat := setup(t)
		s := components.Spring.Get(plat)

		// Sink one pixel a frame for three frames.
		w.run(4, replay.Snapshot{})
		if s.Pos != 96 {
			t.Fatalf("spring pos = %d, want 96 fully compressed", s.Pos)
		}
		if got := w.playerData().Position.Y; got != px(49)+96 {
			t.Fatalf("player y = %d, want %d riding it down", got, px(49)+96)
		}

		// Stall, then ride it back to the top.
		w.run(14, replay.Snapshot{})
		if got := w.stateData().Current; got != cfg.StateStanding {
			t.Fatalf("state = %v, want standing until the top", got)
		}
		if got := w.playerData().Position.Y; got != px(49) {
			t.Fatalf("player y = %d, want %d back at rest height", got, px(49))
		}

		w.step(replay.Snapshot{})
		if got := w.stateData().Current; got != cfg.StateJumping {
			t.Fatalf("state = %v, want launched", got)
		}
		if got := w.playerData().Delta.Y; got != -cfg.Spring.BounceVelocity {
			t.Errorf("delta y = %d, want %d", got, -cfg.Spring.BounceVelocity)
		}
		if got := w.stateData().SpringCounter; got != cfg.Spring.BounceDuration {
			t.Errorf("spring counter = %d, want %d", got, cfg.Spring.BounceDuration)
		}
	})

	t.Run("boosted jump off the bottom", func(t *testing.T) {
		w, _ := setup(t)

		w.run(5, replay.Snapshot{})
		w.step(replay.Snapshot{JumpClicked: true, JumpDown: true})

		if got := w.stateData().Current; got != cfg.StateJumping {
			t.Fatalf("state = %v, want jumping", got)
		}
		if got := w.playerData().Delta.Y; got != -cfg.Spring.JumpVelocity {
			t.Errorf("delta y = %d, want the boosted %d", got, -cfg.Spring.JumpVelocity)
		}
		if got := w.stateData().SpringCounter; got != cfg.Spring.JumpDuration {
			t.Errorf("spring counter = %d, want %d", got, cfg.Spring.JumpDuration)
		}
	})
}

func TestButtonTypes(t *testing.T) {
	newButton := func(t *testing.T, typ tilemap.ButtonType) (*testWorld, *components.PlatformData, *components.ButtonData) {
		t.Helper()
		w := newTestWorld(t, buildMap(t, nil))
		e := w.addButton(typ, "red", geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 256, H: 256})
		return w, components.Platform.Get(e), components.Button.Get(e)
	}

	t.Run("toggle", func(t *testing.T) {
		w, p, b := newButton(t, tilemap.ButtonToggle)

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("first press should turn red on")
		}
		if b.Level != 1 || p.Position.Y != 2304+16 {
			t.Errorf("level = %d y = %d, want the button sinking", b.Level, p.Position.Y)
		}

		// Holding it down only sinks it further.
		for i := 0; i < 6; i++ {
			UpdatePlatforms(w.ecs)
		}
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("holding the button should not toggle again")
		}
		if b.Level != cfg.Button.MaxLevel || p.Position.Y != 2304+96 {
			t.Errorf("level = %d y = %d, want fully sunk", b.Level, p.Position.Y)
		}

		// It stays latched after the player steps off.
		p.Occupied = false
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") || b.Level != cfg.Button.MaxLevel {
			t.Fatal("toggle button should stay down when released")
		}

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if w.level.Switches.IsConditionTrue("red") {
			t.Error("second press should turn red back off")
		}
	})

	t.Run("oneshot", func(t *testing.T) {
		w, p, _ := newButton(t, tilemap.ButtonOneShot)

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("press should turn red on")
		}

		p.Occupied = false
		UpdatePlatforms(w.ecs)
		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Error("a oneshot never turns back off")
		}
	})

	t.Run("momentary", func(t *testing.T) {
		w, p, _ := newButton(t, tilemap.ButtonMomentary)

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("red should hold while pressed")
		}
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("red should stay on while held")
		}

		p.Occupied = false
		UpdatePlatforms(w.ecs)
		if w.level.Switches.IsConditionTrue("red") {
			t.Error("red should drop on release")
		}
	})

	t.Run("smart", func(t *testing.T) {
		w, p, _ := newButton(t, tilemap.ButtonSmart)

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("press should force red on")
		}

		p.Occupied = false
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Fatal("release should leave red on")
		}

		// Someone else turns it off; the idle button follows without
		// flipping it back.
		w.level.Switches.ApplyCommand("!red")
		UpdatePlatforms(w.ecs)
		if w.level.Switches.IsConditionTrue("red") {
			t.Fatal("an idle smart button should not fight the switch")
		}

		p.Occupied = true
		UpdatePlatforms(w.ecs)
		if !w.level.Switches.IsConditionTrue("red") {
			t.Error("pressing again should force red on again")
		}
	})
}

func TestSolidPlatformCrushes(t *testing.T) {
	place := floorPlace()
	for row := 6; row <= 9; row++ {
		place[[2]int{row, 3}] = tSolid
		place[[2]int{row, 5}] = tSolid
	}
	w := newTestWorld(t, buildMap(t, place))
	// A solid slab descending into a one-column pit.
	w.addMovingPlatform(
		geom.Rect[geom.Subpixels]{X: 1024, Y: 1536, W: 256, H: 256},
		true,
		components.MovingData{
			Direction: geom.DirDown,
			Overflow:  tilemap.OverflowClamp,
			Distance:  1536,
			Speed:     64,
			Start:     geom.Point[geom.Subpixels]{X: 1024, Y: 1536},
			End:       geom.Point[geom.Subpixels]{X: 1024, Y: 3072},
			Forward:   true,
		},
	)
	w.spawnPlayer(24, 57, cfg.StateStanding)

	w.run(5, replay.Snapshot{})

	p := w.playerData()
	if !p.IsDead {
		t.Fatal("player should be crushed against the floor")
	}
	if got := w.stateData().Current; got != cfg.StateStopped {
		t.Fatalf("state = %v, want stopped", got)
	}
	if p.Position.X != px(24) {
		t.Errorf("position x = %d, want %d pinned in the pit", p.Position.X, px(24))
	}

	// Nothing moves once stopped.
	w.run(2, replay.Snapshot{})
	if got := w.stateData().Current; got != cfg.StateStopped {
		t.Errorf("state = %v, want still stopped", got)
	}
}

func TestConveyorCarriesPlayer(t *testing.T) {
	w := newTestWorld(t, buildMap(t, nil))
	w.addConveyor(geom.Rect[geom.Subpixels]{X: 2048, Y: 2304, W: 1536, H: 256}, 32)
	w.spawnPlayer(70, 49, cfg.StateStanding)

	w.run(11, replay.Snapshot{})

	p := w.playerData()
	// Ten carried frames after the landing frame.
	if p.Position.X != px(70)+320 {
		t.Fatalf("player x = %d, want %d", p.Position.X, px(70)+320)
	}
	if p.Delta.X != 0 {
		t.Fatalf("delta x = %d, want 0: the belt moves the player, not the player", p.Delta.X)
	}

	// Jumping keeps the belt's momentum.
	w.step(replay.Snapshot{JumpClicked: true, JumpDown: true})
	if got := w.stateData().Current; got != cfg.StateJumping {
		t.Fatalf("state = %v, want jumping", got)
	}
	if p.Delta.X != 32 {
		t.Errorf("delta x = %d, want 32 inherited from the belt", p.Delta.X)
	}
	if p.Delta.Y != -cfg.Player.JumpInitialSpeed {
		t.Errorf("delta y = %d, want %d", p.Delta.Y, -cfg.Player.JumpInitialSpeed)
	}
}
