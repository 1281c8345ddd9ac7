package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/replay"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Previous tick's action state, kept for edge detection
var (
	currentActions  [cfg.ActionCount]bool
	previousActions [cfg.ActionCount]bool
)

// PollSnapshot reads the keyboard and any connected gamepads and folds
// them into one input snapshot. The Clicked fields fire only on the
// tick the action first goes down.
func PollSnapshot() replay.Snapshot {
	// Swap buffers: current becomes previous, then zero out current
	previousActions = currentActions
	currentActions = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				currentActions[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					currentActions[actionID] = true
				}
			}
		}
	}

	// Merge analog stick into directional actions
	analogLeft, analogRight, analogUp, analogDown := analogStickState(gamepadIDs)
	if analogLeft {
		currentActions[cfg.ActionLeft] = true
	}
	if analogRight {
		currentActions[cfg.ActionRight] = true
	}
	if analogUp {
		currentActions[cfg.ActionMenuUp] = true
	}
	if analogDown {
		currentActions[cfg.ActionCrouch] = true
		currentActions[cfg.ActionMenuDown] = true
	}

	clicked := func(id cfg.ActionID) bool {
		return currentActions[id] && !previousActions[id]
	}
	return replay.Snapshot{
		OkClicked:       clicked(cfg.ActionOk),
		CancelClicked:   clicked(cfg.ActionCancel),
		LeftDown:        currentActions[cfg.ActionLeft],
		RightDown:       currentActions[cfg.ActionRight],
		CrouchDown:      currentActions[cfg.ActionCrouch],
		JumpClicked:     clicked(cfg.ActionJump),
		JumpDown:        currentActions[cfg.ActionJump],
		MenuDownClicked: clicked(cfg.ActionMenuDown),
		MenuUpClicked:   clicked(cfg.ActionMenuUp),
	}
}

// analogStickState reads the left analog stick from all gamepads.
// Returns directional states based on the deadzone threshold.
func analogStickState(gamepads []ebiten.GamepadID) (left, right, up, down bool) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		if horizontal < -deadzone {
			left = true
		}
		if horizontal > deadzone {
			right = true
		}
		if vertical < -deadzone {
			up = true
		}
		if vertical > deadzone {
			down = true
		}
	}

	return
}

// SetSnapshot stores the tick's input in the singleton Input component.
// The scene calls this before the world updates.
func SetSnapshot(ecs *ecs.ECS, s replay.Snapshot) {
	getOrCreateInput(ecs).Snapshot = s
}

// Snapshot returns the input stored for the current tick.
func Snapshot(ecs *ecs.ECS) replay.Snapshot {
	return getOrCreateInput(ecs).Snapshot
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}
