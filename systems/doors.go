package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
)

// doorEntryRect is the part of the doorway the player has to overlap
// to count as standing in the door.
func doorEntryRect(d *components.DoorData) geom.Rect[geom.Subpixels] {
	return geom.Rect[geom.Subpixels]{
		X: d.Position.X + geom.Pixels(8).AsSubpixels(),
		Y: d.Position.Y,
		W: geom.Pixels(24).AsSubpixels(),
		H: geom.Pixels(32).AsSubpixels(),
	}
}

// UpdateDoors advances door animations and notes which door the player
// is standing in. A door that finishes closing switches levels.
func UpdateDoors(ecs *ecs.ECS) {
	level, ok := getLevel(ecs)
	if !ok {
		return
	}
	playerEntry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	state := components.State.Get(playerEntry)
	playerRect := player.BoundsRect(geom.DirNone, state.Current == cfg.StateCrouching)

	player.CurrentDoor = nil
	for e := range components.Door.Iter(ecs.World) {
		door := components.Door.Get(e)
		updateDoor(door, playerRect, level.StarCount)
		if door.State == components.DoorClosed {
			dest := door.Destination
			if dest == "" {
				dest = level.MapPath
			}
			RequestTransition(ecs, components.TransitionSwitchLevel, dest)
			return
		}
		if door.Active {
			player.CurrentDoor = e
		}
	}
}

func updateDoor(d *components.DoorData, playerRect geom.Rect[geom.Subpixels], starCount int) {
	d.Active = playerRect.Intersects(doorEntryRect(d))
	d.StarsRemaining = d.StarsNeeded - starCount
	if d.StarsRemaining < 0 {
		d.StarsRemaining = 0
	}

	switch d.State {
	case components.DoorUnlocking:
		maxFrame := cfg.Door.UnlockingFrames * cfg.Door.Speed
		if d.Frame == maxFrame {
			d.State = components.DoorOpen
		}
		if d.Frame < maxFrame {
			d.Frame++
		}
	case components.DoorClosing:
		maxFrame := cfg.Door.ClosingFrames * cfg.Door.Speed
		if d.Frame == maxFrame {
			d.State = components.DoorClosed
		}
		if d.Frame < maxFrame {
			d.Frame++
		}
	case components.DoorLocked:
		if starCount >= d.StarsNeeded {
			d.State = components.DoorUnlocking
			d.Frame = 0
		}
	}
}
