package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
)

// PlaceCamera decides where the map is drawn this frame. The player is
// centered when possible, the view never shows past the map edges, and
// the viewport pans at a limited speed between frames. Returns the
// camera so the renderer can use the offsets it just computed.
func PlaceCamera(e *ecs.ECS) *components.CameraData {
	camera := getOrCreateCamera(e)

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return camera
	}
	level := components.Level.Get(levelEntry)

	playerEntry, ok := components.Player.First(e.World)
	if !ok {
		return camera
	}
	player := components.Player.Get(playerEntry)
	state := components.State.Get(playerEntry)

	screenW := geom.Pixels(cfg.C.RenderWidth).AsSubpixels()
	screenH := geom.Pixels(cfg.C.RenderHeight).AsSubpixels()

	playerRect := player.BoundsRect(geom.DirNone, state.Current == cfg.StateCrouching)
	preferredX, preferredY := level.Map.GetPreferredView(playerRect)

	pos := player.Position
	playerDraw := geom.Point[geom.Subpixels]{X: screenW / 2, Y: screenH / 2}

	// Don't waste space on the sides of the screen beyond the map.
	if playerDraw.X > pos.X {
		playerDraw.X = pos.X
	}
	// The map is drawn 4 pixels from the top of the screen.
	if playerDraw.Y > pos.Y+geom.Pixels(4).AsSubpixels() {
		playerDraw.Y = pos.Y + geom.Pixels(4).AsSubpixels()
	}
	rightLimit := screenW - level.Map.TileWidth.AsSubpixels()*geom.Subpixels(level.Map.Width)
	if playerDraw.X < pos.X+rightLimit {
		playerDraw.X = pos.X + rightLimit
	}
	bottomLimit := screenH - level.Map.TileHeight.AsSubpixels()*geom.Subpixels(level.Map.Height)
	if playerDraw.Y < pos.Y+bottomLimit {
		playerDraw.Y = pos.Y + bottomLimit
	}

	offset := geom.Point[geom.Subpixels]{X: playerDraw.X - pos.X, Y: playerDraw.Y - pos.Y}

	// Camera zones in the map override the usual centering.
	if preferredX != nil {
		offset.X = -*preferredX
		playerDraw.X = pos.X + offset.X
	}
	if preferredY != nil {
		offset.Y = -*preferredY
		playerDraw.Y = pos.Y + offset.Y
	}

	// Don't let the viewport move too much in between frames.
	if camera.Placed {
		prev := camera.MapOffset
		if (offset.X - prev.X).Abs() > cfg.View.PanSpeed {
			if prev.X < offset.X {
				offset.X = prev.X + cfg.View.PanSpeed
			} else {
				offset.X = prev.X - cfg.View.PanSpeed
			}
			playerDraw.X = pos.X + offset.X
		}
		if (offset.Y - prev.Y).Abs() > cfg.View.PanSpeed {
			if prev.Y < offset.Y {
				offset.Y = prev.Y + cfg.View.PanSpeed
			} else {
				offset.Y = prev.Y - cfg.View.PanSpeed
			}
			playerDraw.Y = pos.Y + offset.Y
		}
	}

	camera.MapOffset = offset
	camera.PlayerDraw = playerDraw
	camera.Placed = true
	return camera
}

func getOrCreateCamera(e *ecs.ECS) *components.CameraData {
	if entry, ok := components.Camera.First(e.World); ok {
		return components.Camera.Get(entry)
	}
	entry := e.World.Entry(e.World.Create(components.Camera))
	return components.Camera.Get(entry)
}
