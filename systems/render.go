package systems

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/assets"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/tilemap"
)

var (
	drawOp = &ebiten.DrawImageOptions{}

	// The world renders into an offscreen buffer so the darkness shader
	// can run over it in one pass. The hud draws on top, unshaded.
	worldImage *ebiten.Image
)

// Rows in the door sprite sheet.
const (
	doorRowInactive = 0
	doorRowActive   = 1
	doorRowLocked   = 2
	doorRowDoors    = 3
	doorRowFrame    = 4
)

type lightSource struct {
	pos    geom.Point[geom.Subpixels]
	radius geom.Subpixels
}

// DrawLevel renders the world: map, doors, platforms, stars and the
// player, back to front, then darkens everything outside the lights
// when the map calls for it.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	level, ok := getLevel(e)
	if !ok {
		return
	}
	camera := PlaceCamera(e)
	offset := camera.MapOffset

	world := worldTarget(screen)
	lights := make([]lightSource, 0, cfg.View.MaxLights)

	drawMapBackground(world, level, offset)

	components.Door.Each(e.World, func(entry *donburi.Entry) {
		drawDoorBackground(world, entry, offset)
	})

	for _, entry := range level.Platforms {
		drawPlatform(world, level, entry, offset)
	}

	components.Star.Each(e.World, func(entry *donburi.Entry) {
		lights = drawStar(world, level, entry, offset, lights)
	})

	if playerEntry, ok := components.Player.First(e.World); ok {
		drawPlayer(world, playerEntry, camera.PlayerDraw)
	}

	components.Door.Each(e.World, func(entry *donburi.Entry) {
		drawDoorForeground(world, entry, offset)
	})

	drawMapForeground(world, level, offset)

	spotlight := camera.PlayerDraw.Add(geom.Point[geom.Subpixels]{
		X: geom.Pixels(12).AsSubpixels(),
		Y: geom.Pixels(12).AsSubpixels(),
	})
	lights = addLight(lights, spotlight, cfg.View.PlayerLightRadius.AsSubpixels())

	if level.Map.Dark {
		drawDarkness(screen, world, lights)
	} else {
		drawOp.GeoM.Reset()
		screen.DrawImage(world, drawOp)
	}
}

func worldTarget(screen *ebiten.Image) *ebiten.Image {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if worldImage == nil || worldImage.Bounds().Dx() != w || worldImage.Bounds().Dy() != h {
		worldImage = ebiten.NewImage(w, h)
	}
	return worldImage
}

func drawMapBackground(dst *ebiten.Image, level *components.LevelData, offset geom.Point[geom.Subpixels]) {
	m := level.Map
	if m.Background != nil {
		dst.Fill(m.Background)
	} else {
		dst.Fill(cfg.Black)
	}

	playerIdx := m.PlayerLayerIndex()
	for i, layer := range m.Layers() {
		drawTileLayer(dst, level, layer, offset)
		if playerIdx >= 0 && i == playerIdx {
			return
		}
	}
}

func drawMapForeground(dst *ebiten.Image, level *components.LevelData, offset geom.Point[geom.Subpixels]) {
	m := level.Map
	playerIdx := m.PlayerLayerIndex()
	if playerIdx < 0 {
		return
	}
	for i, layer := range m.Layers() {
		if i > playerIdx {
			drawTileLayer(dst, level, layer, offset)
		}
	}
}

func drawTileLayer(dst *ebiten.Image, level *components.LevelData, layer *tilemap.TileLayer, offset geom.Point[geom.Subpixels]) {
	m := level.Map
	tileW := m.TileWidth.AsSubpixels()
	tileH := m.TileHeight.AsSubpixels()

	// Only walk the tiles that can appear on screen.
	startRow := int(-(offset.Y / tileH))
	if startRow < 0 {
		startRow = 0
	}
	startCol := int(-(offset.X / tileW))
	if startCol < 0 {
		startCol = 0
	}
	rowCount := (cfg.C.RenderHeight+int(m.TileHeight)-1)/int(m.TileHeight) + 1
	colCount := (cfg.C.RenderWidth+int(m.TileWidth)-1)/int(m.TileWidth) + 1
	endRow := startRow + rowCount
	if endRow > m.Height {
		endRow = m.Height
	}
	endCol := startCol + colCount
	if endCol > m.Width {
		endCol = m.Width
	}

	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			gid := layer.At(row, col)
			if gid == 0 {
				continue
			}
			ts, id := m.Lookup(gid)

			drawID := id
			props := m.Properties(gid)
			if props != nil && props.Condition != "" && !level.Switches.IsConditionTrue(props.Condition) {
				if props.Alternate == nil {
					continue
				}
				drawID = *props.Alternate
			}
			// Animated tiles keep animating whatever the switches say.
			if ts.Animated(id) {
				drawID = ts.FrameAt(id, int(level.Frame))
			}

			dest := geom.Rect[geom.Subpixels]{
				X: tileW*geom.Subpixels(col) + offset.X,
				Y: tileH*geom.Subpixels(row) + offset.Y,
				W: tileW,
				H: tileH,
			}
			drawTileImage(dst, ts, drawID, dest)
		}
	}
}

func drawTileImage(dst *ebiten.Image, ts *tilemap.TileSet, id tilemap.LocalID, dest geom.Rect[geom.Subpixels]) {
	if ts.Image == nil {
		return
	}
	src := ts.SourceRect(id)
	img := ts.Image.SubImage(image.Rect(int(src.X), int(src.Y), int(src.Right()), int(src.Bottom()))).(*ebiten.Image)

	drawOp.GeoM.Reset()
	dw, dh := dest.W.AsPixels(), dest.H.AsPixels()
	if int(src.W) != int(dw) || int(src.H) != int(dh) {
		drawOp.GeoM.Scale(float64(dw)/float64(src.W), float64(dh)/float64(src.H))
	}
	drawOp.GeoM.Translate(float64(dest.X.AsPixels()), float64(dest.Y.AsPixels()))
	dst.DrawImage(img, drawOp)
}

func drawPlatform(dst *ebiten.Image, level *components.LevelData, entry *donburi.Entry, offset geom.Point[geom.Subpixels]) {
	p := components.Platform.Get(entry)

	switch {
	case entry.HasComponent(components.Bagel):
		drawBagel(dst, level, p, offset)

	case entry.HasComponent(components.Spring):
		spring := components.Spring.Get(entry)
		anim := components.Animation.Get(entry)
		drawSheetFrame(dst, anim, springFrame(spring), p.Position.Offset(offset))

	case entry.HasComponent(components.Button):
		button := components.Button.Get(entry)
		anim := components.Animation.Get(entry)
		// The button sprite stays put while the hitbox sinks.
		dest := geom.Rect[geom.Subpixels]{
			X: p.Position.X + offset.X,
			Y: button.OriginalY + offset.Y,
			W: p.Position.W,
			H: p.Position.H,
		}
		drawSheetFrame(dst, anim, button.Level/cfg.Button.Delay, dest)

	default:
		ts, id := level.Map.Lookup(p.TileGID)
		if ts.Animated(id) {
			id = ts.FrameAt(id, int(level.Frame))
		}
		drawTileImage(dst, ts, id, p.Position.Offset(offset))
	}
}

func drawBagel(dst *ebiten.Image, level *components.LevelData, p *components.PlatformData, offset geom.Point[geom.Subpixels]) {
	x := p.Position.X + offset.X
	y := p.Position.Y + offset.Y
	if p.Occupied {
		// Shake while it decides to drop.
		x += geom.Subpixels(rand.Intn(3) - 1)
		y += geom.Subpixels(rand.Intn(3) - 1)
	}
	dest := geom.Rect[geom.Subpixels]{
		X: x,
		Y: y,
		W: level.Map.TileWidth.AsSubpixels(),
		H: level.Map.TileHeight.AsSubpixels(),
	}
	ts, id := level.Map.Lookup(p.TileGID)
	drawTileImage(dst, ts, id, dest)
}

func drawStar(dst *ebiten.Image, level *components.LevelData, entry *donburi.Entry, offset geom.Point[geom.Subpixels], lights []lightSource) []lightSource {
	star := components.Star.Get(entry)

	// Twinkle by a pixel now and then.
	jitter := geom.Point[geom.Subpixels]{
		X: geom.Pixels(rand.Intn(3) - 1).AsSubpixels(),
		Y: geom.Pixels(rand.Intn(3) - 1).AsSubpixels(),
	}
	pos := geom.Point[geom.Subpixels]{X: star.Area.X, Y: star.Area.Y}.Add(offset).Add(jitter)

	dest := geom.Rect[geom.Subpixels]{X: pos.X, Y: pos.Y, W: star.Area.W, H: star.Area.H}
	ts, id := level.Map.Lookup(star.TileGID)
	drawTileImage(dst, ts, id, dest)

	lightPos := pos.Add(geom.Point[geom.Subpixels]{
		X: geom.Pixels(3).AsSubpixels(),
		Y: geom.Pixels(5).AsSubpixels(),
	})
	return addLight(lights, lightPos, geom.Pixels(12).AsSubpixels())
}

func drawPlayer(dst *ebiten.Image, playerEntry *donburi.Entry, playerDraw geom.Point[geom.Subpixels]) {
	player := components.Player.Get(playerEntry)
	anim := components.Animation.Get(playerEntry)

	drawOp.GeoM.Reset()
	if !player.FacingRight {
		drawOp.GeoM.Scale(-1, 1)
		drawOp.GeoM.Translate(float64(anim.FrameWidth), 0)
	}
	drawOp.GeoM.Translate(float64(playerDraw.X.AsPixels()), float64(playerDraw.Y.AsPixels()))
	dst.DrawImage(anim.FrameImage(), drawOp)
}

func drawDoorBackground(dst *ebiten.Image, entry *donburi.Entry, offset geom.Point[geom.Subpixels]) {
	door := components.Door.Get(entry)
	anim := components.Animation.Get(entry)

	x := door.Position.X + offset.X
	y := door.Position.Y + offset.Y

	row := doorRowInactive
	if door.Active {
		row = doorRowActive
	}
	drawSheetCell(dst, anim, 0, row, x, y)

	lockedFrame := -1
	switch door.State {
	case components.DoorLocked:
		lockedFrame = 0
	case components.DoorUnlocking:
		lockedFrame = door.Frame / cfg.Door.Speed
	}
	if lockedFrame >= 0 {
		drawSheetCell(dst, anim, lockedFrame, doorRowLocked, x, y)
	}

	if door.StarsRemaining > 0 {
		face := fonts.Small.Get()
		label := fmt.Sprintf("%02d", door.StarsRemaining)
		tx := int((x + geom.Pixels(8).AsSubpixels()).AsPixels())
		ty := int((y + geom.Pixels(12).AsSubpixels()).AsPixels()) + face.Metrics().Ascent.Ceil()
		text.Draw(dst, label, face, tx, ty, cfg.White)
	}
}

func drawDoorForeground(dst *ebiten.Image, entry *donburi.Entry, offset geom.Point[geom.Subpixels]) {
	door := components.Door.Get(entry)
	anim := components.Animation.Get(entry)

	x := door.Position.X + offset.X
	y := door.Position.Y + offset.Y

	doorFrame := -1
	switch door.State {
	case components.DoorClosing:
		doorFrame = door.Frame / cfg.Door.Speed
	case components.DoorClosed:
		doorFrame = cfg.Door.ClosingFrames - 1
	}
	if doorFrame >= 0 {
		drawSheetCell(dst, anim, doorFrame, doorRowDoors, x, y)
	}
	drawSheetCell(dst, anim, 0, doorRowFrame, x, y)
}

func drawSheetCell(dst *ebiten.Image, anim *components.AnimationData, col, row int, x, y geom.Subpixels) {
	sx := col * anim.FrameWidth
	sy := row * anim.FrameHeight
	img := anim.Sheet.SubImage(image.Rect(sx, sy, sx+anim.FrameWidth, sy+anim.FrameHeight)).(*ebiten.Image)

	drawOp.GeoM.Reset()
	drawOp.GeoM.Translate(float64(x.AsPixels()), float64(y.AsPixels()))
	dst.DrawImage(img, drawOp)
}

func drawSheetFrame(dst *ebiten.Image, anim *components.AnimationData, frame int, dest geom.Rect[geom.Subpixels]) {
	sx := frame * anim.FrameWidth
	img := anim.Sheet.SubImage(image.Rect(sx, 0, sx+anim.FrameWidth, anim.FrameHeight)).(*ebiten.Image)

	drawOp.GeoM.Reset()
	dw, dh := dest.W.AsPixels(), dest.H.AsPixels()
	if int(dw) != anim.FrameWidth || int(dh) != anim.FrameHeight {
		drawOp.GeoM.Scale(float64(dw)/float64(anim.FrameWidth), float64(dh)/float64(anim.FrameHeight))
	}
	drawOp.GeoM.Translate(float64(dest.X.AsPixels()), float64(dest.Y.AsPixels()))
	dst.DrawImage(img, drawOp)
}

func addLight(lights []lightSource, pos geom.Point[geom.Subpixels], radius geom.Subpixels) []lightSource {
	if len(lights) >= cfg.View.MaxLights {
		return lights
	}
	return append(lights, lightSource{pos: pos, radius: radius})
}

func drawDarkness(screen, world *ebiten.Image, lights []lightSource) {
	if assets.DarknessShader == nil {
		drawOp.GeoM.Reset()
		screen.DrawImage(world, drawOp)
		return
	}

	vals := make([]float32, 4*cfg.View.MaxLights)
	for i, l := range lights {
		vals[i*4] = float32(l.pos.X.AsPixels())
		vals[i*4+1] = float32(l.pos.Y.AsPixels())
		vals[i*4+2] = float32(l.radius.AsPixels())
	}

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = world
	op.Uniforms = map[string]any{
		"Lights": vals,
	}
	screen.DrawRectShader(world.Bounds().Dx(), world.Bounds().Dy(), assets.DarknessShader, op)
}
