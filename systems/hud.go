package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/fonts"
)

// DrawHud renders the toast bar. It draws on the screen rather than the
// world buffer, so a dark level never hides the level name or the star
// count.
func DrawHud(e *ecs.ECS, screen *ebiten.Image) {
	toast := getOrCreateToast(e)
	if toast.Position+cfg.Toast.Height.AsSubpixels() <= 0 {
		return
	}

	y := float32(toast.Position.AsPixels())
	vector.DrawFilledRect(
		screen,
		0, y,
		float32(cfg.C.RenderWidth), float32(cfg.Toast.Height),
		cfg.ToastOverlay,
		false,
	)

	face := fonts.Small.Get()
	baseline := int(toast.Position.AsPixels()) + 2 + face.Metrics().Ascent.Ceil()
	text.Draw(screen, toast.Text, face, 2, baseline, cfg.White)
}
