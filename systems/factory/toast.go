package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/archetypes"
	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
)

// CreateToast spawns the level name banner already sliding in.
func CreateToast(ecs *ecs.ECS, text string) *donburi.Entry {
	toast := archetypes.Toast.Spawn(ecs)
	components.Toast.SetValue(toast, components.ToastData{
		Text:     text,
		Counter:  cfg.Toast.Time,
		Position: -cfg.Toast.Height.AsSubpixels(),
	})
	return toast
}
