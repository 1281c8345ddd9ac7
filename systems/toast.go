package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
)

// ShowToast replaces the banner text and restarts its timer.
func ShowToast(ecs *ecs.ECS, text string) {
	toast := getOrCreateToast(ecs)
	toast.Text = text
	toast.Counter = cfg.Toast.Time
}

// UpdateToast slides the banner down while its timer runs, then back
// off the top of the screen.
func UpdateToast(ecs *ecs.ECS) {
	if TransitionPending(ecs) {
		return
	}
	toast := getOrCreateToast(ecs)
	if toast.Counter == 0 {
		if toast.Position > -cfg.Toast.Height.AsSubpixels() {
			toast.Position -= cfg.Toast.Speed
		}
	} else {
		toast.Counter--
		if toast.Position < 0 {
			toast.Position += cfg.Toast.Speed
		}
	}
}

func getOrCreateToast(ecs *ecs.ECS) *components.ToastData {
	entry, ok := components.Toast.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Toast))
		components.Toast.Get(entry).Position = -cfg.Toast.Height.AsSubpixels()
	}
	return components.Toast.Get(entry)
}
