package config

// PauseMenuConfig contains pause menu configuration
type PauseMenuConfig struct {
	Options     []string
	VolumeSteps []float64
}

// PauseMenu is the global pause menu configuration
var PauseMenu PauseMenuConfig

func init() {
	PauseMenu = PauseMenuConfig{
		Options:     []string{"Resume", "Restart", "Volume", "Level Select"},
		VolumeSteps: []float64{0, 0.25, 0.5, 0.75, 1.0},
	}
}
