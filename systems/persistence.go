package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// SavedProgress records which levels have been played and how many
// stars were collected in each. Keys are level paths.
type SavedProgress struct {
	LastLevel    string         `json:"lastLevel"`
	StarsByLevel map[string]int `json:"starsByLevel"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "skelly",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves the current audio settings to disk
func SaveSettings(e *ecs.ECS) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	saved := SavedSettings{
		Volume: GetMusicVolume(),
		Muted:  GetMusicVolume() <= 0,
	}

	data, err := json.Marshal(&saved)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettings applies loaded settings to the global audio state.
// Used during startup before any scene exists.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}

	globalMusicVolume = saved.Volume
	globalSFXVolume = saved.Volume

	if saved.Muted {
		globalMusicVolume = 0
		globalSFXVolume = 0
	}
}

// LoadProgress loads the per-level star progress from disk
func LoadProgress() (*SavedProgress, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("progress")
	if err != nil {
		log.Printf("Warning: Could not load progress: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var progress SavedProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		log.Printf("Warning: Could not parse saved progress: %v", err)
		return nil, err
	}

	return &progress, nil
}

// SaveLevelProgress records a finished run of a level. The star count
// only ever goes up; retrying a level with fewer stars keeps the best.
func SaveLevelProgress(levelPath string, stars int) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	progress, _ := LoadProgress()
	if progress == nil {
		progress = &SavedProgress{}
	}
	if progress.StarsByLevel == nil {
		progress.StarsByLevel = make(map[string]int)
	}

	progress.LastLevel = levelPath
	if stars > progress.StarsByLevel[levelPath] {
		progress.StarsByLevel[levelPath] = stars
	}

	data, err := json.Marshal(progress)
	if err != nil {
		log.Printf("Warning: Could not serialize progress: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("progress", data); err != nil {
		log.Printf("Warning: Could not save progress: %v", err)
		return err
	}

	return nil
}

// StarsForLevel returns the best star count recorded for a level
func StarsForLevel(levelPath string) int {
	progress, _ := LoadProgress()
	if progress == nil || progress.StarsByLevel == nil {
		return 0
	}
	return progress.StarsByLevel[levelPath]
}

// LastPlayedLevel returns the path of the most recently played level,
// or "" when there is no saved progress
func LastPlayedLevel() string {
	progress, _ := LoadProgress()
	if progress == nil {
		return ""
	}
	return progress.LastLevel
}
