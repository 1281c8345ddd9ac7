package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	SoundClick
	SoundStar
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate       int
	DefaultMusicVol  float64
	DefaultSFXVol    float64
	MusicFadeSeconds float32 // music fade out duration
}

// SoundConfig maps sound IDs to file paths
type SoundConfig struct {
	Music    string
	SFXPaths map[SoundID]string
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:       44100,
		DefaultMusicVol:  0.75,
		DefaultSFXVol:    1.0,
		MusicFadeSeconds: 1,
	}

	Sound = SoundConfig{
		Music: "audio/music/theme.wav",
		SFXPaths: map[SoundID]string{
			SoundClick: "audio/sfx/click.wav",
			SoundStar:  "audio/sfx/star.wav",
		},
	}
}
