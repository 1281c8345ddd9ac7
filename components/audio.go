package components

import (
	cfg "github.com/automoto/skelly/config"
	"github.com/yohamta/donburi"
)

// AudioData queues the tick's one-shot sounds (singleton component).
// Gameplay systems append; the audio system drains the queue when it
// actually plays them, so a world without an audio device just piles
// up and discards requests.
type AudioData struct {
	PendingSFX []cfg.SoundID
}

var Audio = donburi.NewComponentType[AudioData]()
