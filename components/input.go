package components

import (
	"github.com/automoto/skelly/shared/replay"
	"github.com/yohamta/donburi"
)

// InputData carries the tick's input snapshot into the systems.
// The scene writes it before the world updates.
type InputData struct {
	Snapshot replay.Snapshot
}

var Input = donburi.NewComponentType[InputData]()
