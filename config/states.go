package config

// StateID identifies a player movement state.
type StateID int

const (
	StateFalling StateID = iota
	StateStanding
	StateCrouching
	StateJumping
	StateWallSliding
	StateStopped
)

func (s StateID) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateStanding:
		return "standing"
	case StateCrouching:
		return "crouching"
	case StateJumping:
		return "jumping"
	case StateWallSliding:
		return "wall_sliding"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}
