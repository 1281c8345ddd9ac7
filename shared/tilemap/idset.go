package tilemap

// IDSet is a tiny insertion-ordered set of tile gids. Collision
// aggregation visits tiles in scan order and switch-tile activation replays
// in the same order, so iteration must stay deterministic frame to frame.
type IDSet struct {
	ids []GlobalID
}

func (s *IDSet) Insert(id GlobalID) {
	if s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

func (s *IDSet) Contains(id GlobalID) bool {
	for _, x := range s.ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s *IDSet) Clear() {
	s.ids = s.ids[:0]
}

func (s *IDSet) Len() int {
	return len(s.ids)
}

// All returns the backing slice for iteration; callers must not hold it
// across an Insert or Clear.
func (s *IDSet) All() []GlobalID {
	return s.ids
}
