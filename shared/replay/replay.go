// Package replay records per-tick input snapshots so that a session
// can be replayed deterministically from a small text file.
package replay

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Snapshot is the set of input signals sampled on one tick.
type Snapshot struct {
	OkClicked       bool
	CancelClicked   bool
	LeftDown        bool
	RightDown       bool
	CrouchDown      bool
	JumpClicked     bool
	JumpDown        bool
	MenuDownClicked bool
	MenuUpClicked   bool
}

func boolBit(b bool, n uint) uint64 {
	if b {
		return 1 << n
	}
	return 0
}

func bitBool(encoded uint64, n uint) bool {
	return encoded&(1<<n) != 0
}

// Encode packs the snapshot into a bitmask for compact storage.
func (s Snapshot) Encode() uint64 {
	var n uint64
	n |= boolBit(s.OkClicked, 0)
	n |= boolBit(s.CancelClicked, 1)
	n |= boolBit(s.LeftDown, 2)
	n |= boolBit(s.RightDown, 3)
	n |= boolBit(s.CrouchDown, 4)
	n |= boolBit(s.JumpClicked, 5)
	n |= boolBit(s.JumpDown, 6)
	n |= boolBit(s.MenuDownClicked, 7)
	n |= boolBit(s.MenuUpClicked, 8)
	return n
}

// Decode unpacks a bitmask produced by Encode.
func Decode(n uint64) Snapshot {
	return Snapshot{
		OkClicked:       bitBool(n, 0),
		CancelClicked:   bitBool(n, 1),
		LeftDown:        bitBool(n, 2),
		RightDown:       bitBool(n, 3),
		CrouchDown:      bitBool(n, 4),
		JumpClicked:     bitBool(n, 5),
		JumpDown:        bitBool(n, 6),
		MenuDownClicked: bitBool(n, 7),
		MenuUpClicked:   bitBool(n, 8),
	}
}

type entry struct {
	frame    uint64
	snapshot uint64
}

// Recorder keeps one entry per change of input state. The same queue
// drives playback, consuming entries as their frames come up.
type Recorder struct {
	previous uint64
	queue    []entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record notes the snapshot for frame when it differs from the last
// recorded one. Unchanged ticks cost nothing.
func (r *Recorder) Record(frame uint64, s Snapshot) {
	encoded := s.Encode()
	if r.previous == encoded {
		return
	}
	r.previous = encoded
	r.queue = append(r.queue, entry{frame: frame, snapshot: encoded})
}

// Playback returns the snapshot in effect on frame. Frames must be
// requested in order, one per tick.
func (r *Recorder) Playback(frame uint64) Snapshot {
	if len(r.queue) > 0 && r.queue[0].frame == frame {
		r.previous = r.queue[0].snapshot
		r.queue = r.queue[1:]
	}
	return Decode(r.previous)
}

// Save writes the recording as frame,snapshot lines.
func (r *Recorder) Save(path string) error {
	lines := make([]string, 0, len(r.queue))
	for _, e := range r.queue {
		lines = append(lines, fmt.Sprintf("%d,%d", e.frame, e.snapshot))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

// Load replaces the queue with the recording at path.
func (r *Recorder) Load(path string) error {
	r.previous = 0
	r.queue = nil

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to load input recording at %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		frameText, snapshotText, ok := strings.Cut(line, ",")
		if !ok {
			return fmt.Errorf("recording line %q is missing a comma", line)
		}
		frame, err := strconv.ParseUint(frameText, 10, 64)
		if err != nil {
			return fmt.Errorf("bad frame in recording line %q: %w", line, err)
		}
		snapshot, err := strconv.ParseUint(snapshotText, 10, 64)
		if err != nil {
			return fmt.Errorf("bad snapshot in recording line %q: %w", line, err)
		}
		r.queue = append(r.queue, entry{frame: frame, snapshot: snapshot})
	}
	return nil
}
