// Package switchstate tracks the named boolean switches that buttons and
// switch tiles flip, and that conditional tiles and platforms read.
package switchstate

import (
	"log"
	"strings"
)

type State struct {
	on map[string]bool
}

func New() *State {
	return &State{on: make(map[string]bool)}
}

func (s *State) turnOn(name string) {
	log.Printf("switch on: %s", name)
	s.on[name] = true
}

func (s *State) turnOff(name string) {
	log.Printf("switch off: %s", name)
	delete(s.on, name)
}

func (s *State) Toggle(name string) {
	log.Printf("switch toggle: %s", name)
	if s.on[name] {
		delete(s.on, name)
	} else {
		s.on[name] = true
	}
}

func (s *State) isOn(name string) bool {
	return s.on[name]
}

// ApplyCommand runs one switch command: "~x" toggles x, "!x" forces x off,
// a bare name forces it on.
func (s *State) ApplyCommand(cmd string) {
	switch {
	case strings.HasPrefix(cmd, "~"):
		s.Toggle(cmd[1:])
	case strings.HasPrefix(cmd, "!"):
		s.turnOff(cmd[1:])
	default:
		s.turnOn(cmd)
	}
}

// IsConditionTrue evaluates a condition name; a leading "!" negates it.
func (s *State) IsConditionTrue(cond string) bool {
	if rest, ok := strings.CutPrefix(cond, "!"); ok {
		return !s.isOn(rest)
	}
	return s.isOn(cond)
}
