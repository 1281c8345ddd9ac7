package switchstate

import "testing"

func TestApplyCommand(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		check    string
		want     bool
	}{
		{"bare turns on", []string{"red"}, "red", true},
		{"bang turns off", []string{"red", "!red"}, "red", false},
		{"bang on unset stays off", []string{"!red"}, "red", false},
		{"tilde toggles on", []string{"~red"}, "red", true},
		{"tilde twice restores", []string{"~red", "~red"}, "red", false},
		{"tilde after on turns off", []string{"red", "~red"}, "red", false},
		{"independent names", []string{"red", "~blue"}, "blue", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, c := range tt.commands {
				s.ApplyCommand(c)
			}
			if got := s.IsConditionTrue(tt.check); got != tt.want {
				t.Errorf("after %v, %q = %v, want %v", tt.commands, tt.check, got, tt.want)
			}
		})
	}
}

func TestNegatedCondition(t *testing.T) {
	s := New()
	if !s.IsConditionTrue("!red") {
		t.Error("!red should be true while red is off")
	}
	s.ApplyCommand("red")
	if s.IsConditionTrue("!red") {
		t.Error("!red should be false while red is on")
	}
	if s.IsConditionTrue("!red") == s.IsConditionTrue("red") {
		t.Error("negation must invert the read")
	}
}

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle("gate")
	if !s.IsConditionTrue("gate") {
		t.Error("toggle on failed")
	}
	s.Toggle("gate")
	if s.IsConditionTrue("gate") {
		t.Error("toggle off failed")
	}
}
