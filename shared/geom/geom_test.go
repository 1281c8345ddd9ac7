package geom

import "testing"

func TestPixelSubpixelRoundTrip(t *testing.T) {
	for _, p := range []Pixels{-100, -1, 0, 1, 8, 24, 100, 320} {
		if got := p.AsSubpixels().AsPixels(); got != p {
			t.Errorf("round trip %d: got %d", p, got)
		}
	}
	if got := Pixels(4).AsSubpixels(); got != 128 {
		t.Errorf("4px = %dspx, want 128", got)
	}
}

func TestAsPixelsTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		s    Subpixels
		want Pixels
	}{
		{31, 0},
		{32, 1},
		{33, 1},
		{-31, 0},
		{-32, -1},
		{-33, -1},
		{-63, -1},
		{-64, -2},
	}
	for _, tt := range tests {
		if got := tt.s.AsPixels(); got != tt.want {
			t.Errorf("AsPixels(%d) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestSignAbs(t *testing.T) {
	if Subpixels(-7).Sign() != -1 || Subpixels(7).Sign() != 1 || Subpixels(0).Sign() != 0 {
		t.Error("Sign broken")
	}
	if Subpixels(-7).Abs() != 7 || Subpixels(7).Abs() != 7 {
		t.Error("Abs broken")
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect[Subpixels]{X: 10, Y: 20, W: 30, H: 40}
	if r.Left() != 10 || r.Top() != 20 || r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges: %d %d %d %d", r.Left(), r.Top(), r.Right(), r.Bottom())
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect[Subpixels]{X: 0, Y: 0, W: 100, H: 100}
	tests := []struct {
		name  string
		other Rect[Subpixels]
		want  bool
	}{
		{"overlapping", Rect[Subpixels]{50, 50, 100, 100}, true},
		{"contained", Rect[Subpixels]{25, 25, 10, 10}, true},
		{"touching right edge", Rect[Subpixels]{100, 0, 50, 50}, true},
		{"touching bottom edge", Rect[Subpixels]{0, 100, 50, 50}, true},
		{"separate", Rect[Subpixels]{101, 0, 50, 50}, false},
		{"diagonal corner touch", Rect[Subpixels]{100, 100, 10, 10}, true},
	}
	for _, tt := range tests {
		if got := base.Intersects(tt.other); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCmpInDirection(t *testing.T) {
	tests := []struct {
		name string
		a, b Subpixels
		d    Direction
		want int
	}{
		// Up corrections are positive; the larger one stops the actor sooner.
		{"up larger is less", 10, 5, DirUp, -1},
		{"up smaller is greater", 5, 10, DirUp, 1},
		{"up equal", 5, 5, DirUp, 0},
		// Down corrections are negative; more negative stops sooner.
		{"down more negative is less", -10, -5, DirDown, -1},
		{"down less negative is greater", -5, -10, DirDown, 1},
		{"left larger is less", 10, 5, DirLeft, -1},
		{"right more negative is less", -10, -5, DirRight, -1},
		{"zero vs blocking down", -3, 0, DirDown, -1},
		{"zero vs blocking up", 3, 0, DirUp, -1},
	}
	for _, tt := range tests {
		if got := CmpInDirection(tt.a, tt.b, tt.d); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTryMoveToBounds(t *testing.T) {
	target := Rect[Subpixels]{X: 1024, Y: 1024, W: 1024, H: 1024}
	tests := []struct {
		name  string
		actor Rect[Subpixels]
		d     Direction
		want  Subpixels
	}{
		{"down into top", Rect[Subpixels]{1024, 512, 768, 768}, DirDown, -256},
		{"up into bottom", Rect[Subpixels]{1024, 1792, 768, 768}, DirUp, 256},
		{"right into left", Rect[Subpixels]{512, 1024, 768, 768}, DirRight, -256},
		{"left into right", Rect[Subpixels]{1792, 1024, 768, 768}, DirLeft, 256},
		{"touching is clear", Rect[Subpixels]{1024, 0, 768, 1024}, DirDown, 0},
		{"fully clear", Rect[Subpixels]{0, 0, 512, 512}, DirDown, 0},
	}
	for _, tt := range tests {
		if got := TryMoveToBounds(tt.actor, target, tt.d); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}
