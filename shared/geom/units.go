// Package geom provides the fixed-point units and rectangle math the
// physics core runs on. Everything is integer arithmetic; there is no
// floating point anywhere in the simulation.
package geom

// Pixels is a distance in whole screen pixels.
type Pixels int32

// Subpixels is the base unit of all physics state: 1/32 of a pixel.
// Velocities and accelerations are subpixels per frame.
type Subpixels int32

// SubpixelsPerPixel is the fixed-point scale factor.
const SubpixelsPerPixel = 32

func (p Pixels) AsSubpixels() Subpixels {
	return Subpixels(p) * SubpixelsPerPixel
}

// AsPixels truncates toward zero, like Go integer division. A position at
// -33 subpixels is on pixel -1, not -2.
func (s Subpixels) AsPixels() Pixels {
	return Pixels(s / SubpixelsPerPixel)
}

func (p Pixels) Sign() Pixels {
	switch {
	case p > 0:
		return 1
	case p < 0:
		return -1
	}
	return 0
}

func (p Pixels) Abs() Pixels {
	if p < 0 {
		return -p
	}
	return p
}

func (s Subpixels) Sign() Subpixels {
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	}
	return 0
}

func (s Subpixels) Abs() Subpixels {
	if s < 0 {
		return -s
	}
	return s
}
