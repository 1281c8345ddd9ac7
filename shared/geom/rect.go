package geom

// Unit constrains the generic containers to the two fixed-point scales.
type Unit interface {
	Pixels | Subpixels
}

type Point[T Unit] struct {
	X, Y T
}

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{p.X + q.X, p.Y + q.Y}
}

type Rect[T Unit] struct {
	X, Y, W, H T
}

func (r Rect[T]) Left() T   { return r.X }
func (r Rect[T]) Top() T    { return r.Y }
func (r Rect[T]) Right() T  { return r.X + r.W }
func (r Rect[T]) Bottom() T { return r.Y + r.H }

// Intersects treats edges as closed: rects that merely touch do overlap.
// Trigger zones (stars, doors, warps) rely on this.
func (r Rect[T]) Intersects(other Rect[T]) bool {
	return r.Right() >= other.Left() &&
		r.Left() <= other.Right() &&
		r.Bottom() >= other.Top() &&
		r.Top() <= other.Bottom()
}

func (r Rect[T]) Contains(p Point[T]) bool {
	return p.X >= r.Left() &&
		p.X <= r.Right() &&
		p.Y >= r.Top() &&
		p.Y <= r.Bottom()
}

func (r Rect[T]) Offset(p Point[T]) Rect[T] {
	return Rect[T]{r.X + p.X, r.Y + p.Y, r.W, r.H}
}

func PointToSubpixels(p Point[Pixels]) Point[Subpixels] {
	return Point[Subpixels]{p.X.AsSubpixels(), p.Y.AsSubpixels()}
}

func RectToSubpixels(r Rect[Pixels]) Rect[Subpixels] {
	return Rect[Subpixels]{
		X: r.X.AsSubpixels(),
		Y: r.Y.AsSubpixels(),
		W: r.W.AsSubpixels(),
		H: r.H.AsSubpixels(),
	}
}

// RectToPixels truncates every component toward zero; draw code uses it to
// place subpixel rects on whole pixels.
func RectToPixels(r Rect[Subpixels]) Rect[Pixels] {
	return Rect[Pixels]{
		X: r.X.AsPixels(),
		Y: r.Y.AsPixels(),
		W: r.W.AsPixels(),
		H: r.H.AsPixels(),
	}
}
