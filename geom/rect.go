package geom

import "fmt"

// A Rect contains the points with Min.X <= X < Max.X, Min.Y <= Y < Max.Y. It
// is well-formed if Min.X <= Max.X and likewise for Y. Points are always
// well-formed. A rectangle's methods always return well-formed outputs for
// well-formed inputs.
type Rect[T Scalar] struct {
	Min, Max Point[T]
}

// Rt is shorthand for Rect{Pt(x0, y0), Pt(x1, y1)}. The returned
// rectangle has minimum and maximum coordinates swapped if necessary
// so that it is well-formed.
func Rt[T Scalar](x0, y0, x1, y1 T) Rect[T] {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect[T]{Point[T]{x0, y0}, Point[T]{x1, y1}}
}

// Box returns the rectangle with its top-left corner at (x, y) and
// the given size, the way boxes travel over the wire.
func Box[T Scalar](x, y, width, height T) Rect[T] {
	return Rt(x, y, x+width, y+height)
}

// RConv converts a Rect[In] to a Rect[Out] with possible loss of precision.
func RConv[Out Scalar, In Scalar](r Rect[In]) Rect[Out] {
	return Rect[Out]{
		Min: PConv[Out](r.Min),
		Max: PConv[Out](r.Max),
	}
}

func (r Rect[T]) Dx() T {
	return r.Max.X - r.Min.X
}

func (r Rect[T]) Dy() T {
	return r.Max.Y - r.Min.Y
}

func (r Rect[T]) Size() Point[T] {
	return Point[T]{
		r.Max.X - r.Min.X,
		r.Max.Y - r.Min.Y,
	}
}

func (r Rect[T]) Add(p Point[T]) Rect[T] {
	return Rect[T]{
		Point[T]{r.Min.X + p.X, r.Min.Y + p.Y},
		Point[T]{r.Max.X + p.X, r.Max.Y + p.Y},
	}
}

func (r Rect[T]) Sub(p Point[T]) Rect[T] {
	return Rect[T]{
		Point[T]{r.Min.X - p.X, r.Min.Y - p.Y},
		Point[T]{r.Max.X - p.X, r.Max.Y - p.Y},
	}
}

func (r Rect[T]) Intersect(s Rect[T]) Rect[T] {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	if r.Empty() {
		return Rect[T]{}
	}
	return r
}

func (r Rect[T]) Union(s Rect[T]) Rect[T] {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	if r.Min.X > s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y > s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X < s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y < s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

func (r Rect[T]) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

func (r Rect[T]) Eq(s Rect[T]) bool {
	return r == s || r.Empty() && s.Empty()
}

func (r Rect[T]) Overlaps(s Rect[T]) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

func (r Rect[T]) In(s Rect[T]) bool {
	if r.Empty() {
		return true
	}
	return s.Min.X <= r.Min.X && r.Max.X <= s.Max.X &&
		s.Min.Y <= r.Min.Y && r.Max.Y <= s.Max.Y
}

func (r Rect[T]) Canon() Rect[T] {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

func (r Rect[T]) Resize(size Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min, Max: r.Min.Add(size)}
}

func (r Rect[T]) IsZero() bool {
	return r.Min.IsZero() && r.Max.IsZero()
}

// String formats r as x,y widthxheight.
func (r Rect[T]) String() string {
	return fmt.Sprintf("%v,%v %vx%v", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}
