package geom

type Point[T Scalar] struct {
	X, Y T
}

func Pt[T Scalar](X, Y T) Point[T] {
	return Point[T]{X, Y}
}

// PConv converts a Point[In] to a Point[Out] with possible loss of
// precision.
func PConv[Out Scalar, In Scalar](p Point[In]) Point[Out] {
	return Pt(Out(p.X), Out(p.Y))
}

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{p.X + q.X, p.Y + q.Y}
}

func (p Point[T]) Sub(q Point[T]) Point[T] {
	return Point[T]{p.X - q.X, p.Y - q.Y}
}

// Swap returns p with its coordinates exchanged.
func (p Point[T]) Swap() Point[T] {
	return Point[T]{p.Y, p.X}
}

func (p Point[T]) In(r Rect[T]) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

func (p Point[T]) IsZero() bool {
	return (p.X == 0) && (p.Y == 0)
}
