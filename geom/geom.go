// Package geom provides generic geometry types used to describe
// outputs, views and the cutout regions that overlap them.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar is a constraint for the types that geom types and functions
// can handle.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// ScaleSize converts a size in device pixels to logical pixels at
// scale s, rounding up.
func ScaleSize(size Point[int], s float64) Point[int] {
	return Pt(
		int(math.Ceil(float64(size.X)/s)),
		int(math.Ceil(float64(size.Y)/s)),
	)
}

// ScaleRect converts r from device pixels to logical pixels at scale
// s, rounding outwards so that the result covers all of r.
func ScaleRect(r Rect[int], s float64) Rect[int] {
	return Rt(
		int(math.Floor(float64(r.Min.X)/s)),
		int(math.Floor(float64(r.Min.Y)/s)),
		int(math.Ceil(float64(r.Max.X)/s)),
		int(math.Ceil(float64(r.Max.Y)/s)),
	)
}
