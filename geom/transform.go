package geom

import (
	"fmt"
	"strings"
)

// Transform is an output transform. The values match those of
// wl_output.transform.
type Transform uint32

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

var transformNames = [...]string{
	TransformNormal:     "normal",
	Transform90:         "90",
	Transform180:        "180",
	Transform270:        "270",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "flipped-90",
	TransformFlipped180: "flipped-180",
	TransformFlipped270: "flipped-270",
}

// ParseTransform parses the names produced by Transform.String.
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range transformNames {
		if name == s {
			return Transform(t), nil
		}
	}
	return 0, fmt.Errorf("unknown transform %q", s)
}

func (t Transform) String() string {
	if int(t) < len(transformNames) {
		return transformNames[t]
	}
	return fmt.Sprintf("Transform(%d)", uint32(t))
}

func (t Transform) Valid() bool {
	return t <= TransformFlipped270
}

// Flipped reports whether t mirrors along the vertical axis.
func (t Transform) Flipped() bool {
	return t&TransformFlipped != 0
}

// QuarterTurns returns the number of 90 degree rotations in t.
func (t Transform) QuarterTurns() int {
	return int(t & 3)
}

// Size returns the size of an area of the given size once t has been
// applied to it.
func (t Transform) Size(size Point[int]) Point[int] {
	if t.QuarterTurns()%2 == 1 {
		return size.Swap()
	}
	return size
}

// Rect applies t to r, which lies inside of an area of size extent,
// and returns the result in the coordinate space of the transformed
// area.
func (t Transform) Rect(r Rect[int], extent Point[int]) Rect[int] {
	w, h := extent.X, extent.Y
	if t.Flipped() {
		r = Rt(w-r.Max.X, r.Min.Y, w-r.Min.X, r.Max.Y)
	}

	switch t.QuarterTurns() {
	case 1:
		return Rt(r.Min.Y, w-r.Max.X, r.Max.Y, w-r.Min.X)
	case 2:
		return Rt(w-r.Max.X, h-r.Max.Y, w-r.Min.X, h-r.Min.Y)
	case 3:
		return Rt(h-r.Max.Y, r.Min.X, h-r.Min.Y, r.Max.X)
	default:
		return r
	}
}

// Corner returns the corner of the transformed area that c, a corner
// of the untransformed area, ends up in.
func (t Transform) Corner(c Corner) Corner {
	if t.Flipped() {
		c ^= 1
	}
	return (c + Corner(t.QuarterTurns())) % NumCorners
}
