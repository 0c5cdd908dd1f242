package geom

import "fmt"

// Corner identifies one of the four corners of a rectangular area,
// in clockwise order starting at the top left.
type Corner uint32

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft

	NumCorners
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return fmt.Sprintf("Corner(%d)", uint32(c))
	}
}
