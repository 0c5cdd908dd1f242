package cutouts

import (
	"math"

	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
	"golang.org/x/exp/slices"
)

// Projection is the part of an output's cutouts that a view overlaps,
// in the view's local coordinates.
type Projection struct {
	Boxes   []geom.Rect[int]
	Corners []panel.Corner
}

func (p Projection) Empty() bool {
	return (len(p.Boxes) == 0) && (len(p.Corners) == 0)
}

// Project maps the cutouts and rounded corners of the output's panel
// into the local coordinate space of view. Views that don't fill an
// output always get an empty projection.
func Project(out OutputState, view ViewState) Projection {
	if !view.FillsOutput() || (out.Panel == nil) {
		return Projection{}
	}

	s := out.scale()
	extent := out.extent()
	region := out.Panel.Region().Map(func(r geom.Rect[int]) geom.Rect[int] {
		return out.Transform.Rect(geom.ScaleRect(r, s), extent)
	})
	region = region.
		Translate(out.Origin.Sub(view.Box.Min)).
		Intersect(geom.Rect[int]{Max: view.Box.Size()})

	var corners []panel.Corner
	for _, c := range out.Panel.Corners() {
		r := int(math.Round(float64(c.Radius) / s))
		if r == 0 {
			continue
		}
		corners = append(corners, panel.Corner{
			Position: out.Transform.Corner(c.Position),
			Radius:   r,
		})
	}
	slices.SortFunc(corners, func(c1, c2 panel.Corner) int {
		return int(c1.Position) - int(c2.Position)
	})

	return Projection{
		Boxes:   region.Rects(),
		Corners: corners,
	}
}
