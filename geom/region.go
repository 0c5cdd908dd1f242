package geom

import "golang.org/x/exp/slices"

// A Region is the union of a set of rectangles. Internally it is kept
// as a list of disjoint rectangles grouped into horizontal bands,
// sorted by Y and then by X, with vertically adjacent bands of
// identical horizontal extents coalesced. Two regions covering the
// same points therefore always have the same rectangles.
//
// The zero Region is empty and ready to use. Regions are immutable;
// every operation returns a new Region.
type Region[T Scalar] struct {
	rects []Rect[T]
}

// RegionOf returns the union of rects. Rectangles may overlap and may
// be given in any order.
func RegionOf[T Scalar](rects ...Rect[T]) Region[T] {
	return Region[T]{rects: normalize(rects)}
}

// Rects returns the disjoint rectangles that make up the region.
func (r Region[T]) Rects() []Rect[T] {
	return slices.Clone(r.rects)
}

func (r Region[T]) Len() int {
	return len(r.rects)
}

func (r Region[T]) Empty() bool {
	return len(r.rects) == 0
}

// Extents returns the smallest rectangle that contains the region.
func (r Region[T]) Extents() (e Rect[T]) {
	for _, rect := range r.rects {
		e = e.Union(rect)
	}
	return e
}

// Union returns a region containing the points of r and rects.
func (r Region[T]) Union(rects ...Rect[T]) Region[T] {
	all := make([]Rect[T], 0, len(r.rects)+len(rects))
	all = append(all, r.rects...)
	all = append(all, rects...)
	return Region[T]{rects: normalize(all)}
}

// Intersect returns the part of r that lies inside of s.
func (r Region[T]) Intersect(s Rect[T]) Region[T] {
	clipped := make([]Rect[T], 0, len(r.rects))
	for _, rect := range r.rects {
		rect = rect.Intersect(s)
		if !rect.Empty() {
			clipped = append(clipped, rect)
		}
	}
	return Region[T]{rects: normalize(clipped)}
}

// Translate returns r moved by p.
func (r Region[T]) Translate(p Point[T]) Region[T] {
	moved := make([]Rect[T], 0, len(r.rects))
	for _, rect := range r.rects {
		moved = append(moved, rect.Add(p))
	}
	return Region[T]{rects: moved}
}

// Map returns the union of f applied to every rectangle of r.
func (r Region[T]) Map(f func(Rect[T]) Rect[T]) Region[T] {
	mapped := make([]Rect[T], 0, len(r.rects))
	for _, rect := range r.rects {
		mapped = append(mapped, f(rect))
	}
	return Region[T]{rects: normalize(mapped)}
}

func (r Region[T]) Contains(p Point[T]) bool {
	return slices.ContainsFunc(r.rects, func(rect Rect[T]) bool {
		return p.In(rect)
	})
}

func (r Region[T]) Eq(s Region[T]) bool {
	return slices.Equal(r.rects, s.rects)
}

type span[T Scalar] struct {
	min, max T
}

func normalize[T Scalar](rects []Rect[T]) []Rect[T] {
	edges := make([]T, 0, 2*len(rects))
	for _, rect := range rects {
		if rect.Empty() {
			continue
		}
		edges = append(edges, rect.Min.Y, rect.Max.Y)
	}
	if len(edges) == 0 {
		return nil
	}
	slices.Sort(edges)
	edges = slices.Compact(edges)

	var (
		out      []Rect[T]
		prev     []span[T]
		prevBand int
	)
	for i := 0; i+1 < len(edges); i++ {
		y0, y1 := edges[i], edges[i+1]
		spans := bandSpans(rects, y0, y1)
		if len(spans) == 0 {
			prev = nil
			continue
		}

		if (prev != nil) && (out[prevBand].Max.Y == y0) && slices.Equal(prev, spans) {
			for j := prevBand; j < len(out); j++ {
				out[j].Max.Y = y1
			}
			continue
		}

		prev, prevBand = spans, len(out)
		for _, s := range spans {
			out = append(out, Rt(s.min, y0, s.max, y1))
		}
	}
	return out
}

// bandSpans returns the merged horizontal extents of the rectangles
// that fully cover the band between y0 and y1.
func bandSpans[T Scalar](rects []Rect[T], y0, y1 T) []span[T] {
	var spans []span[T]
	for _, rect := range rects {
		if rect.Empty() || (rect.Min.Y > y0) || (rect.Max.Y < y1) {
			continue
		}
		spans = append(spans, span[T]{rect.Min.X, rect.Max.X})
	}
	if len(spans) == 0 {
		return nil
	}

	slices.SortFunc(spans, func(a, b span[T]) int {
		switch {
		case a.min < b.min:
			return -1
		case a.min > b.min:
			return 1
		default:
			return 0
		}
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.min <= last.max {
			if s.max > last.max {
				last.max = s.max
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
