package cutouts

import (
	"deedles.dev/notch/geom"
	"deedles.dev/notch/internal/signal"
	"deedles.dev/notch/panel"
	"deedles.dev/notch/wayland"
)

// Host is the part of the compositor that the cutouts protocol needs
// to know about.
type Host interface {
	// ToplevelFromSurface returns the toplevel that surface has the
	// role of, if any.
	ToplevelFromSurface(surface *wayland.Resource) (Toplevel, bool)

	// OutputsIn returns the state of every output that intersects box,
	// which is in layout coordinates.
	OutputsIn(box geom.Rect[int]) []OutputState
}

// Toplevel is a toplevel surface. Its configure and ack_configure
// signals are those of the surface that the toplevel is the role of.
type Toplevel interface {
	View() ViewState

	OnDestroy(func()) signal.Listener
	OnConfigure(func(serial uint32)) signal.Listener
	OnAckConfigure(func(serial uint32)) signal.Listener
}

// ViewState is a snapshot of the state of a view.
type ViewState struct {
	// Box is the bounding box of the view in layout coordinates.
	Box        geom.Rect[int]
	Maximized  bool
	Fullscreen bool
}

// FillsOutput reports whether the view covers an entire output, which
// is the only case where cutouts are reported for it.
func (v ViewState) FillsOutput() bool {
	return v.Maximized || v.Fullscreen
}

// OutputState is a snapshot of the state of an output.
type OutputState struct {
	Name string

	// Origin is the position of the output in the layout.
	Origin geom.Point[int]

	// Mode is the resolution of the output in device pixels.
	Mode      geom.Point[int]
	Scale     float64
	Transform geom.Transform

	// Panel describes the output's display panel. It is nil if the
	// panel is unknown.
	Panel *panel.Panel
}

func (o OutputState) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// extent returns the size of the output after scaling but before the
// transform is applied.
func (o OutputState) extent() geom.Point[int] {
	return geom.ScaleSize(o.Mode, o.scale())
}

// Size returns the size of the output in layout coordinates.
func (o OutputState) Size() geom.Point[int] {
	return o.Transform.Size(o.extent())
}

// Box returns the area that the output occupies in the layout.
func (o OutputState) Box() geom.Rect[int] {
	return geom.Rect[int]{Max: o.Size()}.Add(o.Origin)
}
