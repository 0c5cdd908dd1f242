// Package desktop is a headless compositor desktop: outputs arranged
// in a layout, client surfaces and the toplevel views that they
// display. It drives the configure cycle of toplevels the way a real
// shell would, without rendering anything.
package desktop

import (
	"io"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
	"deedles.dev/notch/wayland"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

type Desktop struct {
	OutputConfigs []OutputConfig

	log     *log.Logger
	display *wayland.Display
	panels  *panel.Database

	outputs   []*Output
	toplevels []*Toplevel

	nextSerial uint32
}

// New creates a desktop for clients of display. Panels for outputs are
// looked up in panels, which may be nil.
func New(display *wayland.Display, panels *panel.Database, logger *log.Logger) *Desktop {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Desktop{
		log:        logger,
		display:    display,
		panels:     panels,
		nextSerial: 1,
	}
}

func (d *Desktop) Display() *wayland.Display {
	return d.display
}

// Outputs returns the outputs in the order that they were added.
func (d *Desktop) Outputs() []*Output {
	return slices.Clone(d.outputs)
}

// Toplevels returns the toplevels in the order that they were created.
func (d *Desktop) Toplevels() []*Toplevel {
	return slices.Clone(d.toplevels)
}

// OutputAt returns the output containing p.
func (d *Desktop) OutputAt(p geom.Point[int]) (*Output, bool) {
	for _, out := range d.outputs {
		if p.In(out.Box()) {
			return out, true
		}
	}
	return nil, false
}

// OutputsIn implements cutouts.Host.
func (d *Desktop) OutputsIn(box geom.Rect[int]) []cutouts.OutputState {
	var states []cutouts.OutputState
	for _, out := range d.outputs {
		if out.Box().Overlaps(box) {
			states = append(states, out.State())
		}
	}
	return states
}

// ToplevelFromSurface implements cutouts.Host.
func (d *Desktop) ToplevelFromSurface(r *wayland.Resource) (cutouts.Toplevel, bool) {
	s, ok := SurfaceFromResource(r)
	if !ok || (s.toplevel == nil) {
		return nil, false
	}
	return s.toplevel, true
}

func (d *Desktop) serial() uint32 {
	s := d.nextSerial
	d.nextSerial++
	return s
}
