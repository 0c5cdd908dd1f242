package desktop

import (
	"fmt"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/internal/signal"
	"deedles.dev/notch/internal/util"
	"golang.org/x/exp/slices"
)

// Toplevel is a surface with the role of an application window. Every
// change to its state is sent to the client in a configure, which the
// client acknowledges with AckConfigure.
type Toplevel struct {
	desktop *Desktop
	surface *Surface
	title   string

	box        geom.Rect[int]
	maximized  bool
	fullscreen bool
	output     *Output

	pending   []uint32
	destroyed bool

	onDestroy      signal.Signal[struct{}]
	onConfigure    signal.Signal[uint32]
	onAckConfigure signal.Signal[uint32]
}

// CreateToplevel gives s the toplevel role. New toplevels are placed
// at the center of the first output and configured once.
func (d *Desktop) CreateToplevel(s *Surface, title string, size geom.Point[int]) (*Toplevel, error) {
	if s.toplevel != nil {
		return nil, fmt.Errorf("create toplevel for %v: %w", s.resource, ErrHasRole)
	}

	t := Toplevel{
		desktop: d,
		surface: s,
		title:   title,
		box:     geom.Rect[int]{Max: size},
	}
	if len(d.outputs) > 0 {
		out := d.outputs[0].Box()
		t.box = t.box.Add(out.Min.Add(geom.Pt(
			out.Dx()/2-size.X/2,
			out.Dy()/2-size.Y/2,
		)))
	}
	s.toplevel = &t
	d.toplevels = append(d.toplevels, &t)

	d.log.Debug("new toplevel", "surface", s.resource, "title", title)
	t.Configure()
	return &t, nil
}

func (t *Toplevel) Surface() *Surface   { return t.surface }
func (t *Toplevel) Title() string       { return t.title }
func (t *Toplevel) Box() geom.Rect[int] { return t.box }
func (t *Toplevel) Maximized() bool     { return t.maximized }
func (t *Toplevel) Fullscreen() bool    { return t.fullscreen }

// View implements cutouts.Toplevel.
func (t *Toplevel) View() cutouts.ViewState {
	return cutouts.ViewState{
		Box:        t.box,
		Maximized:  t.maximized,
		Fullscreen: t.fullscreen,
	}
}

func (t *Toplevel) OnDestroy(f func()) signal.Listener {
	return t.onDestroy.Add(func(struct{}) { f() })
}

func (t *Toplevel) OnConfigure(f func(serial uint32)) signal.Listener {
	return t.onConfigure.Add(f)
}

func (t *Toplevel) OnAckConfigure(f func(serial uint32)) signal.Listener {
	return t.onAckConfigure.Add(f)
}

// Configure sends the current state of t to the client and returns the
// serial of the configure.
func (t *Toplevel) Configure() uint32 {
	serial := t.desktop.serial()
	t.pending = append(t.pending, serial)
	t.onConfigure.Emit(serial)
	return serial
}

// AckConfigure acknowledges the configure with the given serial and
// every configure before it.
func (t *Toplevel) AckConfigure(serial uint32) error {
	if t.destroyed {
		return fmt.Errorf("ack configure %v: toplevel destroyed", serial)
	}

	i := slices.Index(t.pending, serial)
	if i < 0 {
		return fmt.Errorf("ack configure: unknown serial %v", serial)
	}
	t.pending = slices.Delete(t.pending, 0, i+1)

	t.onAckConfigure.Emit(serial)
	return nil
}

// PendingSerials returns the serials of configures that haven't been
// acknowledged yet.
func (t *Toplevel) PendingSerials() []uint32 {
	return slices.Clone(t.pending)
}

func (t *Toplevel) fillsOutput() bool {
	return t.maximized || t.fullscreen
}

// fill resizes t to cover out and configures it.
func (t *Toplevel) fill(out *Output) {
	t.output = out
	t.box = out.Box()
	t.Configure()
}

// targetOutput returns the output that t should fill.
func (t *Toplevel) targetOutput() (*Output, bool) {
	center := t.box.Min.Add(geom.Pt(t.box.Dx()/2, t.box.Dy()/2))
	out, ok := t.desktop.OutputAt(center)
	if ok {
		return out, true
	}
	if len(t.desktop.outputs) > 0 {
		return t.desktop.outputs[0], true
	}
	return nil, false
}

func (t *Toplevel) setFilling(maximized, fullscreen bool) {
	wasFilling := t.fillsOutput()
	t.maximized = maximized
	t.fullscreen = fullscreen

	if !t.fillsOutput() {
		t.output = nil
		t.Configure()
		return
	}

	out := t.output
	if !wasFilling || (out == nil) {
		var ok bool
		out, ok = t.targetOutput()
		if !ok {
			t.Configure()
			return
		}
	}
	t.fill(out)
}

func (t *Toplevel) SetMaximized(maximized bool) {
	t.setFilling(maximized, t.fullscreen)
}

func (t *Toplevel) SetFullscreen(fullscreen bool) {
	t.setFilling(t.maximized, fullscreen)
}

// Move moves t so that its top left corner is at p.
func (t *Toplevel) Move(p geom.Point[int]) {
	t.box = t.box.Sub(t.box.Min).Add(p)
}

// Resize changes the size of t and configures it. Toplevels that fill
// an output can't be resized.
func (t *Toplevel) Resize(size geom.Point[int]) {
	if t.fillsOutput() {
		return
	}
	t.box = t.box.Resize(size)
	t.Configure()
}

// Destroy removes the role from the surface.
func (t *Toplevel) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true

	t.onDestroy.Emit(struct{}{})

	d := t.desktop
	d.toplevels = util.Remove(d.toplevels, t)
	t.surface.toplevel = nil
	t.pending = nil

	d.log.Debug("toplevel destroyed", "surface", t.surface.resource, "title", t.title)
}
