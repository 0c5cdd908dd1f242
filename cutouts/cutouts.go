// Package cutouts implements the xx_cutouts_v1 protocol, which tells
// clients about the parts of their toplevels that are covered by
// display cutouts and rounded display corners, and lets them tell the
// compositor which of those they didn't avoid drawing under.
package cutouts

import (
	"fmt"

	"deedles.dev/notch/geom"
	"deedles.dev/notch/internal/signal"
	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
	"golang.org/x/exp/slices"
)

// State is the lifecycle state of a Cutouts object.
type State int

const (
	// Active objects are bound to a toplevel and send updates when it
	// is configured.
	Active State = iota

	// Orphaned objects have outlived their toplevel. They stay inert
	// until the client destroys them.
	Orphaned

	Destroyed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Orphaned:
		return "orphaned"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Box is a cutout box sent to a client.
type Box struct {
	ID   uint32
	Rect geom.Rect[int]
	Type Type
}

// Corner is a rounded corner sent to a client.
type Corner struct {
	ID       uint32
	Position geom.Corner
	Radius   int
}

// Batch is the set of boxes and corners sent during one configuration
// of a toplevel.
type Batch struct {
	Boxes   []Box
	Corners []Corner
}

func (b Batch) Empty() bool {
	return (len(b.Boxes) == 0) && (len(b.Corners) == 0)
}

// IDs returns the IDs of every entry in the batch.
func (b Batch) IDs() []uint32 {
	ids := make([]uint32, 0, len(b.Boxes)+len(b.Corners))
	for _, box := range b.Boxes {
		ids = append(ids, box.ID)
	}
	for _, c := range b.Corners {
		ids = append(ids, c.ID)
	}
	return ids
}

// binding is the toplevel that a Cutouts object tracks along with its
// subscriptions to it.
type binding struct {
	toplevel  Toplevel
	listeners []signal.Listener
}

// viewRef is either bound to a toplevel or absent.
type viewRef struct {
	binding
	bound bool
}

// Cutouts is the server side of an xx_cutouts_v1 object.
type Cutouts struct {
	manager  *Manager
	resource *wayland.Resource
	state    State
	view     viewRef

	pending, current Batch

	pendingUnhandled, currentUnhandled []uint32

	onUnhandledUpdated signal.Signal[*Cutouts]
}

func newCutouts(m *Manager, r *wayland.Resource, toplevel Toplevel) *Cutouts {
	c := Cutouts{
		manager:  m,
		resource: r,
		state:    Active,
	}

	c.view = viewRef{
		binding: binding{
			toplevel: toplevel,
			listeners: []signal.Listener{
				toplevel.OnDestroy(c.onToplevelDestroy),
				toplevel.OnConfigure(c.onConfigure),
				toplevel.OnAckConfigure(c.onAckConfigure),
			},
		},
		bound: true,
	}

	r.SetImplementation(c.handleRequest, &c, c.onResourceDestroy)
	return &c
}

// Resource returns the protocol object.
func (c *Cutouts) Resource() *wayland.Resource {
	return c.resource
}

func (c *Cutouts) State() State {
	return c.state
}

// Toplevel returns the toplevel that c is tracking. It returns false
// once the toplevel has been destroyed.
func (c *Cutouts) Toplevel() (Toplevel, bool) {
	return c.view.toplevel, c.view.bound
}

// Current returns the last batch sent to the client. The returned
// batch is never modified.
func (c *Cutouts) Current() Batch {
	return c.current
}

// CurrentUnhandled returns the IDs that the client has declared as
// unhandled as of its last acknowledged configure, in ascending order.
func (c *Cutouts) CurrentUnhandled() []uint32 {
	return slices.Clone(c.currentUnhandled)
}

// PendingUnhandled returns the IDs that the client has declared as
// unhandled since its last acknowledged configure, in the order that
// they were received.
func (c *Cutouts) PendingUnhandled() []uint32 {
	return slices.Clone(c.pendingUnhandled)
}

// OnUnhandledUpdated adds a function to be called when the IDs
// returned by CurrentUnhandled change. Every function must be removed
// before c is destroyed.
func (c *Cutouts) OnUnhandledUpdated(f func(*Cutouts)) signal.Listener {
	return c.onUnhandledUpdated.Add(f)
}

func (c *Cutouts) handleRequest(r *wayland.Resource, opcode uint16, args *wire.Decoder) error {
	switch opcode {
	case cutoutsSetUnhandled:
		data := args.Array()
		if err := args.Finish(); err != nil {
			return err
		}
		ids, err := wire.ParseUint32Array(data)
		if err != nil {
			return err
		}
		c.setUnhandled(ids)
		return nil

	case cutoutsDestroy:
		if err := args.Finish(); err != nil {
			return err
		}
		r.Destroy()
		return nil

	default:
		return fmt.Errorf("unknown opcode %v", opcode)
	}
}

// setUnhandled records ids until the next acknowledged configure.
func (c *Cutouts) setUnhandled(ids []uint32) {
	if c.state == Destroyed {
		return
	}
	c.pendingUnhandled = append(c.pendingUnhandled, ids...)
}

// sendCutouts computes and sends a new batch, terminated by a
// configure event.
func (c *Cutouts) sendCutouts() {
	if c.state != Active {
		return
	}

	view := c.view.toplevel.View()
	if view.FillsOutput() {
		for _, out := range c.manager.host.OutputsIn(view.Box) {
			p := Project(out, view)
			for _, r := range p.Boxes {
				c.pending.Boxes = append(c.pending.Boxes, Box{
					ID:   c.manager.allocID(),
					Rect: r,
					Type: TypeCutout,
				})
			}
			for _, corner := range p.Corners {
				c.pending.Corners = append(c.pending.Corners, Corner{
					ID:       c.manager.allocID(),
					Position: corner.Position,
					Radius:   corner.Radius,
				})
			}
		}
	}

	for _, box := range c.pending.Boxes {
		var e wire.Encoder
		e.Int(int32(box.Rect.Min.X))
		e.Int(int32(box.Rect.Min.Y))
		e.Int(int32(box.Rect.Dx()))
		e.Int(int32(box.Rect.Dy()))
		e.Uint(uint32(box.Type))
		e.Uint(box.ID)
		c.resource.PostEvent(EventCutoutBox, &e)
	}
	for _, corner := range c.pending.Corners {
		var e wire.Encoder
		e.Uint(uint32(corner.Position))
		e.Uint(uint32(corner.Radius))
		e.Uint(corner.ID)
		c.resource.PostEvent(EventCutoutCorner, &e)
	}
	c.resource.PostEvent(EventConfigure, nil)

	c.promoteBatch()
}

// promoteBatch replaces the current batch with the pending one.
func (c *Cutouts) promoteBatch() {
	c.current = c.pending
	c.pending = Batch{}
}

// promoteUnhandled replaces the current unhandled IDs with the pending
// ones, notifying listeners if that changed anything.
func (c *Cutouts) promoteUnhandled() {
	next := slices.Clone(c.pendingUnhandled)
	slices.Sort(next)
	next = slices.Compact(next)
	c.pendingUnhandled = nil

	if slices.Equal(next, c.currentUnhandled) {
		return
	}
	c.currentUnhandled = next
	c.onUnhandledUpdated.Emit(c)
}

func (c *Cutouts) onConfigure(serial uint32) {
	c.sendCutouts()
}

func (c *Cutouts) onAckConfigure(serial uint32) {
	c.promoteUnhandled()
}

func (c *Cutouts) onToplevelDestroy() {
	c.unbind()
	c.state = Orphaned
	c.manager.log.Debug("toplevel destroyed", "cutouts", c.resource)
}

// unbind drops the subscriptions to the toplevel.
func (c *Cutouts) unbind() {
	if !c.view.bound {
		return
	}
	for _, l := range c.view.listeners {
		l.Destroy()
	}
	c.view = viewRef{}
}

func (c *Cutouts) onResourceDestroy(r *wayland.Resource) {
	c.destroy()
}

// destroy releases c. It is safe to call in any state.
func (c *Cutouts) destroy() {
	if c.state == Destroyed {
		return
	}

	c.manager.log.Debug("destroying cutouts", "cutouts", c.resource, "state", c.state)

	c.unbind()
	c.manager.remove(c)

	c.pending = Batch{}
	c.current = Batch{}
	c.pendingUnhandled = nil
	c.currentUnhandled = nil

	if c.onUnhandledUpdated.Len() != 0 {
		panic("cutouts destroyed with unhandled update listeners still attached")
	}
	c.state = Destroyed
}
