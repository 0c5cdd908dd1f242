package wayland

import (
	"fmt"
	"io"

	"deedles.dev/notch/internal/signal"
	"deedles.dev/notch/wire"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// Client is a single connection to the display.
type Client struct {
	display *Display
	log     *log.Logger
	w       io.Writer

	objects    map[uint32]*Resource
	maxObjects int

	dead      bool
	destroyed bool

	onDestroy signal.Signal[*Client]
}

func (c *Client) Display() *Display {
	return c.display
}

// Dead reports whether a fatal error has been posted to the client or
// it has been destroyed. Events for dead clients are dropped.
func (c *Client) Dead() bool {
	return c.dead
}

// Resource returns the object with the given ID.
func (c *Client) Resource(id uint32) (*Resource, bool) {
	r, ok := c.objects[id]
	return r, ok
}

// Resources returns the client's objects ordered by ID.
func (c *Client) Resources() []*Resource {
	ids := make([]uint32, 0, len(c.objects))
	for id := range c.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	resources := make([]*Resource, 0, len(ids))
	for _, id := range ids {
		resources = append(resources, c.objects[id])
	}
	return resources
}

// NewResource creates an object in the client's object table. It
// returns ErrNoMemory if the table is full.
func (c *Client) NewResource(iface string, version, id uint32) (*Resource, error) {
	if c.dead {
		return nil, ErrClientDead
	}
	if (id == 0) || (id == DisplayID) {
		return nil, fmt.Errorf("new %v: invalid ID %v", iface, id)
	}
	if _, ok := c.objects[id]; ok {
		return nil, fmt.Errorf("new %v@%v: %w", iface, id, ErrIDInUse)
	}
	if (c.maxObjects > 0) && (len(c.objects) >= c.maxObjects) {
		return nil, fmt.Errorf("new %v@%v: %w", iface, id, ErrNoMemory)
	}

	r := Resource{
		client:  c,
		id:      id,
		iface:   iface,
		version: version,
	}
	c.objects[id] = &r
	return &r, nil
}

// Dispatch delivers a request to the object it was sent to.
func (c *Client) Dispatch(msg wire.Message) error {
	if c.dead {
		return ErrClientDead
	}

	r, ok := c.objects[msg.Sender]
	if !ok {
		c.PostError(DisplayID, ErrorInvalidObject, fmt.Sprintf("invalid object %v", msg.Sender))
		return fmt.Errorf("dispatch to %v: %w", msg.Sender, ErrUnknownObject)
	}
	if r.handler == nil {
		c.PostError(r.id, ErrorInvalidMethod, fmt.Sprintf("%v@%v has no implementation", r.iface, r.id))
		return fmt.Errorf("dispatch to %v@%v: no implementation", r.iface, r.id)
	}

	err := r.handler(r, msg.Opcode, msg.Decoder())
	if err != nil {
		c.PostError(r.id, ErrorInvalidMethod, fmt.Sprintf("%v@%v.%v: %v", r.iface, r.id, msg.Opcode, err))
		return fmt.Errorf("dispatch to %v@%v: %w", r.iface, r.id, err)
	}
	return nil
}

// ReadFrom reads and dispatches requests from r until it is exhausted
// or a request fails.
func (c *Client) ReadFrom(r io.Reader) (int64, error) {
	var n int64
	for {
		msg, err := wire.ReadMessage(r)
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		n += int64(msg.Size())

		err = c.Dispatch(msg)
		if err != nil {
			return n, err
		}
	}
}

// PostError sends a wl_display.error event naming the object with the
// given ID. Protocol errors are fatal: the client is marked as dead.
func (c *Client) PostError(id, code uint32, msg string) {
	if c.dead {
		return
	}

	c.log.Warn("protocol error", "object", id, "code", code, "message", msg)

	var e wire.Encoder
	e.Object(id)
	e.Uint(code)
	e.String(msg)
	c.send(e.Message(DisplayID, displayError))
	c.dead = true
}

// PostNoMemory posts a no_memory error to the client.
func (c *Client) PostNoMemory() {
	c.PostError(DisplayID, ErrorNoMemory, "no memory")
}

func (c *Client) send(msg wire.Message) {
	if c.dead {
		return
	}

	_, err := msg.WriteTo(c.w)
	if err != nil {
		c.log.Error("write event", "object", msg.Sender, "opcode", msg.Opcode, "err", err)
		c.dead = true
	}
}

// OnDestroy adds a function to be called when the client is destroyed,
// before any of its resources are.
func (c *Client) OnDestroy(f func(*Client)) signal.Listener {
	return c.onDestroy.Add(f)
}

// Destroy disconnects the client, destroying all of its resources in
// reverse order of their IDs.
func (c *Client) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.dead = true

	c.onDestroy.Emit(c)

	resources := c.Resources()
	for i := len(resources) - 1; i >= 0; i-- {
		resources[i].Destroy()
	}

	c.display.removeClient(c)
	c.log.Debug("client disconnected")
}
