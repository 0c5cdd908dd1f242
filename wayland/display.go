// Package wayland is a small server-side Wayland object model: a
// display advertising globals, clients with object tables, and the
// resources that live in them.
package wayland

import (
	"errors"
	"fmt"
	"io"

	"deedles.dev/notch/internal/util"
	"deedles.dev/notch/wire"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

var (
	ErrNoMemory      = errors.New("no memory")
	ErrClientDead    = errors.New("client is dead")
	ErrUnknownObject = errors.New("unknown object")
	ErrIDInUse       = errors.New("object ID already in use")
)

// DisplayID is the object ID of the wl_display singleton.
const DisplayID = 1

// wl_display events.
const (
	displayError    uint16 = 0
	displayDeleteID uint16 = 1
)

// wl_display error codes.
const (
	ErrorInvalidObject  uint32 = 0
	ErrorInvalidMethod  uint32 = 1
	ErrorNoMemory       uint32 = 2
	ErrorImplementation uint32 = 3
)

// serverIDStart is the first object ID in the range allocated by the
// server.
const serverIDStart = 0xFF000000

// Display is the root of the object model.
type Display struct {
	log *log.Logger

	nextName uint32
	globals  []*Global
	clients  []*Client
}

func NewDisplay(logger *log.Logger) *Display {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Display{
		log:      logger,
		nextName: 1,
	}
}

// BindFunc is called when a client binds to a global. It is expected
// to create a resource with the given ID.
type BindFunc func(client *Client, version, id uint32)

// Global is an advertised interface that clients can bind to.
type Global struct {
	display   *Display
	name      uint32
	iface     string
	version   uint32
	bind      BindFunc
	destroyed bool
}

// CreateGlobal advertises a new global.
func (d *Display) CreateGlobal(iface string, version uint32, bind BindFunc) *Global {
	g := Global{
		display: d,
		name:    d.nextName,
		iface:   iface,
		version: version,
		bind:    bind,
	}
	d.nextName++
	d.globals = append(d.globals, &g)

	d.log.Debug("global created", "interface", iface, "version", version, "name", g.name)
	return &g
}

// Globals returns the currently advertised globals.
func (d *Display) Globals() []*Global {
	return slices.Clone(d.globals)
}

// Global returns the advertised global with the given interface name.
func (d *Display) Global(iface string) (*Global, bool) {
	i := slices.IndexFunc(d.globals, func(g *Global) bool { return g.iface == iface })
	if i < 0 {
		return nil, false
	}
	return d.globals[i], true
}

// Clients returns the currently connected clients.
func (d *Display) Clients() []*Client {
	return slices.Clone(d.clients)
}

// Destroy disconnects every client.
func (d *Display) Destroy() {
	for _, c := range slices.Clone(d.clients) {
		c.Destroy()
	}
}

func (g *Global) Name() uint32      { return g.name }
func (g *Global) Interface() string { return g.iface }
func (g *Global) Version() uint32   { return g.version }

// Destroy removes the global from the display. Existing resources
// bound to it are unaffected.
func (g *Global) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true

	d := g.display
	d.globals = util.Remove(d.globals, g)
	d.log.Debug("global destroyed", "interface", g.iface, "name", g.name)
}

// NewClient creates a client that receives events by writing them to
// w. If maxObjects is greater than zero, attempts to create more than
// that many resources for the client fail with ErrNoMemory.
func (d *Display) NewClient(w io.Writer, maxObjects int) *Client {
	c := Client{
		display:    d,
		w:          w,
		objects:    make(map[uint32]*Resource),
		maxObjects: maxObjects,
	}
	d.clients = append(d.clients, &c)
	c.log = d.log.With("client", fmt.Sprintf("%p", &c))

	c.log.Debug("client connected")
	return &c
}

func (d *Display) removeClient(c *Client) {
	d.clients = util.Remove(d.clients, c)
}

// Bind binds client to g, creating an object with the given ID.
func (c *Client) Bind(g *Global, version, id uint32) error {
	if c.dead {
		return ErrClientDead
	}
	if g.destroyed {
		return fmt.Errorf("bind %v: global %v has been removed", g.iface, g.name)
	}
	if (version == 0) || (version > g.version) {
		c.PostError(DisplayID, ErrorInvalidObject, fmt.Sprintf("invalid version for global %v (%v): have %v, wanted %v", g.iface, g.name, g.version, version))
		return fmt.Errorf("bind %v: unsupported version %v", g.iface, version)
	}

	g.bind(c, version, id)
	return nil
}

// deleteID tells the client that it may reuse id.
func (c *Client) deleteID(id uint32) {
	var e wire.Encoder
	e.Uint(id)
	c.send(e.Message(DisplayID, displayDeleteID))
}
