package cutouts

import (
	"errors"
	"fmt"
	"io"

	"deedles.dev/notch/internal/util"
	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// Manager is the xx_cutouts_manager_v1 global. It creates and keeps
// track of every Cutouts object.
type Manager struct {
	log    *log.Logger
	host   Host
	global *wayland.Global

	resources []*wayland.Resource
	cutouts   []*Cutouts

	nextID    uint32
	destroyed bool
}

// NewManager creates a manager and advertises it on display.
func NewManager(display *wayland.Display, host Host, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Manager{
		log:    logger,
		host:   host,
		nextID: 1,
	}
	m.global = display.CreateGlobal(ManagerInterface, ManagerVersion, m.bind)
	return &m
}

// Global returns the advertised global.
func (m *Manager) Global() *wayland.Global {
	return m.global
}

// Cutouts returns every live Cutouts object.
func (m *Manager) Cutouts() []*Cutouts {
	return slices.Clone(m.cutouts)
}

// Resources returns the manager objects that clients have bound.
func (m *Manager) Resources() []*wayland.Resource {
	return slices.Clone(m.resources)
}

// allocID returns a new ID for a box or corner. IDs are never zero.
func (m *Manager) allocID() uint32 {
	id := m.nextID
	m.nextID++
	if m.nextID == 0 {
		m.nextID = 1
	}
	return id
}

func (m *Manager) remove(c *Cutouts) {
	m.cutouts = util.Remove(m.cutouts, c)
}

func (m *Manager) bind(client *wayland.Client, version, id uint32) {
	r, err := client.NewResource(ManagerInterface, version, id)
	if err != nil {
		m.log.Error("bind", "err", err)
		client.PostNoMemory()
		return
	}

	r.SetImplementation(m.handleRequest, m, m.onResourceDestroy)
	m.resources = append(m.resources, r)
	m.log.Debug("bound", "manager", r)
}

func (m *Manager) onResourceDestroy(r *wayland.Resource) {
	m.log.Debug("destroying", "manager", r)
	m.resources = util.Remove(m.resources, r)
}

func (m *Manager) handleRequest(r *wayland.Resource, opcode uint16, args *wire.Decoder) error {
	switch opcode {
	case managerDestroy:
		if err := args.Finish(); err != nil {
			return err
		}
		r.Destroy()
		return nil

	case managerGetCutouts:
		id := args.NewID()
		surface := args.Object()
		if err := args.Finish(); err != nil {
			return err
		}
		return m.getCutouts(r, id, surface)

	default:
		return fmt.Errorf("unknown opcode %v", opcode)
	}
}

func (m *Manager) getCutouts(r *wayland.Resource, id, surfaceID uint32) error {
	client := r.Client()
	if m.destroyed {
		client.PostError(wayland.DisplayID, wayland.ErrorImplementation, "cutouts manager has been destroyed")
		return nil
	}

	surface, ok := client.Resource(surfaceID)
	if !ok {
		client.PostError(wayland.DisplayID, wayland.ErrorInvalidObject, fmt.Sprintf("invalid object %v", surfaceID))
		return nil
	}

	toplevel, ok := m.host.ToplevelFromSurface(surface)
	if !ok {
		r.PostError(ErrorInvalidRole, "Surface not a toplevel")
		return nil
	}

	cr, err := client.NewResource(CutoutsInterface, r.Version(), id)
	if err != nil {
		if errors.Is(err, wayland.ErrNoMemory) {
			client.PostNoMemory()
			return nil
		}
		return err
	}

	c := newCutouts(m, cr, toplevel)
	m.log.Debug("new cutouts", "cutouts", cr, "surface", surface)

	c.sendCutouts()
	m.cutouts = append(m.cutouts, c)
	return nil
}

// Destroy destroys every Cutouts object and then removes the global.
// Protocol objects that clients still hold become inert.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true

	for _, c := range slices.Clone(m.cutouts) {
		c.destroy()
	}
	m.global.Destroy()
}
