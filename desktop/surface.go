package desktop

import (
	"errors"
	"fmt"

	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
)

const SurfaceInterface = "wl_surface"

// wl_surface requests.
const (
	surfaceDestroy uint16 = 0
)

var ErrHasRole = errors.New("surface already has a role")

// Surface is a client surface. A surface shows nothing until it is
// given a role.
type Surface struct {
	desktop  *Desktop
	resource *wayland.Resource
	toplevel *Toplevel
}

// CreateSurface creates a surface with the given object ID for client.
func (d *Desktop) CreateSurface(client *wayland.Client, id uint32) (*Surface, error) {
	r, err := client.NewResource(SurfaceInterface, 1, id)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	s := Surface{
		desktop:  d,
		resource: r,
	}
	r.SetImplementation(s.handleRequest, &s, s.onResourceDestroy)
	return &s, nil
}

// SurfaceFromResource returns the surface that r is the protocol
// object of.
func SurfaceFromResource(r *wayland.Resource) (*Surface, bool) {
	s, ok := r.Data().(*Surface)
	return s, ok
}

func (s *Surface) Resource() *wayland.Resource {
	return s.resource
}

// Toplevel returns the toplevel role of s, if it has one.
func (s *Surface) Toplevel() (*Toplevel, bool) {
	return s.toplevel, s.toplevel != nil
}

func (s *Surface) handleRequest(r *wayland.Resource, opcode uint16, args *wire.Decoder) error {
	switch opcode {
	case surfaceDestroy:
		if err := args.Finish(); err != nil {
			return err
		}
		r.Destroy()
		return nil

	default:
		return fmt.Errorf("unknown opcode %v", opcode)
	}
}

func (s *Surface) onResourceDestroy(r *wayland.Resource) {
	if s.toplevel != nil {
		s.toplevel.Destroy()
	}
}
