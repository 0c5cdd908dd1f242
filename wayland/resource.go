package wayland

import (
	"fmt"

	"deedles.dev/notch/wire"
)

// Handler handles a request sent to a resource. Returning an error
// posts an invalid_method error to the client.
type Handler func(r *Resource, opcode uint16, args *wire.Decoder) error

// Resource is an object in a client's object table.
type Resource struct {
	client  *Client
	id      uint32
	iface   string
	version uint32

	handler   Handler
	data      any
	destroy   func(*Resource)
	destroyed bool
}

func (r *Resource) Client() *Client   { return r.client }
func (r *Resource) ID() uint32        { return r.id }
func (r *Resource) Interface() string { return r.iface }
func (r *Resource) Version() uint32   { return r.version }
func (r *Resource) Data() any         { return r.data }
func (r *Resource) Destroyed() bool   { return r.destroyed }

func (r *Resource) String() string {
	return fmt.Sprintf("%v@%v", r.iface, r.id)
}

// SetImplementation sets the request handler, the user data and the
// function to be called when the resource is destroyed. Any of them
// may be nil.
func (r *Resource) SetImplementation(handler Handler, data any, destroy func(*Resource)) {
	r.handler = handler
	r.data = data
	r.destroy = destroy
}

// PostEvent sends an event from r with the arguments encoded in e,
// which may be nil.
func (r *Resource) PostEvent(opcode uint16, e *wire.Encoder) {
	if r.destroyed {
		return
	}
	if e == nil {
		e = new(wire.Encoder)
	}
	r.client.send(e.Message(r.id, opcode))
}

// PostError posts a protocol error about r to its client.
func (r *Resource) PostError(code uint32, format string, args ...any) {
	r.client.PostError(r.id, code, fmt.Sprintf(format, args...))
}

// Destroy calls the destroy function of the resource and removes it
// from its client's object table.
func (r *Resource) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true

	if r.destroy != nil {
		r.destroy(r)
	}

	delete(r.client.objects, r.id)
	if r.id < serverIDStart {
		r.client.deleteID(r.id)
	}
}
