package cutouts_test

import (
	"bytes"
	"testing"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/desktop"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
	"github.com/stretchr/testify/require"
)

const (
	managerID = 2
	surfaceID = 3
	cutoutsID = 4
)

type clientBox struct {
	ID   uint32
	Rect geom.Rect[int]
	Type cutouts.Type
}

type clientCorner struct {
	ID       uint32
	Position geom.Corner
	Radius   int
}

type clientBatch struct {
	Boxes   []clientBox
	Corners []clientCorner
}

type protocolError struct {
	Object uint32
	Code   uint32
	Msg    string
}

// recorder is the client end of a connection. It decodes the events
// of the connection's xx_cutouts_v1 objects, buffering boxes and
// corners until a configure arrives. Only wl_display and xx_cutouts_v1
// objects send events in these tests.
type recorder struct {
	buf bytes.Buffer

	pending, current clientBatch
	configures       int
	errors           []protocolError
}

func (rec *recorder) Write(data []byte) (int, error) {
	return rec.buf.Write(data)
}

func (rec *recorder) drain(t *testing.T) {
	t.Helper()

	for rec.buf.Len() > 0 {
		msg, err := wire.ReadMessage(&rec.buf)
		require.NoError(t, err)

		args := msg.Decoder()
		switch msg.Sender {
		case wayland.DisplayID:
			switch msg.Opcode {
			case 0:
				rec.errors = append(rec.errors, protocolError{
					Object: args.Object(),
					Code:   args.Uint(),
					Msg:    args.String(),
				})
			case 1:
				args.Uint()
			}

		default:
			switch msg.Opcode {
			case cutouts.EventCutoutBox:
				x, y, w, h := args.Int(), args.Int(), args.Int(), args.Int()
				rec.pending.Boxes = append(rec.pending.Boxes, clientBox{
					Rect: geom.Box(int(x), int(y), int(w), int(h)),
					Type: cutouts.Type(args.Uint()),
					ID:   args.Uint(),
				})
			case cutouts.EventCutoutCorner:
				rec.pending.Corners = append(rec.pending.Corners, clientCorner{
					Position: geom.Corner(args.Uint()),
					Radius:   int(args.Uint()),
					ID:       args.Uint(),
				})
			case cutouts.EventConfigure:
				rec.current = rec.pending
				rec.pending = clientBatch{}
				rec.configures++
			default:
				t.Fatalf("unexpected event %v from %v", msg.Opcode, msg.Sender)
			}
		}

		require.NoError(t, args.Finish())
	}
}

type env struct {
	display *wayland.Display
	desktop *desktop.Desktop
	manager *cutouts.Manager
	output  *desktop.Output

	client *wayland.Client
	rec    *recorder
}

func fajitaConfig() desktop.OutputConfig {
	return desktop.OutputConfig{
		Name:        "DSI-1",
		X:           -1,
		Y:           -1,
		Scale:       1,
		Compatibles: []string{"oneplus,fajita"},
	}
}

func newEnv(t *testing.T, config desktop.OutputConfig, maxObjects int) *env {
	t.Helper()

	display := wayland.NewDisplay(nil)
	d := desktop.New(display, panel.Builtin(), nil)
	d.OutputConfigs = []desktop.OutputConfig{config}
	out := d.AddOutput(config.Name, geom.Pt(1080, 2340))

	rec := new(recorder)
	e := env{
		display: display,
		desktop: d,
		manager: cutouts.NewManager(display, d, nil),
		output:  out,
		client:  display.NewClient(rec, maxObjects),
		rec:     rec,
	}
	require.NoError(t, e.client.Bind(e.manager.Global(), cutouts.ManagerVersion, managerID))
	return &e
}

func (e *env) createToplevel(t *testing.T) *desktop.Toplevel {
	t.Helper()

	s, err := e.desktop.CreateSurface(e.client, surfaceID)
	require.NoError(t, err)
	toplevel, err := e.desktop.CreateToplevel(s, "test", geom.Pt(200, 300))
	require.NoError(t, err)
	return toplevel
}

func (e *env) getCutouts(t *testing.T, id, surface uint32) {
	t.Helper()

	var enc wire.Encoder
	enc.NewID(id)
	enc.Object(surface)
	require.NoError(t, e.client.Dispatch(enc.Message(managerID, 1)))
	e.rec.drain(t)
}

func (e *env) setUnhandled(t *testing.T, id uint32, ids ...uint32) {
	t.Helper()

	var enc wire.Encoder
	enc.Array(wire.Uint32Array(ids))
	require.NoError(t, e.client.Dispatch(enc.Message(id, 0)))
}

func (e *env) destroyCutouts(t *testing.T, id uint32) {
	t.Helper()

	require.NoError(t, e.client.Dispatch(wire.Message{Sender: id, Opcode: 1}))
	e.rec.drain(t)
}

func (e *env) cutouts(t *testing.T) *cutouts.Cutouts {
	t.Helper()

	all := e.manager.Cutouts()
	require.Len(t, all, 1)
	return all[0]
}

// ack acknowledges the latest configure of toplevel.
func ack(t *testing.T, toplevel *desktop.Toplevel) {
	t.Helper()

	serials := toplevel.PendingSerials()
	require.NotEmpty(t, serials)
	require.NoError(t, toplevel.AckConfigure(serials[len(serials)-1]))
}
