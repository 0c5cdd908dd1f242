package desktop_test

import (
	"bytes"
	"testing"

	"deedles.dev/notch/desktop"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDesktop(configs ...desktop.OutputConfig) (*desktop.Desktop, *wayland.Client) {
	display := wayland.NewDisplay(nil)
	d := desktop.New(display, panel.Builtin(), nil)
	d.OutputConfigs = configs
	return d, display.NewClient(new(bytes.Buffer), 0)
}

func TestAddOutput(t *testing.T) {
	d, _ := newDesktop(
		desktop.OutputConfig{Name: "DSI-1", X: -1, Y: -1, Scale: 2, Compatibles: []string{"unknown", "oneplus,fajita"}},
		desktop.OutputConfig{Name: "HDMI-A-1", X: 5000, Y: 10, Width: 800, Height: 600, Transform: geom.Transform90},
	)

	dsi := d.AddOutput("DSI-1", geom.Point[int]{})
	assert.Equal(t, geom.Pt(1080, 2340), dsi.Mode(), "mode comes from the panel")
	require.NotNil(t, dsi.Panel())
	assert.Equal(t, "OnePlus 6T", dsi.Panel().Name)
	assert.Equal(t, geom.Rt(0, 0, 540, 1170), dsi.Box())

	hdmi := d.AddOutput("HDMI-A-1", geom.Pt(1920, 1080))
	assert.Nil(t, hdmi.Panel())
	assert.Equal(t, geom.Box(5000, 10, 600, 800), hdmi.Box())

	virt := d.AddOutput("virtual", geom.Pt(100, 100))
	assert.Equal(t, geom.Box(5600, 0, 100, 100), virt.Box())
	assert.EqualValues(t, 1, virt.Scale())

	assert.Len(t, d.Outputs(), 3)
	out, ok := d.OutputAt(geom.Pt(5050, 500))
	require.True(t, ok)
	assert.Same(t, hdmi, out)

	states := d.OutputsIn(geom.Rt(500, 0, 5100, 20))
	require.Len(t, states, 2)
	assert.Equal(t, "DSI-1", states[0].Name)
	assert.Equal(t, "HDMI-A-1", states[1].Name)
	assert.Same(t, dsi.Panel(), states[0].Panel)
}

func TestToplevelConfigure(t *testing.T) {
	d, client := newDesktop(desktop.OutputConfig{Name: "DSI-1", X: -1, Y: -1, Compatibles: []string{"oneplus,fajita"}})
	d.AddOutput("DSI-1", geom.Point[int]{})

	s, err := d.CreateSurface(client, 3)
	require.NoError(t, err)
	toplevel, err := d.CreateToplevel(s, "term", geom.Pt(200, 400))
	require.NoError(t, err)
	assert.Equal(t, geom.Box(440, 970, 200, 400), toplevel.Box())
	assert.Equal(t, []uint32{1}, toplevel.PendingSerials())

	_, err = d.CreateToplevel(s, "again", geom.Pt(1, 1))
	assert.ErrorIs(t, err, desktop.ErrHasRole)

	var configured, acked []uint32
	toplevel.OnConfigure(func(serial uint32) { configured = append(configured, serial) })
	toplevel.OnAckConfigure(func(serial uint32) { acked = append(acked, serial) })

	toplevel.SetMaximized(true)
	assert.Equal(t, geom.Rt(0, 0, 1080, 2340), toplevel.Box())
	assert.True(t, toplevel.View().FillsOutput())

	toplevel.Resize(geom.Pt(10, 10))
	assert.Equal(t, geom.Rt(0, 0, 1080, 2340), toplevel.Box())

	toplevel.SetFullscreen(true)
	toplevel.SetMaximized(false)
	assert.True(t, toplevel.View().Fullscreen)
	assert.Equal(t, []uint32{2, 3, 4}, configured)

	assert.Error(t, toplevel.AckConfigure(99))
	require.NoError(t, toplevel.AckConfigure(3))
	assert.Equal(t, []uint32{3}, acked)
	assert.Equal(t, []uint32{4}, toplevel.PendingSerials())
	assert.Error(t, toplevel.AckConfigure(2))

	toplevel.SetFullscreen(false)
	toplevel.Move(geom.Pt(5, 6))
	assert.Equal(t, geom.Box(5, 6, 1080, 2340), toplevel.Box())
	assert.False(t, toplevel.View().FillsOutput())
}

func TestToplevelFromSurface(t *testing.T) {
	d, client := newDesktop()
	d.AddOutput("virtual", geom.Pt(640, 480))

	s, err := d.CreateSurface(client, 3)
	require.NoError(t, err)
	_, ok := d.ToplevelFromSurface(s.Resource())
	assert.False(t, ok)

	toplevel, err := d.CreateToplevel(s, "term", geom.Pt(10, 10))
	require.NoError(t, err)
	found, ok := d.ToplevelFromSurface(s.Resource())
	require.True(t, ok)
	assert.Same(t, toplevel, found)

	other, err := client.NewResource("wl_output", 4, 4)
	require.NoError(t, err)
	_, ok = d.ToplevelFromSurface(other)
	assert.False(t, ok)
}

func TestSurfaceDestroy(t *testing.T) {
	d, client := newDesktop()
	d.AddOutput("virtual", geom.Pt(640, 480))

	s, err := d.CreateSurface(client, 3)
	require.NoError(t, err)
	toplevel, err := d.CreateToplevel(s, "term", geom.Pt(10, 10))
	require.NoError(t, err)

	var destroyed int
	toplevel.OnDestroy(func() { destroyed++ })

	require.NoError(t, client.Dispatch(wire.Message{Sender: 3, Opcode: 0}))
	assert.Equal(t, 1, destroyed)
	assert.Empty(t, d.Toplevels())
	_, ok := s.Toplevel()
	assert.False(t, ok)
	assert.Error(t, toplevel.AckConfigure(1))

	toplevel.Destroy()
	assert.Equal(t, 1, destroyed)
}

func TestOutputUpdate(t *testing.T) {
	d, client := newDesktop()
	out := d.AddOutput("virtual", geom.Pt(1000, 500))

	s, err := d.CreateSurface(client, 3)
	require.NoError(t, err)
	maximized, err := d.CreateToplevel(s, "max", geom.Pt(10, 10))
	require.NoError(t, err)
	s, err = d.CreateSurface(client, 4)
	require.NoError(t, err)
	floating, err := d.CreateToplevel(s, "float", geom.Pt(10, 10))
	require.NoError(t, err)

	maximized.SetMaximized(true)
	floatingBox := floating.Box()

	out.SetTransform(geom.Transform270)
	out.SetScale(2)
	assert.Equal(t, geom.Rt(0, 0, 250, 500), maximized.Box())
	assert.Equal(t, floatingBox, floating.Box())
	assert.Len(t, maximized.PendingSerials(), 4)
	assert.Len(t, floating.PendingSerials(), 1)
}
