package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/desktop"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/internal/logger"
	"deedles.dev/notch/wayland"
	"deedles.dev/notch/wire"
	"github.com/spf13/cobra"
)

// Object IDs used by the simulated client.
const (
	simManagerID = 2
	simSurfaceID = 3
	simCutoutsID = 4
)

// fallbackMode is the mode of outputs that have no known panel and no
// configured mode.
var fallbackMode = geom.Pt(1920, 1080)

var simulateFlags struct {
	unhandled  bool
	fullscreen bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the cutouts protocol against a headless desktop",
	Long: `simulate starts a headless desktop with the configured outputs, connects a
client, creates a toplevel, requests cutout information for it and maximizes
it. The events received by the client are printed along with the state that
the compositor holds afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputs, err := cfg.DesktopOutputs()
		if err != nil {
			return err
		}
		return simulate(cmd.OutOrStdout(), outputs)
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateFlags.unhandled, "unhandled", false, "declare every received cutout as unhandled")
	simulateCmd.Flags().BoolVar(&simulateFlags.fullscreen, "fullscreen", false, "make the window fullscreen instead of maximizing it")
}

func simulate(w io.Writer, outputs []desktop.OutputConfig) error {
	display := wayland.NewDisplay(logger.For("wayland"))
	defer display.Destroy()

	d := desktop.New(display, panels, logger.For("desktop"))
	d.OutputConfigs = outputs
	for _, config := range outputs {
		mode := geom.Pt(config.Width, config.Height)
		if (config.Width == 0) || (config.Height == 0) {
			if _, err := panels.Lookup(config.Compatibles); err != nil {
				mode = fallbackMode
			}
		}
		d.AddOutput(config.Name, mode)
	}

	manager := cutouts.NewManager(display, d, logger.For("cutouts"))
	defer manager.Destroy()

	var events bytes.Buffer
	client := display.NewClient(&events, 0)
	if err := client.Bind(manager.Global(), cutouts.ManagerVersion, simManagerID); err != nil {
		return err
	}

	surface, err := d.CreateSurface(client, simSurfaceID)
	if err != nil {
		return err
	}
	toplevel, err := d.CreateToplevel(surface, "simulate", geom.Pt(320, 240))
	if err != nil {
		return err
	}

	var getCutouts wire.Encoder
	getCutouts.NewID(simCutoutsID)
	getCutouts.Object(simSurfaceID)
	if err := send(client, getCutouts.Message(simManagerID, 1)); err != nil {
		return err
	}

	if simulateFlags.fullscreen {
		toplevel.SetFullscreen(true)
	} else {
		toplevel.SetMaximized(true)
	}

	fmt.Fprintln(w, titleStyle.Render("EVENTS"))
	batch, err := printEvents(w, &events)
	if err != nil {
		return err
	}

	if simulateFlags.unhandled && (len(batch) > 0) {
		var setUnhandled wire.Encoder
		setUnhandled.Array(wire.Uint32Array(batch))
		if err := send(client, setUnhandled.Message(simCutoutsID, 0)); err != nil {
			return err
		}
	}

	var updates int
	for _, c := range manager.Cutouts() {
		l := c.OnUnhandledUpdated(func(*cutouts.Cutouts) { updates++ })
		defer l.Destroy()
	}

	serials := toplevel.PendingSerials()
	if err := toplevel.AckConfigure(serials[len(serials)-1]); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("COMPOSITOR STATE"))
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("window %v", toplevel.Box())))
	for _, c := range manager.Cutouts() {
		current := c.Current()
		fmt.Fprintf(w, "%v: %v, %v boxes, %v corners\n", c.Resource(), c.State(), len(current.Boxes), len(current.Corners))
		fmt.Fprintf(w, "unhandled: %v (%v updates)\n", formatIDs(c.CurrentUnhandled()), updates)
	}
	return nil
}

// send writes msg to the connection the way a client would and
// dispatches it.
func send(client *wayland.Client, msg wire.Message) error {
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return err
	}
	_, err := client.ReadFrom(&buf)
	return err
}

// printEvents decodes and prints the events in r, returning the IDs
// received in the last complete xx_cutouts_v1 batch.
func printEvents(w io.Writer, r io.Reader) ([]uint32, error) {
	var pending, current []uint32
	for {
		msg, err := wire.ReadMessage(r)
		if err != nil {
			if err == io.EOF {
				return current, nil
			}
			return nil, err
		}

		args := msg.Decoder()
		switch {
		case msg.Sender == wayland.DisplayID:
			switch msg.Opcode {
			case 0:
				fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("error: object %v, code %v: %v", args.Object(), args.Uint(), args.String())))
			default:
				args.Uint()
				continue
			}

		case msg.Opcode == cutouts.EventCutoutBox:
			x, y, width, height := args.Int(), args.Int(), args.Int(), args.Int()
			typ := cutouts.Type(args.Uint())
			id := args.Uint()
			pending = append(pending, id)
			fmt.Fprintf(w, "cutout_box %v %v (id %v)\n", typ, geom.Box(int(x), int(y), int(width), int(height)), id)

		case msg.Opcode == cutouts.EventCutoutCorner:
			pos := geom.Corner(args.Uint())
			radius := args.Uint()
			id := args.Uint()
			pending = append(pending, id)
			fmt.Fprintf(w, "cutout_corner %v radius %v (id %v)\n", pos, radius, id)

		case msg.Opcode == cutouts.EventConfigure:
			current, pending = pending, nil
			fmt.Fprintln(w, dimStyle.Render("configure"))
		}

		if err := args.Finish(); err != nil {
			return nil, fmt.Errorf("decode event %v of %v: %w", msg.Opcode, msg.Sender, err)
		}
	}
}

func formatIDs(ids []uint32) string {
	if len(ids) == 0 {
		return "none"
	}

	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, fmt.Sprint(id))
	}
	return strings.Join(s, ", ")
}
