package desktop

import (
	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/geom"
	"deedles.dev/notch/panel"
)

// OutputConfig is the configuration applied to outputs with a matching
// name when they are added.
type OutputConfig struct {
	Name string

	// X and Y are the position of the output in the layout. If both
	// are -1, the output is placed automatically.
	X, Y int

	// Width and Height select the mode of the output. If either is
	// zero, the preferred mode is used.
	Width, Height int

	Scale     float64
	Transform geom.Transform

	// Compatibles identify the display panel, most specific first.
	Compatibles []string
}

type Output struct {
	desktop *Desktop
	name    string

	origin    geom.Point[int]
	mode      geom.Point[int]
	scale     float64
	transform geom.Transform
	panel     *panel.Panel
}

// AddOutput adds an output whose preferred mode is the given size,
// configuring it with the first matching entry of OutputConfigs.
func (d *Desktop) AddOutput(name string, preferred geom.Point[int]) *Output {
	out := Output{
		desktop: d,
		name:    name,
		mode:    preferred,
		scale:   1,
	}

	for _, config := range d.OutputConfigs {
		if config.Name != name {
			continue
		}

		d.configureOutput(&out, &config)
		d.outputs = append(d.outputs, &out)
		return &out
	}

	d.layoutOutput(&out, nil)
	d.outputs = append(d.outputs, &out)
	return &out
}

func (d *Desktop) configureOutput(out *Output, config *OutputConfig) {
	d.setOutputPanel(out, config)
	d.setOutputMode(out, config)

	if config.Scale > 0 {
		out.scale = config.Scale
	}

	if config.Transform.Valid() {
		out.transform = config.Transform
	}

	d.layoutOutput(out, config)
}

func (d *Desktop) setOutputPanel(out *Output, config *OutputConfig) {
	if (d.panels == nil) || (len(config.Compatibles) == 0) {
		return
	}

	p, err := d.panels.Lookup(config.Compatibles)
	if err != nil {
		d.log.Warn("no panel for output", "output", out.name, "err", err)
		return
	}
	out.panel = p
	d.log.Info("found panel", "output", out.name, "panel", p.Name)
}

func (d *Desktop) setOutputMode(out *Output, config *OutputConfig) {
	if (config.Width != 0) && (config.Height != 0) {
		out.mode = geom.Pt(config.Width, config.Height)
		return
	}

	if out.mode.IsZero() && (out.panel != nil) {
		out.mode = out.panel.Size()
	}
}

func (d *Desktop) layoutOutput(out *Output, config *OutputConfig) {
	if (config == nil) || (config.X == -1) && (config.Y == -1) {
		var x int
		for _, other := range d.outputs {
			x = max(x, other.Box().Max.X)
		}
		out.origin = geom.Pt(x, 0)
		return
	}

	out.origin = geom.Pt(config.X, config.Y)
}

func (out *Output) Name() string              { return out.name }
func (out *Output) Mode() geom.Point[int]     { return out.mode }
func (out *Output) Scale() float64            { return out.scale }
func (out *Output) Transform() geom.Transform { return out.transform }
func (out *Output) Panel() *panel.Panel       { return out.panel }

// EffectiveResolution returns the size of the output in layout
// coordinates.
func (out *Output) EffectiveResolution() geom.Point[int] {
	return out.transform.Size(geom.ScaleSize(out.mode, out.scale))
}

// Box returns the area of the layout that the output occupies.
func (out *Output) Box() geom.Rect[int] {
	return geom.Rect[int]{Max: out.EffectiveResolution()}.Add(out.origin)
}

// State returns a snapshot of the output for the cutouts protocol.
func (out *Output) State() cutouts.OutputState {
	return cutouts.OutputState{
		Name:      out.name,
		Origin:    out.origin,
		Mode:      out.mode,
		Scale:     out.scale,
		Transform: out.transform,
		Panel:     out.panel,
	}
}

// SetScale changes the scale of the output and reconfigures the views
// that fill it.
func (out *Output) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	out.update(func() { out.scale = scale })
}

// SetTransform changes the transform of the output and reconfigures
// the views that fill it.
func (out *Output) SetTransform(t geom.Transform) {
	out.update(func() { out.transform = t })
}

func (out *Output) update(f func()) {
	var filling []*Toplevel
	for _, t := range out.desktop.toplevels {
		if t.fillsOutput() && (t.output == out) {
			filling = append(filling, t)
		}
	}

	f()

	for _, t := range filling {
		t.fill(out)
	}
}
