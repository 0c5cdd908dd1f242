// Package panel describes the physical shape of display panels: the
// rectangular cutouts (notches, punch holes) that do not show any
// pixels and the radii of rounded display corners, both in device
// pixels.
package panel

import (
	"errors"
	"fmt"

	"deedles.dev/notch/geom"
)

// Cutout is a rectangular area of a panel that can't display pixels.
type Cutout struct {
	Name   string
	Bounds geom.Rect[int]
}

// Corner is a rounded corner of a panel.
type Corner struct {
	Position geom.Corner
	Radius   int
}

// Panel is the description of a display panel. Panels returned by a
// Database are shared and must not be modified.
type Panel struct {
	Name        string
	Compatibles []string

	// Width and Height are the resolution of the panel in device
	// pixels.
	Width, Height int

	Cutouts []Cutout

	// Radii holds the radius of each corner, indexed by position. A
	// radius of zero means that the corner isn't rounded.
	Radii [geom.NumCorners]int
}

// Size returns the resolution of the panel.
func (p *Panel) Size() geom.Point[int] {
	return geom.Pt(p.Width, p.Height)
}

// Region returns the union of the panel's cutouts.
func (p *Panel) Region() geom.Region[int] {
	if p == nil {
		return geom.Region[int]{}
	}

	rects := make([]geom.Rect[int], 0, len(p.Cutouts))
	for _, c := range p.Cutouts {
		rects = append(rects, c.Bounds)
	}
	return geom.RegionOf(rects...)
}

// Corners returns the rounded corners of the panel in position order,
// skipping corners without a radius.
func (p *Panel) Corners() []Corner {
	if p == nil {
		return nil
	}

	corners := make([]Corner, 0, len(p.Radii))
	for pos, r := range p.Radii {
		if r == 0 {
			continue
		}
		corners = append(corners, Corner{Position: geom.Corner(pos), Radius: r})
	}
	return corners
}

// Corner returns the rounded corner at pos, if there is one.
func (p *Panel) Corner(pos geom.Corner) (Corner, bool) {
	if (p == nil) || (pos >= geom.NumCorners) || (p.Radii[pos] == 0) {
		return Corner{}, false
	}
	return Corner{Position: pos, Radius: p.Radii[pos]}, true
}

// Validate checks that the description is self-consistent.
func (p *Panel) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if len(p.Compatibles) == 0 {
		errs = append(errs, errors.New("no compatibles"))
	}
	if (p.Width <= 0) || (p.Height <= 0) {
		errs = append(errs, fmt.Errorf("invalid resolution %vx%v", p.Width, p.Height))
	}

	screen := geom.Rt(0, 0, p.Width, p.Height)
	for _, c := range p.Cutouts {
		if c.Bounds.Empty() {
			errs = append(errs, fmt.Errorf("cutout %q is empty", c.Name))
			continue
		}
		if !c.Bounds.In(screen) {
			errs = append(errs, fmt.Errorf("cutout %q (%v) is outside of the panel", c.Name, c.Bounds))
		}
	}

	for pos, r := range p.Radii {
		if r < 0 {
			errs = append(errs, fmt.Errorf("negative %v radius", geom.Corner(pos)))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("panel %q: %w", p.Name, err)
	}
	return nil
}
