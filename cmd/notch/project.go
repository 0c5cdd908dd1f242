package main

import (
	"fmt"
	"io"

	"deedles.dev/notch/cutouts"
	"deedles.dev/notch/geom"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var projectFlags struct {
	compatibles []string
	scale       float64
	transform   string
	floating    bool
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a panel's cutouts into a window covering the output",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := panels.Lookup(projectFlags.compatibles)
		if err != nil {
			return err
		}

		transform, err := geom.ParseTransform(projectFlags.transform)
		if err != nil {
			return err
		}

		out := cutouts.OutputState{
			Name:      p.Name,
			Mode:      p.Size(),
			Scale:     projectFlags.scale,
			Transform: transform,
			Panel:     p,
		}
		view := cutouts.ViewState{
			Box:       out.Box(),
			Maximized: !projectFlags.floating,
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%v at scale %v, transform %v", p.Name, out.Scale, transform)))
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("window %v", view.Box)))
		printProjection(w, cutouts.Project(out, view))
		return nil
	},
}

func init() {
	projectCmd.Flags().StringSliceVar(&projectFlags.compatibles, "compatible", []string{"oneplus,fajita"}, "device tree compatibles of the panel")
	projectCmd.Flags().Float64Var(&projectFlags.scale, "scale", 1, "output scale")
	projectCmd.Flags().StringVar(&projectFlags.transform, "transform", "normal", "output transform (normal, 90, 180, 270, flipped, flipped-90, flipped-180, flipped-270)")
	projectCmd.Flags().BoolVar(&projectFlags.floating, "floating", false, "project into a floating window instead of a maximized one")
}

func printProjection(w io.Writer, p cutouts.Projection) {
	if p.Empty() {
		fmt.Fprintln(w, warnStyle.Render("no cutouts"))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("KIND", "POSITION", "GEOMETRY")
	for _, b := range p.Boxes {
		t.Row("box", "", b.String())
	}
	for _, c := range p.Corners {
		t.Row("corner", c.Position.String(), fmt.Sprintf("radius %v", c.Radius))
	}
	fmt.Fprintln(w, t)
}
