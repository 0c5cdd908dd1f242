package main

import (
	"fmt"
	"strconv"
	"strings"

	"deedles.dev/notch/geom"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List known display panels",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(panels.Panels()))
		for _, p := range panels.Panels() {
			cutouts := make([]string, 0, len(p.Cutouts))
			for _, c := range p.Cutouts {
				cutouts = append(cutouts, fmt.Sprintf("%v (%v)", c.Name, c.Bounds))
			}

			radii := make([]string, 0, geom.NumCorners)
			for _, r := range p.Radii {
				radii = append(radii, strconv.Itoa(r))
			}

			rows = append(rows, []string{
				p.Name,
				strings.Join(p.Compatibles, ", "),
				fmt.Sprintf("%vx%v", p.Width, p.Height),
				strings.Join(cutouts, "\n"),
				strings.Join(radii, " "),
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("NAME", "COMPATIBLES", "RESOLUTION", "CUTOUTS", "RADII").
			Rows(rows...)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("PANELS"))
		fmt.Fprintln(out, t)
		return nil
	},
}
