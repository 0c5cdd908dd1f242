package main

import (
	"fmt"

	"deedles.dev/notch/internal/config"
	"deedles.dev/notch/internal/logger"
	"deedles.dev/notch/panel"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	panels *panel.Database

	rootCmd = &cobra.Command{
		Use:   "notch",
		Short: "Display cutout negotiation for Wayland toplevels",
		Long: `notch inspects the display panel database and runs the xx_cutouts_v1
protocol against a headless desktop, showing which parts of a window are
covered by display cutouts and rounded corners.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is notch.yaml in the config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(simulateCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(config.New(configPath))
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if level != "" {
		if err := logger.SetLevel(level); err != nil {
			return err
		}
	}

	panels = panel.Builtin()
	if cfg.PanelDB != "" {
		db, err := panel.LoadDatabase(cfg.PanelDB)
		if err != nil {
			return fmt.Errorf("load panel database: %w", err)
		}
		panels = panels.Merge(db)
		logger.Logger.Debug("loaded panel database", "path", cfg.PanelDB, "panels", len(db.Panels()))
	}

	return nil
}
