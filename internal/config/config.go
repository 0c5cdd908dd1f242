// Package config loads the configuration of the notch tool using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deedles.dev/notch/desktop"
	"deedles.dev/notch/geom"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// PanelDB is the path to a panel database that is merged over the
	// built-in one.
	PanelDB string `mapstructure:"panel_db"`

	Outputs []OutputConfig `mapstructure:"outputs"`
}

// OutputConfig describes an output of the simulated desktop.
type OutputConfig struct {
	Name        string   `mapstructure:"name"`
	Compatibles []string `mapstructure:"compatibles"`

	// X and Y are the position of the output in the layout. The output
	// is placed automatically if either is missing.
	X *int `mapstructure:"x"`
	Y *int `mapstructure:"y"`

	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	Scale     float64 `mapstructure:"scale"`
	Transform string  `mapstructure:"transform"`
}

// Desktop converts c to the form understood by the desktop.
func (c OutputConfig) Desktop() (desktop.OutputConfig, error) {
	transform := geom.TransformNormal
	if c.Transform != "" {
		t, err := geom.ParseTransform(c.Transform)
		if err != nil {
			return desktop.OutputConfig{}, fmt.Errorf("output %v: %w", c.Name, err)
		}
		transform = t
	}

	if c.Scale < 0 {
		return desktop.OutputConfig{}, fmt.Errorf("output %v: negative scale %v", c.Name, c.Scale)
	}

	config := desktop.OutputConfig{
		Name:        c.Name,
		X:           -1,
		Y:           -1,
		Width:       c.Width,
		Height:      c.Height,
		Scale:       c.Scale,
		Transform:   transform,
		Compatibles: c.Compatibles,
	}
	if (c.X != nil) && (c.Y != nil) {
		config.X = *c.X
		config.Y = *c.Y
	}
	return config, nil
}

// DesktopOutputs converts every configured output.
func (c *Config) DesktopOutputs() ([]desktop.OutputConfig, error) {
	outputs := make([]desktop.OutputConfig, 0, len(c.Outputs))
	for _, out := range c.Outputs {
		config, err := out.Desktop()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, config)
	}
	return outputs, nil
}

var defaultOutputs = []map[string]any{
	{
		"name":        "DSI-1",
		"compatibles": []string{"oneplus,fajita"},
		"scale":       1.0,
		"transform":   "normal",
	},
}

// New returns a Viper instance that looks for notch.yaml in the usual
// places, or reads path if it isn't empty.
func New(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("notch")
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "notch"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "notch"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NOTCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "")
	v.SetDefault("panel_db", "")
	v.SetDefault("outputs", defaultOutputs)

	return v
}

// Load reads the configuration from v. A missing config file is not an
// error.
func Load(v *viper.Viper) (*Config, error) {
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	err = v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
