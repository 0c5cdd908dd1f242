package panel

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"deedles.dev/notch/geom"
	"deedles.dev/notch/internal/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no panel matches a lookup.
var ErrNotFound = errors.New("no panel found")

//go:embed panels.yaml
var builtinYAML []byte

var builtin *Database

func init() {
	db, err := ParseDatabase(builtinYAML)
	if err != nil {
		panic(fmt.Errorf("parse builtin panel database: %w", err))
	}
	builtin = db
}

// Builtin returns the database of panels known without any
// configuration.
func Builtin() *Database {
	return builtin
}

// Database is a set of panel descriptions, keyed by the device tree
// compatibles of the devices they're built into.
type Database struct {
	panels []*Panel
}

type rawDatabase struct {
	Panels []rawPanel `yaml:"panels"`
}

type rawPanel struct {
	Name        string      `yaml:"name"`
	Compatibles []string    `yaml:"compatibles"`
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	CornerRadii []int       `yaml:"corner_radii"`
	Cutouts     []rawCutout `yaml:"cutouts"`
}

type rawCutout struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func (raw rawPanel) panel() (*Panel, error) {
	p := Panel{
		Name:        raw.Name,
		Compatibles: raw.Compatibles,
		Width:       raw.Width,
		Height:      raw.Height,
	}

	switch len(raw.CornerRadii) {
	case 0:
	case 1:
		for i := range p.Radii {
			p.Radii[i] = raw.CornerRadii[0]
		}
	case len(p.Radii):
		copy(p.Radii[:], raw.CornerRadii)
	default:
		return nil, fmt.Errorf("panel %q: expected 1 or %v corner radii, got %v", raw.Name, len(p.Radii), len(raw.CornerRadii))
	}

	for _, c := range raw.Cutouts {
		p.Cutouts = append(p.Cutouts, Cutout{
			Name:   c.Name,
			Bounds: geom.Box(c.X, c.Y, c.Width, c.Height),
		})
	}

	return &p, p.Validate()
}

// ParseDatabase parses a YAML panel database.
func ParseDatabase(data []byte) (*Database, error) {
	var raw rawDatabase
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode panel database: %w", err)
	}

	db := Database{panels: make([]*Panel, 0, len(raw.Panels))}
	for _, rp := range raw.Panels {
		p, err := rp.panel()
		if err != nil {
			return nil, err
		}
		db.panels = append(db.panels, p)
	}

	return &db, nil
}

// LoadDatabase reads a YAML panel database from a file.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read panel database: %w", err)
	}

	db, err := ParseDatabase(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return db, nil
}

// Panels returns all of the panels in the database.
func (db *Database) Panels() []*Panel {
	return slices.Clone(db.panels)
}

// Merge returns a database containing the panels of both db and
// other. Panels in other replace panels in db with the same name.
func (db *Database) Merge(other *Database) *Database {
	merged := Database{panels: slices.Clone(db.panels)}
	for _, p := range other.panels {
		i := slices.IndexFunc(merged.panels, func(e *Panel) bool { return e.Name == p.Name })
		if i < 0 {
			merged.panels = append(merged.panels, p)
			continue
		}
		merged.panels[i] = p
	}
	return &merged
}

// Lookup finds the panel for a device. Compatibles are tried in order,
// so the most specific one should come first.
func (db *Database) Lookup(compatibles []string) (*Panel, error) {
	for _, c := range compatibles {
		p, ok := util.FindFunc(db.panels, func(p *Panel) bool {
			return slices.Contains(p.Compatibles, c)
		})
		if ok {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w for %q", ErrNotFound, compatibles)
}
