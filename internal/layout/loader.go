// Package layout loads hand-placed starting populations from files.
// Layouts are seeding input only; the simulation never writes them back.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/layout/formats"
)

// ErrSizeMismatch is returned when a layout is applied to a grid of another size.
var ErrSizeMismatch = errors.New("layout: grid size mismatch")

// Layout is a complete starting population.
type Layout struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Organisms []formats.Placement
	Metadata  map[string]string
	FilePath  string
}

// Result reports how a layout was applied.
type Result struct {
	Placed   ecosystem.Census
	Rejected int // entries that landed on an already occupied cell
}

// Configure sets the grid size of cfg to the layout's size.
func (l *Layout) Configure(cfg *config.Config) {
	cfg.Grid.Width = l.Width
	cfg.Grid.Height = l.Height
}

// Apply places every organism of the layout into e. Entries without an
// energy get the starting energy from pop. Coordinates must lie inside the
// grid; they are not wrapped.
func (l *Layout) Apply(e *ecosystem.Engine, pop ecosystem.Population) (Result, error) {
	var res Result

	w, h := e.GridDimensions()
	if w != l.Width || h != l.Height {
		return res, fmt.Errorf("%w: layout %dx%d, grid %dx%d", ErrSizeMismatch, l.Width, l.Height, w, h)
	}

	for i, o := range l.Organisms {
		if o.X < 0 || o.X >= w || o.Y < 0 || o.Y >= h {
			return res, fmt.Errorf("organism %d at (%d,%d): %w", i, o.X, o.Y, ecosystem.ErrOutOfRange)
		}

		energy := o.Energy
		if energy == 0 {
			energy = startEnergy(o.Species, pop)
		}

		ok, err := e.PlaceOrganism(o.Species, energy, o.Y*w+o.X)
		if err != nil {
			return res, fmt.Errorf("organism %d: %w", i, err)
		}
		if !ok {
			res.Rejected++
			continue
		}
		switch o.Species {
		case ecosystem.Prey:
			res.Placed.Prey++
		case ecosystem.Predator:
			res.Placed.Predator++
		}
	}

	res.Placed.Empty = w*h - e.PopulationCount()
	return res, nil
}

func startEnergy(s ecosystem.Species, pop ecosystem.Population) float64 {
	if s == ecosystem.Predator {
		return pop.PredatorEnergy
	}
	return pop.PreyEnergy
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Returns layouts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		layouts = append(layouts, layout)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Layout{
		ID:        parsed.ID,
		Name:      parsed.Name,
		Width:     parsed.Width,
		Height:    parsed.Height,
		Organisms: parsed.Organisms,
		Metadata:  parsed.Metadata,
		FilePath:  path,
	}, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, lay := range layouts {
		if lay.ID == id {
			return lay, nil
		}
	}

	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Layout, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
