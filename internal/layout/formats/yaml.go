// Package formats provides pluggable layout file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

// YAMLLayout represents the YAML structure for a layout file.
type YAMLLayout struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	Organisms []YAMLOrganism    `yaml:"organisms"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLOrganism represents a single organism in YAML format.
type YAMLOrganism struct {
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Species string  `yaml:"species"`
	Energy  float64 `yaml:"energy,omitempty"` // 0 means the species' starting energy
}

// Placement is one parsed organism.
type Placement struct {
	X, Y    int
	Species ecosystem.Species
	Energy  float64
}

// Layout represents a parsed layout ready for use.
type Layout struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Organisms []Placement
	Metadata  map[string]string
}

// ParseYAML parses a YAML layout file.
// Unknown species names and negative energies are errors.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layout := Layout{
		ID:        yl.ID,
		Name:      yl.Name,
		Width:     yl.Size.W,
		Height:    yl.Size.H,
		Organisms: make([]Placement, 0, len(yl.Organisms)),
		Metadata:  yl.Metadata,
	}

	for i, o := range yl.Organisms {
		species, err := ecosystem.ParseSpecies(o.Species)
		if err != nil {
			return Layout{}, fmt.Errorf("organism %d: %w", i, err)
		}
		if o.Energy < 0 {
			return Layout{}, fmt.Errorf("organism %d: negative energy %v", i, o.Energy)
		}
		layout.Organisms = append(layout.Organisms, Placement{
			X:       o.X,
			Y:       o.Y,
			Species: species,
			Energy:  o.Energy,
		})
	}

	return layout, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
