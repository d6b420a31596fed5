// Package scenarios registers the built-in simulation presets.
// Import it for side effects.
package scenarios

import (
	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/registry"
)

// preset is a scenario defined by a fixed set of overrides.
type preset struct {
	id          string
	title       string
	description string
	apply       func(cfg *config.Config)
}

func (p preset) ID() string { return p.id }
func (p preset) Title() string { return p.title }
func (p preset) Description() string { return p.description }
func (p preset) Apply(cfg *config.Config) { p.apply(cfg) }

// Classic is the 20x20 mouse and owl field.
func Classic() registry.Scenario {
	return preset{
		id:          "classic",
		title:       "Mice and Owls",
		description: "20x20 field, 1 in 4 cells seeded with mice and 1 in 40 with owls",
		apply: func(cfg *config.Config) {
			cfg.Grid = config.GridConfig{Width: 20, Height: 20}
			cfg.Population.PreyDensity = 0.25
			cfg.Population.PredatorDensity = 0.025
			cfg.Population.PreyEnergy = 600
			cfg.Population.PredatorEnergy = 500
		},
	}
}

// Savanna is a large field at the densities used for long-run checks.
func Savanna() registry.Scenario {
	return preset{
		id:          "savanna",
		title:       "Savanna",
		description: "50x50 field, 20% prey and 2.5% predators",
		apply: func(cfg *config.Config) {
			cfg.Grid = config.GridConfig{Width: 50, Height: 50}
			cfg.Population.PreyDensity = 0.2
			cfg.Population.PredatorDensity = 0.025
			cfg.Run.Ticks = 500
		},
	}
}

// Crowded packs prey so tightly that grazing is scarce from the start.
func Crowded() registry.Scenario {
	return preset{
		id:          "crowded",
		title:       "Crowded Burrow",
		description: "30x30 field with dense prey and few predators",
		apply: func(cfg *config.Config) {
			cfg.Grid = config.GridConfig{Width: 30, Height: 30}
			cfg.Population.PreyDensity = 0.7
			cfg.Population.PredatorDensity = 0.01
			cfg.Population.PreyEnergy = 400
		},
	}
}

// Duel is a small field where predators are plentiful and well fed.
func Duel() registry.Scenario {
	return preset{
		id:          "duel",
		title:       "Duel",
		description: "10x10 field, predators hunting a prey field",
		apply: func(cfg *config.Config) {
			cfg.Grid = config.GridConfig{Width: 10, Height: 10}
			cfg.Population.PreyDensity = 0.4
			cfg.Population.PredatorDensity = 0.1
			cfg.Population.PredatorEnergy = 1500
			cfg.Movement.Probability = 0.4
		},
	}
}

func init() {
	registry.Register("classic", Classic)
	registry.Register("savanna", Savanna)
	registry.Register("crowded", Crowded)
	registry.Register("duel", Duel)
}
