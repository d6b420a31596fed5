// Package config provides YAML-based simulation configuration loading for
// the ecosystem simulator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

// Config is the complete configuration of one simulation run.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Seed       int64            `yaml:"seed"`
	Species    SpeciesConfig    `yaml:"species"`
	Movement   MovementConfig   `yaml:"movement"`
	Population PopulationConfig `yaml:"population"`
	Run        RunConfig        `yaml:"run"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GridConfig defines the toroidal grid size.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeciesConfig groups the per-species constants.
type SpeciesConfig struct {
	Prey     PreyConfig     `yaml:"prey"`
	Predator PredatorConfig `yaml:"predator"`
}

// PreyConfig defines grazing and reproduction constants for prey.
type PreyConfig struct {
	FeedingBonus          float64 `yaml:"feeding_bonus"` // per empty neighbour
	Metabolism            float64 `yaml:"metabolism"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	OffspringEnergy       float64 `yaml:"offspring_energy"`
	ReproductionCost      float64 `yaml:"reproduction_cost"`
}

// PredatorConfig defines hunting and reproduction constants for predators.
type PredatorConfig struct {
	HuntSuccessRate       float64 `yaml:"hunt_success_rate"` // fraction of victim energy gained
	HuntingCost           float64 `yaml:"hunting_cost"`
	StarvationCost        float64 `yaml:"starvation_cost"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	OffspringEnergy       float64 `yaml:"offspring_energy"`
	ReproductionCost      float64 `yaml:"reproduction_cost"`
}

// MovementConfig defines random movement after each tick.
type MovementConfig struct {
	Probability float64 `yaml:"probability"`
}

// PopulationConfig defines density-based initial seeding.
type PopulationConfig struct {
	PreyDensity     float64 `yaml:"prey_density"`
	PredatorDensity float64 `yaml:"predator_density"`
	PreyEnergy      float64 `yaml:"prey_energy"`
	PredatorEnergy  float64 `yaml:"predator_energy"`
}

// RunConfig defines how a driver advances the simulation.
type RunConfig struct {
	Ticks       int `yaml:"ticks"`
	TickRate    int `yaml:"tick_rate"`    // viewer ticks per second
	ReportEvery int `yaml:"report_every"` // log a telemetry line every N ticks, 0 disables
}

// TelemetryConfig defines telemetry output.
type TelemetryConfig struct {
	CSVPath string `yaml:"csv_path"`
	History int    `yaml:"history"` // samples kept in memory for the viewer
}

// StorageConfig defines where run history is recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Params converts the species and movement sections into engine parameters.
func (c Config) Params() ecosystem.Params {
	return ecosystem.Params{
		Prey: ecosystem.SpeciesParams{
			FeedingBonusPerCell:   c.Species.Prey.FeedingBonus,
			MetabolismCost:        c.Species.Prey.Metabolism,
			ReproductionThreshold: c.Species.Prey.ReproductionThreshold,
			OffspringEnergy:       c.Species.Prey.OffspringEnergy,
			ReproductionCost:      c.Species.Prey.ReproductionCost,
		},
		Predator: ecosystem.SpeciesParams{
			HuntSuccessRate:       c.Species.Predator.HuntSuccessRate,
			HuntingCost:           c.Species.Predator.HuntingCost,
			StarvationCost:        c.Species.Predator.StarvationCost,
			ReproductionThreshold: c.Species.Predator.ReproductionThreshold,
			OffspringEnergy:       c.Species.Predator.OffspringEnergy,
			ReproductionCost:      c.Species.Predator.ReproductionCost,
		},
		MoveProbability: c.Movement.Probability,
	}
}

// EngineConfig returns the engine construction parameters.
func (c Config) EngineConfig() ecosystem.Config {
	return ecosystem.Config{
		Width:  c.Grid.Width,
		Height: c.Grid.Height,
		Seed:   c.Seed,
		Params: c.Params(),
	}
}

// PopulationSpec returns the density seeding parameters.
func (c Config) PopulationSpec() ecosystem.Population {
	return ecosystem.Population{
		PreyDensity:     c.Population.PreyDensity,
		PredatorDensity: c.Population.PredatorDensity,
		PreyEnergy:      c.Population.PreyEnergy,
		PredatorEnergy:  c.Population.PredatorEnergy,
	}
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Grid.Width < ecosystem.MinDimension || c.Grid.Height < ecosystem.MinDimension {
		errs = append(errs, fmt.Errorf("grid %dx%d: %w", c.Grid.Width, c.Grid.Height, ecosystem.ErrInvalidDimensions))
	}
	if !unit(c.Population.PreyDensity) {
		errs = append(errs, fmt.Errorf("prey_density %v outside [0,1]", c.Population.PreyDensity))
	}
	if !unit(c.Population.PredatorDensity) {
		errs = append(errs, fmt.Errorf("predator_density %v outside [0,1]", c.Population.PredatorDensity))
	}
	if c.Population.PreyEnergy <= 0 || c.Population.PredatorEnergy <= 0 {
		errs = append(errs, errors.New("starting energies must be positive"))
	}
	if c.Run.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks %d must not be negative", c.Run.Ticks))
	}
	if c.Run.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be positive", c.Run.TickRate))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// Marshal encodes the configuration as a YAML document.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteYAML saves the configuration to path, creating parent directories.
func (c Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
