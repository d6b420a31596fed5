package config

import (
	_ "embed"
)

//go:embed defaults/ecosim.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration: the 20x20 mouse/owl
// field with the classic constants.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:  20,
			Height: 20,
		},
		Seed: 6,
		Species: SpeciesConfig{
			Prey: PreyConfig{
				FeedingBonus:          75,
				Metabolism:            50,
				ReproductionThreshold: 800,
				OffspringEnergy:       300,
				ReproductionCost:      700,
			},
			Predator: PredatorConfig{
				HuntSuccessRate:       0.2,
				HuntingCost:           50,
				StarvationCost:        100,
				ReproductionThreshold: 2500,
				OffspringEnergy:       400,
				ReproductionCost:      2000,
			},
		},
		Movement: MovementConfig{
			Probability: 0.2,
		},
		Population: PopulationConfig{
			PreyDensity:     0.25,  // 1 in 4
			PredatorDensity: 0.025, // 1 in 40
			PreyEnergy:      600,
			PredatorEnergy:  500,
		},
		Run: RunConfig{
			Ticks:       100,
			TickRate:    10,
			ReportEvery: 10,
		},
		Telemetry: TelemetryConfig{
			History: 120,
		},
		Storage: StorageConfig{
			DBPath: "~/.ecosim/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
