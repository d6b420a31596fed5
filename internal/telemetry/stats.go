// Package telemetry turns tick reports into per-tick samples, writes them
// as CSV and summarises energy distributions.
package telemetry

import (
	"slices"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

// Sample holds the statistics of one completed tick.
type Sample struct {
	Tick      uint64 `csv:"tick"`
	Prey      int    `csv:"prey"`
	Predators int    `csv:"predators"`

	// Events during the tick
	PreyBirths     int `csv:"prey_births"`
	PredatorBirths int `csv:"predator_births"`
	PreyStarved    int `csv:"prey_starved"`
	PredStarved    int `csv:"predator_starved"`
	Kills          int `csv:"kills"`
	Moves          int `csv:"moves"`

	// Energy distribution after the tick
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyStd  float64 `csv:"prey_energy_std"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	PredEnergyMean float64 `csv:"predator_energy_mean"`
	PredEnergyStd  float64 `csv:"predator_energy_std"`
	PredEnergyP10  float64 `csv:"predator_energy_p10"`
	PredEnergyP50  float64 `csv:"predator_energy_p50"`
	PredEnergyP90  float64 `csv:"predator_energy_p90"`
}

// EnergyStats summarises the energies of one species.
type EnergyStats struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// ComputeEnergyStats calculates mean, standard deviation and empirical
// percentiles. Returns the zero value for an empty slice.
func ComputeEnergyStats(values []float64) EnergyStats {
	n := len(values)
	if n == 0 {
		return EnergyStats{}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if n < 2 {
		std = 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return EnergyStats{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// NewSample builds the sample for a finished tick.
func NewSample(r ecosystem.TickReport, e *ecosystem.Engine) Sample {
	prey := ComputeEnergyStats(e.Energies(ecosystem.Prey))
	pred := ComputeEnergyStats(e.Energies(ecosystem.Predator))
	return Sample{
		Tick:           r.Tick,
		Prey:           r.Prey,
		Predators:      r.Predators,
		PreyBirths:     r.Births[ecosystem.Prey],
		PredatorBirths: r.Births[ecosystem.Predator],
		PreyStarved:    r.Starved[ecosystem.Prey],
		PredStarved:    r.Starved[ecosystem.Predator],
		Kills:          r.Kills,
		Moves:          r.Moves,
		PreyEnergyMean: prey.Mean,
		PreyEnergyStd:  prey.Std,
		PreyEnergyP10:  prey.P10,
		PreyEnergyP50:  prey.P50,
		PreyEnergyP90:  prey.P90,
		PredEnergyMean: pred.Mean,
		PredEnergyStd:  pred.Std,
		PredEnergyP10:  pred.P10,
		PredEnergyP50:  pred.P50,
		PredEnergyP90:  pred.P90,
	}
}

// Population returns the total number of organisms.
func (s Sample) Population() int {
	return s.Prey + s.Predators
}

// Log emits the sample as one structured line.
func (s Sample) Log(logger *log.Logger) {
	logger.Info("tick",
		"tick", s.Tick,
		"prey", s.Prey,
		"predators", s.Predators,
		"births", s.PreyBirths+s.PredatorBirths,
		"kills", s.Kills,
		"starved", s.PreyStarved+s.PredStarved,
		"prey_energy", round1(s.PreyEnergyMean),
		"predator_energy", round1(s.PredEnergyMean),
	)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
