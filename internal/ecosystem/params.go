package ecosystem

import (
	"errors"
	"fmt"
)

// SpeciesParams holds the behaviour constants for one species.
// Fields that do not apply to a species are ignored (prey never hunt,
// predators never graze).
type SpeciesParams struct {
	FeedingBonusPerCell float64 // prey: energy per empty neighbour cell
	MetabolismCost      float64 // prey: flat cost every tick

	HuntSuccessRate float64 // predator: fraction of the victim's energy gained
	HuntingCost     float64 // predator: cost after a successful hunt
	StarvationCost  float64 // predator: cost when no prey was caught

	ReproductionThreshold float64
	OffspringEnergy       float64
	ReproductionCost      float64
}

// Params is the full, immutable rule set of an engine.
type Params struct {
	Prey            SpeciesParams
	Predator        SpeciesParams
	MoveProbability float64 // chance per organism per tick to attempt a move
}

// DefaultParams returns the mouse/owl constants of the classic simulation.
func DefaultParams() Params {
	return Params{
		Prey: SpeciesParams{
			FeedingBonusPerCell:   75,
			MetabolismCost:        50,
			ReproductionThreshold: 800,
			OffspringEnergy:       300,
			ReproductionCost:      700,
		},
		Predator: SpeciesParams{
			HuntSuccessRate:       0.2,
			HuntingCost:           50,
			StarvationCost:        100,
			ReproductionThreshold: 2500,
			OffspringEnergy:       400,
			ReproductionCost:      2000,
		},
		MoveProbability: 0.2,
	}
}

// For returns the constants of the given species.
func (p Params) For(s Species) SpeciesParams {
	if s == Predator {
		return p.Predator
	}
	return p.Prey
}

// Validate checks that every constant is usable.
func (p Params) Validate() error {
	var errs []error
	for _, s := range AllSpecies {
		sp := p.For(s)
		if sp.FeedingBonusPerCell < 0 || sp.MetabolismCost < 0 ||
			sp.HuntingCost < 0 || sp.StarvationCost < 0 || sp.ReproductionCost < 0 {
			errs = append(errs, fmt.Errorf("%s: costs and bonuses must not be negative", s))
		}
		if sp.HuntSuccessRate < 0 || sp.HuntSuccessRate > 1 {
			errs = append(errs, fmt.Errorf("%s: hunt success rate %v outside [0,1]", s, sp.HuntSuccessRate))
		}
		if sp.ReproductionThreshold <= 0 {
			errs = append(errs, fmt.Errorf("%s: reproduction threshold must be positive", s))
		}
		if sp.OffspringEnergy <= 0 {
			errs = append(errs, fmt.Errorf("%s: offspring energy must be positive", s))
		}
	}
	if p.MoveProbability < 0 || p.MoveProbability > 1 {
		errs = append(errs, fmt.Errorf("move probability %v outside [0,1]", p.MoveProbability))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}
