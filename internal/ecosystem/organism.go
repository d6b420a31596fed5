package ecosystem

import "fmt"

// Species identifies the kind of an organism. The set is closed.
type Species uint8

const (
	Prey Species = iota
	Predator

	speciesCount
)

// AllSpecies lists every species in dispatch order.
var AllSpecies = [speciesCount]Species{Prey, Predator}

// String returns a human-readable name for the species.
func (s Species) String() string {
	switch s {
	case Prey:
		return "prey"
	case Predator:
		return "predator"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	return s < speciesCount
}

// ParseSpecies converts a name to a Species.
// Accepts the canonical names plus the original "mouse"/"owl" aliases.
func ParseSpecies(name string) (Species, error) {
	switch name {
	case "prey", "mouse":
		return Prey, nil
	case "predator", "owl":
		return Predator, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpecies, name)
	}
}

// Organism is a single creature occupying one grid cell.
// Energy may dip to or below zero during a tick; such organisms are swept
// before the tick completes.
type Organism struct {
	Energy  float64
	Species Species
}

// NewOrganism creates an organism with the given species and starting energy.
func NewOrganism(species Species, energy float64) *Organism {
	return &Organism{Energy: energy, Species: species}
}

// ShouldReproduce reports whether the organism has reached its species threshold.
func (o *Organism) ShouldReproduce(p SpeciesParams) bool {
	return o.Energy >= p.ReproductionThreshold
}

// Alive reports whether the organism survives the end-of-tick sweep.
func (o *Organism) Alive() bool {
	return o.Energy > 0
}

// offspring builds a child of the same species with the species start energy.
func (o *Organism) offspring(p SpeciesParams) *Organism {
	return NewOrganism(o.Species, p.OffspringEnergy)
}

// View is a read-only copy of an organism for renderers.
type View struct {
	Species Species
	Energy  float64
}
