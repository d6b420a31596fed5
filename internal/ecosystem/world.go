package ecosystem

import (
	"fmt"
	"math/rand"
)

// MinDimension is the smallest width or height accepted for a world.
// Below it the Moore neighbourhood wraps onto itself.
const MinDimension = 3

// Census counts what surrounds a cell.
type Census struct {
	Prey     int
	Predator int
	Empty    int
}

// World owns the cell array. Each cell holds at most one organism and every
// organism is referenced from exactly one cell.
type World struct {
	topo       Topology
	cells      []*Organism
	rng        *rand.Rand
	population int
	counts     [speciesCount]int
}

// NewWorld allocates an empty world that draws randomness from rng.
func NewWorld(width, height int, rng *rand.Rand) (*World, error) {
	if width < MinDimension || height < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			ErrInvalidDimensions, width, height, MinDimension, MinDimension)
	}
	topo := Topology{Width: width, Height: height}
	return &World{
		topo:  topo,
		cells: make([]*Organism, topo.Size()),
		rng:   rng,
	}, nil
}

// Topology returns the grid geometry.
func (w *World) Topology() Topology {
	return w.topo
}

// Size returns the number of cells.
func (w *World) Size() int {
	return len(w.cells)
}

// Population returns the number of occupied cells.
func (w *World) Population() int {
	return w.population
}

// Count returns the number of living organisms of a species.
func (w *World) Count(s Species) int {
	if !s.Valid() {
		return 0
	}
	return w.counts[s]
}

func (w *World) check(pos int) error {
	if !w.topo.Contains(pos) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, pos, len(w.cells))
	}
	return nil
}

// IsOccupied reports whether the cell holds an organism.
func (w *World) IsOccupied(pos int) (bool, error) {
	if err := w.check(pos); err != nil {
		return false, err
	}
	return w.cells[pos] != nil, nil
}

// Organism returns the occupant of pos, or nil for an empty cell.
// The pointer stays owned by the world.
func (w *World) Organism(pos int) (*Organism, error) {
	if err := w.check(pos); err != nil {
		return nil, err
	}
	return w.cells[pos], nil
}

// AddOrganismAt places org into pos. An occupied cell rejects the insert and
// returns false; the caller keeps ownership of org in that case.
func (w *World) AddOrganismAt(org *Organism, pos int) (bool, error) {
	if err := w.check(pos); err != nil {
		return false, err
	}
	if org == nil || !org.Species.Valid() {
		return false, ErrInvalidSpecies
	}
	return w.insert(org, pos), nil
}

// ExtractOrganism removes the occupant of pos and hands it to the caller.
// Returns nil if the cell was already empty.
func (w *World) ExtractOrganism(pos int) (*Organism, error) {
	if err := w.check(pos); err != nil {
		return nil, err
	}
	return w.take(pos), nil
}

// RemoveOrganism discards the occupant of pos. Empty cells are left alone.
func (w *World) RemoveOrganism(pos int) error {
	if err := w.check(pos); err != nil {
		return err
	}
	w.take(pos)
	return nil
}

// MoveOrganism picks one neighbour of pos uniformly at random and moves the
// occupant there if that cell is empty. Returns false when pos is empty or
// the chosen neighbour is taken.
func (w *World) MoveOrganism(pos int) (bool, error) {
	if err := w.check(pos); err != nil {
		return false, err
	}
	_, ok := w.move(pos)
	return ok, nil
}

// CensusNeighbors counts prey, predators and empty cells among the 8
// neighbours of pos.
func (w *World) CensusNeighbors(pos int) (Census, error) {
	if err := w.check(pos); err != nil {
		return Census{}, err
	}
	return w.census(pos), nil
}

// The unexported helpers below assume pos has already been validated.

func (w *World) at(pos int) *Organism {
	return w.cells[pos]
}

func (w *World) insert(org *Organism, pos int) bool {
	if w.cells[pos] != nil {
		return false
	}
	w.cells[pos] = org
	w.population++
	w.counts[org.Species]++
	return true
}

func (w *World) take(pos int) *Organism {
	org := w.cells[pos]
	if org == nil {
		return nil
	}
	w.cells[pos] = nil
	w.population--
	w.counts[org.Species]--
	return org
}

func (w *World) move(pos int) (int, bool) {
	if w.cells[pos] == nil {
		return pos, false
	}
	neighbors := w.topo.Neighbors(pos)
	dst := neighbors[w.rng.Intn(NeighborCount)]
	if w.cells[dst] != nil {
		return pos, false
	}
	w.insert(w.take(pos), dst)
	return dst, true
}

func (w *World) census(pos int) Census {
	var c Census
	for _, n := range w.topo.Neighbors(pos) {
		org := w.cells[n]
		switch {
		case org == nil:
			c.Empty++
		case org.Species == Prey:
			c.Prey++
		case org.Species == Predator:
			c.Predator++
		}
	}
	return c
}

// firstEmptyNeighbor scans the neighbours of pos in resolver order.
func (w *World) firstEmptyNeighbor(pos int) (int, bool) {
	for _, n := range w.topo.Neighbors(pos) {
		if w.cells[n] == nil {
			return n, true
		}
	}
	return 0, false
}
