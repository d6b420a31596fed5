package ecosystem

import (
	"fmt"
	"math/rand"
)

// Config describes an engine instance.
type Config struct {
	Width  int
	Height int
	Seed   int64
	Params Params
}

// Population describes density-based initial seeding.
type Population struct {
	PreyDensity     float64 // fraction of cells to attempt for prey
	PredatorDensity float64 // fraction of cells to attempt for predators
	PreyEnergy      float64
	PredatorEnergy  float64
}

// Engine is the public face of the simulation: a world, its scheduler and
// the single random stream both of them consume.
// An Engine must only be used from one goroutine.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	world     *World
	scheduler *Scheduler
}

// New allocates an empty grid. Invalid dimensions or parameters are
// rejected and no engine is returned.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	world, err := NewWorld(cfg.Width, cfg.Height, rng)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		rng:       rng,
		world:     world,
		scheduler: NewScheduler(world, cfg.Params),
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// World exposes the underlying grid.
func (e *Engine) World() *World {
	return e.world
}

// PlaceOrganism seeds a new organism at pos. Returns false if the cell is
// already occupied.
func (e *Engine) PlaceOrganism(species Species, energy float64, pos int) (bool, error) {
	if !species.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidSpecies, species)
	}
	return e.world.AddOrganismAt(NewOrganism(species, energy), pos)
}

// Populate seeds the grid by density, prey first. For each species it makes
// floor(cells*density) attempts at a random cell; attempts that land on an
// occupied cell are skipped. Returns how many of each species were placed.
func (e *Engine) Populate(p Population) Census {
	var placed Census
	size := e.world.Size()

	attempts := int(float64(size) * p.PreyDensity)
	for range attempts {
		if e.world.insert(NewOrganism(Prey, p.PreyEnergy), e.rng.Intn(size)) {
			placed.Prey++
		}
	}

	attempts = int(float64(size) * p.PredatorDensity)
	for range attempts {
		if e.world.insert(NewOrganism(Predator, p.PredatorEnergy), e.rng.Intn(size)) {
			placed.Predator++
		}
	}

	placed.Empty = size - e.world.Population()
	return placed
}

// Tick advances the simulation by one generation.
func (e *Engine) Tick() TickReport {
	return e.scheduler.Tick()
}

// Ticks returns the number of completed generations.
func (e *Engine) Ticks() uint64 {
	return e.scheduler.Ticks()
}

// IsOccupied reports whether pos holds an organism.
func (e *Engine) IsOccupied(pos int) (bool, error) {
	return e.world.IsOccupied(pos)
}

// OrganismView returns a copy of the occupant of pos.
// The second result is false for an empty cell.
func (e *Engine) OrganismView(pos int) (View, bool, error) {
	org, err := e.world.Organism(pos)
	if err != nil || org == nil {
		return View{}, false, err
	}
	return View{Species: org.Species, Energy: org.Energy}, true, nil
}

// PopulationCount returns the number of occupied cells.
func (e *Engine) PopulationCount() int {
	return e.world.Population()
}

// Counts returns the number of prey and predators.
func (e *Engine) Counts() (prey, predators int) {
	return e.world.Count(Prey), e.world.Count(Predator)
}

// GridDimensions returns the grid width and height.
func (e *Engine) GridDimensions() (width, height int) {
	t := e.world.Topology()
	return t.Width, t.Height
}

// Energies returns the energy of every organism of a species in index order.
func (e *Engine) Energies(s Species) []float64 {
	out := make([]float64, 0, e.world.Count(s))
	for _, org := range e.world.cells {
		if org != nil && org.Species == s {
			out = append(out, org.Energy)
		}
	}
	return out
}

// Cell is one entry of a Snapshot.
type Cell struct {
	Occupied bool
	View     View
}

// Snapshot is an immutable copy of the grid.
type Snapshot struct {
	Tick   uint64
	Width  int
	Height int
	Cells  []Cell
}

// Snapshot copies the current grid state.
func (e *Engine) Snapshot() Snapshot {
	w, h := e.GridDimensions()
	snap := Snapshot{
		Tick:   e.Ticks(),
		Width:  w,
		Height: h,
		Cells:  make([]Cell, len(e.world.cells)),
	}
	for i, org := range e.world.cells {
		if org != nil {
			snap.Cells[i] = Cell{Occupied: true, View: View{Species: org.Species, Energy: org.Energy}}
		}
	}
	return snap
}

// Occupancy returns the occupancy bitmap of the snapshot.
func (s Snapshot) Occupancy() []bool {
	out := make([]bool, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = c.Occupied
	}
	return out
}

// At returns the cell at grid coordinates (x, y), wrapping toroidally.
func (s Snapshot) At(x, y int) Cell {
	t := Topology{Width: s.Width, Height: s.Height}
	return s.Cells[t.Index(x, y)]
}
