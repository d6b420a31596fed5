package ecosystem

// TickReport summarises one generation.
type TickReport struct {
	Tick      uint64
	Acted     int
	Births    [speciesCount]int
	Starved   [speciesCount]int // removed by the end-of-tick sweep
	Kills     int
	Moves     int
	Prey      int
	Predators int
}

// Population returns the total number of organisms after the tick.
func (r TickReport) Population() int {
	return r.Prey + r.Predators
}

// Extinct reports whether at least one species died out.
func (r TickReport) Extinct() bool {
	return r.Prey == 0 || r.Predators == 0
}

// Scheduler drives ticks over a World.
type Scheduler struct {
	world   *World
	params  Params
	tick    uint64
	moveBuf []int
}

// NewScheduler creates a scheduler applying params to world.
func NewScheduler(world *World, params Params) *Scheduler {
	return &Scheduler{world: world, params: params}
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Tick advances the world by one generation:
//  1. draw a random permutation of all cell indices
//  2. run the occupant of each index in that order
//  3. remove every organism with energy <= 0
//  4. give each surviving organism one chance to move
//
// Step 2 visits indices, not organisms. A predator that relocates onto an
// index later in the permutation acts again this tick; one that lands on an
// index already passed does not.
func (s *Scheduler) Tick() TickReport {
	return s.run(s.world.rng.Perm(s.world.Size()))
}

// run executes one tick visiting cells in the given order.
func (s *Scheduler) run(order []int) TickReport {
	w := s.world
	report := TickReport{Tick: s.tick + 1}

	for _, pos := range order {
		if w.at(pos) == nil {
			continue
		}
		out := w.act(pos, s.params)
		report.Acted++
		if out.Hunted {
			report.Kills++
		}
		if out.Reproduced {
			report.Births[out.Species]++
		}
	}

	for pos := range w.cells {
		if org := w.at(pos); org != nil && !org.Alive() {
			report.Starved[org.Species]++
			w.take(pos)
		}
	}

	report.Moves = s.movementPass()

	report.Prey = w.Count(Prey)
	report.Predators = w.Count(Predator)
	s.tick++
	return report
}

// movementPass snapshots the occupied cells in ascending order so that an
// organism moving to a higher index is not offered a second move.
func (s *Scheduler) movementPass() int {
	w := s.world
	s.moveBuf = s.moveBuf[:0]
	for pos, org := range w.cells {
		if org != nil {
			s.moveBuf = append(s.moveBuf, pos)
		}
	}

	moves := 0
	for _, pos := range s.moveBuf {
		if w.at(pos) == nil {
			continue
		}
		if w.rng.Float64() < s.params.MoveProbability {
			if _, ok := w.move(pos); ok {
				moves++
			}
		}
	}
	return moves
}
