package ecosystem

// Outcome records what a single organism did during its turn.
type Outcome struct {
	Acted        bool    // false when the cell was empty
	Species      Species
	From, To     int     // To differs from From only after a hunt
	Fed          bool    // prey grazed at least one empty cell
	Hunted       bool    // predator caught a prey
	Starved      bool    // predator paid the starvation cost
	KilledEnergy float64 // energy of the prey that was eaten
	Reproduced   bool
	OffspringAt  int
}

// behaviorFunc runs one species' turn for the organism at pos.
type behaviorFunc func(w *World, pos int, org *Organism, p SpeciesParams) Outcome

// behaviors is the species dispatch table.
var behaviors = [speciesCount]behaviorFunc{
	Prey:     actPrey,
	Predator: actPredator,
}

// Act runs the turn of the organism at pos. Empty cells are a no-op.
func (w *World) Act(pos int, params Params) (Outcome, error) {
	if err := w.check(pos); err != nil {
		return Outcome{}, err
	}
	return w.act(pos, params), nil
}

func (w *World) act(pos int, params Params) Outcome {
	org := w.at(pos)
	if org == nil {
		return Outcome{From: pos, To: pos}
	}
	return behaviors[org.Species](w, pos, org, params.For(org.Species))
}

// actPrey: graze on empty neighbours, pay metabolism, then try to reproduce.
func actPrey(w *World, pos int, org *Organism, p SpeciesParams) Outcome {
	out := Outcome{Acted: true, Species: Prey, From: pos, To: pos}

	c := w.census(pos)
	if c.Empty > 0 {
		org.Energy += float64(c.Empty) * p.FeedingBonusPerCell
		out.Fed = true
	}
	org.Energy -= p.MetabolismCost

	out.OffspringAt, out.Reproduced = w.reproduce(pos, org, p)
	return out
}

// actPredator: hunt a random prey neighbour and relocate onto the kill site,
// or pay the starvation cost; then try to reproduce from the current cell.
func actPredator(w *World, pos int, org *Organism, p SpeciesParams) Outcome {
	out := Outcome{Acted: true, Species: Predator, From: pos, To: pos}

	var targets [NeighborCount]int
	n := 0
	for _, nb := range w.topo.Neighbors(pos) {
		if victim := w.cells[nb]; victim != nil && victim.Species == Prey {
			targets[n] = nb
			n++
		}
	}

	if n > 0 {
		target := targets[w.rng.Intn(n)]
		victim := w.take(target)
		org.Energy += p.HuntSuccessRate * victim.Energy
		w.insert(w.take(pos), target)
		org.Energy -= p.HuntingCost

		out.Hunted = true
		out.KilledEnergy = victim.Energy
		out.To = target
	} else {
		org.Energy -= p.StarvationCost
		out.Starved = true
	}

	out.OffspringAt, out.Reproduced = w.reproduce(out.To, org, p)
	return out
}

// reproduce places one offspring in the first empty neighbour of pos.
// The parent pays the reproduction cost only when placement succeeds.
func (w *World) reproduce(pos int, parent *Organism, p SpeciesParams) (int, bool) {
	if !parent.ShouldReproduce(p) {
		return 0, false
	}
	dst, ok := w.firstEmptyNeighbor(pos)
	if !ok {
		return 0, false
	}
	w.insert(parent.offspring(p), dst)
	parent.Energy -= p.ReproductionCost
	return dst, true
}
