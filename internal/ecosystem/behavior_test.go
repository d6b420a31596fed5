package ecosystem

import "testing"

func TestPreyGrazesAndPaysMetabolism(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	org := mustAdd(t, w, Prey, 100, 4)

	out, err := w.Act(4, DefaultParams())
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}

	// 100 + 8*75 - 50
	if org.Energy != 650 {
		t.Errorf("expected energy 650, got %v", org.Energy)
	}
	if !out.Fed || out.Reproduced {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestPreyMetabolismIsUnconditional(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	for pos := range w.Size() {
		mustAdd(t, w, Prey, 100, pos)
	}
	center, _ := w.Organism(4)

	out, _ := w.Act(4, DefaultParams())

	if center.Energy != 50 {
		t.Errorf("expected energy 50 with no grass, got %v", center.Energy)
	}
	if out.Fed {
		t.Error("prey with no empty neighbours should not be marked fed")
	}
}

func TestPreyReproducesIntoFirstEmptyNeighbor(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	parent := mustAdd(t, w, Prey, 750, 4)

	out, _ := w.Act(4, DefaultParams())

	// 750 + 600 - 50 = 1300 >= 800; then -700 for the child
	if parent.Energy != 600 {
		t.Errorf("expected parent energy 600, got %v", parent.Energy)
	}
	if !out.Reproduced || out.OffspringAt != 0 {
		t.Fatalf("expected offspring at 0, got %+v", out)
	}
	child, _ := w.Organism(0)
	if child == nil || child.Species != Prey || child.Energy != 300 {
		t.Errorf("unexpected offspring: %+v", child)
	}
	if w.Population() != 2 {
		t.Errorf("expected population 2, got %d", w.Population())
	}
}

func TestReproductionWithoutVacancyCostsNothing(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	for pos := range w.Size() {
		mustAdd(t, w, Prey, 100, pos)
	}
	parent, _ := w.Organism(4)
	parent.Energy = 850

	out, _ := w.Act(4, DefaultParams())

	// No grass, -50 metabolism leaves exactly the threshold; placement fails.
	if parent.Energy != 800 {
		t.Errorf("expected energy 800 after failed reproduction, got %v", parent.Energy)
	}
	if out.Reproduced {
		t.Error("reproduction should fail in a full grid")
	}
	if w.Population() != 9 {
		t.Errorf("expected population 9, got %d", w.Population())
	}
}

func TestPredatorHuntTransfersEnergyAndRelocates(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	predator := mustAdd(t, w, Predator, 1000, 0)
	mustAdd(t, w, Prey, 200, 1)

	out, err := w.Act(0, DefaultParams())
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}

	// 1000 + 0.2*200 - 50
	if predator.Energy != 990 {
		t.Errorf("expected predator energy 990, got %v", predator.Energy)
	}
	if !out.Hunted || out.KilledEnergy != 200 || out.From != 0 || out.To != 1 {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if occupied, _ := w.IsOccupied(0); occupied {
		t.Error("predator's former cell should be empty")
	}
	if got, _ := w.Organism(1); got != predator {
		t.Error("predator should occupy the prey's former cell")
	}
	if w.Count(Prey) != 0 || w.Count(Predator) != 1 {
		t.Errorf("expected 0 prey / 1 predator, got %d / %d", w.Count(Prey), w.Count(Predator))
	}
}

func TestPredatorPicksOnePreyAmongSeveral(t *testing.T) {
	w := newTestWorld(t, 5, 5)
	predator := mustAdd(t, w, Predator, 1000, 12)
	preyCells := []int{6, 8, 16, 18}
	for _, pos := range preyCells {
		mustAdd(t, w, Prey, 100, pos)
	}

	out, _ := w.Act(12, DefaultParams())

	if !out.Hunted {
		t.Fatal("predator with prey neighbours should hunt")
	}
	if w.Count(Prey) != 3 {
		t.Errorf("expected 3 prey left, got %d", w.Count(Prey))
	}
	landed := false
	for _, pos := range preyCells {
		if got, _ := w.Organism(pos); got == predator {
			landed = pos == out.To
		}
	}
	if !landed {
		t.Errorf("predator should stand on a former prey cell, outcome %+v", out)
	}
}

func TestPredatorIgnoresOtherPredators(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	hunter := mustAdd(t, w, Predator, 500, 4)
	mustAdd(t, w, Predator, 500, 0)

	out, _ := w.Act(4, DefaultParams())

	if out.Hunted || !out.Starved {
		t.Errorf("predator next to predators only should starve, got %+v", out)
	}
	if hunter.Energy != 400 {
		t.Errorf("expected energy 400 after starvation cost, got %v", hunter.Energy)
	}
	if got, _ := w.Organism(4); got != hunter {
		t.Error("starving predator should not move")
	}
}

func TestPredatorReproducesAroundKillSite(t *testing.T) {
	w := newTestWorld(t, 5, 5)
	predator := mustAdd(t, w, Predator, 3000, 0)
	mustAdd(t, w, Prey, 500, 1)

	out, _ := w.Act(0, DefaultParams())

	// 3000 + 100 - 50 = 3050 >= 2500; child placed around cell 1, parent pays 2000.
	if predator.Energy != 1050 {
		t.Errorf("expected predator energy 1050, got %v", predator.Energy)
	}
	if !out.Reproduced {
		t.Fatal("predator above threshold should reproduce")
	}
	// First neighbour of (1,0) is (0,4) = 20.
	if out.OffspringAt != 20 {
		t.Errorf("expected offspring at 20, got %d", out.OffspringAt)
	}
	child, _ := w.Organism(20)
	if child == nil || child.Species != Predator || child.Energy != 400 {
		t.Errorf("unexpected offspring: %+v", child)
	}

	// Placing around the pre-hunt cell 0 instead would pick (4,4) = 24 first.
	if occupied, _ := w.IsOccupied(24); occupied {
		t.Error("offspring should not be placed around the cell the predator left")
	}
}

func TestActOnEmptyCell(t *testing.T) {
	w := newTestWorld(t, 3, 3)

	out, err := w.Act(3, DefaultParams())
	if err != nil {
		t.Fatalf("Act on empty cell failed: %v", err)
	}
	if out.Acted {
		t.Error("empty cell should not act")
	}
}

func TestShouldReproduce(t *testing.T) {
	p := DefaultParams()

	testCases := []struct {
		species  Species
		energy   float64
		expected bool
	}{
		{Prey, 799.9, false},
		{Prey, 800, true},
		{Predator, 2499, false},
		{Predator, 2500, true},
	}

	for _, tc := range testCases {
		org := NewOrganism(tc.species, tc.energy)
		if got := org.ShouldReproduce(p.For(tc.species)); got != tc.expected {
			t.Errorf("%v at %v: expected %v, got %v", tc.species, tc.energy, tc.expected, got)
		}
	}
}
