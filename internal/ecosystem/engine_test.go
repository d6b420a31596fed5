package ecosystem_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

func newEngine(t *testing.T, w, h int, seed int64) *ecosystem.Engine {
	t.Helper()
	e, err := ecosystem.New(ecosystem.Config{
		Width:  w,
		Height: h,
		Seed:   seed,
		Params: ecosystem.DefaultParams(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := ecosystem.New(ecosystem.Config{Width: 1, Height: 10, Params: ecosystem.DefaultParams()})
	if !errors.Is(err, ecosystem.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}

	params := ecosystem.DefaultParams()
	params.MoveProbability = 1.5
	params.Predator.HuntSuccessRate = -1
	_, err = ecosystem.New(ecosystem.Config{Width: 10, Height: 10, Params: params})
	if !errors.Is(err, ecosystem.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestPlaceOrganism(t *testing.T) {
	e := newEngine(t, 4, 4, 1)

	ok, err := e.PlaceOrganism(ecosystem.Prey, 500, 3)
	if err != nil || !ok {
		t.Fatalf("PlaceOrganism: ok=%v err=%v", ok, err)
	}

	ok, err = e.PlaceOrganism(ecosystem.Predator, 500, 3)
	if err != nil || ok {
		t.Errorf("PlaceOrganism into occupied cell: ok=%v err=%v", ok, err)
	}

	if _, err := e.PlaceOrganism(ecosystem.Prey, 1, 16); !errors.Is(err, ecosystem.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := e.PlaceOrganism(ecosystem.Species(9), 1, 0); !errors.Is(err, ecosystem.ErrInvalidSpecies) {
		t.Errorf("expected ErrInvalidSpecies, got %v", err)
	}
}

func TestOrganismView(t *testing.T) {
	e := newEngine(t, 3, 3, 1)
	e.PlaceOrganism(ecosystem.Predator, 420, 7)

	view, ok, err := e.OrganismView(7)
	if err != nil || !ok {
		t.Fatalf("OrganismView(7): ok=%v err=%v", ok, err)
	}
	if view.Species != ecosystem.Predator || view.Energy != 420 {
		t.Errorf("unexpected view: %+v", view)
	}

	_, ok, err = e.OrganismView(0)
	if err != nil || ok {
		t.Errorf("OrganismView on empty cell: ok=%v err=%v", ok, err)
	}

	if _, _, err := e.OrganismView(-1); !errors.Is(err, ecosystem.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestPopulate(t *testing.T) {
	e := newEngine(t, 20, 20, 6)

	placed := e.Populate(ecosystem.Population{
		PreyDensity:     0.25,
		PredatorDensity: 0.025,
		PreyEnergy:      600,
		PredatorEnergy:  500,
	})

	prey, predators := e.Counts()
	if placed.Prey != prey || placed.Predator != predators {
		t.Errorf("placed %+v but counts are %d/%d", placed, prey, predators)
	}
	if prey == 0 || prey > 100 {
		t.Errorf("prey count %d outside (0,100]", prey)
	}
	if predators == 0 || predators > 10 {
		t.Errorf("predator count %d outside (0,10]", predators)
	}
	if placed.Empty != 400-prey-predators {
		t.Errorf("expected %d empty cells, got %d", 400-prey-predators, placed.Empty)
	}

	for _, energy := range e.Energies(ecosystem.Prey) {
		if energy != 600 {
			t.Fatalf("seeded prey energy %v, expected 600", energy)
		}
	}
}

func TestGridDimensions(t *testing.T) {
	e := newEngine(t, 7, 4, 1)

	w, h := e.GridDimensions()
	if w != 7 || h != 4 {
		t.Errorf("expected 7x4, got %dx%d", w, h)
	}
	if e.PopulationCount() != 0 || e.Ticks() != 0 {
		t.Error("new engine should be empty at tick 0")
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	run := func() []ecosystem.Snapshot {
		e := newEngine(t, 50, 50, 12345)
		e.Populate(ecosystem.Population{
			PreyDensity:     0.2,
			PredatorDensity: 0.025,
			PreyEnergy:      600,
			PredatorEnergy:  500,
		})
		snaps := []ecosystem.Snapshot{e.Snapshot()}
		for range 100 {
			e.Tick()
			snaps = append(snaps, e.Snapshot())
		}
		return snaps
	}

	first, second := run(), run()
	for i := range first {
		if !slices.Equal(first[i].Cells, second[i].Cells) {
			t.Fatalf("runs diverged at tick %d", first[i].Tick)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newEngine(t, 3, 3, 1)
	e.PlaceOrganism(ecosystem.Prey, 100, 4)

	snap := e.Snapshot()
	e.Tick()

	if !snap.At(1, 1).Occupied || snap.At(1, 1).View.Energy != 100 {
		t.Errorf("snapshot changed after tick: %+v", snap.At(1, 1))
	}
	occ := snap.Occupancy()
	if len(occ) != 9 || !occ[4] {
		t.Errorf("unexpected occupancy %v", occ)
	}
}
