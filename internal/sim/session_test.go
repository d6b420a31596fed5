package sim

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/layout/formats"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid.Width = 0

	if _, err := New(cfg, nil); !errors.Is(err, ecosystem.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestSessionStepRecordsSamples(t *testing.T) {
	s, err := New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	seeded := s.Seeded()
	prey, predators := s.Engine().Counts()
	if seeded.Prey != prey || seeded.Predator != predators {
		t.Errorf("seeded %+v, engine has %d/%d", seeded, prey, predators)
	}

	for i := 1; i <= 5; i++ {
		smp := s.Step()
		if smp.Tick != uint64(i) {
			t.Errorf("step %d produced sample for tick %d", i, smp.Tick)
		}
	}
	if len(s.Collector().History()) != 5 {
		t.Errorf("expected 5 samples, got %d", len(s.Collector().History()))
	}
}

func TestSessionResetReplaysFromSeed(t *testing.T) {
	s, err := New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	run := func() []ecosystem.Cell {
		for range 20 {
			s.Step()
		}
		return s.Engine().Snapshot().Cells
	}

	first := run()
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Engine().Ticks() != 0 || len(s.Collector().History()) != 0 {
		t.Fatal("Reset should start a fresh engine and history")
	}
	second := run()

	if !slices.Equal(first, second) {
		t.Error("reset run diverged from the first run")
	}
}

func TestSessionWithLayout(t *testing.T) {
	lay := &layout.Layout{
		ID:     "pair",
		Width:  4,
		Height: 4,
		Organisms: []formats.Placement{
			{X: 0, Y: 0, Species: ecosystem.Predator},
			{X: 1, Y: 0, Species: ecosystem.Prey},
			{X: 1, Y: 0, Species: ecosystem.Prey},
		},
	}

	s, err := New(config.DefaultConfig(), lay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if w, h := s.Engine().GridDimensions(); w != 4 || h != 4 {
		t.Errorf("layout size not applied: %dx%d", w, h)
	}
	if s.Engine().PopulationCount() != 2 || s.Rejected() != 1 {
		t.Errorf("expected 2 organisms and 1 rejection, got %d and %d",
			s.Engine().PopulationCount(), s.Rejected())
	}
	view, _, _ := s.Engine().OrganismView(0)
	if view.Energy != 500 {
		t.Errorf("predator should get the configured start energy, got %v", view.Energy)
	}
}
