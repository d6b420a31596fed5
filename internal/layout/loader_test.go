package layout_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/layout/formats"
)

const testdata = "testdata/layouts"

var testPopulation = ecosystem.Population{PreyEnergy: 600, PredatorEnergy: 500}

func engineFor(t *testing.T, l layout.Layout) *ecosystem.Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	l.Configure(&cfg)
	e, err := ecosystem.New(cfg.EngineConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestLoaderLoadAll(t *testing.T) {
	layouts, err := layout.NewLoader(testdata).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml names an unknown species and is skipped
	if len(layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(layouts))
	}
	if layouts[0].ID != "meadow" || layouts[1].ID != "pair" {
		t.Errorf("expected [meadow pair], got [%s %s]", layouts[0].ID, layouts[1].ID)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	lay, err := layout.NewLoader(testdata).LoadByID("meadow")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lay.Name != "Meadow" || lay.Width != 5 || lay.Height != 4 {
		t.Errorf("unexpected layout header: %+v", lay)
	}
	if len(lay.Organisms) != 4 {
		t.Errorf("expected 4 organisms, got %d", len(lay.Organisms))
	}
	if lay.Metadata["author"] != "test" {
		t.Errorf("expected metadata author=test, got %v", lay.Metadata)
	}
	if lay.FilePath != filepath.Join(testdata, "meadow.yml") {
		t.Errorf("unexpected file path %q", lay.FilePath)
	}

	if _, err := layout.NewLoader(testdata).LoadByID("nope"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestLoadFileRejectsUnknownSpecies(t *testing.T) {
	_, err := layout.NewLoader(testdata).LoadFile(filepath.Join(testdata, "broken.yaml"))
	if !errors.Is(err, ecosystem.ErrInvalidSpecies) {
		t.Errorf("expected ErrInvalidSpecies, got %v", err)
	}
}

func TestApplyPlacesOrganisms(t *testing.T) {
	lay, err := layout.NewLoader(testdata).LoadByID("meadow")
	if err != nil {
		t.Fatal(err)
	}
	e := engineFor(t, lay)

	res, err := lay.Apply(e, testPopulation)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := ecosystem.Census{Prey: 2, Predator: 1, Empty: 17}
	if res.Placed != want || res.Rejected != 1 {
		t.Errorf("expected %+v with 1 rejected, got %+v", want, res)
	}

	view, ok, _ := e.OrganismView(0)
	if !ok || view.Energy != 600 {
		t.Errorf("omitted energy should default to 600, got %+v", view)
	}
	view, ok, _ = e.OrganismView(3*5 + 4)
	if !ok || view.Energy != 250 {
		t.Errorf("explicit energy should be kept, got %+v", view)
	}
	view, ok, _ = e.OrganismView(2*5 + 2)
	if !ok || view.Species != ecosystem.Predator || view.Energy != 500 {
		t.Errorf("first entry for a cell should win, got %+v", view)
	}
}

func TestApplyThenHunt(t *testing.T) {
	lay, err := layout.NewLoader(testdata).LoadByID("pair")
	if err != nil {
		t.Fatal(err)
	}
	e := engineFor(t, lay)
	if _, err := lay.Apply(e, testPopulation); err != nil {
		t.Fatal(err)
	}

	if _, err := e.World().Act(0, ecosystem.DefaultParams()); err != nil {
		t.Fatal(err)
	}

	view, ok, _ := e.OrganismView(1)
	if !ok || view.Species != ecosystem.Predator || view.Energy != 990 {
		t.Errorf("expected predator with 990 at cell 1, got %+v", view)
	}
}

func TestApplyErrors(t *testing.T) {
	lay := layout.Layout{
		ID:     "bad",
		Width:  3,
		Height: 3,
		Organisms: []formats.Placement{
			{X: 3, Y: 0, Species: ecosystem.Prey, Energy: 1},
		},
	}

	e := engineFor(t, lay)
	if _, err := lay.Apply(e, testPopulation); !errors.Is(err, ecosystem.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	other, _ := ecosystem.New(ecosystem.Config{Width: 4, Height: 4, Params: ecosystem.DefaultParams()})
	if _, err := lay.Apply(other, testPopulation); !errors.Is(err, layout.ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestShippedLayoutsLoad(t *testing.T) {
	layouts, err := layout.NewLoader("../../layouts").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(layouts) < 2 {
		t.Fatalf("expected shipped layouts, got %d", len(layouts))
	}

	for _, lay := range layouts {
		e := engineFor(t, lay)
		res, err := lay.Apply(e, testPopulation)
		if err != nil {
			t.Errorf("%s: Apply failed: %v", lay.ID, err)
		}
		if res.Rejected != 0 {
			t.Errorf("%s: %d duplicate entries", lay.ID, res.Rejected)
		}
	}
}
