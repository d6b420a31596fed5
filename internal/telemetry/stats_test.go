package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

func TestComputeEnergyStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   EnergyStats
	}{
		{"empty", nil, EnergyStats{}},
		{"single", []float64{42}, EnergyStats{Mean: 42, P10: 42, P50: 42, P90: 42}},
		{
			"one to ten",
			[]float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			EnergyStats{Mean: 5.5, Std: 3.0277, P10: 1, P50: 5, P90: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEnergyStats(tt.values)
			checks := []struct {
				field     string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std", got.Std, tt.want.Std},
				{"p10", got.P10, tt.want.P10},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
			}
			for _, c := range checks {
				if math.Abs(c.got-c.want) > 0.001 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestComputeEnergyStatsLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeEnergyStats(values)

	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func newPopulatedEngine(t *testing.T) *ecosystem.Engine {
	t.Helper()
	e, err := ecosystem.New(ecosystem.Config{Width: 20, Height: 20, Seed: 6, Params: ecosystem.DefaultParams()})
	if err != nil {
		t.Fatal(err)
	}
	e.Populate(ecosystem.Population{
		PreyDensity:     0.25,
		PredatorDensity: 0.025,
		PreyEnergy:      600,
		PredatorEnergy:  500,
	})
	return e
}

func TestNewSampleMatchesReport(t *testing.T) {
	e := newPopulatedEngine(t)
	r := e.Tick()
	s := NewSample(r, e)

	if s.Tick != 1 || s.Prey != r.Prey || s.Predators != r.Predators {
		t.Errorf("sample %+v does not match report %+v", s, r)
	}
	if s.Population() != e.PopulationCount() {
		t.Errorf("sample population %d, engine %d", s.Population(), e.PopulationCount())
	}
	if s.Prey > 0 && s.PreyEnergyMean <= 0 {
		t.Errorf("expected positive prey energy mean, got %v", s.PreyEnergyMean)
	}
}

func TestCollectorBoundedHistory(t *testing.T) {
	c := NewCollector(3)
	for i := 1; i <= 5; i++ {
		c.Add(Sample{Tick: uint64(i), Prey: i * 10, Predators: i})
	}

	h := c.History()
	if len(h) != 3 || h[0].Tick != 3 || h[2].Tick != 5 {
		t.Errorf("expected ticks 3..5, got %+v", h)
	}
	if c.Total() != 5 {
		t.Errorf("expected total 5, got %d", c.Total())
	}

	prey := c.Series(ecosystem.Prey)
	if len(prey) != 3 || prey[0] != 30 || prey[2] != 50 {
		t.Errorf("unexpected prey series %v", prey)
	}
	if pred := c.Series(ecosystem.Predator); pred[1] != 4 {
		t.Errorf("unexpected predator series %v", pred)
	}

	last, ok := c.Last()
	if !ok || last.Tick != 5 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	c.Reset()
	if _, ok := c.Last(); ok || c.Total() != 0 {
		t.Error("Reset should clear the history")
	}
}

func TestCollectorRecordsExtinction(t *testing.T) {
	e, _ := ecosystem.New(ecosystem.Config{Width: 3, Height: 3, Seed: 1, Params: ecosystem.DefaultParams()})
	e.PlaceOrganism(ecosystem.Predator, 50, 4)

	c := NewCollector(0)
	c.Observe(e.Tick(), e)
	c.Observe(e.Tick(), e)

	if c.ExtinctTick() != 1 {
		t.Errorf("expected extinction at tick 1, got %d", c.ExtinctTick())
	}
}

func TestCSVWriterWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	if err := w.Write(Sample{Tick: 1, Prey: 10}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Sample{Tick: 2, Prey: 12}, Sample{Tick: 3, Prey: 9}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,prey,predators,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,") != 1 {
		t.Error("header written more than once")
	}
	if !strings.HasPrefix(lines[3], "3,9,") {
		t.Errorf("unexpected last row %q", lines[3])
	}
}

func TestCreateCSV(t *testing.T) {
	if w, err := CreateCSV(""); w != nil || err != nil {
		t.Errorf("empty path should disable output, got %v %v", w, err)
	}

	path := filepath.Join(t.TempDir(), "out", "run.csv")
	w, err := CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV failed: %v", err)
	}
	w.Write(Sample{Tick: 1})
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "tick,") {
		t.Errorf("unexpected file contents %q", data)
	}

	var nilWriter *CSVWriter
	if err := nilWriter.Write(Sample{}); err != nil {
		t.Error("nil writer should be a no-op")
	}
}

func TestSampleLog(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	Sample{Tick: 7, Prey: 40, Predators: 3, PreyEnergyMean: 612.345}.Log(logger)

	out := buf.String()
	for _, want := range []string{"tick=7", "prey=40", "predators=3", "prey_energy=612.3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}
