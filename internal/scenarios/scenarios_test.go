package scenarios

import (
	"testing"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/registry"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "savanna", "crowded", "duel"} {
		if !registry.Exists(id) {
			t.Errorf("scenario %q not registered", id)
		}
	}
}

func TestScenariosProduceRunnableConfigs(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if err := registry.Resolve(info.ID, &cfg); err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("scenario config invalid: %v", err)
			}

			e, err := ecosystem.New(cfg.EngineConfig())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			e.Populate(cfg.PopulationSpec())
			if e.PopulationCount() == 0 {
				t.Error("scenario seeded an empty grid")
			}
			for range 10 {
				e.Tick()
			}
		})
	}
}

func TestClassicMatchesDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	Classic().Apply(&cfg)

	if cfg != config.DefaultConfig() {
		t.Errorf("classic scenario should equal the default config, got %+v", cfg)
	}
}
