// Package sim wires configuration, seeding and telemetry around one engine.
// Both the headless driver and the viewer run simulations through a Session.
package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/telemetry"
)

// Session is one running simulation with its sample history.
type Session struct {
	cfg       config.Config
	layout    *layout.Layout
	engine    *ecosystem.Engine
	collector *telemetry.Collector
	seeded    ecosystem.Census
	rejected  int
}

// New validates cfg, builds the engine and seeds it. With a layout the grid
// takes the layout's size and the layout replaces density seeding.
func New(cfg config.Config, lay *layout.Layout) (*Session, error) {
	if lay != nil {
		lay.Configure(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		layout:    lay,
		collector: telemetry.NewCollector(cfg.Telemetry.History),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the engine from the configured seed and clears the history.
func (s *Session) Reset() error {
	engine, err := ecosystem.New(s.cfg.EngineConfig())
	if err != nil {
		return err
	}

	s.rejected = 0
	if s.layout != nil {
		res, err := s.layout.Apply(engine, s.cfg.PopulationSpec())
		if err != nil {
			return fmt.Errorf("applying layout %s: %w", s.layout.ID, err)
		}
		s.seeded = res.Placed
		s.rejected = res.Rejected
	} else {
		s.seeded = engine.Populate(s.cfg.PopulationSpec())
	}

	s.engine = engine
	s.collector.Reset()
	return nil
}

// Step advances one tick and records its sample.
func (s *Session) Step() telemetry.Sample {
	return s.collector.Observe(s.engine.Tick(), s.engine)
}

// Engine returns the current engine. It changes after Reset.
func (s *Session) Engine() *ecosystem.Engine {
	return s.engine
}

// Collector returns the sample history.
func (s *Session) Collector() *telemetry.Collector {
	return s.collector
}

// Config returns the effective configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Seeded returns what the initial seeding placed.
func (s *Session) Seeded() ecosystem.Census {
	return s.seeded
}

// Rejected returns how many layout entries landed on occupied cells.
func (s *Session) Rejected() int {
	return s.rejected
}

// Extinct reports whether either species has died out.
func (s *Session) Extinct() bool {
	prey, predators := s.engine.Counts()
	return prey == 0 || predators == 0
}
