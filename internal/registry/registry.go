// Package registry provides a global registry for simulation scenarios.
// Scenarios register themselves in init() functions, allowing the CLI
// and viewer to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-ecology/internal/config"
)

// Scenario is a named preset of the simulation.
// Scenarios only adjust configuration; the engine is built by the caller.
type Scenario interface {
	// ID returns a unique identifier (e.g., "classic", "savanna").
	// Used for CLI flags and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for listings.
	Description() string

	// Apply overrides the fields of cfg this scenario cares about.
	Apply(cfg *config.Config)
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ScenarioInfo)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = ScenarioInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scenario by its ID.
// Returns an error if the scenario ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Resolve applies the scenario with the given ID to cfg.
// An empty ID leaves cfg untouched.
func Resolve(id string, cfg *config.Config) error {
	if id == "" {
		return nil
	}
	s, err := Create(id)
	if err != nil {
		return err
	}
	s.Apply(cfg)
	return nil
}
