package core

// RuntimeConfig describes the viewer surface and pacing.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second while running
	Seed     int64 // RNG seed of the simulation shown
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
	}
}

// Speed limits for the viewer, in ticks per second.
const (
	MinTickRate = 1
	MaxTickRate = 60
)
