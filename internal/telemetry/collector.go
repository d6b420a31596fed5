package telemetry

import (
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
)

// Collector records one sample per tick and keeps a bounded history.
type Collector struct {
	limit       int
	history     []Sample
	total       int
	extinctTick uint64
}

// NewCollector creates a collector remembering at most limit samples.
// A non-positive limit keeps every sample.
func NewCollector(limit int) *Collector {
	return &Collector{limit: limit}
}

// Observe turns the report of a finished tick into a sample and stores it.
func (c *Collector) Observe(r ecosystem.TickReport, e *ecosystem.Engine) Sample {
	s := NewSample(r, e)
	c.Add(s)
	if c.extinctTick == 0 && r.Extinct() {
		c.extinctTick = r.Tick
	}
	return s
}

// Add stores a sample, dropping the oldest one when the history is full.
func (c *Collector) Add(s Sample) {
	c.total++
	if c.limit > 0 && len(c.history) == c.limit {
		copy(c.history, c.history[1:])
		c.history[len(c.history)-1] = s
		return
	}
	c.history = append(c.history, s)
}

// History returns the retained samples, oldest first.
func (c *Collector) History() []Sample {
	return c.history
}

// Total returns how many samples were observed, including dropped ones.
func (c *Collector) Total() int {
	return c.total
}

// Last returns the most recent sample.
func (c *Collector) Last() (Sample, bool) {
	if len(c.history) == 0 {
		return Sample{}, false
	}
	return c.history[len(c.history)-1], true
}

// ExtinctTick returns the first tick after which a species had died out,
// or 0 if both species are still alive.
func (c *Collector) ExtinctTick() uint64 {
	return c.extinctTick
}

// Series returns the retained population counts of one species.
func (c *Collector) Series(s ecosystem.Species) []float64 {
	out := make([]float64, len(c.history))
	for i, smp := range c.history {
		if s == ecosystem.Predator {
			out[i] = float64(smp.Predators)
		} else {
			out[i] = float64(smp.Prey)
		}
	}
	return out
}

// Reset forgets every sample.
func (c *Collector) Reset() {
	c.history = c.history[:0]
	c.total = 0
	c.extinctTick = 0
}
