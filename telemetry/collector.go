package telemetry

import "github.com/pthm-cable/mitosis/components"

// PopulationSample is the population state handed to Flush. The slices are
// read, never retained.
type PopulationSample struct {
	Phases []components.Phase
	Speeds []float32
	Radii  []float32
}

// Collector accumulates events within windows of simulated time and produces
// WindowStats.
type Collector struct {
	windowDurationSec float64

	windowStartTick int32
	windowStartTime float64

	births int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordBirths adds n duplications to the current window.
func (c *Collector) RecordBirths(n int) {
	c.births += n
}

// Births returns the duplications recorded in the current window.
func (c *Collector) Births() int { return c.births }

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// WindowDurationSec returns the window length.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, simTime float64, pop PopulationSample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,
		Cells:           len(pop.Phases),
		Births:          c.births,
	}
	if span := simTime - c.windowStartTime; span > 0 {
		stats.BirthRate = float64(c.births) / span
	}

	var counts [components.PhaseCount]int
	for _, p := range pop.Phases {
		if p < components.PhaseCount {
			counts[p]++
		}
	}
	stats.setPhaseCounts(counts)

	speed := ComputeDistribution(toFloat64(pop.Speeds))
	stats.SpeedMean = speed.Mean
	stats.SpeedStd = speed.Std
	stats.SpeedP10 = speed.P10
	stats.SpeedP50 = speed.P50
	stats.SpeedP90 = speed.P90
	stats.RadiusMean = ComputeDistribution(toFloat64(pop.Radii)).Mean

	c.windowStartTick = currentTick
	c.windowStartTime = simTime
	c.births = 0

	return stats
}

// Reset restarts windowing at the given tick and time.
func (c *Collector) Reset(tick int32, simTime float64) {
	c.windowStartTick = tick
	c.windowStartTime = simTime
	c.births = 0
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
