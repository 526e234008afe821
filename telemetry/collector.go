package telemetry

import "github.com/pthm-cable/fluidbox/components"

// Collector accumulates per-tick energy samples over a window of simulation
// time and produces WindowStats. Time advances by the dt of each recorded
// tick, so variable frame steps are measured correctly.
type Collector struct {
	windowDuration float64

	windowStartTick int32
	windowTime      float64
	simTime         float64

	keSum    float64
	keMax    float64
	maxSpeed float64
	samples  int

	// Scratch buffers reused across flushes
	densities []float64
}

// windowSlack absorbs float32 step rounding so a window of n equal steps
// closes on the nth step.
const windowSlack = 1e-6

// NewCollector creates a collector flushing every windowDurationSec of
// simulation time.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDuration: windowDurationSec}
}

// RecordTick adds one tick of dt seconds with its kinetic energy and peak
// speed to the window.
func (c *Collector) RecordTick(dt, avgKE, maxSpeed float32) {
	c.windowTime += float64(dt)
	c.simTime += float64(dt)

	ke := float64(avgKE)
	c.keSum += ke
	c.keMax = max(c.keMax, ke)
	c.maxSpeed = max(c.maxSpeed, float64(maxSpeed))
	c.samples++
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.samples > 0 && c.windowTime >= c.windowDuration*(1-windowSlack)
}

// Flush produces the stats for the window ending at currentTick, sampling the
// density distribution from ps, and starts a new window.
func (c *Collector) Flush(currentTick int32, ps []components.Particle, damping float32) WindowStats {
	c.densities = c.densities[:0]
	var pressureSum float64
	for i := range ps {
		c.densities = append(c.densities, float64(ps[i].Density))
		pressureSum += float64(ps[i].Pressure)
	}
	mean, std, p10, p50, p90 := ComputeDensityStats(c.densities)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,
		Particles:       len(ps),
		AvgKEMax:        c.keMax,
		DensityMean:     mean,
		DensityStd:      std,
		DensityP10:      p10,
		DensityP50:      p50,
		DensityP90:      p90,
		MaxSpeed:        c.maxSpeed,
		Damping:         float64(damping),
	}
	if c.samples > 0 {
		stats.AvgKEMean = c.keSum / float64(c.samples)
	}
	if len(ps) > 0 {
		stats.PressureMean = pressureSum / float64(len(ps))
	}

	c.windowStartTick = currentTick
	c.windowTime = 0
	c.keSum, c.keMax, c.maxSpeed = 0, 0, 0
	c.samples = 0

	return stats
}

// WindowDuration returns the window length in seconds of simulation time.
func (c *Collector) WindowDuration() float64 {
	return c.windowDuration
}

// SimTime returns the simulation time recorded so far.
func (c *Collector) SimTime() float64 {
	return c.simTime
}
