package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/fluidbox/components"
)

func TestCollectorWindowByTime(t *testing.T) {
	tests := []struct {
		name  string
		dt    float32
		ticks int
	}{
		{"60 Hz", 1.0 / 60, 60},
		{"20 Hz", 0.05, 20},
		{"10 Hz", 0.1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(1.0)
			for i := 1; i <= tt.ticks; i++ {
				c.RecordTick(tt.dt, 0, 0)
				if got := c.ShouldFlush(); got != (i == tt.ticks) {
					t.Fatalf("tick %d: ShouldFlush = %v", i, got)
				}
			}
			stats := c.Flush(int32(tt.ticks), nil, 1)
			if math.Abs(stats.SimTimeSec-1) > 1e-5 {
				t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
			}
		})
	}
}

func TestCollectorVariableStep(t *testing.T) {
	c := NewCollector(0.5)
	for i, dt := range []float32{0.05, 0.2, 0.05} {
		c.RecordTick(dt, 0, 0)
		if c.ShouldFlush() {
			t.Fatalf("window complete after step %d", i)
		}
	}
	c.RecordTick(0.2, 0, 0)
	if !c.ShouldFlush() {
		t.Fatal("window should be complete after 0.5s")
	}
	stats := c.Flush(4, nil, 1)
	if math.Abs(stats.SimTimeSec-0.5) > 1e-6 {
		t.Errorf("sim time = %v, want 0.5", stats.SimTimeSec)
	}

	c.RecordTick(0.3, 0, 0)
	if c.ShouldFlush() {
		t.Error("new window should start empty")
	}
	c.RecordTick(0.3, 0, 0)
	if stats := c.Flush(6, nil, 1); math.Abs(stats.SimTimeSec-1.1) > 1e-6 {
		t.Errorf("sim time = %v, want 1.1 accumulated across windows", stats.SimTimeSec)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(0.5)

	for _, ke := range []float32{1, 3, 2} {
		c.RecordTick(0.1, ke, ke*2)
	}
	if c.ShouldFlush() {
		t.Error("window should not be complete after 0.3s")
	}
	c.RecordTick(0.1, 2, 0)
	c.RecordTick(0.1, 2, 0)
	if !c.ShouldFlush() {
		t.Error("window should be complete after 0.5s")
	}

	ps := []components.Particle{{Density: 1, Pressure: -1}, {Density: 3, Pressure: 3}}
	stats := c.Flush(5, ps, 0.5)

	if stats.Particles != 2 {
		t.Errorf("particles = %d, want 2", stats.Particles)
	}
	if math.Abs(stats.AvgKEMean-2) > 1e-9 || stats.AvgKEMax != 3 {
		t.Errorf("KE mean/max = %v/%v, want 2/3", stats.AvgKEMean, stats.AvgKEMax)
	}
	if stats.MaxSpeed != 6 {
		t.Errorf("max speed = %v, want 6", stats.MaxSpeed)
	}
	if math.Abs(stats.DensityMean-2) > 1e-9 || math.Abs(stats.DensityStd-1) > 1e-9 {
		t.Errorf("density mean/std = %v/%v, want 2/1", stats.DensityMean, stats.DensityStd)
	}
	if math.Abs(stats.PressureMean-1) > 1e-9 {
		t.Errorf("pressure mean = %v, want 1", stats.PressureMean)
	}
	if math.Abs(stats.SimTimeSec-0.5) > 1e-6 || stats.Damping != 0.5 {
		t.Errorf("sim time/damping = %v/%v", stats.SimTimeSec, stats.Damping)
	}

	// Counters reset for the next window
	if c.ShouldFlush() {
		t.Error("new window should start empty")
	}
	next := c.Flush(10, nil, 1)
	if next.AvgKEMean != 0 || next.WindowStartTick != 5 {
		t.Errorf("unexpected second window %+v", next)
	}
}
