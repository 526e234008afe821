package sim

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	cfg.Particles.Count = 40
	cfg.Telemetry.StatsWindow = 0.5
	return cfg
}

func newTestSim(t *testing.T, cfg *config.Config, opts Options) *Simulation {
	t.Helper()
	if opts.Workers == 0 {
		opts.Workers = 1
	}
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHeadlessRunWritesTelemetry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var windows []telemetry.WindowStats

	cfg := testConfig(t)
	s, err := New(cfg, Options{
		Seed:          1,
		Workers:       1,
		OutputDir:     dir,
		StatsCallback: func(w telemetry.WindowStats) { windows = append(windows, w) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 90; i++ {
		s.Step(cfg.Derived.DT32)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if s.Tick() != 90 {
		t.Errorf("tick = %d, want 90", s.Tick())
	}
	if len(windows) != 3 {
		t.Fatalf("got %d stats windows, want 3", len(windows))
	}
	for _, w := range windows {
		if w.Particles != 40 {
			t.Errorf("window %d particles = %d, want 40", w.WindowEndTick, w.Particles)
		}
		if w.DensityMean <= 0 {
			t.Errorf("window %d density mean = %v", w.WindowEndTick, w.DensityMean)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 4 {
		t.Errorf("telemetry.csv has %d lines, want 4", len(lines))
	}
	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestTelemetryFollowsFrameTime(t *testing.T) {
	var windows []telemetry.WindowStats
	cfg := testConfig(t)
	s := newTestSim(t, cfg, Options{
		Seed:          2,
		StatsCallback: func(w telemetry.WindowStats) { windows = append(windows, w) },
	})

	// Frames three times longer than the headless step.
	for i := 0; i < 30; i++ {
		s.Step(0.05)
	}

	if len(windows) != 3 {
		t.Fatalf("got %d stats windows, want 3", len(windows))
	}
	for i, w := range windows {
		if want := int32(10 * (i + 1)); w.WindowEndTick != want {
			t.Errorf("window %d ends at tick %d, want %d", i, w.WindowEndTick, want)
		}
		if want := 0.5 * float64(i+1); math.Abs(w.SimTimeSec-want) > 1e-5 {
			t.Errorf("window %d sim time = %v, want %v", i, w.SimTimeSec, want)
		}
	}
}

func TestParticlesStayInBox(t *testing.T) {
	cfg := testConfig(t)
	cfg.Physics.Gravity = 9.8
	s := newTestSim(t, cfg, Options{Seed: 3})

	bx, by := cfg.Derived.BoundX, cfg.Derived.BoundY
	for i := 0; i < 180; i++ {
		s.Step(cfg.Derived.DT32)
	}
	for i, p := range s.Particles() {
		if p.Position.X < -bx || p.Position.X > bx || p.Position.Y < -by || p.Position.Y > by {
			t.Errorf("particle %d at %+v outside (%v, %v)", i, p.Position, bx, by)
		}
	}
}

func TestStepClampsLongFrames(t *testing.T) {
	cfg := testConfig(t)
	s := newTestSim(t, cfg, Options{})

	s.Step(1)
	if got, want := s.Elapsed(), float32(cfg.Physics.MaxFrameDT); got != want {
		t.Errorf("elapsed = %v, want clamp %v", got, want)
	}

	s.Step(0)
	if s.Tick() != 1 {
		t.Errorf("zero dt advanced tick to %d", s.Tick())
	}
}

func TestRespawnRestartsRamp(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.MaxInitialSpeed = 0.5
	s := newTestSim(t, cfg, Options{Seed: 9})

	for i := 0; i < 30; i++ {
		s.Step(cfg.Derived.DT32)
	}
	s.Respawn()

	if s.Elapsed() != 0 {
		t.Errorf("elapsed after respawn = %v, want 0", s.Elapsed())
	}
	for i, p := range s.Particles() {
		if p.Integrating() {
			t.Fatalf("particle %d kept its history", i)
		}
		if p.Velocity.Length() > 0.5 {
			t.Fatalf("particle %d speed %v above bound", i, p.Velocity.Length())
		}
	}
	if stats := s.Step(cfg.Derived.DT32); stats.Damping > 0.01 {
		t.Errorf("damping right after respawn = %v, want near 0", stats.Damping)
	}
}

func TestRebuild(t *testing.T) {
	cfg := testConfig(t)
	s := newTestSim(t, cfg, Options{Seed: 5})

	p := s.Params()
	p.Gravity = 9.8
	if err := s.Rebuild(p); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if s.Params().Gravity != 9.8 {
		t.Errorf("gravity = %v after rebuild", s.Params().Gravity)
	}

	s.Step(cfg.Derived.DT32)
	var ay float32
	for _, q := range s.Particles() {
		ay += q.Acceleration.Y
	}
	if ay >= 0 {
		t.Errorf("mean vertical acceleration %v, want downward", ay)
	}

	p.SmoothingRadius = 0
	if err := s.Rebuild(p); err == nil {
		t.Error("expected error for invalid params")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Physics.Kernel = "bogus"
	if _, err := New(cfg, Options{}); err == nil {
		t.Error("expected error for unknown kernel")
	}
}

func TestFrameSpansSolverPhases(t *testing.T) {
	cfg := testConfig(t)
	s := newTestSim(t, cfg, Options{})

	s.BeginFrame()
	s.Step(cfg.Derived.DT32)
	s.StartPhase(telemetry.PhaseRender)
	s.EndFrame()

	stats := s.Perf().Stats()
	for _, phase := range telemetry.Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %q not recorded", phase)
		}
	}
}
