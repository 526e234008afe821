// Package sim runs the fluid box without any graphics: it owns the particle
// set, the solver and the telemetry pipeline, and is shared by the window,
// terminal and headless front ends.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/fluidbox/components"
	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/systems"
	"github.com/pthm-cable/fluidbox/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Workers        int     // 0 = GOMAXPROCS, 1 = serial

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Simulation is one run of the fluid box.
type Simulation struct {
	cfg      *config.Config
	opts     Options
	params   systems.Params
	solver   *systems.Solver
	rng      *rand.Rand
	maxSpeed float32 // respawn speed bound

	particles []components.Particle

	tick    int32
	elapsed float32
	last    systems.StepStats

	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	frameOpen     bool
	statsCallback func(telemetry.WindowStats)
}

// New builds a simulation from cfg. Particles are spawned at rest.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	params, err := systems.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		window = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	s := &Simulation{
		cfg:           cfg,
		opts:          opts,
		rng:           systems.NewRand(opts.Seed),
		maxSpeed:      float32(cfg.Particles.MaxInitialSpeed),
		collector:     telemetry.NewCollector(window),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:        output,
		statsCallback: opts.StatsCallback,
	}
	s.setParams(params)
	s.particles = systems.SpawnParticles(s.rng, cfg.Particles.Count, params)

	slog.Debug("simulation created",
		"particles", len(s.particles),
		"kernel", params.Kernel.String(),
		"self_density", s.solver.SelfDensity(),
		"seed", opts.Seed,
	)
	return s, nil
}

func (s *Simulation) setParams(p systems.Params) {
	if s.solver != nil {
		s.solver.Close()
	}
	solverOpts := []systems.Option{systems.WithPhaseTimer(s.perf)}
	if s.opts.Workers != 0 {
		solverOpts = append(solverOpts, systems.WithWorkers(s.opts.Workers))
	}
	s.params = p
	s.solver = systems.NewSolver(p, solverOpts...)
}

// BeginFrame opens a perf tick spanning the simulation step and whatever the
// caller does before EndFrame, such as rendering.
func (s *Simulation) BeginFrame() {
	s.perf.StartTick()
	s.frameOpen = true
}

// StartPhase marks the start of a caller-side phase within the open frame.
func (s *Simulation) StartPhase(name string) {
	s.perf.StartPhase(name)
}

// EndFrame closes the perf tick opened by BeginFrame.
func (s *Simulation) EndFrame() {
	s.perf.EndTick()
	s.perf.RecordFrame()
	s.frameOpen = false
}

// Step advances the simulation by dt seconds, clamped to the configured
// maximum frame step.
func (s *Simulation) Step(dt float32) systems.StepStats {
	ownFrame := !s.frameOpen
	if ownFrame {
		s.perf.StartTick()
	}

	dt = min(dt, float32(s.cfg.Physics.MaxFrameDT))
	if dt > 0 {
		s.elapsed += dt
		s.tick++
	}
	s.last = s.solver.Step(s.particles, dt, s.elapsed)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	if dt > 0 {
		s.collector.RecordTick(dt, s.last.AverageKE, s.last.MaxSpeed)
		s.flushTelemetry()
	}

	if ownFrame {
		s.perf.EndTick()
	}
	return s.last
}

// Respawn scatters every particle to a new random position with a small
// random velocity and restarts the damping ramp.
func (s *Simulation) Respawn() {
	systems.Respawn(s.rng, s.particles, s.params, s.maxSpeed)
	s.elapsed = 0
	slog.Info("respawned", "particles", len(s.particles), "tick", s.tick)
}

// Rebuild replaces the solver parameters and respawns.
func (s *Simulation) Rebuild(p systems.Params) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	s.setParams(p)
	s.Respawn()
	return nil
}

// Particles returns the live particle slice. Callers must not retain it
// across Step.
func (s *Simulation) Particles() []components.Particle {
	return s.particles
}

// DensityAt probes the density field for visualisation.
func (s *Simulation) DensityAt(p components.Vec2) float32 {
	return s.solver.DensityAt(p, s.particles)
}

// Solver returns the active solver.
func (s *Simulation) Solver() *systems.Solver {
	return s.solver
}

// Params returns the active solver parameters.
func (s *Simulation) Params() systems.Params {
	return s.params
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// MaxInitialSpeed returns the respawn speed bound.
func (s *Simulation) MaxInitialSpeed() float32 {
	return s.maxSpeed
}

// Tick returns the number of steps taken.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Elapsed returns simulation seconds since the last (re)spawn.
func (s *Simulation) Elapsed() float32 {
	return s.elapsed
}

// LastStats returns the summary of the most recent step.
func (s *Simulation) LastStats() systems.StepStats {
	return s.last
}

// Perf returns the performance collector.
func (s *Simulation) Perf() *telemetry.PerfCollector {
	return s.perf
}

// Close stops the solver workers and closes output files.
func (s *Simulation) Close() error {
	s.solver.Close()
	return s.output.Close()
}
