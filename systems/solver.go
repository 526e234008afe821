package systems

import (
	"github.com/pthm-cable/fluidbox/components"
	"github.com/pthm-cable/fluidbox/telemetry"
)

// PhaseTimer receives phase boundaries for profiling.
type PhaseTimer interface {
	StartPhase(name string)
}

// StepStats summarises the particle state after a step.
type StepStats struct {
	AverageKE   float32 // 0.5 * sum(|v|²) / N
	MaxSpeed    float32
	MeanDensity float32
	Damping     float32
}

// Option configures a Solver.
type Option func(*Solver)

// WithPhaseTimer reports each phase start to t.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(s *Solver) {
		s.timer = t
	}
}

// WithWorkers sets the worker count for within-phase parallelism.
// n == 1 runs every phase on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n == 1 {
			s.pool = nil
			return
		}
		s.pool = newWorkerPool(n)
	}
}

// Solver advances a particle set by one tick at a time. Params are assumed to
// be validated.
type Solver struct {
	params  Params
	kernel  Kernel
	damping DampingState
	bounds  components.Vec2

	selfDensity       float32
	edgeDensity       float32 // wall density at zero distance
	edgeDensityFactor float32 // edgeDensity / selfDensity
	wallPressure      float32 // reference pressure of a wall sample

	pool  *workerPool
	timer PhaseTimer

	// Valid only during Step
	ps []components.Particle
	dt float32
}

// NewSolver creates a solver for the given parameters.
func NewSolver(p Params, opts ...Option) *Solver {
	kernel := NewKernel(p.Kernel, p.SmoothingRadius)
	self := kernel.SelfDensity()
	edge := edgeDensityRatio * p.TargetDensity

	s := &Solver{
		params:            p,
		kernel:            kernel,
		damping:           NewDampingState(p.Damping),
		bounds:            p.Bounds(),
		selfDensity:       self,
		edgeDensity:       edge,
		edgeDensityFactor: edge / self,
		wallPressure:      (edge - p.TargetDensity) * p.PressureMultiplier,
		pool:              newWorkerPool(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Params returns the solver parameters.
func (s *Solver) Params() Params {
	return s.params
}

// Kernel returns the configured kernel.
func (s *Solver) Kernel() Kernel {
	return s.kernel
}

// SelfDensity returns the density a particle contributes to itself.
func (s *Solver) SelfDensity() float32 {
	return s.selfDensity
}

// Damping returns the current startup damping factor.
func (s *Solver) Damping() float32 {
	return s.damping.Factor()
}

// Step advances ps in place by dt. elapsed is the time since simulation start
// and drives the startup damping ramp. Phases run in order, each completing
// for every particle before the next begins:
// predict, density/pressure, forces, correct.
//
// A non-positive dt only refreshes the damping factor.
func (s *Solver) Step(ps []components.Particle, dt, elapsed float32) StepStats {
	s.damping.Update(elapsed)
	if dt <= 0 {
		return s.Stats(ps)
	}

	s.ps = ps
	s.dt = dt
	n := len(ps)

	s.run(phasePredict, telemetry.PhasePredict, n)
	s.run(phaseDensity, telemetry.PhaseDensity, n)
	s.run(phaseForces, telemetry.PhaseForces, n)
	s.run(phaseCorrect, telemetry.PhaseCorrect, n)

	s.ps = nil
	return s.Stats(ps)
}

// Close stops the worker goroutines.
func (s *Solver) Close() {
	if s.pool != nil {
		s.pool.stop()
	}
}

func (s *Solver) run(ph phase, name string, n int) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
	if s.pool == nil || n < parallelThreshold {
		s.runChunk(ph, 0, n)
		return
	}
	s.pool.dispatch(s, ph, n)
}

// runChunk processes particles [i0, i1) for one phase.
func (s *Solver) runChunk(ph phase, i0, i1 int) {
	ps := s.ps
	switch ph {
	case phasePredict:
		for i := i0; i < i1; i++ {
			s.predict(&ps[i])
		}
	case phaseDensity:
		for i := i0; i < i1; i++ {
			s.computeDensity(i)
		}
	case phaseForces:
		for i := i0; i < i1; i++ {
			s.computeAcceleration(i)
		}
	case phaseCorrect:
		for i := i0; i < i1; i++ {
			s.correct(&ps[i])
		}
	}
}

// Stats computes the step summary for ps.
func (s *Solver) Stats(ps []components.Particle) StepStats {
	stats := StepStats{
		AverageKE: AverageKineticEnergy(ps),
		Damping:   s.damping.Factor(),
	}
	if len(ps) == 0 {
		return stats
	}
	var densitySum float32
	for i := range ps {
		stats.MaxSpeed = max(stats.MaxSpeed, ps[i].Velocity.Length())
		densitySum += ps[i].Density
	}
	stats.MeanDensity = densitySum / float32(len(ps))
	return stats
}

// AverageKineticEnergy returns 0.5 * sum(|v|²) / N for unit-mass particles.
func AverageKineticEnergy(ps []components.Particle) float32 {
	if len(ps) == 0 {
		return 0
	}
	var sum float32
	for i := range ps {
		sum += ps[i].Velocity.LengthSquared()
	}
	return 0.5 * sum / float32(len(ps))
}
