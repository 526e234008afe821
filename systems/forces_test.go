package systems

import (
	"testing"

	"github.com/pthm-cable/fluidbox/components"
)

func TestPressureContributionSymmetry(t *testing.T) {
	s := NewSolver(testParams(), WithWorkers(1))
	defer s.Close()

	delta := components.Vec2{X: -0.3, Y: 0.05}
	ij := s.pressureContribution(2, 4, 3, delta)
	ji := s.pressureContribution(4, 2, 3, delta.Scale(-1))

	assertApprox(t, "x", ij.X, -ji.X, 1e-6)
	assertApprox(t, "y", ij.Y, -ji.Y, 1e-6)
}

func TestPairAccelerationsOpposite(t *testing.T) {
	s := NewSolver(testParams(), WithWorkers(1))
	defer s.Close()

	ps := []components.Particle{
		components.NewParticle(components.Vec2{X: -0.1}, components.Zero),
		components.NewParticle(components.Vec2{X: 0.2, Y: 0.05}, components.Zero),
	}
	ps[0].Density, ps[0].Pressure = 3, 2
	ps[1].Density, ps[1].Pressure = 3, 4

	s.ps = ps
	s.computeAcceleration(0)
	s.computeAcceleration(1)

	a0, a1 := ps[0].Acceleration, ps[1].Acceleration
	assertApprox(t, "x", a0.X, -a1.X, 1e-6)
	assertApprox(t, "y", a0.Y, -a1.Y, 1e-6)
	if a0.X >= 0 {
		t.Errorf("positive pressure should push particle 0 away, got %+v", a0)
	}
}

func TestGravityIgnoresDamping(t *testing.T) {
	p := testParams()
	p.Gravity = 9.8
	p.Damping = DampingParams{Enabled: true, Duration: 1, Curve: Quadratic}
	s := NewSolver(p, WithWorkers(1))
	defer s.Close()

	ps := []components.Particle{components.NewParticle(components.Zero, components.Zero)}
	s.Step(ps, 1.0/60, 0)

	if s.Damping() != 0 {
		t.Fatalf("damping = %v, want 0 at start", s.Damping())
	}
	assertApprox(t, "ax", ps[0].Acceleration.X, 0, 1e-6)
	assertApprox(t, "ay", ps[0].Acceleration.Y, -9.8, 1e-6)
	if ps[0].Position.Y >= 0 {
		t.Errorf("particle should fall, y = %v", ps[0].Position.Y)
	}
}

func TestViscosityPullsVelocitiesTogether(t *testing.T) {
	p := testParams()
	p.Viscosity = 0.5
	p.Damping = DampingParams{Enabled: true, Duration: 1, Curve: Quadratic}
	s := NewSolver(p, WithWorkers(1))
	defer s.Close()

	ps := []components.Particle{
		components.NewParticle(components.Zero, components.Zero),
		components.NewParticle(components.Vec2{X: 0.5}, components.Vec2{X: 1}),
	}
	// Damping is 0 so only viscosity acts.
	s.Step(ps, 1.0/60, 0)

	a0, a1 := ps[0].Acceleration, ps[1].Acceleration
	if a0.X <= 0 || a1.X >= 0 {
		t.Errorf("viscosity should accelerate the slow particle forward and the fast one back: %+v %+v", a0, a1)
	}
	assertApprox(t, "balance", a0.X, -a1.X, 1e-6)
}

func TestEdgeRepulsionPushesInward(t *testing.T) {
	p := testParams()
	p.EdgeRepulsion = true
	p.HalfExtents = components.Vec2{X: 5, Y: 3}
	s := NewSolver(p, WithWorkers(1))
	defer s.Close()

	ps := []components.Particle{components.NewParticle(components.Vec2{X: 4.8}, components.Zero)}
	s.Step(ps, 1.0/60, 0)

	a := ps[0].Acceleration
	if a.X >= 0 {
		t.Errorf("acceleration near the right wall = %+v, want negative x", a)
	}
	if a.Y != 0 {
		t.Errorf("no y wall within reach, got ay = %v", a.Y)
	}
}
