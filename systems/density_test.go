package systems

import (
	"testing"

	"github.com/pthm-cable/fluidbox/components"
)

func TestIsolatedParticleDensity(t *testing.T) {
	p := testParams()
	p.Damping = DampingParams{Enabled: true, Duration: 2, Curve: Quadratic}
	s := NewSolver(p, WithWorkers(1))
	defer s.Close()

	ps := []components.Particle{components.NewParticle(components.Zero, components.Zero)}
	s.Step(ps, 1.0/60, 1) // damping factor 0.25

	if ps[0].Density != s.SelfDensity() {
		t.Errorf("density = %v, want self density %v", ps[0].Density, s.SelfDensity())
	}
	want := (s.SelfDensity() - p.TargetDensity) * p.PressureMultiplier * 0.25
	assertApprox(t, "pressure", ps[0].Pressure, want, 1e-6)
}

func TestCoincidentParticlesCountEachOther(t *testing.T) {
	s := NewSolver(testParams(), WithWorkers(1))
	defer s.Close()

	pos := components.Vec2{X: 0.2, Y: 0.1}
	ps := []components.Particle{
		components.NewParticle(pos, components.Zero),
		components.NewParticle(pos, components.Zero),
	}
	s.Step(ps, 1.0/60, 0)

	for i := range ps {
		if ps[i].Density != 2*s.SelfDensity() {
			t.Errorf("particle %d density = %v, want %v", i, ps[i].Density, 2*s.SelfDensity())
		}
		if !isFinite(ps[i].Acceleration) || !isFinite(ps[i].Position) {
			t.Errorf("particle %d not finite: %+v", i, ps[i])
		}
	}
}

func TestEdgeDensityAtWall(t *testing.T) {
	p := testParams()
	p.EdgeRepulsion = true
	s := NewSolver(p, WithWorkers(1))
	defer s.Close()

	// On the x wall, far from the y walls.
	got := s.edgeDensityAt(components.Vec2{X: p.HalfExtents.X})
	assertApprox(t, "wall density", got, edgeDensityRatio*p.TargetDensity, 1e-6)

	if got := s.edgeDensityAt(components.Zero); got != 0 {
		t.Errorf("edge density at centre = %v, want 0", got)
	}
}

func TestDensityAt(t *testing.T) {
	s := NewSolver(testParams(), WithWorkers(1))
	defer s.Close()

	probe := components.Vec2{X: 1, Y: 1}
	if got := s.DensityAt(probe, nil); got != 0 {
		t.Errorf("empty field density = %v, want 0", got)
	}

	ps := []components.Particle{components.NewParticle(probe, components.Zero)}
	if got := s.DensityAt(probe, ps); got != s.SelfDensity() {
		t.Errorf("density on a particle = %v, want %v", got, s.SelfDensity())
	}
	if got := s.DensityAt(components.Vec2{X: -3}, ps); got != 0 {
		t.Errorf("density out of support = %v, want 0", got)
	}
}
