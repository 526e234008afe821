package systems

import "github.com/pthm-cable/fluidbox/components"

// edgeDensityRatio sets the wall density at zero distance relative to the
// target density.
const edgeDensityRatio = 1.2

// computeDensity evaluates density and pressure for particle i at its
// predicted position. Self-exclusion is by index: coincident particles still
// count each other.
func (s *Solver) computeDensity(i int) {
	ps := s.ps
	p := &ps[i]
	sample := p.Predicted

	sum := s.selfDensity
	for j := range ps {
		if j == i {
			continue
		}
		sum += s.kernel.Influence(sample.Sub(ps[j].Predicted).LengthSquared())
	}
	if s.params.EdgeRepulsion {
		sum += s.edgeDensityAt(sample)
	}

	p.Density = sum
	p.Pressure = s.pressureFor(sum)
}

// pressureFor is the linear equation of state. Densities below target give
// negative pressure, which pulls particles together.
func (s *Solver) pressureFor(density float32) float32 {
	return (density - s.params.TargetDensity) * s.params.PressureMultiplier * s.damping.Factor()
}

// edgeDensityAt treats each wall as an infinite line that contributes kernel
// influence by perpendicular distance, scaled so a wall at zero distance reads
// as edgeDensityRatio times the target density.
func (s *Solver) edgeDensityAt(p components.Vec2) float32 {
	dx := s.params.HalfExtents.X - absf(p.X)
	dy := s.params.HalfExtents.Y - absf(p.Y)
	return (s.kernel.Influence(dx*dx) + s.kernel.Influence(dy*dy)) * s.edgeDensityFactor
}

// DensityAt samples the density field at an arbitrary point from the current
// particle positions. There is no self term; this is a field probe for
// visualisation, not a particle density.
func (s *Solver) DensityAt(p components.Vec2, ps []components.Particle) float32 {
	var sum float32
	if s.params.EdgeRepulsion {
		sum = s.edgeDensityAt(p)
	}
	for j := range ps {
		sum += s.kernel.Influence(p.Sub(ps[j].Position).LengthSquared())
	}
	return sum
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
