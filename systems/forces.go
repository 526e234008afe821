package systems

import "github.com/pthm-cable/fluidbox/components"

// computeAcceleration accumulates pressure, viscosity, edge and gravity terms
// for particle i. The startup damping factor scales only the pressure and edge
// terms.
func (s *Solver) computeAcceleration(i int) {
	ps := s.ps
	x := &ps[i]
	mu := s.params.Viscosity

	var pressure, viscosity components.Vec2
	for j := range ps {
		if j == i {
			continue
		}
		o := &ps[j]
		delta := x.Predicted.Sub(o.Predicted)
		pressure = pressure.Add(s.pressureContribution(x.Pressure, o.Pressure, o.Density, delta))

		if mu != 0 {
			w := s.kernel.Influence(delta.LengthSquared())
			viscosity = viscosity.Add(o.Velocity.Sub(x.Velocity).Scale(w * mu))
		}
	}

	acc := pressure.Scale(1 / x.Density)
	if s.params.EdgeRepulsion {
		acc = acc.Add(s.edgeAcceleration(x.Predicted, x.Density))
	}
	acc = acc.Scale(s.damping.Factor()).Add(viscosity)
	acc.Y -= s.params.Gravity

	x.Acceleration = acc
}

// pressureContribution is the pressure-gradient term of neighbour j on i.
// The shared pressure 0.5*(pi + pj) is the same for both members of a pair.
func (s *Solver) pressureContribution(pi, pj, densityJ float32, delta components.Vec2) components.Vec2 {
	shared := 0.5 * (pi + pj)
	return s.kernel.Gradient(delta).Scale(shared / densityJ)
}

// edgeAcceleration pushes particles away from the nearest x and y walls using
// the kernel gradient against each wall distance vector independently.
func (s *Solver) edgeAcceleration(p components.Vec2, density float32) components.Vec2 {
	wx := p.X - signedBound(p.X, s.params.HalfExtents.X)
	wy := p.Y - signedBound(p.Y, s.params.HalfExtents.Y)

	grad := s.kernel.Gradient(components.Vec2{X: wx}).
		Add(s.kernel.Gradient(components.Vec2{Y: wy}))
	return grad.Scale(s.wallPressure / s.edgeDensity / density)
}
