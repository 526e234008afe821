package systems

import "github.com/pthm-cable/fluidbox/components"

// verletResult is the outcome of one integration step.
type verletResult struct {
	Prev  components.Vec2 // position history to carry into the next step
	X     components.Vec2
	V     components.Vec2
	Moved bool
}

// verlet advances a particle by dt and applies per-axis boundary reflection.
//
// Without a position history the first-order rule v*dt + a*dt²/2 is used;
// afterwards the Verlet recurrence x - prev + a*dt². Displacements below
// epsilon count as no movement, which keeps a particle resting on a wall
// from bouncing on rounding noise.
func verlet(prev components.PrevPosition, x, v, a components.Vec2, dt float32, bounds components.Vec2, restitution float32) verletResult {
	var delta components.Vec2
	if last, ok := prev.Get(); ok {
		delta = x.Sub(last).Add(a.Scale(dt * dt))
	} else {
		delta = v.Scale(dt).Add(a.Scale(0.5 * dt * dt))
	}

	if delta.Length() < epsilon {
		return verletResult{Prev: x, X: x, V: components.Zero, Moved: false}
	}

	curr := x
	next := x.Add(delta)
	vel := delta.Scale(1 / dt)

	reflect(&curr.X, &next.X, &vel.X, -bounds.X, bounds.X, restitution, dt)
	reflect(&curr.Y, &next.Y, &vel.Y, -bounds.Y, bounds.Y, restitution, dt)

	return verletResult{Prev: curr, X: next, V: vel, Moved: true}
}

// reflect mirrors both the current and next position about a crossed bound so
// the implied Verlet velocity follows the bounce, then pulls the history
// toward the new position so that implied velocity also carries the
// restitution loss.
func reflect(curr, next, v *float32, low, high, restitution, dt float32) {
	var bound float32
	switch {
	case *next < low:
		bound = low
	case *next > high:
		bound = high
	default:
		return
	}
	*curr = 2*bound - *curr
	*next = 2*bound - *next
	*curr = lerp(*next, *curr, restitution)
	*v *= -restitution

	// An overshoot wider than the box would mirror past the opposite wall.
	// Clamping moves next, so the history is rebuilt to keep the implied
	// Verlet velocity equal to v.
	if clamped := min(max(*next, low), high); clamped != *next {
		*next = clamped
		*curr = clamped - *v*dt
	}
}

// predict extrapolates particle p with the fixed prediction step.
func (s *Solver) predict(p *components.Particle) {
	r := verlet(p.Prev, p.Position, p.Velocity, p.Acceleration, s.params.PredictionDT, s.bounds, s.params.Restitution)
	p.Predicted = r.X
}

// correct integrates particle p with the frame step. The first-step state is
// left only once the particle actually moves.
func (s *Solver) correct(p *components.Particle) {
	r := verlet(p.Prev, p.Position, p.Velocity, p.Acceleration, s.dt, s.bounds, s.params.Restitution)
	if r.Moved || p.Prev.IsSome() {
		p.Prev = components.Some(r.Prev)
	}
	p.Position = r.X
	p.Velocity = r.V
}
