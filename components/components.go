// Package components defines the particle state shared by the solver and its collaborators.
package components

// Particle is a unit-mass fluid sample. Particles live in a flat slice and are
// addressed by index; the solver mutates them in place every tick.
type Particle struct {
	Position     Vec2
	Prev         PrevPosition // position one integration step ago
	Predicted    Vec2         // look-ahead position used for density and force evaluation
	Velocity     Vec2
	Acceleration Vec2

	// Derived every tick
	Density  float32
	Pressure float32
}

// NewParticle creates a particle at rest in the first-step integration state.
func NewParticle(pos, vel Vec2) Particle {
	return Particle{
		Position:  pos,
		Predicted: pos,
		Velocity:  vel,
	}
}

// Reset overwrites the particle in place as if it had just been spawned.
// The position history is cleared so the next integration uses the first-step rule.
func (p *Particle) Reset(pos, vel Vec2) {
	*p = NewParticle(pos, vel)
}

// Integrating reports whether the particle has a position history.
func (p *Particle) Integrating() bool {
	return p.Prev.IsSome()
}

// PrevPosition is an optional position. The zero value is None.
type PrevPosition struct {
	pos   Vec2
	valid bool
}

// None returns an empty PrevPosition.
func None() PrevPosition {
	return PrevPosition{}
}

// Some wraps a position.
func Some(v Vec2) PrevPosition {
	return PrevPosition{pos: v, valid: true}
}

// Get returns the wrapped position and whether one is present.
func (p PrevPosition) Get() (Vec2, bool) {
	return p.pos, p.valid
}

// IsSome reports whether a position is present.
func (p PrevPosition) IsSome() bool {
	return p.valid
}
