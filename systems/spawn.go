package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/fluidbox/components"
)

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// RandomInBox returns a point drawn uniformly from [-half, half) on each axis.
func RandomInBox(rng *rand.Rand, half components.Vec2) components.Vec2 {
	return components.Vec2{
		X: (2*rng.Float32() - 1) * half.X,
		Y: (2*rng.Float32() - 1) * half.Y,
	}
}

// RandomInDisk returns a vector with uniformly drawn direction and a magnitude
// drawn uniformly from [0, maxRadius).
func RandomInDisk(rng *rand.Rand, maxRadius float32) components.Vec2 {
	mag := rng.Float32() * maxRadius
	angle := rng.Float64() * 2 * math.Pi
	return components.Vec2{
		X: float32(math.Cos(angle)) * mag,
		Y: float32(math.Sin(angle)) * mag,
	}
}

// SpawnParticles creates n particles at rest, uniformly placed inside the
// collision bound of p.
func SpawnParticles(rng *rand.Rand, n int, p Params) []components.Particle {
	bounds := p.Bounds()
	ps := make([]components.Particle, n)
	for i := range ps {
		ps[i] = components.NewParticle(RandomInBox(rng, bounds), components.Zero)
	}
	return ps
}

// Respawn resets every particle to a random position with a small random
// velocity, returning each to the first-step integration state.
func Respawn(rng *rand.Rand, ps []components.Particle, p Params, maxSpeed float32) {
	bounds := p.Bounds()
	for i := range ps {
		ps[i].Reset(RandomInBox(rng, bounds), RandomInDisk(rng, maxSpeed))
	}
}
