package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/fluidbox/components"
)

// epsilon is the float32 machine epsilon. Displacements shorter than this are
// treated as zero.
const epsilon = 0x1p-23

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// lerp returns a*(1-t) + b*t.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// smoothRamp ramps x from 0 to 1 over the interval [0, 1] as min(1, x²).
func smoothRamp(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return min(1, x*x)
}

// logistic is the standard logistic curve centred on 0.5.
func logistic(x, steepness float32) float32 {
	return 1 / (1 + expf(-steepness*(x-0.5)))
}

// signedBound returns +bound for positive x and -bound otherwise.
func signedBound(x, bound float32) float32 {
	if x > 0 {
		return bound
	}
	return -bound
}

// randomUnit returns a uniformly distributed direction on the unit circle.
// The top-level math/rand/v2 source is safe for concurrent use by workers.
func randomUnit() components.Vec2 {
	angle := rand.Float64() * 2 * math.Pi
	return components.Vec2{
		X: float32(math.Cos(angle)),
		Y: float32(math.Sin(angle)),
	}
}
