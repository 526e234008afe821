package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/fluidbox/components"
)

// testParams returns a quiet configuration: no gravity, viscosity, edge
// repulsion or startup damping.
func testParams() Params {
	return Params{
		SmoothingRadius:    1.0,
		TargetDensity:      0.5,
		PressureMultiplier: 1.0,
		Restitution:        0.7,
		HalfExtents:        components.Vec2{X: 5, Y: 5},
		ParticleRadius:     0.05,
		Kernel:             Spiky2,
		PredictionDT:       1.0 / 120,
	}
}

func approxEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func assertApprox(t *testing.T, name string, got, want, tol float32) {
	t.Helper()
	if !approxEqual(got, want, tol) {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func isFinite(v components.Vec2) bool {
	return !math.IsNaN(float64(v.X)) && !math.IsNaN(float64(v.Y)) &&
		!math.IsInf(float64(v.X), 0) && !math.IsInf(float64(v.Y), 0)
}
