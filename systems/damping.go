package systems

import "fmt"

// DampingCurve selects the shape of the startup ramp.
type DampingCurve uint8

const (
	// Quadratic ramps as min(1, (t/T)²).
	Quadratic DampingCurve = iota
	// Logistic follows 1/(1+exp(-s(t/T - 0.5))).
	Logistic
)

func (c DampingCurve) String() string {
	switch c {
	case Quadratic:
		return "quadratic"
	case Logistic:
		return "logistic"
	default:
		return fmt.Sprintf("DampingCurve(%d)", uint8(c))
	}
}

// ParseDampingCurve converts a configuration name into a DampingCurve.
func ParseDampingCurve(s string) (DampingCurve, error) {
	switch s {
	case "quadratic":
		return Quadratic, nil
	case "logistic":
		return Logistic, nil
	default:
		return 0, fmt.Errorf("unknown damping curve %q", s)
	}
}

// DampingParams configures the startup ramp.
type DampingParams struct {
	Enabled   bool
	Duration  float32 // seconds until the ramp reaches (close to) 1
	Curve     DampingCurve
	Steepness float32 // logistic only
}

// At returns the ramp value at elapsed time t.
func (p DampingParams) At(t float32) float32 {
	if !p.Enabled {
		return 1
	}
	x := t / p.Duration
	switch p.Curve {
	case Quadratic:
		return smoothRamp(x)
	case Logistic:
		return logistic(x, p.Steepness)
	default:
		panic(fmt.Sprintf("systems: unknown damping curve %d", p.Curve))
	}
}

// DampingState is the startup damping factor for one simulation run. It scales
// the pressure response while an unequilibrated initial layout settles.
type DampingState struct {
	params DampingParams
	factor float32
}

// NewDampingState returns the ramp at t = 0.
func NewDampingState(p DampingParams) DampingState {
	s := DampingState{params: p}
	s.Update(0)
	return s
}

// Update recomputes the factor from the elapsed time since simulation start.
func (s *DampingState) Update(elapsed float32) {
	s.factor = s.params.At(elapsed)
}

// Factor returns the current damping factor in [0, 1].
func (s DampingState) Factor() float32 {
	return s.factor
}
