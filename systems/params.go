package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/fluidbox/components"
	"github.com/pthm-cable/fluidbox/config"
)

// Params holds the immutable per-run solver parameters.
type Params struct {
	SmoothingRadius    float32
	TargetDensity      float32
	PressureMultiplier float32
	Viscosity          float32
	Gravity            float32
	Restitution        float32 // velocity scale applied on wall contact, in [0, 1]

	HalfExtents    components.Vec2 // box half-size
	ParticleRadius float32         // insets the collision bound

	Kernel        KernelKind
	EdgeRepulsion bool
	Damping       DampingParams

	// PredictionDT is the fixed look-ahead step used for the predictor. It is
	// independent of the frame dt so density evaluation does not follow frame jitter.
	PredictionDT float32
}

// Bounds returns the largest allowed |x| and |y| of a particle centre.
func (p Params) Bounds() components.Vec2 {
	return components.Vec2{
		X: p.HalfExtents.X - p.ParticleRadius,
		Y: p.HalfExtents.Y - p.ParticleRadius,
	}
}

// Validate reports parameters the solver cannot run with.
func (p Params) Validate() error {
	var errs []error
	if !(p.SmoothingRadius > 0) || math.IsInf(float64(p.SmoothingRadius), 0) {
		errs = append(errs, fmt.Errorf("smoothing radius must be positive, got %v", p.SmoothingRadius))
	}
	if !(p.HalfExtents.X > 0 && p.HalfExtents.Y > 0) {
		errs = append(errs, fmt.Errorf("box half-extents must be positive, got (%v, %v)", p.HalfExtents.X, p.HalfExtents.Y))
	}
	if b := p.Bounds(); !(p.ParticleRadius >= 0 && b.X > 0 && b.Y > 0) {
		errs = append(errs, fmt.Errorf("particle radius %v leaves no room inside the box", p.ParticleRadius))
	}
	if !(p.Restitution >= 0 && p.Restitution <= 1) {
		errs = append(errs, fmt.Errorf("restitution must be in [0, 1], got %v", p.Restitution))
	}
	if p.Kernel != Smooth6 && p.Kernel != Spiky2 {
		errs = append(errs, fmt.Errorf("unknown kernel %v", p.Kernel))
	}
	if !(p.PredictionDT > 0) {
		errs = append(errs, fmt.Errorf("prediction dt must be positive, got %v", p.PredictionDT))
	}
	if p.Damping.Enabled {
		if !(p.Damping.Duration > 0) {
			errs = append(errs, fmt.Errorf("damping duration must be positive, got %v", p.Damping.Duration))
		}
		if p.Damping.Curve == Logistic && !(p.Damping.Steepness > 0) {
			errs = append(errs, fmt.Errorf("logistic steepness must be positive, got %v", p.Damping.Steepness))
		}
	}
	return errors.Join(errs...)
}

// ParamsFromConfig builds solver parameters from a loaded configuration.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	kind, err := ParseKernelKind(cfg.Physics.Kernel)
	if err != nil {
		return Params{}, err
	}

	damping := DampingParams{
		Enabled:   cfg.StartupDamping.Enabled,
		Duration:  float32(cfg.StartupDamping.Interval),
		Steepness: float32(cfg.StartupDamping.Steepness),
	}
	if damping.Enabled {
		if damping.Curve, err = ParseDampingCurve(cfg.StartupDamping.Curve); err != nil {
			return Params{}, err
		}
	}

	p := Params{
		SmoothingRadius:    float32(cfg.Physics.SmoothingRadius),
		TargetDensity:      float32(cfg.Physics.TargetDensity),
		PressureMultiplier: float32(cfg.Physics.PressureMultiplier),
		Viscosity:          float32(cfg.Physics.Viscosity),
		Gravity:            float32(cfg.Physics.Gravity),
		Restitution:        float32(cfg.Physics.CollisionDamping),
		HalfExtents: components.Vec2{
			X: float32(cfg.Box.HalfWidth),
			Y: float32(cfg.Box.HalfHeight),
		},
		ParticleRadius: float32(cfg.Particles.Radius),
		Kernel:         kind,
		EdgeRepulsion:  cfg.Physics.EdgeRepulsion,
		Damping:        damping,
		PredictionDT:   float32(cfg.Physics.PredictionDT),
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("solver params: %w", err)
	}
	return p, nil
}
