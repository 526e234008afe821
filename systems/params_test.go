package systems

import (
	"strings"
	"testing"

	"github.com/pthm-cable/fluidbox/config"
)

func TestParamsFromDefaults(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	p, err := ParamsFromConfig(cfg)
	if err != nil {
		t.Fatalf("ParamsFromConfig: %v", err)
	}

	if p.Kernel != Spiky2 {
		t.Errorf("kernel = %v, want spiky2", p.Kernel)
	}
	if !p.Damping.Enabled || p.Damping.Curve != Quadratic {
		t.Errorf("damping = %+v, want enabled quadratic", p.Damping)
	}
	b := p.Bounds()
	assertApprox(t, "bound x", b.X, 6.0-0.075, 1e-6)
	assertApprox(t, "bound y", b.Y, 3.5-0.075, 1e-6)
}

func TestParamsFromConfigRejectsUnknownKernel(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	cfg.Physics.Kernel = "cubic"
	if _, err := ParamsFromConfig(cfg); err == nil {
		t.Error("expected error for unknown kernel")
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		want   string
	}{
		{"zero radius", func(p *Params) { p.SmoothingRadius = 0 }, "smoothing radius"},
		{"flat box", func(p *Params) { p.HalfExtents.Y = 0 }, "half-extents"},
		{"fat particle", func(p *Params) { p.ParticleRadius = 10 }, "particle radius"},
		{"bouncy", func(p *Params) { p.Restitution = 1.5 }, "restitution"},
		{"no prediction step", func(p *Params) { p.PredictionDT = 0 }, "prediction dt"},
		{"no ramp", func(p *Params) { p.Damping = DampingParams{Enabled: true} }, "damping duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.modify(&p)
			err := p.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
	if err := testParams().Validate(); err != nil {
		t.Errorf("base params invalid: %v", err)
	}
}
