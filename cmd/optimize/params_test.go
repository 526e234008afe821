package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	if len(got) != pv.Dim() {
		t.Fatalf("ExtractFromConfig returned %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: config default %v, spec default %v", spec.Name, got[i], want[i])
		}
		if want[i] < spec.Min || want[i] > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, want[i], spec.Min, spec.Max)
		}
	}
}

func TestNormalizeMapsBoundsToUnit(t *testing.T) {
	pv := NewParamVector()
	lo := make([]float64, pv.Dim())
	hi := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		lo[i], hi[i] = spec.Min, spec.Max
	}
	for i, v := range pv.Normalize(lo) {
		if math.Abs(v) > 1e-12 {
			t.Errorf("%s: min normalized to %v", pv.Specs[i].Name, v)
		}
	}
	for i, v := range pv.Normalize(hi) {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("%s: max normalized to %v", pv.Specs[i].Name, v)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	pv := NewParamVector()
	if err := pv.ApplyToConfig(cfg, []float64{100, -1, 2, 1.5}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	got := pv.ExtractFromConfig(cfg)
	want := []float64{20, 0, 2, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	windows := []telemetry.WindowStats{
		{AvgKEMean: 10, DensityMean: 5, DensityStd: 5},
		{AvgKEMean: 0.2, DensityMean: 1.1, DensityStd: 0.2},
		{AvgKEMean: 0.4, DensityMean: 0.9, DensityStd: 0.4},
	}
	r, ok := summarize(windows, 1.0)
	if !ok {
		t.Fatal("summarize rejected valid windows")
	}
	if math.Abs(r.AvgKE-0.3) > 1e-9 {
		t.Errorf("AvgKE = %v, want 0.3", r.AvgKE)
	}
	if math.Abs(r.Spread-0.3) > 1e-9 {
		t.Errorf("Spread = %v, want 0.3", r.Spread)
	}
	if math.Abs(r.Offset-0.1) > 1e-9 {
		t.Errorf("Offset = %v, want 0.1", r.Offset)
	}
	if r.Windows != 3 {
		t.Errorf("Windows = %d, want 3", r.Windows)
	}

	if _, ok := summarize(nil, 1.0); ok {
		t.Error("summarize accepted an empty run")
	}
	if _, ok := summarize([]telemetry.WindowStats{{AvgKEMean: math.NaN()}}, 1.0); ok {
		t.Error("summarize accepted a NaN run")
	}
}

func TestEvaluateShortRun(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	cfg.Particles.Count = 30
	cfg.Telemetry.StatsWindow = 0.25
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, []int64{1, 2}, cfg)
	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness >= failedFitness || math.IsNaN(fitness) || fitness < 0 {
		t.Fatalf("fitness = %v, want a finite non-negative score", fitness)
	}
	if s := fe.LastSummary(); s.Windows != 4 {
		t.Errorf("Windows = %d, want 4", s.Windows)
	}
}
