package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/sim"
	"github.com/pthm-cable/fluidbox/telemetry"
)

// Fitness weights.
const (
	weightEnergy  = 1.0
	weightSpread  = 0.5 // density stddev relative to target
	weightOffset  = 0.5 // |mean density - target| relative to target
	failedFitness = 1e6

	settleWindows = 2 // windows averaged at the end of a run
)

// FitnessEvaluator runs headless simulations and scores how well the fluid
// settles. Lower is better.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu         sync.Mutex
	lastResult runSummary // averaged over seeds, most recent Evaluate call
}

// runSummary is the settled state at the end of one run.
type runSummary struct {
	AvgKE   float64
	Spread  float64
	Offset  float64
	Windows int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: baseCfg.Telemetry.StatsWindow,
	}
}

// LastSummary returns the seed-averaged summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel, each on a serial solver.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return failedFitness
	}

	results := make([]runSummary, len(fe.seeds))
	ok := make([]bool, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], ok[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg runSummary
	for i, r := range results {
		if !ok[i] {
			return failedFitness
		}
		avg.AvgKE += r.AvgKE
		avg.Spread += r.Spread
		avg.Offset += r.Offset
		avg.Windows += r.Windows
	}
	n := float64(len(results))
	avg.AvgKE /= n
	avg.Spread /= n
	avg.Offset /= n
	avg.Windows /= len(results)

	fe.mu.Lock()
	fe.lastResult = avg
	fe.mu.Unlock()

	return computeFitness(avg)
}

// runSimulation runs one seed to maxTicks and summarises its last windows.
// It reports false when the run produced no usable windows or blew up.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (runSummary, bool) {
	var windows []telemetry.WindowStats
	s, err := sim.New(cfg, sim.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		Workers:        1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return runSummary{}, false
	}
	defer s.Close()

	for s.Tick() < fe.maxTicks {
		s.Step(cfg.Derived.DT32)
	}
	return summarize(windows, cfg.Physics.TargetDensity)
}

// summarize averages the final settleWindows windows.
func summarize(windows []telemetry.WindowStats, target float64) (runSummary, bool) {
	if len(windows) == 0 || target <= 0 {
		return runSummary{}, false
	}
	tail := windows[max(len(windows)-settleWindows, 0):]

	var r runSummary
	for _, w := range tail {
		r.AvgKE += w.AvgKEMean
		r.Spread += w.DensityStd / target
		r.Offset += math.Abs(w.DensityMean-target) / target
	}
	n := float64(len(tail))
	r.AvgKE /= n
	r.Spread /= n
	r.Offset /= n
	r.Windows = len(windows)

	if !finite(r.AvgKE) || !finite(r.Spread) || !finite(r.Offset) {
		return runSummary{}, false
	}
	return r, true
}

// computeFitness combines the settled-state terms into one scalar.
func computeFitness(r runSummary) float64 {
	return weightEnergy*r.AvgKE + weightSpread*r.Spread + weightOffset*r.Offset
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
