package main

import (
	"sync"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/engine"
)

// Scenarios are progress jumps the engine must settle after. Each one
// lands in a different phase, so the springs are scored across the whole
// narrative, not just the final chart.
var scenarios = []float64{0.1, 0.37, 0.67, 1.0}

// settledError is the settle criterion in pixels.
const settledError = 0.5

// FitnessEvaluator runs headless engines and scores parameter vectors.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	baseConfig *config.Config

	mu       sync.Mutex
	lastCost float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		baseConfig: baseCfg,
	}
}

// LastCost returns the cost from the most recent evaluation.
func (fe *FitnessEvaluator) LastCost() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCost
}

// Evaluate computes the cost for a parameter vector (lower = better):
// ticks to settle after each scenario jump, plus a heavy penalty for any
// residual error at the tick cap. Scenarios run in parallel; the lattice
// integration itself is deterministic so one run per scenario suffices.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	costs := make([]float64, len(scenarios))
	var wg sync.WaitGroup

	for i, target := range scenarios {
		wg.Add(1)
		go func(idx int, p float64) {
			defer wg.Done()
			costs[idx] = fe.runScenario(x, p)
		}(i, target)
	}
	wg.Wait()

	var total float64
	for _, c := range costs {
		total += c
	}
	cost := total / float64(len(scenarios))

	fe.mu.Lock()
	fe.lastCost = cost
	fe.mu.Unlock()
	return cost
}

// runScenario jumps a fresh engine to the target progress, also plucking
// the string when the scenario stays in the string phase, and counts ticks
// until both integrators settle.
func (fe *FitnessEvaluator) runScenario(x []float64, target float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	eng := engine.New(cfg, 1)
	defer eng.Unload()
	eng.Resize(float32(cfg.Screen.Width), float32(cfg.Screen.Height))

	eng.SetProgress(target)
	if target <= cfg.Input.PluckLimit {
		eng.Pluck(0.5, 1)
	}

	const dt = 1.0 / 60.0
	lat := eng.Lattice()

	for tick := 1; tick <= fe.maxTicks; tick++ {
		eng.Tick(dt)
		if lat.SettleError() < settledError && lat.StringEnergy() < cfg.Idle.EnergyThreshold {
			return float64(tick)
		}
	}

	// Never settled: cap plus a residual penalty so gradients still exist
	return float64(fe.maxTicks) + 1000*lat.SettleError()
}

// copyConfig returns a private copy of the base config. Only scalar spring
// fields are mutated, so a value copy is enough.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
