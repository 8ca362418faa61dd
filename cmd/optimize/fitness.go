package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
	"github.com/pthm-cable/mitosis/telemetry"
)

// Targets are the population properties the calibration aims for.
type Targets struct {
	DoublingSec float64 // mean population doubling time in simulated seconds
	SpeedCV     float64 // coefficient of variation of speed at the end of a run
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	seconds    float64
	maxCells   int
	seeds      []int64
	baseConfig *config.Config
	targets    Targets

	mu          sync.Mutex
	lastMetrics runMetrics // averaged over seeds, most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seconds float64, maxCells int, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seconds:    seconds,
		maxCells:   maxCells,
		seeds:      seeds,
		baseConfig: baseCfg,
		targets:    targets,
	}
}

// runMetrics holds what one run measured.
type runMetrics struct {
	DoublingSec float64
	SpeedCV     float64
}

// LastMetrics returns the seed-averaged metrics of the most recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() runMetrics {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMetrics
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// squared relative error of the doubling time plus the squared error of the
// speed spread, averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runMetrics, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	var avg runMetrics
	for _, r := range results {
		total += fe.computeFitness(r)
		avg.DoublingSec += r.DoublingSec
		avg.SpeedCV += r.SpeedCV
	}
	n := float64(len(fe.seeds))
	avg.DoublingSec /= n
	avg.SpeedCV /= n

	fe.mu.Lock()
	fe.lastMetrics = avg
	fe.mu.Unlock()

	return total / n
}

func (fe *FitnessEvaluator) computeFitness(m runMetrics) float64 {
	if math.IsInf(m.DoublingSec, 0) || math.IsNaN(m.DoublingSec) {
		return 1e6
	}
	d := (m.DoublingSec - fe.targets.DoublingSec) / fe.targets.DoublingSec
	c := m.SpeedCV - fe.targets.SpeedCV
	return d*d + c*c
}

// runSimulation executes a single headless run until the time limit or the
// cell cap, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runMetrics {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	sim, err := game.NewSimulation(cfg, game.SimOptions{Seed: seed})
	if err != nil {
		return runMetrics{DoublingSec: math.Inf(1)}
	}
	defer sim.Close()

	var last telemetry.WindowStats
	sim.SetStatsCallback(func(s telemetry.WindowStats) { last = s })

	n0 := sim.Store().Len()
	dt := cfg.Derived.DT32
	for sim.SimTime() < fe.seconds && sim.Store().Len() < fe.maxCells {
		sim.Step(dt)
	}

	m := runMetrics{DoublingSec: doublingTime(n0, sim.Store().Len(), sim.SimTime())}
	if last.SpeedMean > 0 {
		m.SpeedCV = last.SpeedStd / last.SpeedMean
	}
	return m
}

// doublingTime returns the doubling time of exponential growth from n0 to n
// over elapsed seconds. No growth gives +Inf.
func doublingTime(n0, n int, elapsed float64) float64 {
	if n0 <= 0 || n <= n0 {
		return math.Inf(1)
	}
	return elapsed * math.Ln2 / math.Log(float64(n)/float64(n0))
}

// copyConfig returns a copy of the base config whose slices are safe to
// hand to one run.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Seeding.PhaseWeights = append([]int(nil), fe.baseConfig.Seeding.PhaseWeights...)
	cfg.Render.ClearColor = append([]int(nil), fe.baseConfig.Render.ClearColor...)
	cfg.Derived.CumulativeWeights = append([]int(nil), fe.baseConfig.Derived.CumulativeWeights...)
	return &cfg
}
