// Calibration tool - CMA-ES search over duplication drift and seeding jitter
// for a target population doubling time and speed spread.
//
// Usage: go run ./cmd/optimize -output runs/calib -doubling 12 -speed-cv 0.3
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/mitosis/config"
)

// evalRow is one line of optimize_log.csv. Parameter columns follow
// NewParamVector order.
type evalRow struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	DoublingSec float64 `csv:"doubling_sec"`
	SpeedCV     float64 `csv:"speed_cv"`
	DriftMin    float64 `csv:"drift_min"`
	DriftMax    float64 `csv:"drift_max"`
	DriftScale  float64 `csv:"drift_scale"`
	SpeedJitter float64 `csv:"speed_jitter"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seconds := flag.Float64("seconds", 60, "Simulated seconds per run")
	maxCells := flag.Int("max-cells", 20000, "Stop a run early at this population")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	doubling := flag.Float64("doubling", 12, "Target doubling time in simulated seconds")
	speedCV := flag.Float64("speed-cv", 0.3, "Target speed coefficient of variation")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *doubling <= 0 {
		log.Fatal("--doubling must be positive")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *seconds, *maxCells, evalSeeds, baseCfg,
		Targets{DoublingSec: *doubling, SpeedCV: *speedCV})

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			// Clamped values are the ones the runs actually used
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			m := evaluator.LastMetrics()
			rows := []*evalRow{{
				Eval:        evalCount,
				Fitness:     fitness,
				DoublingSec: m.DoublingSec,
				SpeedCV:     m.SpeedCV,
				DriftMin:    clamped[0],
				DriftMax:    clamped[1],
				DriftScale:  clamped[2],
				SpeedJitter: clamped[3],
			}}
			if !headerWritten {
				err = gocsv.Marshal(rows, logFile)
				headerWritten = err == nil
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %d/%d: doubling=%.2fs speed_cv=%.3f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, m.DoublingSec, m.SpeedCV, fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES calibration with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, seconds per run: %.0f, target doubling %.2fs, target speed cv %.3f\n",
		*seeds, *seconds, *doubling, *speedCV)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
