package main

import (
	"fmt"
	"time"

	"github.com/ryosan-470/mf-dashboard/internal/config"
	"github.com/ryosan-470/mf-dashboard/internal/simulation"
)

// Quick wall-clock check of one full 5000-path run against the interactive
// latency budget.
func main() {
	cfg := config.CreateExampleConfiguration()

	sim := simulation.NewSimulator()
	start := time.Now()
	result := sim.Run(*cfg)
	elapsed := time.Since(start)

	months := (len(result.Years) - 1) * 12 * sim.Paths
	ms := float64(elapsed.Nanoseconds()) / 1e6
	fmt.Printf("paths=%d years=%d path-months=%d\n", sim.Paths, len(result.Years)-1, months)
	fmt.Printf("elapsed=%s (%.0f path-months/ms)\n", elapsed, float64(months)/ms)
	fmt.Printf("failure=%.4f depletion=%.4f bins=%d\n",
		result.FailureProbability, result.DepletionProbability, len(result.Distribution))
}
