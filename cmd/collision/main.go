// Command collision evaluates per-timestep collision probability from a
// pairwise-closeness CSV.
//
// For every timestep in the input it assembles a probabilistic logic
// program (one weighted close/2 fact per pair, unsafe :- close(X, Y),
// query(unsafe)), evaluates the marginal probability of unsafe, and
// prints the program text, the probability, and the wall-clock
// evaluation time. A failing timestep is reported and skipped; the run
// continues.
//
// Usage:
//
//	go run ./cmd/collision [flags]
//
// Flags:
//
//	-input      Pairwise closeness CSV (default: pairwise_closeness.csv)
//	-results    Results CSV to write, empty to skip (default: collision_results.csv)
//	-evaluator  closed (noisy-OR) or wmc (general model counter)
//	-quiet      Suppress per-timestep program text
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/banshee-data/closeness.report/internal/closeness"
	"github.com/banshee-data/closeness.report/internal/collision"
	"github.com/banshee-data/closeness.report/internal/problog"
)

func main() {
	input := flag.String("input", "pairwise_closeness.csv", "Pairwise closeness CSV")
	results := flag.String("results", "collision_results.csv", "Results CSV to write (empty to skip)")
	evaluatorName := flag.String("evaluator", "closed", "Evaluator: closed or wmc")
	quiet := flag.Bool("quiet", false, "Suppress per-timestep program text")
	flag.Parse()

	var evaluator problog.Evaluator
	switch *evaluatorName {
	case "closed":
		evaluator = problog.NoisyOR{}
	case "wmc":
		evaluator = problog.CircuitEvaluator{}
	default:
		log.Fatalf("unknown evaluator %q (want closed or wmc)", *evaluatorName)
	}

	runID := uuid.NewString()[:8]
	log.Printf("run %s: input=%s evaluator=%s", runID, *input, *evaluatorName)

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	obs, err := closeness.LoadCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("load %s: %v", *input, err)
	}

	groups := closeness.GroupByTimestep(obs)
	log.Printf("run %s: %d observations across %d timesteps", runID, len(obs), len(groups))

	runner := &collision.Runner{Evaluator: evaluator, Quiet: *quiet}
	runResults := runner.Run(groups)

	failed := 0
	for _, r := range runResults {
		if r.Err != nil {
			failed++
		}
	}
	log.Printf("run %s: %d timesteps evaluated, %d failed", runID, len(runResults)-failed, failed)

	if *results != "" {
		out, err := os.Create(*results)
		if err != nil {
			log.Fatalf("create results file: %v", err)
		}
		if err := collision.WriteResultsCSV(out, runResults); err != nil {
			out.Close()
			log.Fatalf("write results: %v", err)
		}
		if err := out.Close(); err != nil {
			log.Fatalf("close results file: %v", err)
		}
		log.Printf("run %s: results written to %s", runID, *results)
	}

	if len(runResults) > 0 && failed == len(runResults) {
		log.Fatalf("run %s: every timestep failed", runID)
	}
}
