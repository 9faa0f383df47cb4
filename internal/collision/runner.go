// Package collision drives per-timestep collision-probability evaluation:
// for each timestep group it assembles a probabilistic program, evaluates
// the unsafe query, and records the probability and wall-clock cost.
package collision

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/banshee-data/closeness.report/internal/closeness"
	"github.com/banshee-data/closeness.report/internal/problog"
)

// Result is the outcome for one timestep. Err is set when the timestep
// failed; Probability and Elapsed are only meaningful when Err is nil.
type Result struct {
	Timestep    string
	Pairs       int
	Probability float64
	Elapsed     time.Duration
	Err         error
}

// Runner evaluates timestep groups sequentially, in input order. A
// failure on one timestep is recorded and logged but never aborts the
// remaining timesteps.
type Runner struct {
	Evaluator problog.Evaluator

	// Log defaults to the standard logger. Quiet suppresses the
	// per-timestep program text dump.
	Log   *log.Logger
	Quiet bool
}

func (r *Runner) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.Default()
}

// Run processes every group and returns one result per group, in order.
func (r *Runner) Run(groups []closeness.Group) []Result {
	results := make([]Result, 0, len(groups))
	for _, g := range groups {
		results = append(results, r.runGroup(g))
	}
	return results
}

func (r *Runner) runGroup(g closeness.Group) Result {
	res := Result{Timestep: g.T, Pairs: len(g.Rows)}

	prog := problog.NewProgram()
	for _, row := range g.Rows {
		if err := prog.AddFact(row.D1, row.D2, row.PClose); err != nil {
			res.Err = fmt.Errorf("timestep %s: pair (%s, %s): %w", g.T, row.D1, row.D2, err)
			r.logger().Printf("ERROR: %v (skipping timestep)", res.Err)
			return res
		}
	}

	if !r.Quiet {
		r.logger().Printf("timestep %s program:\n%s", g.T, prog)
	}

	start := time.Now()
	prob, err := r.Evaluator.Evaluate(prog)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("timestep %s: %w", g.T, err)
		r.logger().Printf("ERROR: %v (skipping timestep)", res.Err)
		return res
	}

	res.Probability = prob
	r.logger().Printf("timestep %s: pairs=%d p(unsafe)=%.9f elapsed=%.6fs",
		g.T, res.Pairs, res.Probability, res.Elapsed.Seconds())
	return res
}

// WriteResultsCSV emits the successful results as a flat CSV for the
// chart tooling: t, pairs, probability, elapsed_seconds. Failed timesteps
// are omitted; they were already reported by the runner.
func WriteResultsCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "pairs", "probability", "elapsed_seconds"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		row := []string{
			res.Timestep,
			strconv.Itoa(res.Pairs),
			strconv.FormatFloat(res.Probability, 'g', -1, 64),
			fmt.Sprintf("%.6f", res.Elapsed.Seconds()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for timestep %s: %w", res.Timestep, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
