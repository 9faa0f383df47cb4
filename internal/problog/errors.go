package problog

import "fmt"

// DomainError reports a fact probability outside the closed interval [0,1].
// Out-of-range probabilities are rejected, never clamped.
type DomainError struct {
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("probability %v outside [0,1]", e.Value)
}

// ProgramConstructionError reports a value that cannot be embedded in the
// textual program without breaking its grammar.
type ProgramConstructionError struct {
	Term   string
	Reason string
}

func (e *ProgramConstructionError) Error() string {
	return fmt.Sprintf("cannot embed %q in program: %s", e.Term, e.Reason)
}

// EvaluationError reports that an evaluator rejected or failed on a
// constructed program.
type EvaluationError struct {
	Reason string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("evaluation failed: %s", e.Reason)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
