// Package problog assembles and evaluates the small probabilistic logic
// programs used for pairwise collision checks: one independent weighted
// `close(d1, d2)` fact per observed pair, a single derived `unsafe` rule,
// and one query.
//
// The rendered text matches the annotated-fact syntax of ProbLog-style
// engines:
//
//	0.5::close(car_1, car_2).
//	unsafe :- close(X, Y).
//	query(unsafe).
package problog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fact is one weighted ground fact of the program. Each fact is an
// independent Bernoulli variable with the given success probability,
// even when two facts name the same pair.
type Fact struct {
	D1          string
	D2          string
	Probability float64
}

// Program is an ordered set of closeness facts plus the fixed unsafe rule
// and query. Facts keep insertion order so the rendered text is stable.
type Program struct {
	facts []Fact
}

func NewProgram() *Program {
	return &Program{}
}

// Atoms must start with a lowercase letter; bare integers are also valid
// terms. Anything else would need quoting, which we refuse rather than
// attempt to escape.
var (
	atomPattern    = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
	integerPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

func validTerm(s string) bool {
	return atomPattern.MatchString(s) || integerPattern.MatchString(s)
}

// AddFact appends a weighted closeness fact for the pair (d1, d2).
// Returns a ProgramConstructionError if either identifier cannot be
// embedded in the program text, and a DomainError if the probability is
// not in [0,1].
func (p *Program) AddFact(d1, d2 string, prob float64) error {
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return &DomainError{Value: prob}
	}
	if !validTerm(d1) {
		return &ProgramConstructionError{Term: d1, Reason: "not a valid atom or integer"}
	}
	if !validTerm(d2) {
		return &ProgramConstructionError{Term: d2, Reason: "not a valid atom or integer"}
	}
	p.facts = append(p.facts, Fact{D1: d1, D2: d2, Probability: prob})
	return nil
}

// Facts returns the program's facts in insertion order.
func (p *Program) Facts() []Fact {
	return p.facts
}

// String renders the full program text: annotated facts, the unsafe rule,
// and the query.
func (p *Program) String() string {
	var b strings.Builder
	for _, f := range p.facts {
		fmt.Fprintf(&b, "%s::close(%s, %s).\n",
			strconv.FormatFloat(f.Probability, 'g', -1, 64), f.D1, f.D2)
	}
	b.WriteString("unsafe :- close(X, Y).\n")
	b.WriteString("query(unsafe).")
	return b.String()
}
