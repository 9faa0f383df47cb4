package problog

import "math"

// CircuitEvaluator is the general exact-inference path: it grounds the
// program into a Boolean formula over its fact variables and computes the
// query marginal by weighted model counting (Shannon expansion). It makes
// no use of the facts' independence structure beyond per-variable weights,
// so it doubles as a check on the closed form in evaluator.go.
type CircuitEvaluator struct{}

func (CircuitEvaluator) Evaluate(p *Program) (float64, error) {
	facts := p.Facts()

	weights := make([]float64, len(facts))
	for i, f := range facts {
		if math.IsNaN(f.Probability) || f.Probability < 0 || f.Probability > 1 {
			return 0, &EvaluationError{Reason: "fact weight outside [0,1]", Err: &DomainError{Value: f.Probability}}
		}
		weights[i] = f.Probability
	}

	// Ground the single rule: the body close(X, Y) unifies with every
	// fact, so unsafe is the disjunction of all fact variables.
	terms := make([]formula, len(facts))
	for i := range facts {
		terms[i] = variable(i)
	}

	prob := modelCount(disjunction{terms}, weights)
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return 0, &EvaluationError{Reason: "model count outside [0,1]"}
	}
	return prob, nil
}

// formula is a ground Boolean formula over fact variables. Conditioning a
// variable simplifies the formula; a fully conditioned formula reduces to
// a constant.
type formula interface {
	condition(v int, val bool) formula
	freeVar() (int, bool)
	constValue() bool
}

type constant bool

func (c constant) condition(int, bool) formula { return c }
func (c constant) freeVar() (int, bool)        { return 0, false }
func (c constant) constValue() bool            { return bool(c) }

type variable int

func (v variable) condition(u int, val bool) formula {
	if int(v) == u {
		return constant(val)
	}
	return v
}
func (v variable) freeVar() (int, bool) { return int(v), true }
func (v variable) constValue() bool     { return false }

type disjunction struct {
	terms []formula
}

func (d disjunction) condition(v int, val bool) formula {
	remaining := make([]formula, 0, len(d.terms))
	for _, t := range d.terms {
		c := t.condition(v, val)
		if _, free := c.freeVar(); !free {
			if c.constValue() {
				return constant(true)
			}
			continue
		}
		remaining = append(remaining, c)
	}
	if len(remaining) == 0 {
		return constant(false)
	}
	return disjunction{remaining}
}

func (d disjunction) freeVar() (int, bool) {
	for _, t := range d.terms {
		if v, ok := t.freeVar(); ok {
			return v, true
		}
	}
	return 0, false
}

func (d disjunction) constValue() bool {
	for _, t := range d.terms {
		if t.constValue() {
			return true
		}
	}
	return false
}

// modelCount sums the weights of all satisfying assignments by splitting
// on one free variable at a time. Exponential in the worst case, but each
// split here collapses one branch to a constant, so the OR query costs
// linear time.
func modelCount(f formula, weights []float64) float64 {
	v, ok := f.freeVar()
	if !ok {
		if f.constValue() {
			return 1
		}
		return 0
	}
	w := weights[v]
	return w*modelCount(f.condition(v, true), weights) +
		(1-w)*modelCount(f.condition(v, false), weights)
}
