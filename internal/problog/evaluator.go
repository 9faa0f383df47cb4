package problog

// Evaluator computes the exact marginal probability of the unsafe query
// for a program. Implementations must be pure: evaluating the same
// program twice yields the same probability.
type Evaluator interface {
	Evaluate(p *Program) (float64, error)
}

// NoisyOR evaluates the query in closed form. Because every fact is an
// independent Bernoulli variable and unsafe is the OR over all of them,
// the marginal is 1 - prod(1 - p_i). This is the ground-truth path; the
// general model counter in wmc.go must agree with it.
type NoisyOR struct{}

func (NoisyOR) Evaluate(p *Program) (float64, error) {
	noneClose := 1.0
	for _, f := range p.Facts() {
		noneClose *= 1 - f.Probability
	}
	return 1 - noneClose, nil
}
