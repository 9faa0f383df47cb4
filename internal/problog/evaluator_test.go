package problog

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probTolerance = 1e-9

// evaluators under test: the closed form and the general model counter
// must agree on every program built from independent facts.
func evaluators() map[string]Evaluator {
	return map[string]Evaluator{
		"noisy-or": NoisyOR{},
		"wmc":      CircuitEvaluator{},
	}
}

func buildProgram(t *testing.T, probs ...float64) *Program {
	t.Helper()
	p := NewProgram()
	for i, prob := range probs {
		require.NoError(t, p.AddFact("a", "d"+string(rune('0'+i%10)), prob))
	}
	return p
}

func TestEvaluateKnownResults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		probs []float64
		want  float64
	}{
		{"two halves", []float64{0.5, 0.5}, 0.75},
		{"single pair", []float64{0.3}, 0.3},
		{"three pairs", []float64{0.1, 0.2, 0.3}, 1 - 0.9*0.8*0.7},
	}

	for name, ev := range evaluators() {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				got, err := ev.Evaluate(buildProgram(t, tc.probs...))
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, probTolerance)
			})
		}
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	t.Parallel()

	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ev.Evaluate(NewProgram())
			require.NoError(t, err)
			assert.Equal(t, 0.0, got, "empty group must be exactly zero")

			got, err = ev.Evaluate(buildProgram(t, 1.0))
			require.NoError(t, err)
			assert.Equal(t, 1.0, got, "certain pair must be exactly one")

			got, err = ev.Evaluate(buildProgram(t, 0.0))
			require.NoError(t, err)
			assert.Equal(t, 0.0, got, "impossible pair must be exactly zero")
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	t.Parallel()

	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := buildProgram(t, 0.2, 0.4, 0.6)
			first, err := ev.Evaluate(p)
			require.NoError(t, err)
			second, err := ev.Evaluate(p)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

// The general model counter must reduce to the noisy-OR closed form on
// programs of independent facts.
func TestCircuitAgreesWithClosedForm(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(12)
		probs := make([]float64, n)
		expected := 1.0
		for i := range probs {
			probs[i] = rng.Float64()
			expected *= 1 - probs[i]
		}
		expected = 1 - expected

		p := buildProgram(t, probs...)

		closed, err := (NoisyOR{}).Evaluate(p)
		require.NoError(t, err)
		general, err := (CircuitEvaluator{}).Evaluate(p)
		require.NoError(t, err)

		assert.InDelta(t, expected, closed, probTolerance)
		assert.InDelta(t, closed, general, probTolerance)
	}
}

func TestEvaluateDuplicatePairsAreIndependent(t *testing.T) {
	t.Parallel()

	// Two annotated facts for the same pair are two independent trials.
	p := NewProgram()
	require.NoError(t, p.AddFact("a", "b", 0.5))
	require.NoError(t, p.AddFact("a", "b", 0.5))

	for name, ev := range evaluators() {
		got, err := ev.Evaluate(p)
		require.NoError(t, err)
		assert.InDelta(t, 0.75, got, probTolerance, name)
	}
}

func TestEvaluateResultInUnitInterval(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		probs := make([]float64, 1+rng.Intn(20))
		for i := range probs {
			probs[i] = rng.Float64()
		}
		p := buildProgram(t, probs...)

		for name, ev := range evaluators() {
			got, err := ev.Evaluate(p)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(got), name)
			assert.GreaterOrEqual(t, got, 0.0, name)
			assert.LessOrEqual(t, got, 1.0, name)
		}
	}
}
