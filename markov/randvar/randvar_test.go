package randvar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmpirical_RejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
	}{
		{"empty", nil},
		{"negative weight", []float64{0.5, -0.1, 0.6}},
		{"all zero", []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmpirical(tt.weights)
			assert.Error(t, err)
		})
	}
}

func TestEmpirical_Sample_NeverReturnsZeroWeightOutcome(t *testing.T) {
	// GIVEN a distribution with zero-weight outcomes at the edges and middle
	dist, err := NewEmpirical([]float64{0, 0.5, 0, 0.5, 0})
	require.NoError(t, err)

	// WHEN sampling many times
	rng := New(42)
	for i := 0; i < 10000; i++ {
		got := dist.Sample(rng)
		// THEN only the positive-weight outcomes appear
		if got != 1 && got != 3 {
			t.Fatalf("Sample returned zero-weight outcome %d", got)
		}
	}
}

func TestEmpirical_Sample_ConvergesToWeights(t *testing.T) {
	// GIVEN an uneven three-outcome distribution
	weights := []float64{0.2, 0.5, 0.3}
	dist, err := NewEmpirical(weights)
	require.NoError(t, err)

	// WHEN sampling many times with a fixed seed
	rng := New(7)
	const trials = 200000
	counts := make([]int, dist.Len())
	for i := 0; i < trials; i++ {
		counts[dist.Sample(rng)]++
	}

	// THEN the empirical frequencies match the weights within tolerance
	for i, w := range weights {
		freq := float64(counts[i]) / trials
		assert.InDelta(t, w, freq, 0.01, "outcome %d", i)
	}
}

func TestEmpirical_Sample_ReproducibleGivenSeed(t *testing.T) {
	dist, err := NewEmpirical([]float64{0.3, 0.7})
	require.NoError(t, err)

	draw := func() []int {
		rng := New(99)
		out := make([]int, 20)
		for i := range out {
			out[i] = dist.Sample(rng)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestEmpirical_Sample_NilRngUsesDefaultSeed(t *testing.T) {
	dist, err := NewEmpirical([]float64{0.5, 0.5})
	require.NoError(t, err)

	// A nil rng means a fresh default-seeded source per call, so every call
	// returns the same value.
	first := dist.Sample(nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, dist.Sample(nil))
	}
	assert.Equal(t, first, dist.Sample(Default()))
}

func TestEmpirical_SampleCounts_ConservesTotal(t *testing.T) {
	dist, err := NewEmpirical([]float64{0.7, 0.3})
	require.NoError(t, err)

	rng := New(3)
	for _, n := range []int{0, 1, 100, 9999} {
		counts := dist.SampleCounts(rng, n)
		sum := 0
		for _, c := range counts {
			sum += c
		}
		assert.Equal(t, n, sum, "split of %d", n)
	}
}

func TestNewExponential_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1} {
		_, err := NewExponential(rate)
		assert.Error(t, err, "rate %v", rate)
	}
}

func TestExponential_Sample_MeanMatchesInverseRate(t *testing.T) {
	// GIVEN Exp(rate=4), mean 0.25
	exp, err := NewExponential(4)
	require.NoError(t, err)

	// WHEN averaging many draws
	rng := New(11)
	const trials = 200000
	sum := 0.0
	for i := 0; i < trials; i++ {
		v := exp.Sample(rng)
		require.GreaterOrEqual(t, v, 0.0)
		sum += v
	}

	// THEN the sample mean is close to 1/rate
	assert.InDelta(t, 0.25, sum/trials, 0.005)
}

func TestMultinomial_FollowsProbabilities(t *testing.T) {
	rng := New(5)
	const n = 100000
	counts, err := Multinomial(rng, n, []float64{0.1, 0.6, 0.3})
	require.NoError(t, err)
	require.Len(t, counts, 3)

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, n, total)

	for i, p := range []float64{0.1, 0.6, 0.3} {
		assert.InDelta(t, p, float64(counts[i])/n, 0.01, "category %d", i)
	}
}

func TestMultinomial_RejectsInvalidProbabilities(t *testing.T) {
	_, err := Multinomial(New(1), 10, []float64{0.5, math.Inf(-1)})
	assert.Error(t, err)
}
