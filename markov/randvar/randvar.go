// Random-variate samplers consumed by the markov package: empirical
// (weighted discrete), exponential, and multinomial draws over an explicit
// *rand.Rand source.

package randvar

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Empirical is a discrete distribution over {0..k-1} with fixed weights.
// Weights need not sum to 1; they are normalized by their total. Zero-weight
// outcomes are never sampled.
type Empirical struct {
	cum   []float64 // cumulative weights; cum[k-1] == total
	total float64
}

// NewEmpirical builds an empirical distribution from non-negative weights.
// At least one weight must be positive.
func NewEmpirical(weights []float64) (*Empirical, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("empirical distribution needs at least one weight")
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("empirical weight at index %d is negative (%v)", i, w)
		}
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil, fmt.Errorf("empirical weights sum to %v, need a positive total", total)
	}

	cum := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w
		cum[i] = running
	}
	return &Empirical{cum: cum, total: total}, nil
}

// Len returns the number of outcomes in the support (including zero-weight ones).
func (e *Empirical) Len() int {
	return len(e.cum)
}

// Sample draws one outcome index. A nil rng draws from a fresh
// default-seeded source.
func (e *Empirical) Sample(rng *rand.Rand) int {
	rng = orDefault(rng)
	u := rng.Float64() * e.total
	// First index whose cumulative weight strictly exceeds u. The strict
	// comparison keeps zero-weight outcomes (empty sub-intervals) unreachable
	// even when u lands exactly on a boundary.
	idx := sort.Search(len(e.cum), func(i int) bool { return e.cum[i] > u })
	if idx == len(e.cum) {
		idx = len(e.cum) - 1
	}
	return idx
}

// SampleCounts draws a multinomial split of n across the distribution's
// outcomes: the returned slice has Len() entries summing exactly to n.
func (e *Empirical) SampleCounts(rng *rand.Rand, n int) []int {
	rng = orDefault(rng)
	counts := make([]int, len(e.cum))
	for i := 0; i < n; i++ {
		counts[e.Sample(rng)]++
	}
	return counts
}

// Exponential is an exponential distribution parameterized by rate (events
// per unit time); its mean is 1/rate.
type Exponential struct {
	rate float64
}

// NewExponential builds an exponential distribution with the given rate.
func NewExponential(rate float64) (*Exponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("exponential rate must be positive, got %v", rate)
	}
	return &Exponential{rate: rate}, nil
}

// Sample draws one value. A nil rng draws from a fresh default-seeded source.
func (e *Exponential) Sample(rng *rand.Rand) float64 {
	rng = orDefault(rng)
	return rng.ExpFloat64() / e.rate
}

// Multinomial splits n across len(probs) categories according to probs.
// The result always sums exactly to n.
func Multinomial(rng *rand.Rand, n int, probs []float64) ([]int, error) {
	dist, err := NewEmpirical(probs)
	if err != nil {
		return nil, err
	}
	return dist.SampleCounts(rng, n), nil
}
