// Continuous-time Markov jump process sampled with the Gillespie algorithm:
// holding time from the total outgoing rate, destination from the relative
// off-diagonal rates.

package markov

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cohort-sim/cohort-sim/markov/randvar"
)

// Gillespie is a continuous-time Markov jump process over a transition rate
// matrix. Immutable after construction; per-state distributions are computed
// once.
type Gillespie struct {
	space *stateSpace
	// Both slices are indexed by state and nil for absorbing states
	// (total outgoing rate zero).
	holding []*randvar.Exponential
	dests   []*randvar.Empirical
}

// NewGillespie builds the process from a transition rate matrix. Diagonal
// entries are ignored whether they carry a value or the not-applicable
// marker. labels is optional (nil for an unlabeled model).
func NewGillespie(rateMatrix [][]Rate, labels []StateLabel) (*Gillespie, error) {
	if err := validateRateMatrix(rateMatrix); err != nil {
		return nil, err
	}
	space, err := newStateSpace(len(rateMatrix), labels)
	if err != nil {
		return nil, err
	}

	g := &Gillespie{
		space:   space,
		holding: make([]*randvar.Exponential, len(rateMatrix)),
		dests:   make([]*randvar.Empirical, len(rateMatrix)),
	}
	absorbing := 0
	for i, row := range rateMatrix {
		rateOut := OutRate(row, i)
		if rateOut == 0 {
			// Absorbing: no distributions, sampled deterministically.
			absorbing++
			continue
		}
		exp, err := randvar.NewExponential(rateOut)
		if err != nil {
			return nil, constructionErrorf("row %d of the rate matrix is invalid: %v", i, err)
		}
		// Destination weights are the off-diagonal rates; the self weight is
		// forced to zero so the process cannot jump to its own state.
		weights := make([]float64, len(row))
		for j, entry := range row {
			if i == j {
				continue
			}
			if v, ok := entry.Value(); ok {
				weights[j] = v
			}
		}
		dest, err := randvar.NewEmpirical(weights)
		if err != nil {
			return nil, constructionErrorf("row %d of the rate matrix is invalid: %v", i, err)
		}
		g.holding[i] = exp
		g.dests[i] = dest
	}

	logrus.Debugf("gillespie process built with %d states, %d absorbing", space.size(), absorbing)
	return g, nil
}

// GetNextState samples the holding time and successor of the given state.
//
// For a non-absorbing state the call consumes the rng twice in a fixed
// order: holding time first, destination second. For an absorbing state it
// consumes nothing and returns the no-holding-time sentinel with the state
// itself as destination.
func (g *Gillespie) GetNextState(current StateRef, rng *rand.Rand) (HoldingTime, State, error) {
	idx, err := g.space.resolve(current)
	if err != nil {
		return HoldingTime{}, State{}, err
	}

	if g.holding[idx] == nil {
		return NoHoldingTime(), g.space.state(idx), nil
	}

	// Both draws must consume the same source, so a nil rng is replaced
	// here rather than independently inside each sampler.
	if rng == nil {
		rng = randvar.Default()
	}
	dt := g.holding[idx].Sample(rng)
	next := g.dests[idx].Sample(rng)
	return NewHoldingTime(dt), g.space.state(next), nil
}

// NumStates returns the size of the state space.
func (g *Gillespie) NumStates() int {
	return g.space.size()
}
