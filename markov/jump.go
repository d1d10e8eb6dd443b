// Discrete-time Markov jump process: samples the next state of a single
// entity from a transition probability matrix.

package markov

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cohort-sim/cohort-sim/markov/randvar"
)

// JumpProcess is a discrete-time Markov jump process. It is immutable after
// construction and stateless across calls: the only mutation a call performs
// is consuming randomness from the supplied source.
type JumpProcess struct {
	space *stateSpace
	dists []*randvar.Empirical // one per state, over destination indices
}

// NewJumpProcess builds a jump process from a transition probability matrix.
// labels is optional (nil for an unlabeled model); when supplied it must
// enumerate exactly one name per state in index order.
//
// Each row must sum to 1 within tolerance; a violation fails construction
// with an error naming the row and its sum.
func NewJumpProcess(probMatrix [][]float64, labels []StateLabel) (*JumpProcess, error) {
	if err := validateProbMatrix(probMatrix); err != nil {
		return nil, err
	}
	space, err := newStateSpace(len(probMatrix), labels)
	if err != nil {
		return nil, err
	}

	dists := make([]*randvar.Empirical, len(probMatrix))
	for i, row := range probMatrix {
		dist, err := randvar.NewEmpirical(row)
		if err != nil {
			return nil, constructionErrorf("row %d of the probability matrix is invalid: %v", i, err)
		}
		dists[i] = dist
	}

	logrus.Debugf("jump process built with %d states (labeled: %t)", space.size(), labels != nil)
	return &JumpProcess{space: space, dists: dists}, nil
}

// GetNextState samples the successor of the given state. The returned State
// carries the label name when the model was built with labels. A nil rng
// samples from a fresh default-seeded source.
func (jp *JumpProcess) GetNextState(current StateRef, rng *rand.Rand) (State, error) {
	idx, err := jp.space.resolve(current)
	if err != nil {
		return State{}, err
	}
	next := jp.dists[idx].Sample(rng)
	return jp.space.state(next), nil
}

// NumStates returns the size of the state space.
func (jp *JumpProcess) NumStates() int {
	return jp.space.size()
}
