// Cohort simulation: advances integer population counts across states one
// discrete time step at a time, splitting each state's occupants across its
// destinations by multinomial draws.

package markov

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cohort-sim/cohort-sim/markov/randvar"
)

// CohortMarkov advances an aggregate population over a discrete-time Markov
// chain. Construction precomputes, per state, the destinations with strictly
// positive probability; Simulate then apportions each state's occupants
// across those destinations step by step.
//
// A CohortMarkov holds the results of its most recent Simulate call; calling
// Simulate again discards them. It is not safe for concurrent use.
type CohortMarkov struct {
	space *stateSpace

	// Per state: indices of positive-probability destinations and the
	// multinomial distribution over them. Pruning zero-probability
	// destinations does not change the sampled law; it only shrinks the
	// support the sampler walks.
	destIdx  [][]int
	destDist []*randvar.Empirical

	// Results of the last Simulate call.
	sizeOverTime  [][]int // [state][t], length nTimeSteps+1
	transitionsTo [][]int // [state][t], inbound counts per step, length nTimeSteps
	simulated     bool
}

// NewCohortMarkov builds a cohort simulator from a transition probability
// matrix. labels is optional (nil for an unlabeled model). Row sums must be
// 1 within the same tolerance as NewJumpProcess.
func NewCohortMarkov(probMatrix [][]float64, labels []StateLabel) (*CohortMarkov, error) {
	if err := validateProbMatrix(probMatrix); err != nil {
		return nil, err
	}
	space, err := newStateSpace(len(probMatrix), labels)
	if err != nil {
		return nil, err
	}

	c := &CohortMarkov{
		space:    space,
		destIdx:  make([][]int, space.size()),
		destDist: make([]*randvar.Empirical, space.size()),
	}
	for i, row := range probMatrix {
		var idx []int
		var probs []float64
		for j, p := range row {
			if p > 0 {
				idx = append(idx, j)
				probs = append(probs, p)
			}
		}
		dist, err := randvar.NewEmpirical(probs)
		if err != nil {
			return nil, constructionErrorf("row %d of the probability matrix is invalid: %v", i, err)
		}
		c.destIdx[i] = idx
		c.destDist[i] = dist
	}
	return c, nil
}

// Simulate runs the cohort forward nTimeSteps steps from the given initial
// occupancy. Previous results are discarded. A nil rng uses a fresh
// default-seeded source.
//
// Each step reads every state's occupancy from the pre-step snapshot and
// writes arrivals into a separate next-step vector, so the order in which
// states are processed within a step cannot affect the outcome. Total
// population is conserved exactly: every departing unit arrives somewhere.
func (c *CohortMarkov) Simulate(initial []int, nTimeSteps int, rng *rand.Rand) error {
	n := c.space.size()
	if len(initial) != n {
		return usageErrorf("initial condition has %d entries for %d states", len(initial), n)
	}
	for i, size := range initial {
		if size < 0 {
			return usageErrorf("initial condition must be non-negative: state %d has size %d", i, size)
		}
	}
	if nTimeSteps < 0 {
		return usageErrorf("number of time steps must be non-negative, got %d", nTimeSteps)
	}
	if rng == nil {
		rng = randvar.Default()
	}

	c.sizeOverTime = make([][]int, n)
	c.transitionsTo = make([][]int, n)
	for s := 0; s < n; s++ {
		c.sizeOverTime[s] = make([]int, 0, nTimeSteps+1)
		c.transitionsTo[s] = make([]int, 0, nTimeSteps)
	}

	current := make([]int, n)
	copy(current, initial)

	for step := 0; step < nTimeSteps; step++ {
		// Record occupancy before the step.
		for s := 0; s < n; s++ {
			c.sizeOverTime[s] = append(c.sizeOverTime[s], current[s])
		}

		// Double buffer: departures are drawn from the pre-step snapshot in
		// `current`, arrivals accumulate in `next`.
		next := make([]int, n)
		copy(next, current)
		inbound := make([]int, n)

		for s := 0; s < n; s++ {
			if current[s] == 0 {
				continue
			}
			counts := c.destDist[s].SampleCounts(rng, current[s])
			for k, moved := range counts {
				dest := c.destIdx[s][k]
				if dest == s || moved == 0 {
					// Self-destination keeps the remainder in place.
					continue
				}
				next[s] -= moved
				next[dest] += moved
				inbound[dest] += moved
			}
		}

		for s := 0; s < n; s++ {
			c.transitionsTo[s] = append(c.transitionsTo[s], inbound[s])
		}
		current = next
	}

	// Final occupancy, so the series spans nTimeSteps+1 points.
	for s := 0; s < n; s++ {
		c.sizeOverTime[s] = append(c.sizeOverTime[s], current[s])
	}
	c.simulated = true

	logrus.Debugf("cohort simulation finished: %d states, %d steps", n, nTimeSteps)
	return nil
}

// StateSizeOverTime returns the occupancy series of one state: its size
// before each step and after the last (length nTimeSteps+1).
func (c *CohortMarkov) StateSizeOverTime(state StateRef) ([]int, error) {
	idx, err := c.resolveSimulated(state)
	if err != nil {
		return nil, err
	}
	return c.sizeOverTime[idx], nil
}

// TransitionsToStateOverTime returns, per step, how many units entered the
// given state from other states (length nTimeSteps).
func (c *CohortMarkov) TransitionsToStateOverTime(state StateRef) ([]int, error) {
	idx, err := c.resolveSimulated(state)
	if err != nil {
		return nil, err
	}
	return c.transitionsTo[idx], nil
}

// SumSizeMultipleStatesOverTime returns the elementwise sum of the occupancy
// series of the given states (length nTimeSteps+1).
func (c *CohortMarkov) SumSizeMultipleStatesOverTime(states []StateRef) ([]int, error) {
	if len(states) == 0 {
		return nil, usageErrorf("at least one state must be supplied")
	}
	var total []int
	for _, ref := range states {
		series, err := c.StateSizeOverTime(ref)
		if err != nil {
			return nil, err
		}
		if total == nil {
			total = make([]int, len(series))
		}
		for t, size := range series {
			total[t] += size
		}
	}
	return total, nil
}

// SumSizeMultipleStates returns the combined occupancy of the given states
// at the end of the simulation.
func (c *CohortMarkov) SumSizeMultipleStates(states []StateRef) (int, error) {
	series, err := c.SumSizeMultipleStatesOverTime(states)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// NumStates returns the size of the state space.
func (c *CohortMarkov) NumStates() int {
	return c.space.size()
}

func (c *CohortMarkov) resolveSimulated(state StateRef) (int, error) {
	if !c.simulated {
		return 0, usageErrorf("no simulation results: call Simulate first")
	}
	return c.space.resolve(state)
}

// ContinuousTimeCohortMarkov runs a cohort simulation driven by a transition
// rate matrix: it discretizes the rates over deltaT via ContinuousToDiscrete
// and delegates everything else to an embedded CohortMarkov.
type ContinuousTimeCohortMarkov struct {
	*CohortMarkov
	deltaT        float64
	maxDoubleJump float64
}

// NewContinuousTimeCohortMarkov builds the discretized cohort simulator.
// labels is optional. Each simulated step spans deltaT of model time.
func NewContinuousTimeCohortMarkov(rateMatrix [][]Rate, deltaT float64, labels []StateLabel) (*ContinuousTimeCohortMarkov, error) {
	probMatrix, maxDoubleJump, err := ContinuousToDiscrete(rateMatrix, deltaT)
	if err != nil {
		return nil, err
	}
	cohort, err := NewCohortMarkov(probMatrix, labels)
	if err != nil {
		return nil, err
	}
	return &ContinuousTimeCohortMarkov{
		CohortMarkov:  cohort,
		deltaT:        deltaT,
		maxDoubleJump: maxDoubleJump,
	}, nil
}

// DeltaT returns the step length the rate matrix was discretized over.
func (c *ContinuousTimeCohortMarkov) DeltaT() float64 {
	return c.deltaT
}

// DoubleJumpUpperBound returns the conversion diagnostic: an upper bound on
// the probability of two transitions occurring within one step. Callers
// compare it against their own tolerance to judge whether deltaT is small
// enough.
func (c *ContinuousTimeCohortMarkov) DoubleJumpUpperBound() float64 {
	return c.maxDoubleJump
}
