// Conversion between the rate and probability representations of the same
// process over a fixed time step, using the exact competing-exponential
// discretization rather than a first-order approximation.

package markov

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Row sums of a probability matrix are accepted when they fall inside this
// closed interval.
const (
	rowSumMin = 0.99999
	rowSumMax = 1.00001
)

// OutRate sums the present entries of a rate-matrix row excluding the self
// index. Not-applicable markers contribute zero.
func OutRate(row []Rate, selfIndex int) float64 {
	sum := 0.0
	for j, entry := range row {
		if j == selfIndex {
			continue
		}
		if v, ok := entry.Value(); ok {
			sum += v
		}
	}
	return sum
}

// ContinuousToDiscrete converts a transition rate matrix to the transition
// probability matrix of the embedded chain over a step of length deltaT:
//
//	p_ii = exp(-mu_i * deltaT)
//	p_ij = (1 - exp(-mu_i * deltaT)) * rate_ij / mu_i   (0 when mu_i = 0)
//
// where mu_i is the total outgoing rate of state i.
//
// The second return value is the maximum, over states, of the probability of
// leaving a state and then leaving its destination again within the same
// deltaT. It bounds the error of treating deltaT as "at most one transition";
// callers decide what bound is acceptable for their step length.
func ContinuousToDiscrete(rateMatrix [][]Rate, deltaT float64) ([][]float64, float64, error) {
	if err := validateRateMatrix(rateMatrix); err != nil {
		return nil, 0, err
	}
	if deltaT <= 0 {
		return nil, 0, usageErrorf("delta_t must be positive, got %v", deltaT)
	}

	n := len(rateMatrix)
	ratesOut := make([]float64, n)
	for i, row := range rateMatrix {
		ratesOut[i] = OutRate(row, i)
	}

	probMatrix := make([][]float64, n)
	for i, row := range rateMatrix {
		probs := make([]float64, n)
		for j := range row {
			if i == j {
				probs[j] = math.Exp(-ratesOut[i] * deltaT)
			} else if ratesOut[i] > 0 {
				rate, _ := row[j].Value()
				probs[j] = (1 - math.Exp(-ratesOut[i]*deltaT)) * rate / ratesOut[i]
			}
		}
		probMatrix[i] = probs
	}

	// Probability of any departure within deltaT, per state.
	probsOut := make([]float64, n)
	for i, mu := range ratesOut {
		probsOut[i] = 1 - math.Exp(-mu*deltaT)
	}

	// Upper bound on two transitions within one step: leave i, then leave
	// the destination state again before the step ends.
	maxDoubleJump := 0.0
	for i, row := range rateMatrix {
		if ratesOut[i] == 0 {
			continue
		}
		probOutAgain := 0.0
		for j := range row {
			if i == j {
				continue
			}
			rate, _ := row[j].Value()
			probOutAgain += rate / ratesOut[i] * probsOut[j]
		}
		if p := probsOut[i] * probOutAgain; p > maxDoubleJump {
			maxDoubleJump = p
		}
	}

	return probMatrix, maxDoubleJump, nil
}

// DiscreteToContinuous converts a transition probability matrix back to a
// rate matrix, assuming each state's sojourn time is exponential:
//
//	rate_ij = -ln(p_ii) * p_ij / ((1 - p_ii) * deltaT)
//
// Diagonal entries become the not-applicable marker. A row with p_ii = 1
// (absorbing in discrete time) gets zero off-diagonal rates instead of a
// division by zero.
//
// This is only an approximate inverse of ContinuousToDiscrete: the
// exponential-sojourn assumption discards within-step multi-transition
// structure, so a rates -> probabilities -> rates round trip recovers the
// original rates only in the limit of small deltaT.
func DiscreteToContinuous(probMatrix [][]float64, deltaT float64) ([][]Rate, error) {
	if err := validateProbMatrixShape(probMatrix); err != nil {
		return nil, err
	}
	if deltaT <= 0 {
		return nil, usageErrorf("delta_t must be positive, got %v", deltaT)
	}

	rateMatrix := make([][]Rate, len(probMatrix))
	for i, row := range probMatrix {
		rates := make([]Rate, len(row))
		pStay := row[i]
		for j := range row {
			switch {
			case i == j:
				rates[j] = NA()
			case pStay == 1:
				rates[j] = NewRate(0)
			default:
				rates[j] = NewRate(-math.Log(pStay) * row[j] / ((1 - pStay) * deltaT))
			}
		}
		rateMatrix[i] = rates
	}
	return rateMatrix, nil
}

// validateRateMatrix checks shape and non-negativity of present entries.
func validateRateMatrix(rateMatrix [][]Rate) error {
	if len(rateMatrix) == 0 {
		return constructionErrorf("transition rate matrix is empty")
	}
	n := len(rateMatrix)
	for i, row := range rateMatrix {
		if len(row) != n {
			return constructionErrorf(
				"transition rate matrix must be square: row %d has %d entries for %d states",
				i, len(row), n)
		}
		for _, entry := range row {
			if v, ok := entry.Value(); ok && v < 0 {
				return constructionErrorf(
					"all rates in a transition rate matrix must be non-negative: negative rate (%v) found in row %d",
					v, i)
			}
		}
	}
	return nil
}

// validateProbMatrix checks shape and the row-sum tolerance.
func validateProbMatrix(probMatrix [][]float64) error {
	if err := validateProbMatrixShape(probMatrix); err != nil {
		return err
	}
	for i, row := range probMatrix {
		if sum := floats.Sum(row); sum < rowSumMin || sum > rowSumMax {
			return constructionErrorf(
				"sum of each row in a probability matrix should be 1: sum of row %d is %v", i, sum)
		}
	}
	return nil
}

// validateProbMatrixShape checks squareness only; row-sum tolerance is a
// model-construction concern, not a conversion concern.
func validateProbMatrixShape(probMatrix [][]float64) error {
	if len(probMatrix) == 0 {
		return constructionErrorf("transition probability matrix is empty")
	}
	n := len(probMatrix)
	for i, row := range probMatrix {
		if len(row) != n {
			return constructionErrorf(
				"transition probability matrix must be square: row %d has %d entries for %d states",
				i, len(row), n)
		}
	}
	return nil
}
