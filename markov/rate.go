package markov

// Rate is one entry of a transition rate matrix: either a non-negative
// transition intensity or the not-applicable marker conventionally used on
// the diagonal. The zero value is the not-applicable marker.
type Rate struct {
	value   float64
	present bool
}

// NewRate returns a present rate entry.
func NewRate(v float64) Rate {
	return Rate{value: v, present: true}
}

// NA returns the not-applicable marker.
func NA() Rate {
	return Rate{}
}

// Value returns the rate and whether it is present. The not-applicable
// marker reports (0, false).
func (r Rate) Value() (float64, bool) {
	return r.value, r.present
}

// RateMatrixOf converts a plain float matrix to a rate matrix, marking the
// diagonal as not applicable. Off-diagonal entries are taken as-is.
func RateMatrixOf(rows [][]float64) [][]Rate {
	matrix := make([][]Rate, len(rows))
	for i, row := range rows {
		matrix[i] = make([]Rate, len(row))
		for j, v := range row {
			if i == j {
				matrix[i][j] = NA()
			} else {
				matrix[i][j] = NewRate(v)
			}
		}
	}
	return matrix
}

// HoldingTime is the sojourn time before a jump. For an absorbing state
// there is no jump, and the holding time is absent.
type HoldingTime struct {
	value   float64
	present bool
}

// NewHoldingTime returns a present holding time.
func NewHoldingTime(v float64) HoldingTime {
	return HoldingTime{value: v, present: true}
}

// NoHoldingTime returns the absent sentinel used for absorbing states.
func NoHoldingTime() HoldingTime {
	return HoldingTime{}
}

// Value returns the holding time and whether one exists.
func (h HoldingTime) Value() (float64, bool) {
	return h.value, h.present
}

// Absorbing reports whether this is the no-holding-time sentinel.
func (h HoldingTime) Absorbing() bool {
	return !h.present
}
