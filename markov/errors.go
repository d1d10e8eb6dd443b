package markov

import "fmt"

// ConstructionError reports a malformed model input detected while building a
// model: wrong shape, empty matrix, negative rate, row sum outside tolerance,
// or a label registry that does not match the matrix. It is always raised at
// build time, never deferred to sampling.
type ConstructionError struct {
	Msg string
}

func (e *ConstructionError) Error() string { return e.Msg }

func constructionErrorf(format string, args ...any) error {
	return &ConstructionError{Msg: fmt.Sprintf(format, args...)}
}

// UsageError reports invalid call arguments at query time: an out-of-range
// state index, a label outside the declared set, or a state reference that
// supplies neither an index nor a label.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}
