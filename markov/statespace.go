// State-space frame shared by the jump processes and the cohort simulator:
// dimension checks, the optional label registry, and resolution of state
// references to canonical indices.

package markov

import "strconv"

// StateLabel pairs a symbolic state name with its declared zero-based index.
// A label registry must enumerate indices 0, 1, 2, ... in order.
type StateLabel struct {
	Name  string
	Index int
}

// Labels builds a label registry from names in index order.
func Labels(names ...string) []StateLabel {
	labels := make([]StateLabel, len(names))
	for i, name := range names {
		labels[i] = StateLabel{Name: name, Index: i}
	}
	return labels
}

// StateRef addresses a state either by raw index or by label name.
// Exactly one of the two forms must be used; the zero value is invalid.
type StateRef struct {
	index    int
	label    string
	hasIndex bool
	hasLabel bool
}

// ByIndex addresses a state by its raw index.
func ByIndex(i int) StateRef {
	return StateRef{index: i, hasIndex: true}
}

// ByLabel addresses a state by its label name. Only valid on models
// constructed with a label registry.
func ByLabel(name string) StateRef {
	return StateRef{label: name, hasLabel: true}
}

// State is a resolved state. Index is always set; Label carries the state's
// name when the model was constructed with labels, and is empty otherwise.
type State struct {
	Index int
	Label string
}

func (s State) String() string {
	if s.Label != "" {
		return s.Label
	}
	return strconv.Itoa(s.Index)
}

// stateSpace validates the model frame once at construction and resolves
// state references for every query afterwards.
type stateSpace struct {
	n       int
	labels  []StateLabel   // nil when the model is unlabeled
	indexOf map[string]int // name -> index, nil when unlabeled
}

func newStateSpace(n int, labels []StateLabel) (*stateSpace, error) {
	if n == 0 {
		return nil, constructionErrorf("transition matrix has no rows; a model needs at least one state")
	}
	s := &stateSpace{n: n}
	if labels == nil {
		return s, nil
	}

	if len(labels) != n {
		return nil, constructionErrorf(
			"state labels and transition matrix disagree on dimension: %d labels for %d states",
			len(labels), n)
	}
	s.labels = labels
	s.indexOf = make(map[string]int, n)
	for i, label := range labels {
		if label.Index != i {
			return nil, constructionErrorf(
				"state labels must be indexed 0, 1, 2, ...: label %q is indexed %d but sits at position %d",
				label.Name, label.Index, i)
		}
		if _, dup := s.indexOf[label.Name]; dup {
			return nil, constructionErrorf("state label %q appears more than once", label.Name)
		}
		s.indexOf[label.Name] = i
	}
	return s, nil
}

// resolve maps a state reference to its canonical index.
func (s *stateSpace) resolve(ref StateRef) (int, error) {
	switch {
	case ref.hasIndex && ref.hasLabel:
		return 0, usageErrorf("state reference supplies both an index and a label; use exactly one")
	case ref.hasIndex:
		if ref.index < 0 || ref.index >= s.n {
			return 0, usageErrorf("state index %d out of range [0, %d)", ref.index, s.n)
		}
		return ref.index, nil
	case ref.hasLabel:
		if s.indexOf == nil {
			return 0, usageErrorf("state label %q supplied, but the model was built without labels", ref.label)
		}
		idx, ok := s.indexOf[ref.label]
		if !ok {
			return 0, usageErrorf("state label %q is not in the declared label set", ref.label)
		}
		return idx, nil
	default:
		return 0, usageErrorf("state reference supplies neither an index nor a label")
	}
}

// state materializes a resolved index as a State, attaching the label name
// when the model is labeled.
func (s *stateSpace) state(idx int) State {
	if s.labels != nil {
		return State{Index: idx, Label: s.labels[idx].Name}
	}
	return State{Index: idx}
}

func (s *stateSpace) size() int { return s.n }
