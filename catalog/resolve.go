package catalog

import "sort"

// Resolve follows group targets from name down to a model. When expected is
// not empty the model's type must match it. Validation guarantees the walk
// terminates.
func (s *Set) Resolve(name string, expected ModelType) (*ModelEntry, error) {
	for {
		g, ok := s.groups[name]
		if !ok {
			break
		}
		name = g.Target
	}

	m, ok := s.models[name]
	if !ok {
		return nil, &UnknownModelError{Name: name}
	}
	if expected != "" && m.Type != expected {
		return nil, &TypeMismatchError{Name: name, Requested: expected, Actual: m.Type}
	}
	return m, nil
}

// Fallbacks returns the fallback names declared on name, which may be a group
// or a model, in declared order. The owner's declared type must equal
// expected. Fallbacks of fallbacks are never consulted.
func (s *Set) Fallbacks(name string, expected ModelType) ([]string, error) {
	var (
		declared  ModelType
		fallbacks []string
	)
	if g, ok := s.groups[name]; ok {
		declared, fallbacks = g.Type, g.Fallbacks
	} else if m, ok := s.models[name]; ok {
		declared, fallbacks = m.Type, m.Fallbacks
	} else {
		return nil, &UnknownModelOrGroupError{Name: name}
	}
	if declared != expected {
		return nil, &TypeMismatchError{Name: name, Requested: expected, Actual: declared}
	}
	return append([]string(nil), fallbacks...), nil
}

// List returns every model and group of type t, sorted with models before
// groups, then by provider, then by name.
func (s *Set) List(t ModelType) []Item {
	var items []Item
	for _, name := range s.modelOrder {
		if m := s.models[name]; m.Type == t {
			items = append(items, m.item())
		}
	}
	for _, name := range s.groupOrder {
		if g := s.groups[name]; g.Type == t {
			items = append(items, g.item())
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ag, bg := a.Kind == KindGroup, b.Kind == KindGroup; ag != bg {
			return !ag
		}
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		return a.Name < b.Name
	})
	return items
}
