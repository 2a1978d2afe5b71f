package catalog

import "sort"

// Validate checks the referential and type integrity of the whole set. It
// stops at the first violation.
func (s *Set) Validate() error {
	if err := s.checkNames(); err != nil {
		return err
	}

	for _, name := range s.groupOrder {
		g := s.groups[name]

		terminal, err := s.walkTarget(g)
		if err != nil {
			return err
		}
		m, ok := s.models[terminal]
		if !ok {
			return &UnknownTargetError{Group: name, Target: terminal}
		}
		if m.Type != g.Type {
			return &TypeMismatchError{Name: name, Target: terminal, Requested: g.Type, Actual: m.Type}
		}

		if err := s.checkFallbacks(name, g.Type, g.Fallbacks); err != nil {
			return err
		}
	}

	for _, name := range s.modelOrder {
		m := s.models[name]
		if err := s.checkFallbacks(name, m.Type, m.Fallbacks); err != nil {
			return err
		}
	}
	return nil
}

// checkNames enforces that no name is used twice across models and groups.
func (s *Set) checkNames() error {
	seen := map[string]struct{}{}
	for _, name := range s.dupes {
		seen[name] = struct{}{}
	}
	for name := range s.groups {
		if _, ok := s.models[name]; ok {
			seen[name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return &NameConflictError{Names: names}
}

// walkTarget follows g's target through the group set and returns the first
// name that is not a group.
func (s *Set) walkTarget(g *GroupEntry) (string, error) {
	visited := map[string]struct{}{g.Name: {}}
	path := []string{g.Name}
	current := g.Target
	for {
		next, isGroup := s.groups[current]
		if !isGroup {
			return current, nil
		}
		path = append(path, current)
		if _, seen := visited[current]; seen {
			return "", &CircularGroupReferenceError{Path: path}
		}
		visited[current] = struct{}{}
		current = next.Target
	}
}

// checkFallbacks validates the fallback list of owner. A fallback's type is
// its declared type, which for groups equals the type of their terminal
// model once the group itself has been validated.
func (s *Set) checkFallbacks(owner string, ownerType ModelType, fallbacks []string) error {
	for _, fb := range fallbacks {
		if fb == owner {
			return &SelfFallbackError{Name: owner}
		}
		var fbType ModelType
		if m, ok := s.models[fb]; ok {
			fbType = m.Type
		} else if g, ok := s.groups[fb]; ok {
			fbType = g.Type
		} else {
			return &UnknownFallbackError{Owner: owner, Fallback: fb}
		}
		if fbType != ownerType {
			return &FallbackTypeMismatchError{Owner: owner, OwnerType: ownerType, Fallback: fb, FallbackType: fbType}
		}
	}
	return nil
}
