package module

import "slices"

// Set holds the live module instances of one application root.
type Set struct {
	ordered []Module
	byDef   map[*Definition]Module
	byName  map[string]Module
}

func newSet() *Set {
	return &Set{byDef: map[*Definition]Module{}, byName: map[string]Module{}}
}

func (s *Set) add(m Module) {
	s.ordered = append(s.ordered, m)
	s.byDef[m.Definition()] = m
	s.byName[m.Definition().Name()] = m
	if _, ok := s.byDef[m.Family()]; !ok {
		s.byDef[m.Family()] = m
	}
	if _, ok := s.byName[m.Family().Name()]; !ok {
		s.byName[m.Family().Name()] = m
	}
}

// Get looks up a module by definition or name. A definition that was not
// registered itself resolves to the module of its family, so asking for a
// base definition returns its registered specialization.
func (s *Set) Get(key any) (Module, bool) {
	if s == nil {
		return nil, false
	}
	switch k := key.(type) {
	case string:
		m, ok := s.byName[k]
		return m, ok
	case *Definition:
		if m, ok := s.byDef[k]; ok {
			return m, true
		}
		base, err := ResolveBase(k)
		if err != nil {
			return nil, false
		}
		m, ok := s.byDef[base]
		return m, ok
	}
	return nil, false
}

// Each calls fn for every module in registration order.
func (s *Set) Each(fn func(Module)) {
	if s == nil {
		return
	}
	for _, m := range slices.Clone(s.ordered) {
		fn(m)
	}
}

// All returns the modules in registration order.
func (s *Set) All() []Module {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ordered)
}

// Len returns the number of modules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}
