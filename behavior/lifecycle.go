package behavior

import (
	"strings"

	"github.com/hupe1980/stagekit/core"
)

// LifecyclePrefix is required on every declared lifecycle name.
const LifecyclePrefix = "On"

// Reserved lifecycle names are fired by the behavior itself and can never be
// declared by a host.
const (
	OnActive  = "OnActive"
	OnDestroy = "OnDestroy"
)

// Declarer is implemented by hosts and behaviors that contribute lifecycle
// names to a manager.
type Declarer interface {
	Lifecycles() []string
}

// ValidateLifecycle checks a lifecycle name for declaration.
func ValidateLifecycle(name string) error {
	switch {
	case name == OnActive || name == OnDestroy:
		return core.Errorf(core.ErrReservedLifecycle, "%q is fired by the behavior itself", name)
	case len(name) <= len(LifecyclePrefix) || !strings.HasPrefix(name, LifecyclePrefix):
		return core.Errorf(core.ErrInvalidLifecycle, "%q must start with %q", name, LifecyclePrefix)
	}
	return nil
}

// Declare validates names and returns the valid ones in order. Invalid names
// are reported and dropped.
func Declare(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if err := ValidateLifecycle(name); err != nil {
			_ = Report(err)
			continue
		}
		out = append(out, name)
	}
	return out
}

// nameSet is an insertion-ordered set of lifecycle names.
type nameSet struct {
	order []string
	index map[string]struct{}
}

func (s *nameSet) add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

func (s *nameSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *nameSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
