package module

import (
	"slices"
	"sync"

	"github.com/hupe1980/stagekit/core"
)

// Entry is a registered definition with its construction arguments.
type Entry struct {
	Definition *Definition
	Args       []any
	Base       *Definition
}

// Registry records which subsystems the application root instantiates. At
// most one definition per family may be registered. Registration is refused
// once the registry has been instantiated.
type Registry struct {
	mu       sync.RWMutex
	entries  []Entry
	families map[*Definition]*Definition
	locked   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[*Definition]*Definition)}
}

// Register records def with args. Registering the same definition again
// replaces its arguments.
func (r *Registry) Register(def *Definition, args ...any) error {
	base, err := ResolveBase(def)
	if err != nil {
		return err
	}
	if def.factory == nil {
		return core.Errorf(core.ErrConfiguration, "module %s has no factory", def.name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locked {
		return core.Errorf(core.ErrRegistryLocked, "cannot register %s", def.name)
	}
	if owner, taken := r.families[base]; taken {
		if owner != def {
			return core.Errorf(core.ErrDuplicateFamily, "%s: family %s is taken by %s", def.name, base.name, owner.name)
		}
		for i := range r.entries {
			if r.entries[i].Definition == def {
				r.entries[i].Args = slices.Clone(args)
			}
		}
		return nil
	}
	r.families[base] = def
	r.entries = append(r.entries, Entry{Definition: def, Args: slices.Clone(args), Base: base})
	return nil
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Lookup returns the definition registered for def's family.
func (r *Registry) Lookup(def *Definition) (*Definition, bool) {
	base, err := ResolveBase(def)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.families[base]
	return owner, ok
}

// Locked reports whether the registry has been instantiated.
func (r *Registry) Locked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// Instantiate constructs every registered module in registration order,
// binds each as a secondary host and locks the registry. A failing factory
// aborts and leaves the registry unlocked.
func (r *Registry) Instantiate() (*Set, error) {
	entries := r.Entries()
	set := newSet()
	for _, e := range entries {
		m, err := e.Definition.factory(e.Args...)
		if err != nil {
			return nil, core.Errorf(core.ErrConfiguration, "instantiate %s: %v", e.Definition.name, err)
		}
		if m == nil {
			return nil, core.Errorf(core.ErrConfiguration, "instantiate %s: factory returned nil", e.Definition.name)
		}
		m.bind(m, e.Definition, e.Base)
		set.add(m)
	}

	r.mu.Lock()
	r.locked = true
	r.mu.Unlock()
	return set, nil
}

func (r *Registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.families = make(map[*Definition]*Definition)
	r.locked = false
}

// Default is the process-wide registry used by the application root.
var Default = NewRegistry()

// Register records def on the Default registry.
func Register(def *Definition, args ...any) error {
	return Default.Register(def, args...)
}

// Reset empties and unlocks the Default registry. Intended for tests.
func Reset() {
	Default.reset()
}
