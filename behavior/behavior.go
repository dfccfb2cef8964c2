package behavior

import (
	"reflect"
	"slices"

	"github.com/hupe1980/stagekit/core"
)

// Behavior is a unit of attachable logic. Implementations embed Base, which
// supplies the unexported marker and no-op OnActive and OnDestroy handlers.
type Behavior interface {
	OnActive()
	OnDestroy()
	behaviorBase() *Base
}

// Factory builds a behavior from mount-time arguments.
type Factory func(args ...any) Behavior

// Named is implemented by behaviors that want a lookup name other than their
// type name.
type Named interface {
	BehaviorName() string
}

// State is the lifecycle state of a behavior.
type State int

const (
	// Unattached behaviors have no primary host yet.
	Unattached State = iota
	// Active behaviors are mounted on a primary host.
	Active
	// Destroyed behaviors were unmounted by their primary host.
	Destroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Base carries the per-behavior bookkeeping. Embed it by value.
type Base struct {
	self        Behavior
	id          string
	initialized bool
	enabled     bool
	state       State
	primary     *Manager
	secondaries []*Manager
}

func (b *Base) behaviorBase() *Base { return b }

// OnActive is called once, on the first primary mount.
func (b *Base) OnActive() {}

// OnDestroy is called once, when the primary host unmounts the behavior.
func (b *Base) OnDestroy() {}

// New initializes b and announces it to the installed runtime so that
// subsystems may mount it as a secondary host. Calling New twice on the same
// behavior is a no-op.
func New[T Behavior](b T) T {
	base := b.behaviorBase()
	if base.initialized {
		return b
	}
	base.initialized = true
	base.self = b
	base.id = core.NewID()
	base.enabled = true
	announce(b)
	return b
}

// ID returns the behavior's unique id. It is empty before New.
func (b *Base) ID() string { return b.id }

// Enabled reports whether lifecycle dispatch reaches this behavior.
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles lifecycle dispatch for this behavior alone.
func (b *Base) SetEnabled(enabled bool) { b.enabled = enabled }

// State returns the lifecycle state.
func (b *Base) State() State { return b.state }

// IsActive reports whether the behavior is mounted on a primary host.
func (b *Base) IsActive() bool { return b.state == Active }

// Host returns the primary host, or nil.
func (b *Base) Host() Host {
	if b.primary == nil {
		return nil
	}
	return b.primary.host
}

// PrimaryManager returns the manager of the primary host, or nil.
func (b *Base) PrimaryManager() *Manager { return b.primary }

// SecondaryManagers returns the secondary managers in mount order.
func (b *Base) SecondaryManagers() []*Manager { return slices.Clone(b.secondaries) }

// Trigger fires a lifecycle on the primary host. It fails with
// ErrNoPrimaryHost while the behavior is not active.
func (b *Base) Trigger(name string, args ...any) error {
	host := b.Host()
	if host == nil {
		return Report(core.Errorf(core.ErrNoPrimaryHost, "cannot trigger %s from %s", name, NameOf(b.self)))
	}
	return host.Trigger(name, args...)
}

// Sibling returns another behavior on the same primary host matching key.
// Keys are matched as for Manager.Find.
func (b *Base) Sibling(key any) Behavior {
	if b.primary == nil {
		return nil
	}
	for _, other := range b.primary.behaviors {
		if other.behaviorBase() != b && matches(other, key) {
			return other
		}
	}
	return nil
}

// mountFrom records m as a host. It reports false when the mount is rejected.
func (b *Base) mountFrom(m *Manager) bool {
	if b.state == Destroyed {
		Logger().Debug("Mount of destroyed behavior ignored", "behavior", NameOf(b.self), "host", hostLabel(m.host))
		return false
	}
	if m.kind == Secondary {
		if !slices.Contains(b.secondaries, m) {
			b.secondaries = append(b.secondaries, m)
		}
		return true
	}
	if b.primary != nil {
		Logger().Debug("Duplicate primary mount ignored",
			"behavior", NameOf(b.self),
			"host", hostLabel(m.host),
			"primary", hostLabel(b.primary.host))
		return false
	}
	b.primary = m
	b.state = Active
	b.self.OnActive()
	return true
}

// unmountFrom forgets m. Losing the primary host destroys the behavior and
// detaches it from every secondary host first.
func (b *Base) unmountFrom(m *Manager) {
	if m.kind == Secondary {
		b.secondaries = slices.DeleteFunc(b.secondaries, func(s *Manager) bool { return s == m })
		return
	}
	if b.primary != m {
		return
	}
	for _, s := range slices.Clone(b.secondaries) {
		s.Unmount(b.self)
	}
	b.secondaries = nil
	b.state = Destroyed
	b.self.OnDestroy()
	b.primary = nil
}

// NameOf returns b's lookup name: BehaviorName when implemented, otherwise
// the type name without package or pointer.
func NameOf(b Behavior) string {
	if b == nil {
		return ""
	}
	if n, ok := b.(Named); ok {
		return n.BehaviorName()
	}
	t := reflect.TypeOf(b)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func matches(b Behavior, key any) bool {
	switch k := key.(type) {
	case string:
		return NameOf(b) == k
	case reflect.Type:
		return reflect.TypeOf(b) == k
	case Behavior:
		return b == k
	}
	return false
}
