package behavior

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/hupe1980/stagekit/core"
)

// Kind distinguishes hosts that own their behaviors from hosts that only
// observe them.
type Kind int

const (
	// Primary hosts (scene nodes) activate and destroy behaviors.
	Primary Kind = iota
	// Secondary hosts (subsystems, the application root) cannot destroy.
	Secondary
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Secondary {
		return "secondary"
	}
	return "primary"
}

// Manager holds the declared lifecycle names and the mounted behaviors of a
// single host. It is not safe for concurrent use.
type Manager struct {
	host       Host
	kind       Kind
	lifecycles nameSet
	behaviors  []Behavior
	enabled    bool
	destroyed  bool
}

// NewManager creates a manager for host, declaring the host's own lifecycle
// names when it implements Declarer.
func NewManager(host Host) *Manager {
	m := &Manager{host: host, kind: host.HostKind(), enabled: true}
	if d, ok := host.(Declarer); ok {
		m.RegisterSet(d.Lifecycles())
	}
	return m
}

// Host returns the owning host. It is nil after Destroy.
func (m *Manager) Host() Host { return m.host }

// Kind returns the host kind.
func (m *Manager) Kind() Kind { return m.kind }

// Register declares lifecycle names. Invalid names are reported and skipped.
func (m *Manager) Register(names ...string) {
	m.RegisterSet(names)
}

// RegisterSet declares every name in names.
func (m *Manager) RegisterSet(names []string) {
	for _, name := range names {
		if err := ValidateLifecycle(name); err != nil {
			_ = Report(err, "host", hostLabel(m.host))
			continue
		}
		m.lifecycles.add(name)
	}
}

// Has reports whether name has been declared.
func (m *Manager) Has(name string) bool { return m.lifecycles.has(name) }

// Lifecycles returns the declared names in declaration order.
func (m *Manager) Lifecycles() []string { return m.lifecycles.list() }

// Trigger invokes the method called name on every enabled behavior, in mount
// order, passing args. Behaviors mounted while dispatch is running wait for
// the next trigger, and behaviors unmounted meanwhile are skipped.
func (m *Manager) Trigger(name string, args ...any) error {
	if m.destroyed {
		return nil
	}
	if !m.lifecycles.has(name) {
		return Report(core.Errorf(core.ErrUndeclaredLifecycle, "%s does not declare %s", hostLabel(m.host), name))
	}

	start := time.Now()
	receivers := 0
	for _, b := range slices.Clone(m.behaviors) {
		base := b.behaviorBase()
		if !base.enabled || !slices.Contains(m.behaviors, b) {
			continue
		}
		method, ok := lookupMethod(b, name)
		if !ok {
			continue
		}
		if err := invoke(method, args); err != nil {
			_ = Report(err, "host", hostLabel(m.host), "lifecycle", name, "behavior", NameOf(b))
			continue
		}
		receivers++
	}
	logLifecycle(hostLabel(m.host), name, receivers, time.Since(start))
	return nil
}

// Mount attaches b. It initializes b if needed, records the host on the
// behavior and merges any lifecycle names b declares. It reports false when
// the behavior refused the host.
func (m *Manager) Mount(b Behavior) bool {
	if b == nil || m.destroyed {
		return false
	}
	b = New(b)
	if !b.behaviorBase().mountFrom(m) {
		return false
	}
	if !slices.Contains(m.behaviors, b) {
		m.behaviors = append(m.behaviors, b)
	}
	if d, ok := b.(Declarer); ok {
		m.RegisterSet(d.Lifecycles())
	}
	logMount(hostLabel(m.host), NameOf(b), m.kind)
	return true
}

// Unmount detaches b. Unmounting a behavior that is not mounted is a no-op.
func (m *Manager) Unmount(b Behavior) {
	i := slices.Index(m.behaviors, b)
	if i < 0 {
		return
	}
	m.behaviors = slices.Delete(m.behaviors, i, i+1)
	b.behaviorBase().unmountFrom(m)
}

// Find returns the first mounted behavior matching key: a name, a
// reflect.Type or a behavior instance.
func (m *Manager) Find(key any) Behavior {
	for _, b := range m.behaviors {
		if matches(b, key) {
			return b
		}
	}
	return nil
}

// Behaviors returns the mounted behaviors in mount order.
func (m *Manager) Behaviors() []Behavior { return slices.Clone(m.behaviors) }

// Len returns the number of mounted behaviors.
func (m *Manager) Len() int { return len(m.behaviors) }

// Enabled returns the last value passed to SetEnabled.
func (m *Manager) Enabled() bool { return m.enabled }

// SetEnabled propagates enabled to every mounted behavior.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
	for _, b := range m.behaviors {
		b.behaviorBase().enabled = enabled
	}
}

// Destroy unmounts every behavior and releases the host. Only primary
// managers may destroy.
func (m *Manager) Destroy() error {
	if m.kind != Primary {
		return Report(core.Errorf(core.ErrSecondaryDestroy, "%s", hostLabel(m.host)))
	}
	for _, b := range slices.Clone(m.behaviors) {
		m.Unmount(b)
	}
	m.host = nil
	m.destroyed = true
	return nil
}

// Find returns the first behavior of type T mounted on host.
func Find[T Behavior](host Host) (T, bool) {
	var zero T
	if host == nil || host.Manager() == nil {
		return zero, false
	}
	for _, b := range host.Manager().behaviors {
		if t, ok := b.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// Sibling returns the first behavior of type T sharing b's primary host.
func Sibling[T Behavior](b Behavior) (T, bool) {
	var zero T
	base := b.behaviorBase()
	if base.primary == nil {
		return zero, false
	}
	for _, other := range base.primary.behaviors {
		if other.behaviorBase() == base {
			continue
		}
		if t, ok := other.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// TypeOf returns the reflect.Type key for T, for use with Manager.Find.
func TypeOf[T Behavior]() reflect.Type {
	return reflect.TypeFor[T]()
}

func hostLabel(h Host) string {
	if h == nil {
		return "<nil>"
	}
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}
