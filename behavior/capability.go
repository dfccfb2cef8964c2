package behavior

// Host is anything that can carry behaviors. Embed Capability to implement it.
type Host interface {
	HostKind() Kind
	Manager() *Manager
	Mount(b Behavior) Behavior
	MountNew(f Factory, args ...any) Behavior
	Unmount(b Behavior)
	Find(key any) Behavior
	Trigger(name string, args ...any) error
	SetEnabled(enabled bool)
	DestroyAll() error
}

// Capability grants behavior hosting to the type that embeds it. The manager
// is created lazily on the first mount. Call Bind from the owner's
// constructor so lifecycle declarations and log labels refer to the owner.
type Capability struct {
	owner   Host
	kind    Kind
	manager *Manager
}

// Bind sets the outer host and its kind.
func (c *Capability) Bind(owner Host, kind Kind) {
	c.owner = owner
	c.kind = kind
}

func (c *Capability) self() Host {
	if c.owner != nil {
		return c.owner
	}
	return c
}

// HostKind returns the kind given to Bind. Unbound capabilities are primary.
func (c *Capability) HostKind() Kind { return c.kind }

// Manager returns the manager, or nil before the first mount.
func (c *Capability) Manager() *Manager { return c.manager }

// EnsureManager returns the manager, creating it if needed.
func (c *Capability) EnsureManager() *Manager {
	if c.manager == nil {
		c.manager = NewManager(c.self())
	}
	return c.manager
}

// Mount attaches b and returns it.
func (c *Capability) Mount(b Behavior) Behavior {
	if b == nil {
		return nil
	}
	c.EnsureManager().Mount(b)
	return b
}

// MountNew builds a behavior with f and mounts it.
func (c *Capability) MountNew(f Factory, args ...any) Behavior {
	if f == nil {
		return nil
	}
	return c.Mount(f(args...))
}

// Unmount detaches b.
func (c *Capability) Unmount(b Behavior) {
	if c.manager != nil {
		c.manager.Unmount(b)
	}
}

// Find returns the first mounted behavior matching key.
func (c *Capability) Find(key any) Behavior {
	if c.manager == nil {
		return nil
	}
	return c.manager.Find(key)
}

// Trigger fires a lifecycle. Hosts without behaviors ignore it.
func (c *Capability) Trigger(name string, args ...any) error {
	if c.manager == nil {
		return nil
	}
	return c.manager.Trigger(name, args...)
}

// SetEnabled toggles dispatch for every mounted behavior.
func (c *Capability) SetEnabled(enabled bool) {
	if c.manager != nil {
		c.manager.SetEnabled(enabled)
	}
}

// DestroyAll destroys every mounted behavior and drops the manager. A
// secondary host refuses and keeps its manager.
func (c *Capability) DestroyAll() error {
	if c.manager == nil {
		return nil
	}
	if err := c.manager.Destroy(); err != nil {
		return err
	}
	c.manager = nil
	return nil
}
