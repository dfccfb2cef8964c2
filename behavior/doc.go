// Package behavior implements pluggable behaviors, the managers that own
// them, and the Capability mixin that grants any host type the ability to
// carry them.
//
// A behavior is any struct embedding Base. It becomes active on its first
// primary mount (a scene node) and is destroyed when that primary host
// unmounts it. Between those points it may also be mounted on any number of
// secondary hosts (subsystems and the application root). Secondary mounts
// extend what the behavior receives, but they can never destroy it.
//
// Lifecycle dispatch is name based: a host declares the lifecycle names it
// agrees to fire, and Manager.Trigger invokes the method of that name on every
// enabled behavior that has one, in mount order:
//
//	type Blink struct {
//	    behavior.Base
//	    count int
//	}
//
//	func (b *Blink) OnNodeAdded(n *node.Node) { b.count++ }
//
//	n := node.New("lamp")
//	n.Mount(behavior.New(&Blink{}))
//
// Usage errors (undeclared lifecycle names, destroying through a secondary
// manager, triggering without a primary host) are reported through the
// installed Runtime's logger and returned; the runtime keeps running.
package behavior
