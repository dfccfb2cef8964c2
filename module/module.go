package module

import (
	"github.com/hupe1980/stagekit/behavior"
)

// Module is a live subsystem. Implementations embed Base.
type Module interface {
	behavior.Host
	Name() string
	Definition() *Definition
	Family() *Definition
	// OnBehaviorInit is offered every new behavior and reports whether the
	// module mounted it.
	OnBehaviorInit(b behavior.Behavior) bool
	bind(owner Module, def, family *Definition)
}

// Base is the embeddable part of every module: a secondary behavior host that
// knows its definition and family.
type Base struct {
	behavior.Capability
	owner  Module
	def    *Definition
	family *Definition
}

func (m *Base) bind(owner Module, def, family *Definition) {
	m.owner = owner
	m.def = def
	m.family = family
	m.Bind(owner, behavior.Secondary)
}

// Name returns the definition name.
func (m *Base) Name() string { return m.def.Name() }

// Definition returns the registered definition.
func (m *Base) Definition() *Definition { return m.def }

// Family returns the base definition directly under Root.
func (m *Base) Family() *Definition { return m.family }

// String implements fmt.Stringer.
func (m *Base) String() string { return "module:" + m.def.Name() }

// OnBehaviorInit mounts b when Accepts allows it.
func (m *Base) OnBehaviorInit(b behavior.Behavior) bool {
	if m.owner == nil || !Accepts(m.owner, b) {
		return false
	}
	m.owner.Mount(b)
	return true
}

// Accepts is the default extension policy. Modules never host other modules.
// Otherwise b is accepted when it extends all modules or names m's
// definition, family or either of their names.
func Accepts(m Module, b behavior.Behavior) bool {
	if _, ok := b.(Module); ok {
		return false
	}
	ext := behavior.ExtensionOf(b)
	if ext.All() {
		return true
	}
	if ext.None() {
		return false
	}
	if ext.Includes(m) {
		return true
	}
	for _, def := range []*Definition{m.Definition(), m.Family()} {
		if def == nil {
			continue
		}
		if ext.Includes(def) || ext.Includes(def.Name()) {
			return true
		}
	}
	return false
}
