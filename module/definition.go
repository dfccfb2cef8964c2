package module

import (
	"github.com/hupe1980/stagekit/core"
)

// Factory builds a module instance from its registration arguments.
type Factory func(args ...any) (Module, error)

// Definition is a subsystem type in the declared-parent table. Parent links
// replace type inheritance: a definition belongs to the family of its
// outermost ancestor below Root.
type Definition struct {
	name    string
	parent  *Definition
	factory Factory
}

// Root is the abstract root of every module definition. It cannot be
// registered.
var Root = &Definition{name: "Module"}

// Define declares a module definition extending parent.
func Define(name string, parent *Definition, factory Factory) *Definition {
	return &Definition{name: name, parent: parent, factory: factory}
}

// Name returns the definition name.
func (d *Definition) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Parent returns the declared parent, nil for Root.
func (d *Definition) Parent() *Definition { return d.parent }

// IsAbstract reports whether d is Root.
func (d *Definition) IsAbstract() bool { return d == Root }

// String implements fmt.Stringer.
func (d *Definition) String() string { return d.Name() }

// Extends reports whether ancestor is d or one of its declared ancestors.
func (d *Definition) Extends(ancestor *Definition) bool {
	seen := map[*Definition]bool{}
	for cur := d; cur != nil && !seen[cur]; cur = cur.parent {
		if cur == ancestor {
			return true
		}
		seen[cur] = true
	}
	return false
}

// ResolveBase returns the family of d: the ancestor whose parent is Root.
// A definition directly under Root is its own family.
func ResolveBase(d *Definition) (*Definition, error) {
	switch {
	case d == nil:
		return nil, core.Errorf(core.ErrNotAModule, "nil definition")
	case d == Root:
		return nil, core.Errorf(core.ErrAbstractModule, "%s", Root.name)
	}
	seen := map[*Definition]bool{}
	for cur := d; ; cur = cur.parent {
		if cur.parent == nil {
			return nil, core.Errorf(core.ErrNotAModule, "%s", d.name)
		}
		if cur.parent == Root {
			return cur, nil
		}
		if seen[cur] {
			return nil, core.Errorf(core.ErrNotAModule, "%s has a parent cycle", d.name)
		}
		seen[cur] = true
	}
}
