package behavior

import "reflect"

type extendMode int

const (
	extendNone extendMode = iota
	extendAll
	extendOnly
)

// Extension describes which secondary hosts a behavior wants to join when it
// is announced. Targets are matched by equality, so they may be subsystem
// names, module definitions or host instances.
type Extension struct {
	mode    extendMode
	targets []any
}

// ExtendNone joins no secondary host. It is the default.
func ExtendNone() Extension { return Extension{} }

// ExtendAll joins every secondary host that is offered the behavior.
func ExtendAll() Extension { return Extension{mode: extendAll} }

// ExtendOnly joins the listed targets.
func ExtendOnly(targets ...any) Extension {
	if len(targets) == 0 {
		return ExtendNone()
	}
	t := make([]any, len(targets))
	copy(t, targets)
	return Extension{mode: extendOnly, targets: t}
}

// All reports whether the extension covers every host.
func (e Extension) All() bool { return e.mode == extendAll }

// None reports whether the extension covers no host.
func (e Extension) None() bool { return e.mode == extendNone }

// Targets returns a copy of the explicit targets.
func (e Extension) Targets() []any {
	out := make([]any, len(e.targets))
	copy(out, e.targets)
	return out
}

// Includes reports whether target is named explicitly. It is false for All.
func (e Extension) Includes(target any) bool {
	if e.mode != extendOnly || !isComparable(target) {
		return false
	}
	for _, t := range e.targets {
		if isComparable(t) && t == target {
			return true
		}
	}
	return false
}

func isComparable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().Comparable() {
		return false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// Extender is implemented by behaviors that join secondary hosts.
type Extender interface {
	ExtendModules() Extension
}

// ExtensionOf returns b's extension, or ExtendNone when b does not declare one.
func ExtensionOf(b Behavior) Extension {
	if e, ok := b.(Extender); ok {
		return e.ExtendModules()
	}
	return ExtendNone()
}
