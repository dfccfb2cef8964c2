package behavior

import (
	"fmt"
	"reflect"

	"github.com/hupe1980/stagekit/core"
)

func lookupMethod(b Behavior, name string) (reflect.Value, bool) {
	m := reflect.ValueOf(b).MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	return m, true
}

// invoke calls method with args adapted to its signature. Missing trailing
// arguments become zero values and surplus arguments are dropped.
func invoke(method reflect.Value, args []any) error {
	mt := method.Type()
	fixed := mt.NumIn()
	if mt.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		pt := mt.In(i)
		if i >= len(args) {
			in = append(in, reflect.Zero(pt))
			continue
		}
		v, err := adapt(args[i], pt)
		if err != nil {
			return core.Errorf(core.ErrArgumentMismatch, "argument %d: %v", i, err)
		}
		in = append(in, v)
	}

	if mt.IsVariadic() {
		et := mt.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := adapt(args[i], et)
			if err != nil {
				return core.Errorf(core.ErrArgumentMismatch, "argument %d: %v", i, err)
			}
			in = append(in, v)
		}
	}

	method.Call(in)
	return nil
}

func adapt(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a %s", t)
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
