package dilab

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

func validateSetter(constructor, setter any) error {
	ctorType := reflect.TypeOf(constructor)
	setterType := reflect.TypeOf(setter)
	if setterType == nil || setterType.Kind() != reflect.Func {
		return fmt.Errorf("setter must be a function, got %T", setter)
	}
	if ctorType.IsVariadic() {
		return fmt.Errorf("setters are not supported on variadic constructor %s", ctorType)
	}
	if setterType.NumIn() != 2 || setterType.IsVariadic() {
		return fmt.Errorf("setter must take (target, value), got %s", setterType)
	}
	if target := ctorType.Out(0); !target.AssignableTo(setterType.In(0)) {
		return fmt.Errorf("setter %s cannot be applied to %s", setterType, target)
	}

	switch {
	case setterType.NumOut() == 0:
	case setterType.NumOut() == 1 && setterType.Out(0) == errorType:
	default:
		return fmt.Errorf("setter must return nothing or error, got %s", setterType)
	}
	return nil
}

// provider returns the function handed to dig. Setters whose value the
// constructor does not already take are appended to its parameters and
// applied to the constructed value.
func (d *Dependency) provider() any {
	setters := d.pendingSetters()
	if len(setters) == 0 {
		return d.constructor
	}
	return buildSetterConstructor(d.constructor, setters)
}

func (d *Dependency) pendingSetters() []reflect.Value {
	if d.err != nil || len(d.setters) == 0 {
		return nil
	}

	taken := map[reflect.Type]struct{}{}
	for _, token := range parseConstructorInputs(d.constructor) {
		if token.Name == "" {
			taken[token.typ] = struct{}{}
		}
	}

	result := make([]reflect.Value, 0, len(d.setters))
	for _, setter := range d.setters {
		v := reflect.ValueOf(setter)
		if _, ok := taken[v.Type().In(1)]; ok {
			continue
		}
		result = append(result, v)
	}
	return result
}

func buildSetterConstructor(constructor any, setters []reflect.Value) any {
	ctor := reflect.ValueOf(constructor)
	ctorType := ctor.Type()
	n := ctorType.NumIn()

	ins := make([]reflect.Type, 0, n+len(setters))
	for i := range n {
		ins = append(ins, ctorType.In(i))
	}
	for _, setter := range setters {
		ins = append(ins, setter.Type().In(1))
	}
	outs := []reflect.Type{ctorType.Out(0), errorType}

	fail := func(err reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.Zero(outs[0]), err}
	}

	return reflect.MakeFunc(reflect.FuncOf(ins, outs, false), func(args []reflect.Value) []reflect.Value {
		res := ctor.Call(args[:n])
		if len(res) == 2 && !res[1].IsNil() {
			return fail(res[1])
		}
		for i, setter := range setters {
			out := setter.Call([]reflect.Value{res[0], args[n+i]})
			if len(out) == 1 && !out[0].IsNil() {
				return fail(out[0])
			}
		}
		return []reflect.Value{res[0], reflect.Zero(errorType)}
	}).Interface()
}
