package dilab

import (
	"fmt"
	"reflect"
)

// Resolve looks up the value provided under name. An empty name resolves by
// type, which for components means the selected (primary) candidate.
func Resolve[T any](c *Container, name string) (T, error) {
	var (
		zero T
		got  reflect.Value
	)

	t := reflect.TypeFor[T]()
	if err := c.Invoke(buildCaptureInvoke(t, name, func(v reflect.Value) { got = v })); err != nil {
		return zero, err
	}

	value, ok := got.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("resolve %s: nil value", slotLabel(slotKey{t: t, name: name}))
	}
	return value, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return v
}
