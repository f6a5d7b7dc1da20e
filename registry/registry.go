// Package registry maps class names to factories so implementations can be
// chosen from external configuration without runtime type introspection.
//
// A Class describes how to build one implementation: a no-argument
// constructor, a constructor taking a single dependency, and named property
// setters. Any of them may be absent; asking for a missing one yields a typed
// error.
//
//	reg := registry.New()
//	reg.MustRegister(registry.Class{
//		Name: "dao.Database",
//		New:  registry.NoArg(dao.NewDatabase),
//	})
//	class, err := reg.Lookup("dao.Database")
package registry

import (
	"errors"
	"reflect"
	"sort"
	"strconv"
	"sync"
)

// Class is a named set of factories for one implementation.
type Class struct {
	Name string
	// New builds an instance without dependencies.
	New func() any
	// NewWith builds an instance from a single dependency.
	NewWith func(dep any) (any, error)
	// Setters inject a dependency into an existing instance, keyed by property name.
	Setters map[string]func(target, value any) error
}

// Instantiate calls the no-argument constructor.
func (c Class) Instantiate() (any, error) {
	if c.New == nil {
		return nil, &ConstructorNotFoundError{Class: c.Name, Signature: "()"}
	}
	return c.New(), nil
}

// InstantiateWith calls the single-dependency constructor.
func (c Class) InstantiateWith(dep any) (any, error) {
	if c.NewWith == nil {
		return nil, &ConstructorNotFoundError{Class: c.Name, Signature: "(" + typeName(dep) + ")"}
	}
	return c.NewWith(dep)
}

// Set injects value into target through the named property.
func (c Class) Set(target any, property string, value any) error {
	set, ok := c.Setters[property]
	if !ok || set == nil {
		return &PropertyNotFoundError{Class: c.Name, Property: property}
	}
	return set(target, value)
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]Class
}

func New() *Registry {
	return &Registry{classes: map[string]Class{}}
}

// Register adds classes. A name can be registered once.
func (r *Registry) Register(classes ...Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, class := range classes {
		if class.Name == "" {
			return errors.New("registry: class name is required")
		}
		if _, exists := r.classes[class.Name]; exists {
			return &DuplicateClassError{Class: class.Name}
		}
	}
	for _, class := range classes {
		r.classes[class.Name] = class
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(classes ...Class) *Registry {
	if err := r.Register(classes...); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Lookup(name string) (Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[name]
	if !ok {
		return Class{}, &ClassNotFoundError{Class: name}
	}
	return class, nil
}

// MustLookup returns the class or panics with a helpful message.
func (r *Registry) MustLookup(name string) Class {
	class, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return class
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoArg adapts a typed constructor to Class.New.
func NoArg[T any](ctor func() T) func() any {
	return func() any { return ctor() }
}

// OneArg adapts a typed single-dependency constructor to Class.NewWith.
func OneArg[A, T any](ctor func(A) T) func(any) (any, error) {
	return func(dep any) (any, error) {
		a, ok := dep.(A)
		if !ok {
			return nil, &ArgumentTypeError{Want: reflect.TypeFor[A]().String(), Got: typeName(dep)}
		}
		return ctor(a), nil
	}
}

// Setter adapts a typed setter method expression to a Class setter.
func Setter[T, V any](set func(T, V)) func(target, value any) error {
	return func(target, value any) error {
		t, ok := target.(T)
		if !ok {
			return &ArgumentTypeError{Want: reflect.TypeFor[T]().String(), Got: typeName(target)}
		}
		v, ok := value.(V)
		if !ok {
			return &ArgumentTypeError{Want: reflect.TypeFor[V]().String(), Got: typeName(value)}
		}
		set(t, v)
		return nil
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// ClassNotFoundError is returned when no class is registered under a name.
type ClassNotFoundError struct{ Class string }

func (e *ClassNotFoundError) Error() string {
	return "registry: class " + strconv.Quote(e.Class) + " not found"
}

// ConstructorNotFoundError is returned when a class has no constructor with the
// requested signature.
type ConstructorNotFoundError struct {
	Class     string
	Signature string
}

func (e *ConstructorNotFoundError) Error() string {
	return "registry: class " + strconv.Quote(e.Class) + " has no constructor " + e.Signature
}

// PropertyNotFoundError is returned when a class has no setter for a property.
type PropertyNotFoundError struct {
	Class    string
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return "registry: class " + strconv.Quote(e.Class) + " has no property " + strconv.Quote(e.Property)
}

// ArgumentTypeError is returned when a factory receives a value of the wrong type.
type ArgumentTypeError struct {
	Want string
	Got  string
}

func (e *ArgumentTypeError) Error() string {
	return "registry: argument of type " + e.Got + " is not " + e.Want
}

// DuplicateClassError is returned when a name is registered twice.
type DuplicateClassError struct{ Class string }

func (e *DuplicateClassError) Error() string {
	return "registry: duplicate class " + strconv.Quote(e.Class)
}
