package beans

import (
	"fmt"
	"reflect"
	"strconv"

	"go.uber.org/dig"

	"github.com/assurrussa/dilab"
	"github.com/assurrussa/dilab/registry"
)

var (
	anyType   = reflect.TypeFor[any]()
	errorType = reflect.TypeFor[error]()
)

// NewContainer assembles the beans into a container. Each bean is a named
// singleton built with its class's no-argument constructor; its properties are
// then set from the referenced beans.
func NewContainer(defs *Definitions, reg *registry.Registry) (*dilab.Container, error) {
	deps := make([]dilab.Dependency, 0, len(defs.Beans))
	for _, bean := range defs.Beans {
		class, err := reg.Lookup(bean.Class)
		if err != nil {
			return nil, fmt.Errorf("bean %q: %w", bean.ID, err)
		}
		deps = append(deps, dilab.NewDependency(
			beanConstructor(bean, class),
			dilab.WithName(bean.ID),
			dilab.WithKey("bean:"+bean.ID),
		))
	}

	return dilab.NewContainer(dilab.WithDependencies(dilab.CollectDependencies(deps...)))
}

// GetBean looks a bean up by id and asserts its type.
func GetBean[T any](c *dilab.Container, id string) (T, error) {
	var zero T

	raw, err := dilab.Resolve[any](c, id)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("bean %q is %T, not %s", id, raw, reflect.TypeFor[T]())
	}
	return v, nil
}

func beanConstructor(bean Bean, class registry.Class) any {
	if len(bean.Properties) == 0 {
		return func() (any, error) {
			v, err := class.Instantiate()
			if err != nil {
				return nil, fmt.Errorf("bean %q: %w", bean.ID, err)
			}
			return v, nil
		}
	}

	fields := []reflect.StructField{{
		Name:      "In",
		Type:      reflect.TypeOf(dig.In{}),
		Anonymous: true,
	}}
	for i, prop := range bean.Properties {
		fields = append(fields, reflect.StructField{
			Name: fmt.Sprintf("Ref%d", i),
			Type: anyType,
			Tag:  reflect.StructTag("name:" + strconv.Quote(prop.Ref)),
		})
	}

	fnType := reflect.FuncOf([]reflect.Type{reflect.StructOf(fields)}, []reflect.Type{anyType, errorType}, false)
	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		instance, err := class.Instantiate()
		if err == nil {
			for i, prop := range bean.Properties {
				if err = class.Set(instance, prop.Name, args[0].Field(i+1).Interface()); err != nil {
					break
				}
			}
		}
		if err != nil {
			return []reflect.Value{reflect.Zero(anyType), errorValue(fmt.Errorf("bean %q: %w", bean.ID, err))}
		}
		return []reflect.Value{reflect.ValueOf(&instance).Elem(), reflect.Zero(errorType)}
	}).Interface()
}

func errorValue(err error) reflect.Value {
	return reflect.ValueOf(&err).Elem()
}
