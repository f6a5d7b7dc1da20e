package dilab

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/dig"
)

func validateConstructor(constructor any) error {
	funcType := reflect.TypeOf(constructor)
	if funcType == nil {
		return fmt.Errorf("constructor must be a function, got %T", constructor)
	}
	if funcType.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function, got %T", constructor)
	}

	outTypes := make([]reflect.Type, 0, funcType.NumOut())
	for i := range funcType.NumOut() {
		outTypes = append(outTypes, funcType.Out(i))
	}

	// Allowed:
	// 1) func(...) T
	// 2) func(...) (T, error)
	isOutInvalid := len(outTypes) < 1 ||
		len(outTypes) > 2 ||
		len(outTypes) == 1 && outTypes[0].AssignableTo(reflect.TypeFor[error]()) ||
		len(outTypes) == 2 && outTypes[0].AssignableTo(reflect.TypeFor[error]()) ||
		len(outTypes) == 2 && !outTypes[1].AssignableTo(reflect.TypeFor[error]())

	if isOutInvalid {
		formattedOutTypes := make([]string, 0, len(outTypes))
		for _, o := range outTypes {
			formattedOutTypes = append(formattedOutTypes, o.String())
		}
		return fmt.Errorf("constructor must return value or (value, error), returns (%s)", strings.Join(formattedOutTypes, ", "))
	}

	return nil
}

func isPointerToInterface(a any) bool {
	pType := reflect.TypeOf(a)
	if pType == nil || pType.Kind() != reflect.Pointer {
		return false
	}

	return pType.Elem().Kind() == reflect.Interface
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// namedInType returns a dig.In struct with a single field Item of type t
// tagged with the given name.
func namedInType(t reflect.Type, name string) reflect.Type {
	return reflect.StructOf([]reflect.StructField{
		{
			Name:      "In",
			Type:      reflect.TypeOf(dig.In{}),
			Anonymous: true,
		},
		{
			Name: "Item",
			Type: t,
			Tag:  reflect.StructTag("name:" + strconv.Quote(name)),
		},
	})
}

// buildCaptureInvoke returns a function dig can invoke that hands the value of
// the slot to capture.
func buildCaptureInvoke(t reflect.Type, name string, capture func(reflect.Value)) any {
	if name == "" {
		fnType := reflect.FuncOf([]reflect.Type{t}, nil, false)
		return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			capture(args[0])
			return nil
		}).Interface()
	}

	fnType := reflect.FuncOf([]reflect.Type{namedInType(t, name)}, nil, false)
	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		capture(args[0].FieldByName("Item"))
		return nil
	}).Interface()
}

func buildValidationInvokeForSlot(slot slotKey) any {
	return buildCaptureInvoke(slot.t, slot.name, func(reflect.Value) {})
}

// buildForwarder returns a constructor that provides the value named name
// again under the unnamed slot of t.
func buildForwarder(t reflect.Type, name string) any {
	fnType := reflect.FuncOf([]reflect.Type{namedInType(t, name)}, []reflect.Type{t}, false)
	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		return []reflect.Value{args[0].FieldByName("Item")}
	}).Interface()
}
