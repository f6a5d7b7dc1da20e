package registry_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurrussa/dilab/registry"
)

type source interface{ Value() int }

type constSource int

func (c constSource) Value() int { return int(c) }

type consumer struct{ src source }

func newConsumer(src source) *consumer { return &consumer{src: src} }

func (c *consumer) setSource(src source) { c.src = src }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.Register(
		registry.Class{
			Name: "test.Source",
			New:  registry.NoArg(func() source { return constSource(7) }),
		},
		registry.Class{
			Name:    "test.Consumer",
			New:     registry.NoArg(func() *consumer { return &consumer{} }),
			NewWith: registry.OneArg(newConsumer),
			Setters: map[string]func(target, value any) error{
				"source": registry.Setter((*consumer).setSource),
			},
		},
	))
	return reg
}

func TestLookupAndInstantiate(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	srcClass, err := reg.Lookup("test.Source")
	require.NoError(t, err)
	src, err := srcClass.Instantiate()
	require.NoError(t, err)

	consumerClass := reg.MustLookup("test.Consumer")
	raw, err := consumerClass.InstantiateWith(src)
	require.NoError(t, err)

	c, ok := raw.(*consumer)
	require.True(t, ok)
	assert.Equal(t, 7, c.src.Value())
}

func TestSetterInjection(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	class := reg.MustLookup("test.Consumer")

	raw, err := class.Instantiate()
	require.NoError(t, err)
	require.NoError(t, class.Set(raw, "source", constSource(3)))
	assert.Equal(t, 3, raw.(*consumer).src.Value())

	var propErr *registry.PropertyNotFoundError
	require.ErrorAs(t, class.Set(raw, "missing", constSource(3)), &propErr)
	assert.Equal(t, "missing", propErr.Property)

	var argErr *registry.ArgumentTypeError
	require.ErrorAs(t, class.Set(raw, "source", "not a source"), &argErr)
	assert.Equal(t, "string", argErr.Got)
}

func TestLookupUnknownClass(t *testing.T) {
	t.Parallel()

	_, err := testRegistry(t).Lookup("test.Nope")

	var notFound *registry.ClassNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "test.Nope", notFound.Class)
	assert.Contains(t, err.Error(), `"test.Nope"`)
}

func TestMissingConstructor(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	_, err := reg.MustLookup("test.Source").InstantiateWith(constSource(1))
	var ctorErr *registry.ConstructorNotFoundError
	require.ErrorAs(t, err, &ctorErr)
	assert.Equal(t, "(registry_test.constSource)", ctorErr.Signature)
}

func TestOneArgRejectsWrongType(t *testing.T) {
	t.Parallel()

	_, err := testRegistry(t).MustLookup("test.Consumer").InstantiateWith(42)

	var argErr *registry.ArgumentTypeError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "registry_test.source", argErr.Want)
	assert.Equal(t, "int", argErr.Got)
}

func TestRegisterDuplicateIsAtomic(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	err := reg.Register(
		registry.Class{Name: "test.Other"},
		registry.Class{Name: "test.Source"},
	)

	var dup *registry.DuplicateClassError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "test.Source", dup.Class)

	names := reg.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, []string{"test.Consumer", "test.Source"}, names)
}

func TestRegisterRequiresName(t *testing.T) {
	t.Parallel()

	require.Error(t, registry.New().Register(registry.Class{}))
	assert.Panics(t, func() { registry.New().MustRegister(registry.Class{}) })
	assert.Panics(t, func() { registry.New().MustLookup("x") })
}
