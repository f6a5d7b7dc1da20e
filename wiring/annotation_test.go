package wiring_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurrussa/dilab"
	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/extension"
	"github.com/assurrussa/dilab/metier"
	"github.com/assurrussa/dilab/wiring"
)

type cache struct{}

func (cache) FetchValue() float64 { return 1 }

func cacheScope(opts ...dilab.DependencyOption) dilab.Module {
	opts = append(opts, dilab.WithMatch(new(dao.DataSource)))
	return dilab.NewModule("cache", dilab.CollectDependencies(
		dilab.Component(func() cache { return cache{} }, "cache", opts...),
	))
}

func TestRunAnnotationUsesPrimary(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, wiring.RunAnnotation(&out, wiring.DefaultScopes()...))
	assert.Equal(t, "Result: 276.0\n", out.String())
}

func TestRunAnnotationSingleCandidate(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, wiring.RunAnnotation(&out, dao.Module(), metier.Module()))
	assert.Equal(t, "Result: 529.0\n", out.String())
}

func TestScanScopesInjectsPrimaryByType(t *testing.T) {
	t.Parallel()

	cnt, err := wiring.ScanScopes(wiring.DefaultScopes()...)
	require.NoError(t, err)

	calc, err := dilab.Resolve[metier.Calculator](cnt, metier.ComponentName)
	require.NoError(t, err)
	primary, err := dilab.Resolve[dao.DataSource](cnt, extension.ComponentName)
	require.NoError(t, err)

	impl, ok := calc.(*metier.Impl)
	require.True(t, ok)
	assert.Same(t, primary, impl.DataSource())
}

func TestScanScopesWithoutPrimaryFails(t *testing.T) {
	t.Parallel()

	_, err := wiring.ScanScopes(dao.Module(), metier.Module(), cacheScope())

	var ambiguous *dilab.AmbiguousCandidatesError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"cache", "dao"}, ambiguous.Candidates)
	assert.Equal(t, "dao.DataSource", ambiguous.Slot)

	var out bytes.Buffer
	require.Error(t, wiring.RunAnnotation(&out, dao.Module(), metier.Module(), cacheScope()))
	assert.Empty(t, out.String())
}

func TestScanScopesWithTwoPrimariesFails(t *testing.T) {
	t.Parallel()

	_, err := wiring.ScanScopes(append(wiring.DefaultScopes(), cacheScope(dilab.Primary()))...)

	var multiple *dilab.MultiplePrimaryError
	require.ErrorAs(t, err, &multiple)
	assert.Equal(t, []string{"cache", "dao2"}, multiple.Primaries)
}

func TestScanScopesMissingDataSource(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.Error(t, wiring.RunAnnotation(&out, metier.Module()))
	assert.Empty(t, out.String())
}

func TestRunAnnotationSetterInjection(t *testing.T) {
	t.Parallel()

	setterScope := dilab.NewModule(metier.Scope, dilab.CollectDependencies(
		dilab.Component(metier.New, metier.ComponentName,
			dilab.WithMatch(new(metier.Calculator)),
			dilab.WithSetter((*metier.Impl).SetDataSource),
		),
	))

	var out bytes.Buffer
	require.NoError(t, wiring.RunAnnotation(&out, dao.Module(), setterScope, extension.Module()))
	assert.Equal(t, "Result: 276.0\n", out.String())
}
