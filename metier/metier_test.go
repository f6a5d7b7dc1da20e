package metier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/extension"
	"github.com/assurrussa/dilab/metier"
)

type fixedSource float64

func (f fixedSource) FetchValue() float64 { return float64(f) }

func TestComputeMultipliesByFactor(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 1, 2.5, -4, 1000} {
		got, err := metier.NewCalculator(fixedSource(v)).Compute()
		require.NoError(t, err)
		assert.InDelta(t, v*metier.Factor, got, 1e-9)
	}
}

func TestComputeWithVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ds   dao.DataSource
		want float64
	}{
		{name: "database", ds: dao.NewDatabase(), want: 529},
		{name: "web service", ds: extension.NewWebService(), want: 276},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := metier.NewCalculator(tt.ds).Compute()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestSetterInjection(t *testing.T) {
	t.Parallel()

	m := metier.New()
	_, err := m.Compute()
	require.ErrorIs(t, err, metier.ErrDataSourceNotSet)
	assert.Nil(t, m.DataSource())

	ds := extension.NewWebService()
	m.SetDataSource(ds)
	assert.Same(t, ds, m.DataSource())

	got, err := m.Compute()
	require.NoError(t, err)
	assert.InDelta(t, 276.0, got, 0)
}

func TestZeroValueCalculatorLogsThroughGlobalLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	var m metier.Impl
	m.SetDataSource(fixedSource(2))

	got, err := m.Compute()
	require.NoError(t, err)
	assert.InDelta(t, 46.0, got, 0)
	assert.Equal(t, 1, logs.FilterMessage("computing").Len())
}
