package wiring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/assurrussa/dilab/wiring"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	log, err := wiring.NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = wiring.NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))

	_, err = wiring.NewLogger("loud")
	require.Error(t, err)
}
