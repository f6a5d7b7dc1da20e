package wiring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assurrussa/dilab/wiring"
)

func TestFormatResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 529, want: "529.0"},
		{in: 276, want: "276.0"},
		{in: 0, want: "0.0"},
		{in: -46, want: "-46.0"},
		{in: 57.5, want: "57.5"},
		{in: math.NaN(), want: "NaN"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, wiring.FormatResult(tt.in))
	}
}
