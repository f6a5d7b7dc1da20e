//go:build wireinject

package wiring

import (
	"github.com/google/wire"

	"github.com/assurrussa/dilab/metier"
)

// InitializeCalculator builds the Calculator from StaticSet.
func InitializeCalculator() metier.Calculator {
	wire.Build(StaticSet)
	return nil
}
