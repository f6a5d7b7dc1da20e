package wiring

import (
	"io"

	"github.com/google/wire"

	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/metier"
)

// StaticSet fixes the implementations at compile time. Switching the
// DataSource means editing this set and regenerating wire_gen.go.
var StaticSet = wire.NewSet(
	dao.NewDatabase,
	wire.Bind(new(dao.DataSource), new(*dao.Database)),
	metier.NewCalculator,
	wire.Bind(new(metier.Calculator), new(*metier.Impl)),
)

// RunStatic computes with the compile-time wired Calculator.
func RunStatic(w io.Writer) error {
	return printResult(w, InitializeCalculator())
}
