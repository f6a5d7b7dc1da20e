package wiring

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/metier"
	"github.com/assurrussa/dilab/registry"
)

// Assemble builds the DataSource named in cfg with its no-argument
// constructor and hands it to the Calculator's single-dependency constructor.
func Assemble(reg *registry.Registry, cfg Config) (metier.Calculator, error) {
	dsClass, err := reg.Lookup(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	rawDS, err := dsClass.Instantiate()
	if err != nil {
		return nil, err
	}
	ds, ok := rawDS.(dao.DataSource)
	if !ok {
		return nil, fmt.Errorf("class %q does not implement dao.DataSource", cfg.DataSource)
	}

	calcClass, err := reg.Lookup(cfg.Calculator)
	if err != nil {
		return nil, err
	}
	rawCalc, err := calcClass.InstantiateWith(ds)
	if err != nil {
		return nil, err
	}
	calc, ok := rawCalc.(metier.Calculator)
	if !ok {
		return nil, fmt.Errorf("class %q does not implement metier.Calculator", cfg.Calculator)
	}
	return calc, nil
}

// RunReflective assembles the classes named in the config file at path and
// prints the result. Any failure is printed in place of the result line.
func RunReflective(w io.Writer, reg *registry.Registry, path string) {
	log := zap.L().Named("reflective")

	if err := runReflective(w, log, reg, path); err != nil {
		log.Debug("wiring failed", zap.String("config", path), zap.Error(err))
		_, _ = fmt.Fprintln(w, err.Error())
	}
}

func runReflective(w io.Writer, log *zap.Logger, reg *registry.Registry, path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	log.Debug("wiring",
		zap.String("datasource", cfg.DataSource),
		zap.String("calculator", cfg.Calculator),
	)

	calc, err := Assemble(reg, cfg)
	if err != nil {
		return err
	}
	return printResult(w, calc)
}
