package wiring

import (
	"io"

	"go.uber.org/zap"

	"github.com/assurrussa/dilab/beans"
	"github.com/assurrussa/dilab/metier"
	"github.com/assurrussa/dilab/registry"
)

// RunXML assembles the beans defined in the XML file at path and computes with
// the bean named "metier".
func RunXML(w io.Writer, reg *registry.Registry, path string) error {
	defs, err := beans.Load(path)
	if err != nil {
		return err
	}
	zap.L().Named("xml").Debug("loaded bean definitions", zap.String("path", path), zap.Int("beans", len(defs.Beans)))

	cnt, err := beans.NewContainer(defs, reg)
	if err != nil {
		return err
	}

	calc, err := beans.GetBean[metier.Calculator](cnt, metier.ComponentName)
	if err != nil {
		return err
	}
	return printResult(w, calc)
}
