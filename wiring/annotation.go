package wiring

import (
	"io"

	"go.uber.org/zap"

	"github.com/assurrussa/dilab"
	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/extension"
	"github.com/assurrussa/dilab/metier"
)

// DefaultScopes returns the dao, metier and extension scopes.
func DefaultScopes() []dilab.Module {
	return []dilab.Module{dao.Module(), metier.Module(), extension.Module()}
}

// ScanScopes builds a container from the components the scopes declare.
// Several DataSource components in scope need exactly one Primary among them.
func ScanScopes(scopes ...dilab.Module) (*dilab.Container, error) {
	cnt, err := dilab.NewContainer(dilab.WithModules(scopes...))
	if err != nil {
		return nil, err
	}
	zap.L().Named("annotation").Debug("scanned scopes", zap.Strings("scopes", cnt.Modules()))
	return cnt, nil
}

// RunAnnotation scans the scopes, looks the Calculator up by name and prints
// the result.
func RunAnnotation(w io.Writer, scopes ...dilab.Module) error {
	cnt, err := ScanScopes(scopes...)
	if err != nil {
		return err
	}

	calc, err := dilab.Resolve[metier.Calculator](cnt, metier.ComponentName)
	if err != nil {
		return err
	}
	return printResult(w, calc)
}
