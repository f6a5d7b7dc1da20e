// Package extension adds a DataSource served by a web service. It is declared
// primary, so it replaces the database variant wherever a DataSource is
// injected by type.
package extension

import (
	"go.uber.org/zap"

	"github.com/assurrussa/dilab"
	"github.com/assurrussa/dilab/dao"
)

const (
	Scope         = "extension"
	ComponentName = "dao2"

	// WebServiceValue is the value served by WebService.
	WebServiceValue = 12
)

var _ dao.DataSource = (*WebService)(nil)

type WebService struct {
	log *zap.Logger
}

func NewWebService() *WebService {
	return &WebService{log: zap.L().Named("extension")}
}

func (w *WebService) FetchValue() float64 {
	w.logger().Info("Web Service version")
	return WebServiceValue
}

func (w *WebService) logger() *zap.Logger {
	if w.log == nil {
		return zap.L()
	}
	return w.log
}

// Module declares the components of the extension scope.
func Module() dilab.Module {
	return dilab.NewModule(Scope, dilab.CollectDependencies(
		dilab.Component(NewWebService, ComponentName, dilab.WithMatch(new(dao.DataSource)), dilab.Primary()),
	))
}
