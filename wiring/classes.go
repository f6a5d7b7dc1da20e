package wiring

import (
	"github.com/assurrussa/dilab/dao"
	"github.com/assurrussa/dilab/extension"
	"github.com/assurrussa/dilab/metier"
	"github.com/assurrussa/dilab/registry"
)

// Class names understood by the config and XML strategies.
const (
	ClassDatabase   = "dao.Database"
	ClassWebService = "extension.WebService"
	ClassCalculator = "metier.Impl"

	// PropertyDataSource is the Calculator property holding its DataSource.
	PropertyDataSource = "dao"
)

// Classes returns a registry with every DataSource and Calculator implementation.
func Classes() *registry.Registry {
	return registry.New().MustRegister(
		registry.Class{
			Name: ClassDatabase,
			New:  registry.NoArg(dao.NewDatabase),
		},
		registry.Class{
			Name: ClassWebService,
			New:  registry.NoArg(extension.NewWebService),
		},
		registry.Class{
			Name:    ClassCalculator,
			New:     registry.NoArg(metier.New),
			NewWith: registry.OneArg(metier.NewCalculator),
			Setters: map[string]func(target, value any) error{
				PropertyDataSource: registry.Setter((*metier.Impl).SetDataSource),
			},
		},
	)
}
