package dao

import "github.com/assurrussa/dilab"

const (
	Scope         = "dao"
	ComponentName = "dao"
)

// Module declares the components of the dao scope.
func Module() dilab.Module {
	return dilab.NewModule(Scope, dilab.CollectDependencies(
		dilab.Component(NewDatabase, ComponentName, dilab.WithMatch(new(DataSource))),
	))
}
