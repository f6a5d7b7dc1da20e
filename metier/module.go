package metier

import "github.com/assurrussa/dilab"

const (
	Scope         = "metier"
	ComponentName = "metier"
)

// Module declares the components of the metier scope. The Calculator gets its
// DataSource by type, so it receives the primary one when several are in scope.
func Module() dilab.Module {
	return dilab.NewModule(Scope, dilab.CollectDependencies(
		dilab.Component(NewCalculator, ComponentName, dilab.WithMatch(new(Calculator))),
	))
}
