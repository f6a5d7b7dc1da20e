package dilab

// Module groups the components declared by one package under a scope name.
type Module struct {
	Name         string
	Dependencies Dependencies
}

func NewModule(name string, dependencies Dependencies) Module {
	return Module{Name: name, Dependencies: dependencies}
}
