package dilab

type ContainerOption func(c *containerConfig)

// WithDependencies adds dependencies to the container.
func WithDependencies(d ...Dependencies) ContainerOption {
	return func(c *containerConfig) {
		for i := range d {
			c.dependencies = append(c.dependencies, d[i].List()...)
		}
	}
}

// WithModules registers modules. Each module is a named scope; its public
// components take part in primary selection across the whole container.
func WithModules(modules ...Module) ContainerOption {
	return func(c *containerConfig) {
		c.modules = append(c.modules, modules...)
	}
}
