package dilab

type DependencyOption func(*Dependency)

// WithMatch maps dependency to interface (dig.As).
func WithMatch(a any) DependencyOption {
	return func(d *Dependency) {
		if err := d.AddMatchingInterface(a); err != nil && d.err == nil {
			d.err = err
		}
	}
}

// WithKey attaches a metadata key for diagnostics (no effect on resolution).
func WithKey(key string) DependencyOption {
	return func(d *Dependency) { d.key = &key }
}

// WithName provides dependency under a named key (dig.Name).
func WithName(name string) DependencyOption {
	return func(d *Dependency) { d.name = &name }
}

// Private marks a dependency as private to its module scope.
func Private() DependencyOption {
	return func(d *Dependency) { d.private = true }
}

// Primary marks a component as the one injected by type when several
// components expose that type.
func Primary() DependencyOption {
	return func(d *Dependency) { d.primary = true }
}

// WithSetter injects a value after construction: setter is called with the
// constructed value and the value of its second parameter, resolved by type.
// It is skipped when the constructor already takes that type.
func WithSetter(setter any) DependencyOption {
	return func(d *Dependency) { d.setters = append(d.setters, setter) }
}
