package dilab

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/dig"
)

type containerConfig struct {
	dependencies []Dependency
	modules      []Module
}

// Container wraps dig.Container with named components and primary selection.
type Container struct {
	dig          *dig.Container
	dependencies []Dependency
	modules      []Module
	started      bool
}

func NewContainer(opts ...ContainerOption) (*Container, error) {
	cfg := containerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	modules := make([]Module, 0, len(cfg.modules))
	seen := map[string]struct{}{}
	for _, module := range cfg.modules {
		if module.Name == "" {
			return nil, errors.New("module name is required")
		}
		if _, ok := seen[module.Name]; ok {
			return nil, fmt.Errorf("module %s registered twice", module.Name)
		}
		seen[module.Name] = struct{}{}

		deps, err := checkDependencies(module.Dependencies.List())
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", module.Name, err)
		}
		modules = append(modules, Module{
			Name:         module.Name,
			Dependencies: CollectDependencies(deps...),
		})
	}

	cnt := &Container{
		dig:          dig.New(dig.RecoverFromPanics()),
		dependencies: nil,
		modules:      modules,
		started:      false,
	}

	if err := cnt.append(CollectDependencies(cfg.dependencies...)); err != nil {
		return nil, err
	}

	return cnt, nil
}

func (c *Container) Invoke(consumer any) error {
	c.started = true
	return c.dig.Invoke(consumer)
}

// Provide appends dependencies to the container.
func (c *Container) Provide(deps Dependencies) error {
	if c.started {
		return errors.New("cannot provide after container has been started")
	}
	return c.append(deps)
}

// Modules returns the names of the scopes the container was built from.
func (c *Container) Modules() []string {
	names := make([]string, 0, len(c.modules))
	for _, module := range c.modules {
		names = append(names, module.Name)
	}
	return names
}

func (c *Container) append(d Dependencies) error {
	deps, err := checkDependencies(d.List())
	if err != nil {
		return err
	}

	// Build on a copy so a failed provide doesn't permanently pollute container state.
	next := append([]Dependency(nil), c.dependencies...)
	next = append(next, deps...)

	orig := c.dependencies
	c.dependencies = next
	built, err := c.build(false)
	if err != nil {
		c.dependencies = orig
		return err
	}

	c.dig = built.container
	return nil
}

// Validate checks that all registered dependencies are resolvable without running constructors.
func (c *Container) Validate() error {
	built, err := c.build(true)
	if err != nil {
		return err
	}

	for _, provider := range built.rootProviders {
		if err := invokeProvider(built.container, provider.dep); err != nil {
			return err
		}
	}

	for moduleName, providers := range built.moduleProviders {
		scope := built.scopes[moduleName]
		for _, provider := range providers {
			if err := invokeProvider(scope, provider.dep); err != nil {
				return fmt.Errorf("module %s: %w", moduleName, err)
			}
		}
	}

	for _, slot := range built.byType {
		if err := built.container.Invoke(buildValidationInvokeForSlot(slot)); err != nil {
			return err
		}
	}

	for moduleName, slots := range built.moduleByType {
		scope := built.scopes[moduleName]
		for _, slot := range slots {
			if err := scope.Invoke(buildValidationInvokeForSlot(slot)); err != nil {
				return fmt.Errorf("module %s: %w", moduleName, err)
			}
		}
	}

	return nil
}

type buildResult struct {
	container       *dig.Container
	scopes          map[string]*dig.Scope
	rootProviders   []depEntry
	moduleProviders map[string][]depEntry
	byType          []slotKey
	moduleByType    map[string][]slotKey
}

func (c *Container) build(dry bool) (*buildResult, error) {
	rootEntries := buildRootEntries(c.dependencies)

	moduleResolutions, err := buildModuleResolutions(c.modules)
	if err != nil {
		return nil, err
	}

	globalEntries := buildGlobalEntries(rootEntries, moduleResolutions)
	globalResolution, err := resolveEntries(globalEntries)
	if err != nil {
		return nil, err
	}

	root, scopes := buildDigContainer(c.modules, dry)
	rootProviders, err := provideRootProviders(root, globalResolution)
	if err != nil {
		return nil, err
	}

	moduleProviders, err := provideModuleProviders(scopes, moduleResolutions, globalResolution)
	if err != nil {
		return nil, err
	}

	byType, err := provideByType(root, globalResolution.byType)
	if err != nil {
		return nil, err
	}

	moduleByType, err := provideModuleByType(scopes, moduleResolutions)
	if err != nil {
		return nil, err
	}

	return &buildResult{
		container:       root,
		scopes:          scopes,
		rootProviders:   rootProviders,
		moduleProviders: moduleProviders,
		byType:          byType,
		moduleByType:    moduleByType,
	}, nil
}

func buildRootEntries(deps []Dependency) []depEntry {
	rootEntries := make([]depEntry, 0, len(deps))
	for i, dep := range deps {
		rootEntries = append(rootEntries, depEntry{dep: dep, idx: i})
	}
	return rootEntries
}

func buildModuleResolutions(modules []Module) (map[string]resolvedScope, error) {
	moduleResolutions := map[string]resolvedScope{}
	for _, module := range modules {
		entries := make([]depEntry, 0, len(module.Dependencies.List()))
		for i, dep := range module.Dependencies.List() {
			entries = append(entries, depEntry{dep: dep, idx: i, module: module.Name})
		}
		res, err := resolveEntries(entries)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", module.Name, err)
		}
		moduleResolutions[module.Name] = res
	}
	return moduleResolutions, nil
}

func buildGlobalEntries(rootEntries []depEntry, moduleResolutions map[string]resolvedScope) []depEntry {
	globalEntries := make([]depEntry, 0, len(rootEntries))
	globalEntries = append(globalEntries, rootEntries...)

	// Map order would make candidate lists and errors unstable.
	names := make([]string, 0, len(moduleResolutions))
	for name := range moduleResolutions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, moduleName := range names {
		for _, provider := range moduleResolutions[moduleName].providers {
			if provider.dep.private {
				continue
			}
			provider.module = moduleName
			globalEntries = append(globalEntries, provider)
		}
	}
	return globalEntries
}

func buildDigContainer(modules []Module, dry bool) (*dig.Container, map[string]*dig.Scope) {
	opts := []dig.Option{dig.RecoverFromPanics()}
	if dry {
		opts = append(opts, dig.DryRun(true))
	}
	root := dig.New(opts...)

	scopes := map[string]*dig.Scope{}
	for _, module := range modules {
		scopes[module.Name] = root.Scope(module.Name)
	}
	return root, scopes
}

func provideRootProviders(root *dig.Container, resolution resolvedScope) ([]depEntry, error) {
	rootProviders := make([]depEntry, 0)
	for _, provider := range resolution.providers {
		if provider.module != "" {
			continue
		}
		if err := provideDependency(root, provider.dep, false); err != nil {
			return nil, err
		}
		rootProviders = append(rootProviders, provider)
	}
	return rootProviders, nil
}

func provideModuleProviders(
	scopes map[string]*dig.Scope,
	moduleResolutions map[string]resolvedScope,
	globalResolution resolvedScope,
) (map[string][]depEntry, error) {
	moduleProviders := map[string][]depEntry{}
	for moduleName, res := range moduleResolutions {
		scope := scopes[moduleName]
		for _, provider := range res.providers {
			if provider.dep.private {
				if err := provideDependency(scope, provider.dep, false); err != nil {
					return nil, err
				}
				moduleProviders[moduleName] = append(moduleProviders[moduleName], provider)
				continue
			}

			slots, err := dependencySlots(provider.dep)
			if err != nil {
				return nil, err
			}
			if !isGlobalWinner(provider, slots, globalResolution.slots) {
				continue
			}

			if err := provideDependency(scope, provider.dep, true); err != nil {
				return nil, err
			}
			moduleProviders[moduleName] = append(moduleProviders[moduleName], provider)
		}
	}

	return moduleProviders, nil
}

type provideScope interface {
	Provide(constructor any, opts ...dig.ProvideOption) error
}

// provideByType exposes each selected component under its unnamed slot by
// forwarding the named value, so both lookups share one instance.
func provideByType(scope provideScope, byType map[slotKey]depEntry) ([]slotKey, error) {
	slots := make([]slotKey, 0, len(byType))
	for slot := range byType {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slotLabel(slots[i]) < slotLabel(slots[j]) })

	for _, slot := range slots {
		winner := byType[slot]
		if err := scope.Provide(buildForwarder(slot.t, winner.dep.Name())); err != nil {
			return nil, fmt.Errorf("expose component %s as %s: %w", winner.dep.Name(), slot.t, err)
		}
	}
	return slots, nil
}

// provideModuleByType exposes by type, inside their own module, the components
// that never reach the root because they are private. A private winner
// shadows the root's choice for consumers in that module.
func provideModuleByType(
	scopes map[string]*dig.Scope,
	moduleResolutions map[string]resolvedScope,
) (map[string][]slotKey, error) {
	result := map[string][]slotKey{}
	for moduleName, res := range moduleResolutions {
		private := map[slotKey]depEntry{}
		for slot, winner := range res.byType {
			if winner.dep.private {
				private[slot] = winner
			}
		}
		if len(private) == 0 {
			continue
		}

		slots, err := provideByType(scopes[moduleName], private)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", moduleName, err)
		}
		result[moduleName] = slots
	}
	return result, nil
}

func checkDependencies(deps []Dependency) ([]Dependency, error) {
	result := make([]Dependency, 0, len(deps))
	for _, dep := range deps {
		if err := dep.Error(); err != nil {
			return nil, fmt.Errorf("dependency error: %w", err)
		}
		result = append(result, dep)
	}
	return result, nil
}

func provideDependency(scope provideScope, dep Dependency, export bool) error {
	options := make([]dig.ProvideOption, 0)
	for _, as := range dep.matchingInterfaces {
		options = append(options, dig.As(as))
	}
	if dep.name != nil {
		options = append(options, dig.Name(*dep.name))
	}
	if export {
		options = append(options, dig.Export(true))
	}

	return scope.Provide(dep.provider(), options...)
}

func invokeProvider(scope interface {
	Invoke(function any, opts ...dig.InvokeOption) error
}, dep Dependency,
) error {
	slots, err := dependencySlots(dep)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if err := scope.Invoke(buildValidationInvokeForSlot(slot)); err != nil {
			return err
		}
	}
	return nil
}

func isGlobalWinner(entry depEntry, slots []slotKey, globalSlots map[slotKey]depEntry) bool {
	for _, slot := range slots {
		winner, ok := globalSlots[slot]
		if !ok || !sameEntry(winner, entry) {
			return false
		}
	}
	return true
}
