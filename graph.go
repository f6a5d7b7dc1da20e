package dilab

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/dig"
)

type Graph struct {
	Providers []ProviderNode
	Edges     []ProviderEdge
}

type ProviderNode struct {
	ID          string
	Key         string
	Type        string
	Name        string
	Module      string
	Kind        string
	Primary     bool
	Constructor string
	File        string
	Line        int
	Provides    []GraphToken
	Requires    []GraphToken
}

type GraphToken struct {
	typ      reflect.Type
	Type     string
	Name     string
	Optional bool
}

// ProviderEdge links a consumer to the provider of one of its inputs. ByType is
// set when the target was chosen among several components.
type ProviderEdge struct {
	From     string
	To       string
	Type     string
	Name     string
	Optional bool
	Missing  bool
	ByType   bool
}

// Graph builds the dependency graph of the whole container (resolved providers only).
// When the container does not resolve, every declared provider is shown.
func (c *Container) Graph() Graph {
	rootEntries := buildRootEntries(c.dependencies)
	moduleResolutions, err := buildModuleResolutions(c.modules)
	if err != nil {
		return buildGraphFromEntries(append(rootEntries, moduleEntries(c.modules)...), nil)
	}

	globalEntries := buildGlobalEntries(rootEntries, moduleResolutions)
	resolved, err := resolveEntries(globalEntries)
	if err != nil {
		return buildGraphFromEntries(globalEntries, nil)
	}
	return buildGraphFromEntries(resolved.providers, resolved.byType)
}

// GraphDOT renders the container graph in DOT (Graphviz) format.
func (c *Container) GraphDOT() string {
	return c.Graph().DOT()
}

// BuildGraph builds a dependency graph for the provided dependencies (resolved providers only).
func BuildGraph(deps Dependencies) Graph {
	entries := buildRootEntries(deps.List())
	resolved, err := resolveEntries(entries)
	if err != nil {
		return buildGraphFromEntries(entries, nil)
	}
	return buildGraphFromEntries(resolved.providers, resolved.byType)
}

func moduleEntries(modules []Module) []depEntry {
	var entries []depEntry
	for _, module := range modules {
		for i, dep := range module.Dependencies.List() {
			entries = append(entries, depEntry{dep: dep, idx: i, module: module.Name})
		}
	}
	return entries
}

func buildGraphFromEntries(entries []depEntry, byType map[slotKey]depEntry) Graph {
	nodes := make([]ProviderNode, 0, len(entries))
	bySlot := map[slotKey][]string{}
	idByEntry := map[entryKey]string{}

	for _, entry := range entries {
		node := buildNodeFromEntry(entry)
		nodes = append(nodes, node)
		idByEntry[entryKeyFor(entry)] = node.ID

		for _, token := range node.Provides {
			key := slotKey{t: token.typ, name: token.Name}
			bySlot[key] = append(bySlot[key], node.ID)
		}
	}

	selected := map[slotKey]string{}
	for slot, winner := range byType {
		if id, ok := idByEntry[entryKeyFor(winner)]; ok {
			selected[slot] = id
		}
	}

	return Graph{Providers: nodes, Edges: buildGraphEdges(nodes, bySlot, selected)}
}

func buildNodeFromEntry(entry depEntry) ProviderNode {
	dep := entry.dep
	info := describeProvider(dep)
	return ProviderNode{
		ID:          buildProviderID(entry, info),
		Key:         derefString(dep.key),
		Type:        depTypeString(dep),
		Name:        derefString(dep.name),
		Module:      entry.module,
		Kind:        dependencyKindString(dep),
		Primary:     dep.primary,
		Constructor: info.constructor,
		File:        info.file,
		Line:        info.line,
		Provides:    buildProvideTokens(dep),
		Requires:    parseConstructorInputs(dep.provider()),
	}
}

func buildGraphEdges(nodes []ProviderNode, bySlot map[slotKey][]string, selected map[slotKey]string) []ProviderEdge {
	edges := make([]ProviderEdge, 0)
	for _, node := range nodes {
		for _, token := range node.Requires {
			if token.typ == nil {
				continue
			}
			key := slotKey{t: token.typ, name: token.Name}

			targets := bySlot[key]
			viaType := false
			if len(targets) == 0 {
				if id, ok := selected[key]; ok {
					targets = []string{id}
					viaType = true
				}
			}

			if len(targets) == 0 {
				edges = append(edges, ProviderEdge{
					From:     node.ID,
					Type:     token.Type,
					Name:     token.Name,
					Optional: token.Optional,
					Missing:  true,
				})
				continue
			}

			for _, target := range targets {
				edges = append(edges, ProviderEdge{
					From:     node.ID,
					To:       target,
					Type:     token.Type,
					Name:     token.Name,
					Optional: token.Optional,
					ByType:   viaType,
				})
			}
		}
	}
	return edges
}

// DOT renders a dependency graph as DOT (Graphviz) format.
func (g Graph) DOT() string {
	var b strings.Builder
	_, _ = b.WriteString("digraph DI {\n")
	_, _ = b.WriteString("  rankdir=LR;\n")
	_, _ = b.WriteString("  node [fontname=\"Helvetica\"];\n")

	for _, node := range g.Providers {
		style := "solid"
		if node.Primary || node.Kind == "replace" {
			style = "bold"
		}
		_, _ = b.WriteString(fmt.Sprintf(
			"  \"%s\" [shape=box style=%s label=\"%s\"];\n",
			escapeDOT(node.ID),
			style,
			escapeDOT(buildProviderLabel(node)),
		))
	}

	missing := map[string]string{}
	for _, edge := range g.Edges {
		if edge.Missing {
			missing[missingNodeID(edge)] = buildEdgeLabel(edge)
		}
	}
	ids := make([]string, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, _ = b.WriteString(fmt.Sprintf(
			"  \"%s\" [shape=diamond style=dashed label=\"%s\"];\n",
			escapeDOT(id),
			escapeDOT(missing[id]),
		))
	}

	for _, edge := range g.Edges {
		target := edge.To
		if edge.Missing {
			target = missingNodeID(edge)
		}
		style := "solid"
		switch {
		case edge.Optional:
			style = "dashed"
		case edge.ByType:
			style = "bold"
		}
		_, _ = b.WriteString(fmt.Sprintf(
			"  \"%s\" -> \"%s\" [label=\"%s\" style=%s];\n",
			escapeDOT(edge.From),
			escapeDOT(target),
			escapeDOT(buildEdgeLabel(edge)),
			style,
		))
	}

	_, _ = b.WriteString("}\n")
	return b.String()
}

func (g Graph) ProviderIDs() []string {
	ids := make([]string, 0, len(g.Providers))
	for _, p := range g.Providers {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

type providerInfo struct {
	constructor string
	file        string
	line        int
}

func describeProvider(dep Dependency) providerInfo {
	var info providerInfo
	val := reflect.ValueOf(dep.constructor)
	if val.Kind() != reflect.Func {
		return info
	}
	pc := val.Pointer()
	if pc == 0 {
		return info
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		info.constructor = fn.Name()
		info.file, info.line = fn.FileLine(pc)
	}
	return info
}

func buildProviderID(entry depEntry, info providerInfo) string {
	prefix := ""
	if entry.module != "" {
		prefix = entry.module + "/"
	}
	dep := entry.dep
	switch {
	case dep.key != nil:
		// Keys are often reused across Provide/Replace, so the index keeps the ID unique.
		return fmt.Sprintf("%skey:%s#%d", prefix, *dep.key, entry.idx)
	case dep.component:
		return fmt.Sprintf("%scomponent:%s#%d", prefix, *dep.name, entry.idx)
	case info.constructor != "":
		return fmt.Sprintf("%sctor:%s#%d", prefix, info.constructor, entry.idx)
	default:
		return fmt.Sprintf("%sdep:%d", prefix, entry.idx)
	}
}

func depTypeString(dep Dependency) string {
	if t := dep.Type(); t != nil {
		return t.String()
	}
	return ""
}

func dependencyKindString(dep Dependency) string {
	switch {
	case dep.kind == dependencyKindReplace:
		return "replace"
	case dep.component:
		return "component"
	default:
		return "provide"
	}
}

func buildProviderLabel(node ProviderNode) string {
	parts := []string{}
	if node.Key != "" {
		parts = append(parts, node.Key)
	}
	if node.Type != "" {
		parts = append(parts, node.Type)
	}
	if node.Constructor != "" {
		parts = append(parts, node.Constructor)
	}
	if node.Name != "" {
		parts = append(parts, "name:"+node.Name)
	}
	if node.Module != "" {
		parts = append(parts, "module:"+node.Module)
	}
	if node.Primary {
		parts = append(parts, "primary")
	}
	if node.Kind != "" && node.Kind != "provide" {
		parts = append(parts, "kind:"+node.Kind)
	}
	if node.File != "" && node.Line > 0 {
		parts = append(parts, fmt.Sprintf("%s:%d", node.File, node.Line))
	}
	return strings.Join(parts, "\\n")
}

func buildEdgeLabel(edge ProviderEdge) string {
	parts := []string{}
	if edge.Type != "" {
		parts = append(parts, edge.Type)
	}
	if edge.Name != "" {
		parts = append(parts, "name:"+edge.Name)
	}
	if edge.Optional {
		parts = append(parts, "optional")
	}
	if edge.ByType {
		parts = append(parts, "by-type")
	}
	return strings.Join(parts, " ")
}

func missingNodeID(edge ProviderEdge) string {
	return fmt.Sprintf("missing:%s|%s", edge.Type, edge.Name)
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

func buildProvideTokens(dep Dependency) []GraphToken {
	slots, err := dependencySlots(dep)
	if err != nil {
		return nil
	}
	result := make([]GraphToken, 0, len(slots))
	for _, slot := range slots {
		result = append(result, GraphToken{typ: slot.t, Type: slot.t.String(), Name: slot.name})
	}
	return result
}

func parseConstructorInputs(constructor any) []GraphToken {
	fnType := reflect.TypeOf(constructor)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil
	}
	var result []GraphToken
	for i := 0; i < fnType.NumIn(); i++ {
		param := fnType.In(i)
		if isDigInStruct(param) {
			result = append(result, parseDigInFields(param)...)
			continue
		}
		result = append(result, GraphToken{typ: param, Type: param.String()})
	}
	return result
}

func isDigInStruct(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	digIn := reflect.TypeOf(dig.In{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == digIn {
			return true
		}
	}
	return false
}

func parseDigInFields(t reflect.Type) []GraphToken {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	result := []GraphToken{}
	digIn := reflect.TypeOf(dig.In{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == digIn {
			continue
		}
		if field.PkgPath != "" {
			continue
		}
		result = append(result, GraphToken{
			typ:      field.Type,
			Type:     field.Type.String(),
			Name:     field.Tag.Get("name"),
			Optional: field.Tag.Get("optional") == "true",
		})
	}
	return result
}
