package dilab

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

type depEntry struct {
	dep    Dependency
	idx    int
	module string
}

type slotKey struct {
	t    reflect.Type
	name string
}

type entryKey struct {
	module string
	idx    int
}

type resolvedScope struct {
	providers []depEntry
	slots     map[slotKey]depEntry
	// byType holds the component chosen for each unnamed slot that no plain
	// provider fills.
	byType map[slotKey]depEntry
}

type slotState struct {
	provide    depEntry
	hasProvide bool
	replace    depEntry
	hasReplace bool
}

func resolveEntries(entries []depEntry) (resolvedScope, error) {
	states := map[slotKey]*slotState{}
	candidates := map[slotKey][]depEntry{}

	for i := range entries {
		entry := entries[i]
		if err := classifyEntry(entry, states, candidates); err != nil {
			return resolvedScope{}, err
		}
	}

	result, selected := buildResolvedScope(states)
	for _, entry := range entries {
		if selected[entryKeyFor(entry)] {
			result.providers = append(result.providers, entry)
		}
	}

	byType, err := selectCandidates(candidates, result.slots)
	if err != nil {
		return resolvedScope{}, err
	}
	result.byType = byType

	return result, nil
}

func classifyEntry(entry depEntry, states map[slotKey]*slotState, candidates map[slotKey][]depEntry) error {
	dep := entry.dep
	if dep.Error() != nil {
		return fmt.Errorf("dependency error: %w", dep.Error())
	}
	if dep.primary && !dep.component {
		return errors.New("invalid dependency options: Primary can only be used with Component")
	}

	slots, err := dependencySlots(dep)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return errors.New("dependency has no output types")
	}

	for _, slot := range slots {
		state := states[slot]
		if state == nil {
			state = &slotState{}
			states[slot] = state
		}
		if err := applyToState(state, slot, entry); err != nil {
			return err
		}
	}

	if dep.component {
		for _, t := range dep.ExposedTypes() {
			key := slotKey{t: t}
			candidates[key] = append(candidates[key], entry)
		}
	}

	return nil
}

func applyToState(state *slotState, slot slotKey, entry depEntry) error {
	switch entry.dep.kind {
	case dependencyKindProvide:
		if state.hasProvide {
			return fmt.Errorf("duplicate provider for slot %s", slotLabel(slot))
		}
		state.provide = entry
		state.hasProvide = true
	case dependencyKindReplace:
		if state.hasReplace {
			return fmt.Errorf("duplicate replace for slot %s", slotLabel(slot))
		}
		state.replace = entry
		state.hasReplace = true
	default:
		return errors.New("unsupported dependency kind for slot resolution")
	}

	return nil
}

func buildResolvedScope(states map[slotKey]*slotState) (resolvedScope, map[entryKey]bool) {
	result := resolvedScope{
		slots: map[slotKey]depEntry{},
	}
	selected := map[entryKey]bool{}

	for slot, state := range states {
		var chosen depEntry
		hasChosen := false
		if state.hasReplace {
			chosen = state.replace
			hasChosen = true
		} else if state.hasProvide {
			chosen = state.provide
			hasChosen = true
		}

		if hasChosen {
			selected[entryKeyFor(chosen)] = true
			result.slots[slot] = chosen
		}
	}

	return result, selected
}

// selectCandidates picks the component injected for every unnamed slot that
// components compete for. A plain provider for the slot always wins.
func selectCandidates(candidates map[slotKey][]depEntry, slots map[slotKey]depEntry) (map[slotKey]depEntry, error) {
	keys := make([]slotKey, 0, len(candidates))
	for slot := range candidates {
		keys = append(keys, slot)
	}
	sort.Slice(keys, func(i, j int) bool { return slotLabel(keys[i]) < slotLabel(keys[j]) })

	result := map[slotKey]depEntry{}
	for _, slot := range keys {
		if _, explicit := slots[slot]; explicit {
			continue
		}
		winner, err := pickCandidate(slot, candidates[slot])
		if err != nil {
			return nil, err
		}
		result[slot] = winner
	}

	return result, nil
}

func pickCandidate(slot slotKey, entries []depEntry) (depEntry, error) {
	if len(entries) == 1 {
		return entries[0], nil
	}

	primaries := make([]depEntry, 0, 1)
	for _, entry := range entries {
		if entry.dep.primary {
			primaries = append(primaries, entry)
		}
	}

	switch len(primaries) {
	case 1:
		return primaries[0], nil
	case 0:
		return depEntry{}, &AmbiguousCandidatesError{Slot: slotLabel(slot), Candidates: candidateNames(entries)}
	default:
		return depEntry{}, &MultiplePrimaryError{Slot: slotLabel(slot), Primaries: candidateNames(primaries)}
	}
}

func candidateNames(entries []depEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.dep.Name())
	}
	sort.Strings(names)
	return names
}

func dependencySlots(dep Dependency) ([]slotKey, error) {
	if dep.Error() != nil {
		return nil, dep.Error()
	}

	name := derefString(dep.name)

	types := dep.ExposedTypes()
	if len(types) == 0 {
		return nil, nil
	}

	slots := make([]slotKey, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		slots = append(slots, slotKey{t: t, name: name})
	}

	return dedupeSlots(slots), nil
}

func dedupeSlots(slots []slotKey) []slotKey {
	if len(slots) == 0 {
		return slots
	}

	seen := map[slotKey]struct{}{}
	result := make([]slotKey, 0, len(slots))
	for _, slot := range slots {
		if slot.t == nil {
			continue
		}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		result = append(result, slot)
	}
	return result
}

func slotLabel(slot slotKey) string {
	if slot.name != "" {
		return fmt.Sprintf("%s[name=%s]", slot.t, slot.name)
	}
	return slot.t.String()
}

func sameEntry(a, b depEntry) bool {
	return a.module == b.module && a.idx == b.idx
}

func entryKeyFor(entry depEntry) entryKey {
	return entryKey{module: entry.module, idx: entry.idx}
}
