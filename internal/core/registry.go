package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[ElectionID]SourceSpec)
	registryMu sync.RWMutex
)

// Register adds a source spec to the registry.
// Panics if the source is invalid or its election is already registered.
func Register(spec SourceSpec) {
	if err := spec.Validate(); err != nil {
		panic(fmt.Sprintf("invalid source: %v", err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[spec.Election]; exists {
		panic(fmt.Sprintf("election already registered: %d", spec.Election))
	}
	registry[spec.Election] = spec
}

// Get returns the source spec for an election.
// Returns false if not found.
func Get(e ElectionID) (SourceSpec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	spec, ok := registry[e]
	return spec, ok
}

// All returns every registered source spec, ascending by election.
func All() []SourceSpec {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]SourceSpec, 0, len(registry))
	for _, spec := range registry {
		result = append(result, spec)
	}
	sortSpecs(result)
	return result
}

// SourceCount returns the number of registered sources.
func SourceCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered sources.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[ElectionID]SourceSpec)
}

func sortSpecs(specs []SourceSpec) {
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Election < specs[j].Election
	})
}
