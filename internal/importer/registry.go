package importer

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]KindDefinition)
	registryMu sync.RWMutex
)

// Register adds an import kind to the registry.
// Panics if a kind with the same key is already registered.
func Register(def KindDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("import kind already registered: %s", def.Info.Key))
	}
	registry[def.Info.Key] = def
}

// Get returns an import kind by key.
func Get(key string) (KindDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every registered kind, sorted by key.
func All() []KindDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]KindDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})
	return result
}

func init() {
	Register(attendanceKind())
	Register(materialsKind())
}
