// Package catalog owns the read-only node type registry: the built-in table
// plus definitions supplied by external providers, merged into one lookup.
package catalog

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a type id has no definition in the registry.
var ErrNotFound = errors.New("node type not found")

// Registry maps a type id to its Definition. The merged table is immutable
// between refreshes; Replace swaps the whole table atomically so concurrent
// lookups never observe a partial update.
type Registry struct {
	static []Definition

	mu    sync.RWMutex
	table map[string]Definition
}

// NewRegistry builds a registry from the static catalog. The static entries
// take precedence over anything merged in later.
func NewRegistry(static []Definition) *Registry {
	r := &Registry{static: static}
	r.Replace(nil)
	return r
}

// NewBuiltinRegistry builds a registry from the embedded built-in catalog.
func NewBuiltinRegistry() (*Registry, error) {
	defs, err := BuiltinDefinitions()
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs), nil
}

// Lookup resolves a type id to its definition.
func (r *Registry) Lookup(typeID string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.table[typeID]
	return def, ok
}

// Get is Lookup with an error for callers that want to propagate one.
func (r *Registry) Get(typeID string) (Definition, error) {
	if def, ok := r.Lookup(typeID); ok {
		return def, nil
	}
	return Definition{}, errors.Wrapf(ErrNotFound, "type %q", typeID)
}

// Definitions returns every definition in the merged table.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.table))
	for _, def := range r.table {
		defs = append(defs, def)
	}
	return defs
}

// Len reports the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// Replace rebuilds the merged table from the static catalog plus the given
// provider definitions. On type id collision the static entry wins. The swap
// is atomic with respect to Lookup.
func (r *Registry) Replace(provided []Definition) {
	table := make(map[string]Definition, len(r.static)+len(provided))
	for _, def := range provided {
		table[def.Type] = def
	}
	for _, def := range r.static {
		table[def.Type] = def
	}

	r.mu.Lock()
	r.table = table
	r.mu.Unlock()
}
