package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
)

// Registry maps jurisdiction IDs to adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding adapters. It panics on duplicate
// IDs, which are programming errors.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds an adapter under its ID.
func (r *Registry) Register(a Adapter) error {
	id := strings.ToLower(a.ID())
	if _, ok := r.adapters[id]; ok {
		return fmt.Errorf("adapter %q already registered", id)
	}
	r.adapters[id] = a
	return nil
}

// Lookup returns the adapter for a jurisdiction. Unknown IDs are a
// configuration problem and come back as *core.ConfigError.
func (r *Registry) Lookup(id string) (Adapter, error) {
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, &core.ConfigError{Jurisdiction: id, Msg: fmt.Sprintf("unknown jurisdiction (known: %s)", strings.Join(r.IDs(), ", "))}
	}
	return a, nil
}

// IDs returns the registered jurisdiction IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
