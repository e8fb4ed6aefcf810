package providers

import "sort"

// Registry maps provider names to adapters. It is built once at startup and
// read-only afterwards, so lookups need no locking.
type Registry struct {
	adapters map[string]Adapter
	names    []string
}

// NewRegistry creates a registry over the given adapters, keyed by their
// Name(). A later adapter with a duplicate name replaces the earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	for name := range r.adapters {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Get returns the adapter for name, or an UnknownProviderError enumerating
// the known names.
func (r *Registry) Get(name string) (Adapter, error) {
	if a, ok := r.adapters[name]; ok {
		return a, nil
	}
	return nil, &UnknownProviderError{Name: name, Known: r.List()}
}

// List returns the registered names in sorted order. The returned slice is a
// copy; callers may hold on to it.
func (r *Registry) List() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
