package container

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/km-arc/simsim/framework/bean"
)

// Registry stores bean definitions by name, with a type index for type-based
// lookup. It is safe for concurrent use; lookups only take a read lock.
type Registry struct {
	mu sync.RWMutex

	// name -> definition
	definitions map[string]*bean.Definition

	// registration order of names
	order []string

	// type -> names, in registration order
	byType map[reflect.Type][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]*bean.Definition),
		byType:      make(map[reflect.Type][]string),
	}
}

// Register stores def under def.Name(). A definition already registered under
// that name is replaced (last write wins) and replaced reports it; the name
// keeps its original position in iteration order. The registry itself never
// refuses a replacement; Container.Register additionally rejects names whose
// singleton is already live.
func (r *Registry) Register(def *bean.Definition) (replaced bool, err error) {
	if def == nil {
		return false, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}

	name := def.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.definitions[name]; ok {
		replaced = true
		for _, t := range old.Types() {
			r.unindex(t, name)
		}
	} else {
		r.order = append(r.order, name)
	}

	r.definitions[name] = def
	for _, t := range def.Types() {
		if !slices.Contains(r.byType[t], name) {
			r.byType[t] = append(r.byType[t], name)
		}
	}
	return replaced, nil
}

// unindex removes name from the bucket of t (must hold mu.Lock).
func (r *Registry) unindex(t reflect.Type, name string) {
	names := slices.DeleteFunc(r.byType[t], func(n string) bool { return n == name })
	if len(names) == 0 {
		delete(r.byType, t)
		return
	}
	r.byType[t] = names
}

// Definition returns the definition registered under name.
func (r *Registry) Definition(name string) (*bean.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefinitionNotFound, name)
	}
	return def, nil
}

// DefinitionOf returns the only definition indexed under t. Zero candidates
// fail with ErrNoBeanOfType, several with ErrAmbiguousType.
func (r *Registry) DefinitionOf(t reflect.Type) (*bean.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.byType[t]
	switch len(names) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoBeanOfType, t)
	case 1:
		return r.definitions[names[0]], nil
	default:
		return nil, fmt.Errorf("%w: %s matches %v", ErrAmbiguousType, t, names)
	}
}

// NamesOf returns every bean name indexed under t, in registration order.
func (r *Registry) NamesOf(t reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byType[t])
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []*bean.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*bean.Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.definitions[name])
	}
	return out
}

// Has reports whether a definition is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[name]
	return ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.definitions)
}
