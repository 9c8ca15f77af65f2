package container

import (
	"github.com/km-arc/simsim/framework/bean"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// validateGraph walks the static dependency graph reachable from name and
// fails on the first cycle. It runs before any creation lock is taken, so two
// goroutines entering a cycle from opposite ends fail instead of waiting on
// each other. Edges that cannot be resolved are skipped here; they fail
// during creation with a precise error.
func (c *Container) validateGraph(name string) error {
	c.mu.RLock()
	_, ok := c.acyclic[name]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return nil
	}

	states := make(map[string]visitState)
	if err := c.visit(name, states, nil); err != nil {
		return err
	}
	c.markAcyclic(gen, states)
	return nil
}

// markAcyclic caches the names a walk finished, unless the graph changed
// since generation gen was read.
func (c *Container) markAcyclic(gen uint64, states map[string]visitState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return
	}
	for n, s := range states {
		if s == visited {
			c.acyclic[n] = struct{}{}
		}
	}
}

// visit performs the DFS; stack holds the names on the current branch.
func (c *Container) visit(name string, states map[string]visitState, stack []string) error {
	switch states[name] {
	case visiting:
		return cycleError(stack, name)
	case visited:
		return nil
	}

	def, err := c.registry.Definition(name)
	if err != nil {
		states[name] = visited
		return nil
	}

	states[name] = visiting
	stack = append(stack, name)

	for _, d := range def.Dependencies() {
		target, ok := c.target(name, d)
		if !ok {
			continue
		}
		if err := c.visit(target, states, stack); err != nil {
			return err
		}
	}

	states[name] = visited
	return nil
}

// target returns the bean name an edge of owner resolves to, mirroring the
// lookup order of dependency.
func (c *Container) target(owner string, d bean.Dependency) (string, bool) {
	if d.Qualifier != "" {
		return d.Qualifier, true
	}
	if name, ok := c.contextualFor(owner, d.Type); ok {
		return name, true
	}
	def, err := c.registry.DefinitionOf(d.Type)
	if err != nil {
		return "", false
	}
	return def.Name(), true
}
