package container

import "reflect"

// ContextualBuilder implements the fluent contextual binding API: when a given
// bean needs a given type, inject a specific named bean instead of performing
// a type lookup.
//
//	c.When("orderService").Needs(bean.TypeOf[Repository]()).Give("postgresRepository")
//
// Contextual bindings apply to constructor parameters and to autowired fields
// without a qualifier. Type lookups elsewhere keep failing with
// ErrAmbiguousType when several beans share a type.
type ContextualBuilder struct {
	container *Container
	bean      string
	needs     reflect.Type
}

// When starts a contextual binding chain for the named bean.
func (c *Container) When(beanName string) *ContextualBuilder {
	return &ContextualBuilder{container: c, bean: beanName}
}

// Needs specifies which dependency type the bean asks for.
func (b *ContextualBuilder) Needs(t reflect.Type) *ContextualBuilder {
	b.needs = t
	return b
}

// Give names the bean injected for that dependency.
func (b *ContextualBuilder) Give(name string) {
	if b.needs == nil {
		return
	}

	c := b.container
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.contextual[b.bean]; !ok {
		c.contextual[b.bean] = make(map[reflect.Type]string)
	}
	c.contextual[b.bean][b.needs] = name
	c.graphChanged()
}

// contextualFor returns the bean name bound for (owner, t), if any.
func (c *Container) contextualFor(owner string, t reflect.Type) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, ok := c.contextual[owner]; ok {
		if name, ok := m[t]; ok {
			return name, true
		}
	}
	return "", false
}
