package container

import (
	"github.com/km-arc/simsim/framework/bean"
)

// BeanInfo is a read-only description of a registered bean.
type BeanInfo struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Scope        string   `json:"scope"`
	Lazy         bool     `json:"lazy"`
	Exposes      []string `json:"exposes,omitempty"`
	Dependencies []string `json:"dependencies"`
	Instantiated bool     `json:"instantiated"`
}

// Inspect describes the bean registered under name without creating it.
// Dependencies are listed by bean name when they resolve and by type otherwise.
func (c *Container) Inspect(name string) (BeanInfo, error) {
	def, err := c.registry.Definition(name)
	if err != nil {
		return BeanInfo{}, err
	}
	return c.describe(def), nil
}

// Beans describes every registered bean in registration order.
func (c *Container) Beans() []BeanInfo {
	defs := c.registry.Definitions()
	out := make([]BeanInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, c.describe(def))
	}
	return out
}

func (c *Container) describe(def *bean.Definition) BeanInfo {
	info := BeanInfo{
		Name:         def.Name(),
		Type:         def.Type().String(),
		Scope:        def.Scope().String(),
		Lazy:         def.Lazy(),
		Dependencies: []string{},
	}

	types := def.Types()
	for _, t := range types[1:] {
		info.Exposes = append(info.Exposes, t.String())
	}

	for _, d := range def.Dependencies() {
		if target, ok := c.target(def.Name(), d); ok {
			info.Dependencies = append(info.Dependencies, target)
			continue
		}
		info.Dependencies = append(info.Dependencies, d.Type.String())
	}

	c.mu.RLock()
	_, info.Instantiated = c.singletons[def.Name()]
	c.mu.RUnlock()

	return info
}
