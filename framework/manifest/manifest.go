// Package manifest declares beans in a YAML document. The document only picks
// and configures components; the components themselves are Go code listed in
// a Catalog.
//
//	beans:
//	  - component: orders.repository
//	    name: orderRepository
//	  - component: orders.report
//	    scope: prototype
//	    lazy: true
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/simsim/framework/bean"
)

var (
	// ErrUnknownComponent is returned for an entry naming no catalog component.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidManifest is returned for documents that do not decode or
	// contain incomplete entries.
	ErrInvalidManifest = errors.New("invalid bean manifest")
)

// Manifest is a decoded bean manifest.
type Manifest struct {
	Beans []Entry `yaml:"beans"`
}

// Entry selects one catalog component and overrides its name, scope or
// laziness. Empty fields keep the component's own settings.
type Entry struct {
	Name      string `yaml:"name"`
	Component string `yaml:"component"`
	Scope     string `yaml:"scope"`
	Lazy      bool   `yaml:"lazy"`
}

// Component builds the definition of one catalog entry; opts carry the
// manifest overrides and are applied after the component's own options.
type Component func(opts ...bean.Option) (*bean.Definition, error)

// Catalog maps component keys, as used in manifests, to components.
type Catalog map[string]Component

// Of returns a Component for type T configured with base.
//
//	manifest.Catalog{
//	    "orders.service": manifest.Of[*OrderService](bean.WithAutowiredConstructor(NewOrderService)),
//	}
func Of[T any](base ...bean.Option) Component {
	return func(opts ...bean.Option) (*bean.Definition, error) {
		all := make([]bean.Option, 0, len(base)+len(opts))
		all = append(all, base...)
		all = append(all, opts...)
		return bean.New[T](all...)
	}
}

// Parse decodes a manifest. Unknown fields are rejected; an empty document is
// an empty manifest.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	for i, e := range m.Beans {
		if strings.TrimSpace(e.Component) == "" {
			return nil, fmt.Errorf("%w: beans[%d]: component is required", ErrInvalidManifest, i)
		}
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bean manifest: %w", err)
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Definitions builds the definitions of every entry, in document order.
func (m *Manifest) Definitions(catalog Catalog) ([]*bean.Definition, error) {
	defs := make([]*bean.Definition, 0, len(m.Beans))
	for i, e := range m.Beans {
		component, ok := catalog[e.Component]
		if !ok {
			return nil, fmt.Errorf("beans[%d]: %w: %q", i, ErrUnknownComponent, e.Component)
		}

		var opts []bean.Option
		if e.Name != "" {
			opts = append(opts, bean.WithName(e.Name))
		}
		if e.Scope != "" {
			opts = append(opts, bean.WithScope(e.Scope))
		}
		if e.Lazy {
			opts = append(opts, bean.WithLazy())
		}

		def, err := component(opts...)
		if err != nil {
			return nil, fmt.Errorf("beans[%d] (%s): %w", i, e.Component, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
