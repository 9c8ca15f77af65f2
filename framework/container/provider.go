package container

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/km-arc/simsim/framework/bean"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the bean definitions of one part of an application.
//
// Register is called when the provider is added and must only register
// definitions. Boot is called after every provider has been registered,
// which makes it safe to look beans up inside Boot.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.Register(bean.MustNew[*OrderService](
//	        bean.WithAutowiredConstructor(NewOrderService),
//	    ))
//	}
//
//	func (p *AppServiceProvider) Boot(c *container.Container) error {
//	    svc, err := container.Get[*OrderService](c)
//	    ...
//	}
type ServiceProvider interface {
	// Register adds bean definitions to the container.
	// Do NOT look beans up here; use Boot for that.
	Register(c *Container) error

	// Boot is called after all providers are registered.
	Boot(c *Container) error

	// Provides returns the bean names this provider registers.
	// Only consulted for deferred providers.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of the
	// Provides names is first looked up.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of Boot,
// Provides and IsDeferred. Embed it and override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(c *container.Container) error { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── Components ────────────────────────────────────────────────────────────────

type componentsProvider struct {
	BaseProvider
	defs []*bean.Definition
}

// Components returns a provider registering defs in order.
//
//	reg.Register(container.Components(
//	    bean.MustNew[*Repo](),
//	    bean.MustNew[*Service](bean.WithAutowiredConstructor(NewService)),
//	))
func Components(defs ...*bean.Definition) ServiceProvider {
	return &componentsProvider{defs: defs}
}

func (p *componentsProvider) Register(c *Container) error {
	for _, def := range p.defs {
		if err := c.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred ones.
type ProviderRegistry struct {
	c *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method, unless it is
// deferred. Adding the same provider value twice is a no-op. A provider added
// after Boot is booted immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if provider == nil {
		return fmt.Errorf("container: nil provider")
	}

	r.mu.Lock()
	// Non-comparable provider values cannot be map keys.
	if reflect.TypeOf(provider).Comparable() {
		if r.registered[provider] {
			r.mu.Unlock()
			return nil
		}
		r.registered[provider] = true
	}
	booted := r.booted
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.c.deferLoad(provider.Provides(), func() error {
			if err := provider.Register(r.c); err != nil {
				return err
			}
			if r.Booted() {
				return provider.Boot(r.c)
			}
			return nil
		})
		return nil
	}

	if err := provider.Register(r.c); err != nil {
		return fmt.Errorf("register provider %T: %w", provider, err)
	}

	r.mu.Lock()
	r.eager = append(r.eager, provider)
	r.mu.Unlock()

	if booted {
		if err := provider.Boot(r.c); err != nil {
			return fmt.Errorf("boot provider %T: %w", provider, err)
		}
	}
	return nil
}

// Boot calls Boot on every eager provider in registration order and stops
// at the first failure. Later calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range providers {
		if err := provider.Boot(r.c); err != nil {
			return fmt.Errorf("boot provider %T: %w", provider, err)
		}
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
