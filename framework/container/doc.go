// Package container provides the bean container: a registry of bean
// definitions plus the machinery that builds, wires and tears down their
// instances.
//
// # Container Lifecycle
//
//  1. Create: c := container.New(container.WithLogger(logger))
//  2. Register definitions, directly or through providers
//  3. Optionally create every non-lazy singleton: c.Instantiate()
//  4. Look beans up by name or type
//  5. Close: pre-destroy hooks run in reverse creation order
//
// # Registering
//
//	c.Register(bean.MustNew[*OrderRepository](bean.As[Repository]()))
//	c.Register(bean.MustNew[*OrderService](
//	    bean.WithAutowiredConstructor(NewOrderService),
//	))
//
// # Resolving
//
//	raw, err := c.Bean("orderService")
//	svc, err := container.Get[*OrderService](c)
//	repo, err := container.GetNamed[Repository](c, "orderRepository")
//
// A type lookup needs exactly one candidate: none fails with ErrNoBeanOfType,
// several with ErrAmbiguousType. Field qualifiers (`autowired:"name"`) and
// contextual bindings pick a candidate by name instead.
//
// # Contextual Binding
//
//	c.When("reportService").
//	    Needs(bean.TypeOf[Repository]()).
//	    Give("archiveRepository")
//
// # Cycles
//
// Each top-level lookup first walks the static dependency graph and fails
// with ErrCyclicDependency on a cycle, reporting the chain ("a -> b -> a").
// Nested lookups also track the beans in creation along their path.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.Register(bean.MustNew[*Mailer]())
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//
// Register of a deferred provider runs on the first lookup of one of its
// names.
package container
