package container

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/bean"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container owns the definition registry and the singleton cache. It builds
// beans on demand, wires their dependencies, runs their lifecycle hooks and
// destroys singletons on Close.
//
// Creation runs in a fixed order: constructor arguments are resolved by type,
// the constructor is invoked, autowired fields are injected and finally the
// post-construct hooks run. A failure at any step leaves the cache untouched,
// so a later lookup starts over.
//
// Singleton creation is serialized per name: concurrent first lookups of the
// same bean wait for a single creation and all observe the same instance,
// while creations of different beans never block each other.
type Container struct {
	registry *Registry

	mu sync.RWMutex

	// name → live singleton
	singletons map[string]*singleton

	// singleton names in creation order, for shutdown
	created []string

	// names whose reachable graph is known to be acyclic
	acyclic map[string]struct{}

	// bumped whenever the graph changes; guards acyclic against stale walks
	generation uint64

	// contextual: when[bean][type] = name
	contextual map[string]map[reflect.Type]string

	// name → loader of a deferred provider
	deferred map[string]*deferredLoader

	closed bool

	// name → *sync.Mutex serializing singleton creation
	locks sync.Map

	// goroutine id → *resolution in flight
	active sync.Map

	logger         *zap.Logger
	observer       Observer
	onDestroyError func(name string, err error)
}

type singleton struct {
	def      *bean.Definition
	instance any
}

type deferredLoader struct {
	once sync.Once
	load func() error
	err  error
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for lifecycle events. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver receives creation and destruction events, e.g. for metrics.
func WithObserver(o Observer) Option {
	return func(c *Container) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithDestroyErrorHandler is called for every failed pre-destroy hook, in
// addition to the error log entry.
func WithDestroyErrorHandler(fn func(name string, err error)) Option {
	return func(c *Container) { c.onDestroyError = fn }
}

// WithRegistry makes the container use an existing registry.
func WithRegistry(r *Registry) Option {
	return func(c *Container) {
		if r != nil {
			c.registry = r
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry:   NewRegistry(),
		singletons: make(map[string]*singleton),
		acyclic:    make(map[string]struct{}),
		contextual: make(map[string]map[reflect.Type]string),
		deferred:   make(map[string]*deferredLoader),
		logger:     zap.NewNop(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds def to the registry. Registering a name twice replaces the
// earlier definition (last write wins, logged at warn level) with one
// exception: once the singleton of that name has been created the definition
// is frozen and Register fails with ErrDefinitionInUse.
func (c *Container) Register(def *bean.Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	name := def.Name()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrContainerClosed
	}
	if _, live := c.singletons[name]; live {
		return fmt.Errorf("%w: %q is already instantiated", ErrDefinitionInUse, name)
	}

	replaced, err := c.registry.Register(def)
	if err != nil {
		return err
	}
	c.graphChanged()

	if replaced {
		c.logger.Warn("bean definition replaced",
			zap.String("bean", name),
			zap.Stringer("type", def.Type()),
			zap.Stringer("scope", def.Scope()),
		)
		return nil
	}
	c.logger.Debug("bean definition registered",
		zap.String("bean", name),
		zap.Stringer("type", def.Type()),
		zap.Stringer("scope", def.Scope()),
	)
	return nil
}

// Registry returns the definition registry.
func (c *Container) Registry() *Registry { return c.registry }

// Definitions returns all registered definitions in registration order.
func (c *Container) Definitions() []*bean.Definition { return c.registry.Definitions() }

// Has reports whether a definition is registered under name.
func (c *Container) Has(name string) bool { return c.registry.Has(name) }

// ── Resolution ────────────────────────────────────────────────────────────────

// Bean returns the bean registered under name, creating it if needed.
func (c *Container) Bean(name string) (any, error) {
	res, done := c.begin()
	defer done()
	return c.bean(res, name)
}

// BeanOf returns the only bean indexed under t, creating it if needed.
func (c *Container) BeanOf(t reflect.Type) (any, error) {
	res, done := c.begin()
	defer done()
	return c.beanOf(res, t)
}

// Instantiate eagerly creates every non-lazy singleton in registration order,
// stopping at the first failure.
func (c *Container) Instantiate() error {
	for _, def := range c.registry.Definitions() {
		if !def.IsSingleton() || def.Lazy() {
			continue
		}
		if _, err := c.Bean(def.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) beanOf(res *resolution, t reflect.Type) (any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	def, err := c.registry.DefinitionOf(t)
	if err != nil {
		return nil, err
	}
	return c.bean(res, def.Name())
}

func (c *Container) bean(res *resolution, name string) (any, error) {
	if inst, ok, err := c.cached(name); err != nil || ok {
		return inst, err
	}

	def, err := c.registry.Definition(name)
	if err != nil {
		loaded, lerr := c.loadDeferred(name)
		if lerr != nil {
			return nil, fmt.Errorf("load deferred provider of %q: %w", name, lerr)
		}
		if !loaded {
			return nil, err
		}
		if def, err = c.registry.Definition(name); err != nil {
			return nil, err
		}
	}

	if res.fresh {
		res.fresh = false
		if err := c.validateGraph(name); err != nil {
			return nil, err
		}
	}

	if err := res.enter(name); err != nil {
		return nil, err
	}
	defer res.leave()

	if def.IsPrototype() {
		return c.create(res, def)
	}
	return c.singleton(res, def)
}

// singleton creates and publishes def's instance at most once.
func (c *Container) singleton(res *resolution, def *bean.Definition) (any, error) {
	name := def.Name()

	lock := c.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	// Another caller may have finished while we waited.
	if inst, ok, err := c.cached(name); err != nil || ok {
		return inst, err
	}

	inst, err := c.create(res, def)
	if err != nil {
		return nil, err
	}
	if err := c.publish(def, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// cached returns a live singleton. It fails once the container is closed.
func (c *Container) cached(name string) (any, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, false, ErrContainerClosed
	}
	if s, ok := c.singletons[name]; ok {
		return s.instance, true, nil
	}
	return nil, false, nil
}

// publish stores a freshly created singleton. If the container was closed
// during creation the instance is destroyed right away.
func (c *Container) publish(def *bean.Definition, instance any) error {
	s := &singleton{def: def, instance: instance}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.destroy(s)
		return ErrContainerClosed
	}
	c.singletons[def.Name()] = s
	c.created = append(c.created, def.Name())
	c.mu.Unlock()
	return nil
}

// deferLoad binds load to names; it runs once, on the first lookup of any of
// them that finds no definition.
func (c *Container) deferLoad(names []string, load func() error) {
	l := &deferredLoader{load: load}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		c.deferred[name] = l
	}
}

func (c *Container) loadDeferred(name string) (bool, error) {
	c.mu.RLock()
	l, ok := c.deferred[name]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	l.once.Do(func() { l.err = l.load() })
	return true, l.err
}

// graphChanged drops cached graph checks (must hold mu.Lock).
func (c *Container) graphChanged() {
	c.generation++
	clear(c.acyclic)
}

func (c *Container) lockFor(name string) *sync.Mutex {
	lock, _ := c.locks.LoadOrStore(name, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (c *Container) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrContainerClosed
	}
	return nil
}

// ── Creation pipeline ─────────────────────────────────────────────────────────

func (c *Container) create(res *resolution, def *bean.Definition) (instance any, err error) {
	name := def.Name()
	start := time.Now()

	defer func() {
		if err != nil {
			c.observer.BeanFailed(name, err)
			c.logger.Debug("bean creation failed",
				zap.String("bean", name),
				zap.String("resolution", res.ID()),
				zap.Error(err),
			)
			return
		}
		elapsed := time.Since(start)
		c.observer.BeanCreated(name, def.Scope(), elapsed)
		c.logger.Debug("bean created",
			zap.String("bean", name),
			zap.Stringer("scope", def.Scope()),
			zap.String("resolution", res.ID()),
			zap.Duration("elapsed", elapsed),
		)
	}()

	ctor := def.Constructor()
	if !ctor.Valid() {
		return nil, &CreationError{Bean: name, Phase: PhaseInstantiate, Err: ErrNoSuitableConstructor}
	}

	args := make([]any, len(ctor.Params))
	for i, param := range ctor.Params {
		dep, err := c.dependency(res, name, bean.Dependency{Type: param})
		if err != nil {
			return nil, &CreationError{Bean: name, Phase: PhaseResolve, Err: err}
		}
		args[i] = dep
	}

	instance, err = instantiate(ctor, args)
	if err != nil {
		return nil, &CreationError{Bean: name, Phase: PhaseInstantiate, Err: err}
	}

	if err := c.injectFields(res, def, instance); err != nil {
		return nil, &CreationError{Bean: name, Phase: PhaseInject, Err: err}
	}

	if err := c.postConstruct(def, instance); err != nil {
		return nil, &CreationError{Bean: name, Phase: PhasePostConstruct, Err: err}
	}

	return instance, nil
}

// dependency resolves one edge of owner: a qualified name first, then a
// contextual binding, then a plain type lookup.
func (c *Container) dependency(res *resolution, owner string, d bean.Dependency) (any, error) {
	if d.Qualifier != "" {
		return c.bean(res, d.Qualifier)
	}
	if name, ok := c.contextualFor(owner, d.Type); ok {
		return c.bean(res, name)
	}
	return c.beanOf(res, d.Type)
}

func instantiate(ctor bean.Constructor, args []any) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance, err = nil, panicError(r)
		}
	}()

	instance, err = ctor.Invoke(args)
	if err != nil {
		return nil, err
	}
	if isNil(instance) {
		return nil, fmt.Errorf("constructor returned nil")
	}
	return instance, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ── Shutdown ──────────────────────────────────────────────────────────────────

// Close runs the pre-destroy hooks of every live singleton, in reverse
// creation order so dependents go before their dependencies. Hook failures
// are logged and reported to the destroy error handler, never returned; every
// remaining hook still runs. Prototype beans are not visited.
//
// Close returns ErrContainerClosed when called more than once. Every other
// operation fails with ErrContainerClosed afterwards.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrContainerClosed
	}
	c.closed = true
	order := c.created
	live := c.singletons
	c.created = nil
	c.singletons = make(map[string]*singleton)
	c.mu.Unlock()

	c.logger.Info("closing container", zap.Int("singletons", len(order)))

	failed := 0
	for i := len(order) - 1; i >= 0; i-- {
		failed += c.destroy(live[order[i]])
	}

	if failed > 0 {
		c.logger.Warn("container closed with pre-destroy failures", zap.Int("failures", failed))
	}
	return nil
}

// Closed reports whether Close has been called.
func (c *Container) Closed() bool {
	return c.checkOpen() != nil
}
