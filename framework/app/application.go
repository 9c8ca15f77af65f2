// Package app is the composition root: it turns configuration and providers
// into a running container.
//
//	application, err := app.New(config.Load(),
//	    app.WithProviders(&AppServiceProvider{}),
//	)
//	if err != nil { ... }
//	defer application.Close()
//
//	svc, err := app.Get[*OrderService](application)
package app

import (
	"fmt"
	"io"
	"net/http"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/actuator"
	"github.com/km-arc/simsim/framework/config"
	"github.com/km-arc/simsim/framework/container"
	"github.com/km-arc/simsim/framework/logging"
	"github.com/km-arc/simsim/framework/manifest"
	"github.com/km-arc/simsim/framework/metrics"
	"github.com/km-arc/simsim/framework/providers"
)

// Application is the application context. Application code only looks beans
// up; definitions are supplied by providers.
type Application struct {
	container *container.Container
	providers *container.ProviderRegistry

	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Observer
}

type options struct {
	providers []container.ServiceProvider
	catalog   manifest.Catalog
	logger    *zap.Logger
	logOutput io.Writer
}

// Option configures New.
type Option func(*options)

// WithProviders adds service providers, registered in order after the
// framework beans.
func WithProviders(p ...container.ServiceProvider) Option {
	return func(o *options) { o.providers = append(o.providers, p...) }
}

// WithCatalog sets the components a bean manifest may reference.
func WithCatalog(catalog manifest.Catalog) Option {
	return func(o *options) { o.catalog = catalog }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLogOutput redirects the configured logger, which writes to stdout by
// default.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// New builds the context:
//
//  1. register the framework beans ("config", "logger", "metrics")
//  2. register every provider, then the CONTAINER_MANIFEST file if set
//  3. create every non-lazy singleton when CONTAINER_EAGER_INIT is true
//  4. boot the providers
//
// On failure the partially built container is closed before returning.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.New(cfg, o.logOutput)
	}
	obs := metrics.New()

	c := container.New(
		container.WithLogger(logger),
		container.WithObserver(obs),
	)
	a := &Application{
		container: c,
		providers: container.NewProviderRegistry(c),
		config:    cfg,
		logger:    logger,
		metrics:   obs,
	}

	all := make([]container.ServiceProvider, 0, len(o.providers)+2)
	all = append(all, &providers.FrameworkServiceProvider{Config: cfg, Logger: logger, Metrics: obs})
	all = append(all, o.providers...)
	if cfg.Container.Manifest != "" {
		all = append(all, manifest.NewProvider(cfg.Container.Manifest, o.catalog, logger))
	}

	for _, p := range all {
		if err := a.providers.Register(p); err != nil {
			return nil, a.abort(err)
		}
	}

	if cfg.Container.EagerInit {
		if err := c.Instantiate(); err != nil {
			return nil, a.abort(fmt.Errorf("eager initialization: %w", err))
		}
	}

	if err := a.providers.Boot(); err != nil {
		return nil, a.abort(err)
	}

	logger.Info("application context started",
		zap.Int("beans", c.Registry().Len()),
		zap.Bool("eager", cfg.Container.EagerInit),
	)
	return a, nil
}

func (a *Application) abort(err error) error {
	a.logger.Error("application context failed to start", zap.Error(err))
	_ = a.container.Close()
	return err
}

// Bean returns the bean registered under name.
func (a *Application) Bean(name string) (any, error) { return a.container.Bean(name) }

// BeanOf returns the only bean indexed under t.
func (a *Application) BeanOf(t reflect.Type) (any, error) { return a.container.BeanOf(t) }

// Get resolves the only bean of type T.
func Get[T any](a *Application) (T, error) { return container.Get[T](a.container) }

// Container returns the underlying container.
func (a *Application) Container() *container.Container { return a.container }

func (a *Application) Config() *config.Config     { return a.config }
func (a *Application) Logger() *zap.Logger        { return a.logger }
func (a *Application) Metrics() *metrics.Observer { return a.metrics }

// Handler returns the actuator routes (health, beans, metrics) of this context.
func (a *Application) Handler() http.Handler {
	return actuator.New(a.container, actuator.WithMetrics(a.metrics.Handler())).Handler(a.logger)
}

// Close destroys every singleton. A second call returns
// container.ErrContainerClosed.
func (a *Application) Close() error {
	if err := a.container.Close(); err != nil {
		return err
	}
	_ = a.logger.Sync()
	return nil
}
