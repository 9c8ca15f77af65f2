// Package actuator exposes a read-only HTTP view of a running container:
//
//	GET /health         200 {"data":{"status":"up"}}, 503 once closed
//	GET /beans          every registered bean
//	GET /beans/{name}   one bean, 404 for unknown names
//	GET /metrics        Prometheus exposition, when configured
//
// No route ever creates a bean.
package actuator

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/container"
	gohttp "github.com/km-arc/simsim/framework/http"
	"github.com/km-arc/simsim/framework/routing"
)

// Source is the container view the actuator reads from.
type Source interface {
	Beans() []container.BeanInfo
	Inspect(name string) (container.BeanInfo, error)
	Closed() bool
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
	Beans  int    `json:"beans"`
}

// Actuator serves the introspection routes.
type Actuator struct {
	src     Source
	metrics http.Handler
}

// Option configures an Actuator.
type Option func(*Actuator)

// WithMetrics serves h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(a *Actuator) { a.metrics = h }
}

// New creates an Actuator over src.
func New(src Source, opts ...Option) *Actuator {
	a := &Actuator{src: src}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mount registers the routes on r.
func (a *Actuator) Mount(r *routing.Router) {
	r.Group(func(r *routing.Router) {
		r.Middleware(middleware.NoCache)
		r.Get("/health", a.health)
		r.Get("/beans", a.beans)
		r.Get("/beans/{name}", a.bean)
	})
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics)
	}
}

// Handler returns a router serving only the actuator routes.
func (a *Actuator) Handler(logger *zap.Logger) http.Handler {
	r := routing.New(logger)
	a.Mount(r)
	return r
}

func (a *Actuator) health(w http.ResponseWriter, _ *http.Request) {
	res := gohttp.NewResponse(w)
	if a.src.Closed() {
		res.Data(http.StatusServiceUnavailable, Health{Status: "down"})
		return
	}
	res.Success(Health{Status: "up", Beans: len(a.src.Beans())})
}

func (a *Actuator) beans(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(a.src.Beans())
}

func (a *Actuator) bean(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	info, err := a.src.Inspect(routing.Param(r, "name"))
	switch {
	case errors.Is(err, container.ErrDefinitionNotFound):
		res.NotFound(err.Error())
	case err != nil:
		res.ServerError(err.Error())
	default:
		res.Success(info)
	}
}
