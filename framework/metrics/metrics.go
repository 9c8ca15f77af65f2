// Package metrics exports container lifecycle events as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/container"
)

const namespace = "container"

var _ container.Observer = (*Observer)(nil)

// Observer implements container.Observer on a private Prometheus registry.
type Observer struct {
	registry *prometheus.Registry

	created         *prometheus.CounterVec
	failed          *prometheus.CounterVec
	destroyFailures *prometheus.CounterVec
	creation        *prometheus.HistogramVec
	live            prometheus.Gauge
}

// New creates an Observer with its own registry, so several containers (in
// tests, say) never collide on the default one.
func New() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "beans_created_total",
			Help:      "Beans created, by bean and scope.",
		}, []string{"bean", "scope"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bean_creation_failures_total",
			Help:      "Failed bean creations, by bean.",
		}, []string{"bean"}),
		destroyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bean_destroy_failures_total",
			Help:      "Singletons whose pre-destroy hooks failed, by bean.",
		}, []string{"bean"}),
		creation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bean_creation_seconds",
			Help:      "Time spent creating a bean, dependencies included.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"scope"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "singletons_live",
			Help:      "Singletons created and not yet destroyed.",
		}),
	}
	o.registry.MustRegister(o.created, o.failed, o.destroyFailures, o.creation, o.live)
	return o
}

// Registry returns the registry the metrics are registered on.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func (o *Observer) BeanCreated(name string, scope bean.Scope, elapsed time.Duration) {
	o.created.WithLabelValues(name, scope.String()).Inc()
	o.creation.WithLabelValues(scope.String()).Observe(elapsed.Seconds())
	if scope == bean.Singleton {
		o.live.Inc()
	}
}

func (o *Observer) BeanFailed(name string, _ error) {
	o.failed.WithLabelValues(name).Inc()
}

func (o *Observer) BeanDestroyed(name string, err error) {
	o.live.Dec()
	if err != nil {
		o.destroyFailures.WithLabelValues(name).Inc()
	}
}
