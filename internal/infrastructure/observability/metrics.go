package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
)

var _ inventory.Metrics = (*Metrics)(nil)

// Metrics colectores Prometheus de la API. Cada instancia usa su propio registro.
type Metrics struct {
	registry       *prometheus.Registry
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	inventoryOps   *prometheus.CounterVec
}

// NewMetrics registra los colectores (incluye los de proceso y runtime de Go).
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de peticiones HTTP",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de peticiones HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inventoryOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inventory_operations_total",
				Help:      "Operaciones de inventario por resultado (ok, rejected, error)",
			},
			[]string{"operation", "outcome"},
		),
	}
	m.registry.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.inventoryOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveInventoryOperation cuenta una operación de inventario.
func (m *Metrics) ObserveInventoryOperation(operation, outcome string) {
	m.inventoryOps.WithLabelValues(operation, outcome).Inc()
}

// ObserveHTTP registra una petición ya respondida. route es el patrón, no la URL.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry acceso directo al registro (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
