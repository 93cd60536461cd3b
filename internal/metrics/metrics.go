package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "kvgate"

// Collector is a prometheus.Collector for the gateway's own request and vault call metrics
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	vaultOperations *prometheus.CounterVec
}

func NewCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of HTTP requests served, by route pattern and status code.",
			}, []string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "The time taken to serve an HTTP request.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			}, []string{"route", "method"},
		),
		vaultOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "vault_operations_total",
				Help:      "The number of calls made to the vault provider, by outcome.",
			}, []string{"operation", "outcome"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
	c.vaultOperations.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
	c.vaultOperations.Collect(ch)
}

func (c *Collector) ObserveRequest(route string, method string, code int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveVaultOperation(operation string, outcome string) {
	c.vaultOperations.WithLabelValues(operation, outcome).Inc()
}

// NewRegistry returns a registry carrying the Go and process collectors alongside c
func NewRegistry(c *Collector) (*prometheus.Registry, error) {
	r := prometheus.NewRegistry()
	if err := r.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("error registering go collector: %w", err)
	}
	if err := r.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("error registering process collector: %w", err)
	}
	if err := r.Register(c); err != nil {
		return nil, fmt.Errorf("error registering kvgate collector: %w", err)
	}
	return r, nil
}

func Handler(r *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}
