// Package metrics concentra los collectors Prometheus del POS.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cafe_pos"

var (
	// Registry registro propio (no el global) para que los tests no choquen entre sí.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
	}, []string{"method", "route"})

	lowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "inventory",
		Name:      "low_stock_products",
		Help:      "Active products at or below their low-stock threshold (last sweep).",
	})

	jobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "runs_total",
		Help:      "Scheduled job executions.",
	}, []string{"job", "success"})

	ordersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sales",
		Name:      "orders_total",
		Help:      "Orders registered at checkout, by payment method.",
	}, []string{"method"})
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		lowStockProducts,
		jobRuns,
		ordersCreated,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler expone el registro en formato Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted incrementa las peticiones en curso; devuelve la función que cierra la medición.
func RequestStarted() func(method, route string, status int) {
	start := time.Now()
	httpInFlight.Inc()
	return func(method, route string, status int) {
		httpInFlight.Dec()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// SetLowStock publica el resultado del último barrido de stock bajo.
func SetLowStock(n int) {
	lowStockProducts.Set(float64(n))
}

// RecordJobRun cuenta una ejecución de tarea programada.
func RecordJobRun(job string, ok bool) {
	jobRuns.WithLabelValues(job, strconv.FormatBool(ok)).Inc()
}

// RecordOrder cuenta una venta registrada.
func RecordOrder(method string) {
	ordersCreated.WithLabelValues(method).Inc()
}
