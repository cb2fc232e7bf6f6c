package metrics

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry encapsulates the Prometheus instrumentation for the scheduler
// service: HTTP request metrics carried from the teacher, plus the
// solve-pipeline metrics this domain needs.
type Registry struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	solveSeconds   prometheus.Histogram
	solverStatuses *prometheus.CounterVec
}

// New registers the Prometheus collectors.
func New() *Registry {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bwm_ilp_solve_seconds",
		Help:    "Wall-clock duration of the MILP solve step",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	solverStatuses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bwm_ilp_solver_status_total",
		Help: "Count of solve runs by solver status",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveSeconds, solverStatuses, goroutines)

	return &Registry{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveSeconds:    solveSeconds,
		solverStatuses:  solverStatuses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveHTTPRequest records request metrics.
func (r *Registry) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	r.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	r.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSolve records one MILP solve run.
func (r *Registry) ObserveSolve(duration time.Duration, solverStatus string) {
	if r == nil {
		return
	}
	r.solveSeconds.Observe(duration.Seconds())
	r.solverStatuses.WithLabelValues(solverStatus).Inc()
}
