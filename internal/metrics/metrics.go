package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	mapBuildsTotal      prometheus.Counter
	layoutRuns          *prometheus.CounterVec
	layoutDuration      prometheus.Histogram
	statusSweepTargets  prometheus.Histogram
	statusSweepDuration prometheus.Histogram
}

// New creates a fresh Metrics registry with HTTP, map-build and poller
// metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hawkmon",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by console-go",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hawkmon",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by console-go",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	mapBuildsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hawkmon",
		Name:      "map_builds_total",
		Help:      "Total number of map graphs built",
	})

	layoutRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hawkmon",
		Name:      "layout_runs_total",
		Help:      "Layout tool invocations by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	layoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hawkmon",
		Name:      "layout_duration_seconds",
		Help:      "Duration of external layout tool runs",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	statusSweepTargets := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hawkmon",
		Name:      "status_sweep_targets",
		Help:      "Devices probed per status sweep",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	statusSweepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hawkmon",
		Name:      "status_sweep_duration_seconds",
		Help:      "Duration of status sweeps from start to finish",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		mapBuildsTotal,
		layoutRuns,
		layoutDuration,
		statusSweepTargets,
		statusSweepDuration,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		mapBuildsTotal:      mapBuildsTotal,
		layoutRuns:          layoutRuns,
		layoutDuration:      layoutDuration,
		statusSweepTargets:  statusSweepTargets,
		statusSweepDuration: statusSweepDuration,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// IncMapBuild increments the map build counter.
func (m *Metrics) IncMapBuild() {
	if m == nil {
		return
	}
	m.mapBuildsTotal.Inc()
}

// ObserveLayoutRun records one layout invocation.
func (m *Metrics) ObserveLayoutRun(algorithm, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.layoutRuns.With(prometheus.Labels{"algorithm": algorithm, "outcome": outcome}).Inc()
	m.layoutDuration.Observe(duration.Seconds())
}

// ObserveStatusSweep records one completed status sweep.
func (m *Metrics) ObserveStatusSweep(targets int, duration time.Duration) {
	if m == nil {
		return
	}
	m.statusSweepTargets.Observe(float64(targets))
	m.statusSweepDuration.Observe(duration.Seconds())
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
