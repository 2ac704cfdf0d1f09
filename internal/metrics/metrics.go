package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storydash/internal/dataprocessing"
)

const namespace = "storydash"

// Run outcomes used as the status label
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Registry holds the dashboard collectors on a private prometheus registry.
// It implements dataprocessing.Recorder.
type Registry struct {
	reg *prometheus.Registry

	PipelineRows     *prometheus.CounterVec
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration *prometheus.HistogramVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

var _ dataprocessing.Recorder = (*Registry)(nil)

// NewRegistry creates the collectors and registers them together with the Go
// runtime and process collectors
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_rows_total",
		Help:      "Rows seen per chart and pipeline stage.",
	}, []string{"chart", "stage"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Chart computations by outcome.",
	}, []string{"chart", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Time spent computing one chart.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chart"})

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.MustRegister(
		rows, runs, duration, httpRequests, httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:              r,
		PipelineRows:     rows,
		PipelineRuns:     runs,
		PipelineDuration: duration,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
	}
}

// RecordRows adds rows to the counter of the chart's stage
func (r *Registry) RecordRows(chart dataprocessing.ChartID, stage string, rows int) {
	r.PipelineRows.WithLabelValues(string(chart), stage).Add(float64(rows))
}

// RecordRun counts one chart computation and observes its duration
func (r *Registry) RecordRun(chart dataprocessing.ChartID, err error, elapsed time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	r.PipelineRuns.WithLabelValues(string(chart), status).Inc()
	r.PipelineDuration.WithLabelValues(string(chart)).Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
