package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logmap"

// Outcome label values for logmap_jobs_completed_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds every logmap collector. It satisfies dispatch.Recorder.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	jobsSubmitted  prometheus.Counter
	jobsCompleted  *prometheus.CounterVec
	queueDepth     prometheus.Gauge
	busyWorkers    prometheus.Gauge
	queueWait      prometheus.Histogram
	batchSeconds   prometheus.Histogram
	batchSeeds     prometheus.Histogram
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// New registers a fresh set of collectors, together with the Go runtime
// collector, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Asynchronous batch jobs accepted by the dispatch pool.",
		}),
		jobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_completed_total",
			Help:      "Asynchronous batch jobs delivered, by outcome.",
		}, []string{"outcome"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Jobs waiting for a dispatch worker.",
		}),
		busyWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "busy_workers",
			Help:      "Dispatch workers currently running a job.",
		}),
		queueWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_wait_seconds",
			Help:      "Time a job spent queued before a worker picked it up.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		batchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_seconds",
			Help:      "Wall time of one asynchronous batch, decode to delivery.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		batchSeeds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_seeds",
			Help:      "Seeds evaluated per successful asynchronous batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 8, 8),
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests in flight.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.jobsSubmitted,
		m.jobsCompleted,
		m.queueDepth,
		m.busyWorkers,
		m.queueWait,
		m.batchSeconds,
		m.batchSeeds,
		m.requestsTotal,
		m.activeRequests,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// Registry returns the private registry, for callers that add collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler { return m.handler }

// WritePrometheus writes the current metrics to w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// JobSubmitted counts an accepted job.
func (m *Metrics) JobSubmitted() { m.jobsSubmitted.Inc() }

// JobStarted marks a worker busy and records how long the job waited.
func (m *Metrics) JobStarted(wait time.Duration) {
	m.busyWorkers.Inc()
	m.queueWait.Observe(wait.Seconds())
}

// JobFinished releases the worker and records the outcome.
func (m *Metrics) JobFinished(ok bool, elapsed time.Duration, seeds int) {
	m.busyWorkers.Dec()
	m.batchSeconds.Observe(elapsed.Seconds())
	if !ok {
		m.jobsCompleted.WithLabelValues(OutcomeError).Inc()
		return
	}
	m.jobsCompleted.WithLabelValues(OutcomeOK).Inc()
	m.batchSeeds.Observe(float64(seeds))
}

// QueueDepth sets the number of waiting jobs.
func (m *Metrics) QueueDepth(n int) { m.queueDepth.Set(float64(n)) }

// IncrementActiveRequests marks an HTTP request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks an HTTP request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest counts a served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
