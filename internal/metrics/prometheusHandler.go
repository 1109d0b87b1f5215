package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var questionsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "questions_in_flight",
	Help: "Number of questions currently being answered",
})

var indexCacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_cache_events_total",
	Help: "Vector index cache hits and misses",
}, []string{"outcome"})

var knowledgeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "knowledge_fallback_total",
	Help: "Answers produced without document context, labelled by reason",
}, []string{"reason"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) CaptureWriteHeaderMetrics(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementQuestionsInFlight() {
	questionsInFlight.Inc()
}

func DecrementQuestionsInFlight() {
	questionsInFlight.Dec()
}

func RecordIndexCacheHit() {
	indexCacheEvents.WithLabelValues("hit").Inc()
}

func RecordIndexCacheMiss() {
	indexCacheEvents.WithLabelValues("miss").Inc()
}

func RecordKnowledgeFallback(reason string) {
	knowledgeFallbacks.WithLabelValues(reason).Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent answering one run request.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of pipeline stages and external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureRequestMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
