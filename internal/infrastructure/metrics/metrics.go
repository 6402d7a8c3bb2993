package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsguard"

// Cache lookup outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	predictions        *prometheus.CounterVec
	predictionErrors   *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	cacheRequests      *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	modelInfo          *prometheus.GaugeVec
}

// New registers all collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		predictions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Classified texts by predicted label.",
		}, []string{"label"}),
		predictionErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Failed classifications by reason.",
		}, []string{"reason"}),
		predictionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent normalizing and scoring one text.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		modelInfo: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_info",
			Help:      "Loaded model artifact; value is always 1.",
		}, []string{"version"}),
	}
}

// ObservePrediction records one successful classification
func (m *Metrics) ObservePrediction(label string, d time.Duration) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(label).Inc()
	m.predictionDuration.Observe(d.Seconds())
}

// PredictionFailed records a failed classification
func (m *Metrics) PredictionFailed(reason string) {
	if m == nil {
		return
	}
	m.predictionErrors.WithLabelValues(reason).Inc()
}

// CacheLookup records the outcome of a cache read
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// SetModel exports the loaded model version
func (m *Metrics) SetModel(version string) {
	if m == nil {
		return
	}
	m.modelInfo.Reset()
	m.modelInfo.WithLabelValues(version).Set(1)
}
