package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Segment outcomes.
const (
	OutcomeTranscribed = "transcribed"
	OutcomeSkipped     = "skipped"
)

// Metrics holds the pipeline's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	Segments      *prometheus.CounterVec
	PipelineRuns  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Segments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "echoscribe_segments_total",
			Help: "Audio segments sent for transcription, by outcome",
		}, []string{"outcome"}),
		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "echoscribe_pipeline_runs_total",
			Help: "Finished pipeline runs, by terminal state",
		}, []string{"state"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "echoscribe_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7 minutes
		}, []string{"stage"}),
	}
}

// RecordSegments adds transcribed and skipped segment counts.
func (m *Metrics) RecordSegments(transcribed, skipped int) {
	if m == nil {
		return
	}
	m.Segments.WithLabelValues(OutcomeTranscribed).Add(float64(transcribed))
	m.Segments.WithLabelValues(OutcomeSkipped).Add(float64(skipped))
}

// RecordRun counts a run that ended in state.
func (m *Metrics) RecordRun(state string) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(state).Inc()
}

// ObserveStage records how long stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
