// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes recorded by AnalysesTotal
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the pipeline collectors. A nil *Metrics records nothing.
type Metrics struct {
	FramesExtractedTotal        prometheus.Counter
	FacesDetectedTotal          prometheus.Counter
	EmotionsTotal               *prometheus.CounterVec
	ClassificationFailuresTotal prometheus.Counter
	AnalysesTotal               *prometheus.CounterVec
	AnalysisDuration            prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FramesExtractedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodmeter_frames_extracted_total",
			Help: "Total number of video frames decoded",
		}),
		FacesDetectedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodmeter_faces_detected_total",
			Help: "Total number of face crops produced",
		}),
		EmotionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodmeter_emotions_total",
			Help: "Total number of classified faces, by emotion label",
		}, []string{"label"}),
		ClassificationFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "moodmeter_classification_failures_total",
			Help: "Total number of face crops whose classification failed",
		}),
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodmeter_analyses_total",
			Help: "Total number of video analyses, by outcome",
		}, []string{"outcome"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "moodmeter_analysis_duration_seconds",
			Help:    "Duration of a full video analysis",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
}

func (m *Metrics) FrameExtracted() {
	if m == nil {
		return
	}
	m.FramesExtractedTotal.Inc()
}

func (m *Metrics) FacesDetected(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.FacesDetectedTotal.Add(float64(n))
}

func (m *Metrics) EmotionClassified(label string) {
	if m == nil {
		return
	}
	m.EmotionsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) ClassificationFailed() {
	if m == nil {
		return
	}
	m.ClassificationFailuresTotal.Inc()
}

// AnalysisFinished records the outcome and duration of one analysis
func (m *Metrics) AnalysisFinished(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.Observe(d.Seconds())
}
