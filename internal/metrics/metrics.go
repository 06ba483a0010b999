package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - метрики Prometheus для переходов вспышек и аналитики
type Metrics struct {
	Transitions      *prometheus.CounterVec
	TransitionErrors *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	GraphCache       *prometheus.CounterVec
	ClusterRegions   *prometheus.GaugeVec
	RejectedRegions  prometheus.Gauge
	EventsPublished  *prometheus.CounterVec
}

// NewMetrics создает и регистрирует метрики. reg позволяет использовать отдельный реестр в тестах.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epigeo_outbreak_transitions_total",
			Help: "Applied outbreak state transitions",
		}, []string{"event", "from", "to"}),
		TransitionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epigeo_outbreak_transition_errors_total",
			Help: "Rejected outbreak operations by error kind",
		}, []string{"event", "kind"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "epigeo_analysis_duration_seconds",
			Help:    "Duration of rate and hotspot analyses",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"analysis"}),
		GraphCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epigeo_region_graph_cache_total",
			Help: "Region graph lookups by cache tier and outcome",
		}, []string{"tier", "outcome"}),
		ClusterRegions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epigeo_hotspot_regions",
			Help: "Regions per cluster category in the latest hotspot analysis",
		}, []string{"category"}),
		RejectedRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "epigeo_region_graph_rejected_regions",
			Help: "Regions excluded from the latest graph build because of unusable geometry",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epigeo_outbreak_events_published_total",
			Help: "Outbreak status events handed to the webhook queue",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.Transitions,
		m.TransitionErrors,
		m.AnalysisDuration,
		m.GraphCache,
		m.ClusterRegions,
		m.RejectedRegions,
		m.EventsPublished,
	)
	return m
}

// ObserveAnalysis записывает длительность анализа с момента start
func (m *Metrics) ObserveAnalysis(analysis string, start time.Time) {
	m.AnalysisDuration.WithLabelValues(analysis).Observe(time.Since(start).Seconds())
}
