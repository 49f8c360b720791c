package prometheus

import (
	"strconv"
	"time"
)

// PipelineMetrics holds every metric emitted by the assembly pipeline and its
// outer surfaces.
type PipelineMetrics struct {
	// Analyses
	AnalysesTotal    CounterVec
	AnalysisDuration HistogramVec
	ActiveAnalyses   GaugeVec

	// Engine stages
	ClustersTotal    CounterVec
	ModulesTotal     CounterVec
	PlansEnumerated  HistogramVec
	TruncationsTotal CounterVec
	ScaffoldsTotal   CounterVec
	ReactionOutcomes CounterVec
	StageDuration    HistogramVec

	// Infrastructure
	CacheRequestsTotal CounterVec
	EventsTotal        CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
}

var (
	DefaultAnalysisBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300}
	DefaultCountBuckets    = []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000}
	DefaultHTTPBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// NewPipelineMetrics registers all pipeline metrics on collector.
func NewPipelineMetrics(collector MetricsCollector) *PipelineMetrics {
	return &PipelineMetrics{
		AnalysesTotal:    collector.RegisterCounter("analyses_total", "Completed analyses", "status"),
		AnalysisDuration: collector.RegisterHistogram("analysis_duration_seconds", "Wall time of one analysis", DefaultAnalysisBuckets),
		ActiveAnalyses:   collector.RegisterGauge("analyses_active", "Analyses currently running"),

		ClustersTotal:    collector.RegisterCounter("clusters_total", "Classified clusters by type", "type"),
		ModulesTotal:     collector.RegisterCounter("modules_total", "Parsed modules by kind", "kind"),
		PlansEnumerated:  collector.RegisterHistogram("plans_enumerated", "Plans kept per cluster", DefaultCountBuckets),
		TruncationsTotal: collector.RegisterCounter("truncations_total", "Enumerations stopped by a limit", "stage"),
		ScaffoldsTotal:   collector.RegisterCounter("scaffolds_total", "Executed scaffolds by final state", "state"),
		ReactionOutcomes: collector.RegisterCounter("reaction_outcomes_total", "Reaction applications", "reaction", "result"),
		StageDuration:    collector.RegisterHistogram("stage_duration_seconds", "Time spent per pipeline stage", DefaultHTTPBuckets, "stage"),

		CacheRequestsTotal: collector.RegisterCounter("cache_requests_total", "Result cache lookups", "result"),
		EventsTotal:        collector.RegisterCounter("events_total", "Published events", "status"),

		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency", DefaultHTTPBuckets, "method", "path"),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers; each is a no-op on a nil receiver so callers may run without metrics.
// ─────────────────────────────────────────────────────────────────────────────

func (m *PipelineMetrics) RecordAnalysis(err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.AnalysesTotal.WithLabelValues(status).Inc()
	m.AnalysisDuration.WithLabelValues().Observe(d.Seconds())
}

// TrackActive increments the active gauge and returns the matching decrement.
func (m *PipelineMetrics) TrackActive() func() {
	if m == nil {
		return func() {}
	}
	g := m.ActiveAnalyses.WithLabelValues()
	g.Inc()
	return g.Dec
}

func (m *PipelineMetrics) RecordCluster(types []string, modulesByKind map[string]int, plans int) {
	if m == nil {
		return
	}
	for _, t := range types {
		m.ClustersTotal.WithLabelValues(t).Inc()
	}
	for kind, n := range modulesByKind {
		m.ModulesTotal.WithLabelValues(kind).Add(float64(n))
	}
	m.PlansEnumerated.WithLabelValues().Observe(float64(plans))
}

func (m *PipelineMetrics) RecordTruncation(stage string) {
	if m == nil {
		return
	}
	m.TruncationsTotal.WithLabelValues(stage).Inc()
}

func (m *PipelineMetrics) RecordScaffold(state string) {
	if m == nil {
		return
	}
	m.ScaffoldsTotal.WithLabelValues(state).Inc()
}

func (m *PipelineMetrics) RecordReaction(reaction string, success bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.ReactionOutcomes.WithLabelValues(reaction, result).Inc()
}

func (m *PipelineMetrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *PipelineMetrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

func (m *PipelineMetrics) RecordEvent(err error) {
	if m == nil {
		return
	}
	status := "published"
	if err != nil {
		status = "failed"
	}
	m.EventsTotal.WithLabelValues(status).Inc()
}

func (m *PipelineMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

//Personal.AI order the ending
