package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipelineMetrics(t *testing.T) (*PipelineMetrics, MetricsCollector) {
	c := newTestCollector(t)
	m := NewPipelineMetrics(c)
	require.NotNil(t, m)
	return m, c
}

func TestRecordAnalysis(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	m.RecordAnalysis(nil, 50*time.Millisecond)
	m.RecordAnalysis(errors.New("x"), time.Second)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_analyses_total{status="success"} 1`)
	assert.Contains(t, out, `test_unit_analyses_total{status="failure"} 1`)
	assert.Contains(t, out, "test_unit_analysis_duration_seconds_count 2")
}

func TestTrackActive(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	done := m.TrackActive()
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_analyses_active 1")
	done()
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_analyses_active 0")
}

func TestRecordCluster(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	m.RecordCluster([]string{"NRPS", "PKS"}, map[string]int{"ADENYLATION": 3}, 12)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_clusters_total{type="NRPS"} 1`)
	assert.Contains(t, out, `test_unit_clusters_total{type="PKS"} 1`)
	assert.Contains(t, out, `test_unit_modules_total{kind="ADENYLATION"} 3`)
	assert.Contains(t, out, "test_unit_plans_enumerated_sum 12")
}

func TestRecordEngineOutcomes(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	m.RecordTruncation("plans")
	m.RecordScaffold("produced")
	m.RecordReaction("KR", true)
	m.RecordReaction("DH", false)
	m.ObserveStage("plan", time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_truncations_total{stage="plans"} 1`)
	assert.Contains(t, out, `test_unit_scaffolds_total{state="produced"} 1`)
	assert.Contains(t, out, `test_unit_reaction_outcomes_total{reaction="KR",result="success"} 1`)
	assert.Contains(t, out, `test_unit_reaction_outcomes_total{reaction="DH",result="failure"} 1`)
	assert.Contains(t, out, `test_unit_stage_duration_seconds_count{stage="plan"} 1`)
}

func TestRecordInfrastructure(t *testing.T) {
	m, c := newTestPipelineMetrics(t)
	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordEvent(nil)
	m.RecordHTTPRequest("POST", "/api/v1/analyses", 201, 10*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_cache_requests_total{result="hit"} 1`)
	assert.Contains(t, out, `test_unit_cache_requests_total{result="miss"} 1`)
	assert.Contains(t, out, `test_unit_events_total{status="published"} 1`)
	assert.Contains(t, out, `test_unit_http_requests_total{method="POST",path="/api/v1/analyses",status_code="201"} 1`)
}

func TestPipelineMetrics_NilReceiver(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.RecordAnalysis(nil, time.Second)
		m.TrackActive()()
		m.RecordCluster([]string{"NRPS"}, nil, 1)
		m.RecordTruncation("x")
		m.RecordScaffold("aborted")
		m.RecordReaction("KR", true)
		m.ObserveStage("x", time.Second)
		m.RecordCache(true)
		m.RecordEvent(nil)
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}

//Personal.AI order the ending
