package analysis

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/domain/plan"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/cache/redis"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// dipeptide is one NRPS ORF loading Ala then Gly, plus a second contig
// without biosynthetic ORFs.
const dipeptide = `
contigs:
  - name: contig_1
    orfs:
      - name: nrps1
        start: 0
        end: 7000
        strand: 1
        domains:
          - {type: C, start: 0, end: 900, score: 50}
          - {type: A, start: 1000, end: 1900, score: 50, substrates: [{name: Ala, score: 90}, {name: Val, score: 20}]}
          - {type: T, start: 2000, end: 2900, score: 50}
          - {type: C, start: 3000, end: 3900, score: 50}
          - {type: A, start: 4000, end: 4900, score: 50, substrates: [{name: Gly, score: 88}]}
          - {type: T, start: 5000, end: 5900, score: 50}
          - {type: TE, start: 6000, end: 6900, score: 50}
  - name: contig_2
    orfs:
      - name: lonely
        start: 100
        end: 900
        strand: -1
`

func loadLedger(t *testing.T, doc string) *ledger.Ledger {
	t.Helper()
	l, err := ledger.DecodeBytes([]byte(doc), ledger.FormatYAML)
	require.NoError(t, err)
	return l
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*dto.Result
	err    error
}

func (p *recordingPublisher) PublishCompleted(_ context.Context, r *dto.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, r)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newService(t *testing.T, opts Options) Service {
	t.Helper()
	s, err := NewService(opts)
	require.NoError(t, err)
	return s
}

func TestAnalyze_Dipeptide(t *testing.T) {
	pub := &recordingPublisher{}
	s := newService(t, Options{Concurrency: 4, Publisher: pub})

	res, err := s.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide), Outcomes: true})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.Fingerprint, 64)
	assert.False(t, res.Cached)
	require.Len(t, res.Contigs, 2)
	assert.Equal(t, "contig_1", res.Contigs[0].Name)
	assert.Empty(t, res.Contigs[1].Clusters)

	require.Len(t, res.Contigs[0].Clusters, 1)
	cl := res.Contigs[0].Clusters[0]
	assert.Equal(t, 1, cl.Index)
	assert.Equal(t, []string{"NRPS"}, cl.Types)
	require.Len(t, cl.ORFs, 1)
	assert.Equal(t, "NRPS", cl.ORFs[0].Type)
	require.Len(t, cl.ORFs[0].Modules, 2)
	assert.Equal(t, "ADENYLATION", cl.ORFs[0].Modules[0].Kind)
	assert.Equal(t, "Ala", cl.ORFs[0].Modules[0].Substrate)
	assert.Equal(t, []string{"C", "A", "T"}, cl.ORFs[0].Modules[0].Domains)
	assert.Equal(t, "Gly", cl.ORFs[0].Modules[1].Substrate)

	assert.Equal(t, 1, cl.Plans)
	assert.Zero(t, cl.Aborted)
	require.Len(t, cl.Scaffolds, 1)
	assert.Equal(t, "C5H10N2O3", cl.Scaffolds[0].Formula)
	assert.Equal(t, "LINEAR", cl.Scaffolds[0].Cyclization)
	assert.Equal(t, dto.Counter{Seen: 1, Kept: 1, Limit: plan.DefaultMaxScaffolds}, cl.Diagnostics.Scaffolds)
	assert.Empty(t, res.Diagnostics.TruncatedStages())

	require.Len(t, pub.events, 1)
	assert.Equal(t, res.RunID, pub.events[0].RunID)
}

func TestAnalyze_Deterministic(t *testing.T) {
	s1 := newService(t, Options{Concurrency: 1})
	s8 := newService(t, Options{Concurrency: 8})
	l := loadLedger(t, dipeptide)

	a, err := s1.Analyze(context.Background(), &AnalyzeInput{Ledger: l, Outcomes: true})
	require.NoError(t, err)
	b, err := s8.Analyze(context.Background(), &AnalyzeInput{Ledger: l, Outcomes: true})
	require.NoError(t, err)
	assert.Equal(t, a.Contigs, b.Contigs)
	assert.Equal(t, a.Diagnostics, b.Diagnostics)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestAnalyze_LimitOverrides(t *testing.T) {
	s := newService(t, Options{})

	res, err := s.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide), Limits: dto.Limits{MaxScaffolds: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Contigs[0].Clusters[0].Diagnostics.Scaffolds.Limit)
	assert.Equal(t, plan.DefaultMaxPlans, res.Contigs[0].Clusters[0].Diagnostics.Plans.Limit)

	_, err = s.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide), Limits: dto.Limits{MaxPlans: -1}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestAnalyze_ExecutionDisabled(t *testing.T) {
	limits := plan.DefaultLimits()
	limits.MaxScaffolds = 0
	s := newService(t, Options{Limits: limits})

	res, err := s.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide)})
	require.NoError(t, err)
	cl := res.Contigs[0].Clusters[0]
	assert.Equal(t, 1, cl.Plans)
	assert.Empty(t, cl.Scaffolds)
	assert.Empty(t, cl.Reactions)
}

func TestAnalyze_LedgerErrors(t *testing.T) {
	s := newService(t, Options{})
	ctx := context.Background()

	_, err := s.Analyze(ctx, &AnalyzeInput{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLedgerInvalid))

	_, err = s.Analyze(ctx, &AnalyzeInput{Ledger: &ledger.Ledger{}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLedgerInvalid))

	l := loadLedger(t, dipeptide)
	l.Contigs[0].ORFs[0].Domains[0].Type = "XYZ"
	_, err = s.Analyze(ctx, &AnalyzeInput{Ledger: l})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownDomainType), err)

	l = loadLedger(t, dipeptide)
	l.Contigs[0].ORFs[0].Domains[1].Substrates[0].Name = "unobtainium"
	_, err = s.Analyze(ctx, &AnalyzeInput{Ledger: l})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownSubstrate), err)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	s := newService(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, &AnalyzeInput{Ledger: loadLedger(t, dipeptide)})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable), err)
}

func TestAnalyze_CacheHit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache, err := redis.New(config.CacheConfig{Enabled: true, Addr: mr.Addr(), Prefix: "t:", TTL: time.Hour}, nil)
	require.NoError(t, err)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "bgcs"}, nil)
	require.NoError(t, err)
	pub := &recordingPublisher{}
	s := newService(t, Options{Cache: cache, Publisher: pub, Metrics: prometheus.NewPipelineMetrics(collector)})
	defer s.Close()

	in := &AnalyzeInput{Ledger: loadLedger(t, dipeptide)}
	first, err := s.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, mr.Keys(), 1)

	second, err := s.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Contigs, second.Contigs)
	require.Len(t, pub.events, 2)
	assert.True(t, pub.events[1].Cached)

	third, err := s.Analyze(context.Background(), &AnalyzeInput{Ledger: in.Ledger, Refresh: true})
	require.NoError(t, err)
	assert.False(t, third.Cached)

	assert.NoError(t, s.Ready(context.Background()))

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `bgcs_cache_requests_total{result="hit"} 1`)
	assert.Contains(t, out, `bgcs_cache_requests_total{result="miss"} 2`)
	assert.Contains(t, out, `bgcs_analyses_total{status="success"} 3`)
	assert.Contains(t, out, `bgcs_clusters_total{type="NRPS"} 2`)
	assert.Contains(t, out, `bgcs_scaffolds_total{state="produced"} 2`)
}

func TestAnalyze_PublishFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	pub := &recordingPublisher{err: errors.New(errors.ErrCodeMessagingError, "broker down")}
	s := newService(t, Options{Publisher: pub, Logger: logging.NewLoggerFromCore(core)})

	_, err := s.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("completion event not published").Len())
	assert.Equal(t, 1, logs.FilterMessage("analysis completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("cluster assembled").Len())
}

func TestRegistry(t *testing.T) {
	s := newService(t, Options{})
	entries := s.Registry()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Cy", entries[0].DomainType)
	assert.Equal(t, "HETEROCYCLIZATION", entries[0].Reaction)
	for i, e := range entries {
		assert.True(t, e.Implemented, e.DomainType)
		assert.NotEmpty(t, e.Annotators, e.DomainType)
		if i > 0 {
			assert.LessOrEqual(t, entries[i-1].Priority, e.Priority)
		}
	}
}

func TestSubstrates(t *testing.T) {
	s := newService(t, Options{})
	subs := s.Substrates()
	require.NotEmpty(t, subs)
	for i := 1; i < len(subs); i++ {
		assert.Less(t, subs[i-1].Name, subs[i].Name)
	}
	var ser, dhb *SubstrateEntry
	for i := range subs {
		switch subs[i].Abbreviation {
		case "Ser":
			ser = &subs[i]
		case "Dhb":
			dhb = &subs[i]
		}
	}
	require.NotNil(t, ser)
	require.NotNil(t, dhb)
	assert.Equal(t, []string{"hydroxyl", "cyclizable"}, ser.Flags)
	assert.True(t, ser.CanExtend)
	assert.False(t, dhb.CanExtend)
}

func TestSetLimits(t *testing.T) {
	s := newService(t, Options{})
	assert.Equal(t, plan.DefaultLimits(), s.Limits())

	l := plan.DefaultLimits()
	l.MaxPlans = 7
	s.SetLimits(l)
	assert.Equal(t, 7, s.Limits().MaxPlans)

	cfg := config.Default()
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, LimitsFromConfig(cfg.Limits), opts.Limits)
	assert.Equal(t, cfg.Worker.Concurrency, opts.Concurrency)
}

//Personal.AI order the ending
