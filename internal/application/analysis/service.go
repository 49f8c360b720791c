// Package analysis runs the assembly pipeline over a domain ledger: cluster
// detection, module parsing, classification, planning and scaffold
// execution.  It is the entry point shared by the CLI and the HTTP API.
package analysis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/domain/annotation"
	"github.com/turtacn/bgc-scaffold/internal/domain/cluster"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/module"
	"github.com/turtacn/bgc-scaffold/internal/domain/plan"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
	"github.com/turtacn/bgc-scaffold/internal/domain/scaffold"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/cache/redis"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// Service defines the application operations of the assembly engine.
type Service interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (*dto.Result, error)
	Registry() []RegistryEntry
	Substrates() []SubstrateEntry
	Limits() plan.Limits
	SetLimits(l plan.Limits)
	Ready(ctx context.Context) error
	Close() error
}

// AnalyzeInput is one analysis request.
type AnalyzeInput struct {
	Ledger *ledger.Ledger
	// Limits overrides the configured caps field by field.
	Limits dto.Limits
	// Outcomes adds per-plan reaction outcome records to each cluster.
	Outcomes bool
	// Refresh drops any cached result before running.
	Refresh bool
}

// RegistryEntry is one row of the reaction table.
type RegistryEntry struct {
	DomainType  string   `json:"domain_type" yaml:"domain_type"`
	Reaction    string   `json:"reaction" yaml:"reaction"`
	Priority    int      `json:"priority" yaml:"priority"`
	OnceOnly    bool     `json:"once_only" yaml:"once_only"`
	Annotators  []string `json:"annotators" yaml:"annotators"`
	Implemented bool     `json:"implemented" yaml:"implemented"`
}

// SubstrateEntry is one row of the monomer catalogue.
type SubstrateEntry struct {
	Name         string   `json:"name" yaml:"name"`
	Abbreviation string   `json:"abbreviation" yaml:"abbreviation"`
	Template     string   `json:"template" yaml:"template"`
	Flags        []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	CanExtend    bool     `json:"can_extend" yaml:"can_extend"`
}

// Options wires the service.  Nil infrastructure fields fall back to no-op
// implementations.
type Options struct {
	Limits      plan.Limits
	Concurrency int
	Timeout     time.Duration

	Cache     redis.Cache
	Publisher kafka.Publisher
	Metrics   *prometheus.PipelineMetrics
	Logger    logging.Logger
}

// LimitsFromConfig converts the configured caps.
func LimitsFromConfig(c config.LimitsConfig) plan.Limits {
	return plan.Limits{
		Window:          c.Window,
		MaxPermutations: c.MaxPermutations,
		MaxCyclizations: c.MaxCyclizations,
		MaxPlans:        c.MaxPlans,
		MaxScaffolds:    c.MaxScaffolds,
	}
}

// OptionsFromConfig builds Options from a loaded configuration.  The caller
// still supplies the infrastructure.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Limits:      LimitsFromConfig(cfg.Limits),
		Concurrency: cfg.Worker.Concurrency,
		Timeout:     cfg.Worker.Timeout,
	}
}

type serviceImpl struct {
	reactions  *reaction.Registry
	resolver   *annotation.Resolver
	parser     *module.Parser
	classifier *cluster.Classifier
	planner    *plan.Planner
	executor   *scaffold.Executor
	catalogue  *genome.Catalogue

	limits      atomic.Pointer[plan.Limits]
	concurrency int
	timeout     time.Duration

	cache     redis.Cache
	publisher kafka.Publisher
	metrics   *prometheus.PipelineMetrics
	logger    logging.Logger
}

// NewService builds the registries and checks them against each other.  Any
// inconsistency is a CFG_* error.
func NewService(opts Options) (Service, error) {
	log := logging.OrNop(opts.Logger)

	reactions, err := reaction.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	resolver, err := annotation.NewDefaultResolver()
	if err != nil {
		return nil, err
	}
	planner, err := plan.NewPlanner(reactions, resolver, log)
	if err != nil {
		return nil, err
	}
	factory := scaffold.NewResidueFactory(scaffold.DefaultBuilder())
	catalogue := genome.Substrates()
	for _, sub := range catalogue.All() {
		if err := factory.Check(sub); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSubstrateCatalogBad, "substrate catalogue is inconsistent").WithDetail(sub.Name)
		}
	}
	executor, err := scaffold.NewExecutor(reactions, scaffold.WithResidueFactory(factory), scaffold.WithLogger(log))
	if err != nil {
		return nil, err
	}

	s := &serviceImpl{
		reactions:   reactions,
		resolver:    resolver,
		parser:      module.NewParser(log),
		classifier:  cluster.NewClassifier(log),
		planner:     planner,
		executor:    executor,
		catalogue:   catalogue,
		concurrency: max(opts.Concurrency, 1),
		timeout:     opts.Timeout,
		cache:       opts.Cache,
		publisher:   opts.Publisher,
		metrics:     opts.Metrics,
		logger:      log.Named("analysis"),
	}
	if s.cache == nil {
		s.cache = redis.NewNoopCache()
	}
	if s.publisher == nil {
		s.publisher = kafka.NewNoopPublisher()
	}
	limits := opts.Limits
	if limits == (plan.Limits{}) {
		limits = plan.DefaultLimits()
	}
	s.SetLimits(limits)
	return s, nil
}

func (s *serviceImpl) Limits() plan.Limits { return *s.limits.Load() }

// SetLimits replaces the configured caps for subsequent requests.
func (s *serviceImpl) SetLimits(l plan.Limits) {
	s.limits.Store(&l)
	s.logger.Info("limits updated",
		logging.Int("window", l.Window),
		logging.Int("max_permutations", l.MaxPermutations),
		logging.Int("max_cyclizations", l.MaxCyclizations),
		logging.Int("max_plans", l.MaxPlans),
		logging.Int("max_scaffolds", l.MaxScaffolds))
}

func (s *serviceImpl) Registry() []RegistryEntry {
	implemented := make(map[reaction.Kind]bool)
	for _, k := range s.executor.Kinds() {
		implemented[k] = true
	}
	entries := s.reactions.Entries()
	out := make([]RegistryEntry, len(entries))
	for i, e := range entries {
		out[i] = RegistryEntry{
			DomainType:  string(e.Type),
			Reaction:    string(e.Kind),
			Priority:    e.Priority,
			OnceOnly:    e.OnceOnly,
			Annotators:  s.resolver.AnnotatorNames(e.Type),
			Implemented: implemented[e.Kind],
		}
	}
	return out
}

func (s *serviceImpl) Substrates() []SubstrateEntry {
	all := s.catalogue.All()
	out := make([]SubstrateEntry, len(all))
	for i, sub := range all {
		out[i] = SubstrateEntry{
			Name:         sub.Name,
			Abbreviation: sub.Abbreviation,
			Template:     sub.Template,
			Flags:        sub.Flags.Names(),
			CanExtend:    sub.CanExtend(),
		}
	}
	return out
}

func (s *serviceImpl) Ready(ctx context.Context) error {
	if err := s.cache.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "cache not reachable")
	}
	return nil
}

func (s *serviceImpl) Close() error {
	cerr := s.cache.Close()
	perr := s.publisher.Close()
	if cerr != nil {
		return cerr
	}
	return perr
}

// ─────────────────────────────────────────────────────────────
// Analyze
// ─────────────────────────────────────────────────────────────

func (s *serviceImpl) Analyze(ctx context.Context, input *AnalyzeInput) (res *dto.Result, err error) {
	start := time.Now()
	defer s.metrics.TrackActive()()
	defer func() { s.metrics.RecordAnalysis(err, time.Since(start)) }()

	if input == nil || input.Ledger == nil {
		return nil, errors.New(errors.ErrCodeLedgerInvalid, "ledger is required")
	}
	if err := input.Ledger.Validate(); err != nil {
		return nil, err
	}
	limits, err := s.resolveLimits(input.Limits)
	if err != nil {
		return nil, err
	}
	fingerprint, err := input.Ledger.Fingerprint()
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	runID := uuid.New().String()
	log := s.logger.With(logging.RunID(runID))
	key := cacheKey(fingerprint, limits, input.Outcomes)
	if input.Refresh {
		if derr := s.cache.Delete(ctx, key); derr != nil {
			log.Warn("cache invalidation failed", logging.Err(derr))
		}
	}

	res = &dto.Result{}
	hit, err := s.cache.GetOrSet(ctx, key, res, 0, func(ctx context.Context) (interface{}, error) {
		return s.run(ctx, runID, input.Ledger, fingerprint, limits, input.Outcomes)
	})
	if err != nil {
		log.Warn("analysis failed", logging.String("code", string(errors.GetCode(err))), logging.Err(err))
		return nil, err
	}
	s.metrics.RecordCache(hit)

	res.RunID = runID
	res.Cached = hit
	res.Duration = time.Since(start)

	perr := s.publisher.PublishCompleted(ctx, res)
	s.metrics.RecordEvent(perr)
	if perr != nil {
		log.Warn("completion event not published", logging.Err(perr))
	}

	log.Info("analysis completed",
		logging.String("fingerprint", fingerprint),
		logging.Int("clusters", res.ClusterCount()),
		logging.Int("scaffolds", res.ScaffoldCount()),
		logging.Strings("truncated", res.Diagnostics.TruncatedStages()),
		logging.Bool("cached", hit),
		logging.Duration("duration", res.Duration))
	return res, nil
}

// resolveLimits overlays the per-request caps on the configured ones.
func (s *serviceImpl) resolveLimits(o dto.Limits) (plan.Limits, error) {
	l := s.Limits()
	for _, f := range []struct {
		name string
		v    int
		dst  *int
	}{
		{"window", o.Window, &l.Window},
		{"max_permutations", o.MaxPermutations, &l.MaxPermutations},
		{"max_cyclizations", o.MaxCyclizations, &l.MaxCyclizations},
		{"max_plans", o.MaxPlans, &l.MaxPlans},
		{"max_scaffolds", o.MaxScaffolds, &l.MaxScaffolds},
	} {
		if f.v < 0 {
			return l, errors.Newf(errors.ErrCodeValidation, "%s must not be negative, got %d", f.name, f.v)
		}
		if f.v > 0 {
			*f.dst = f.v
		}
	}
	return l, nil
}

func cacheKey(fingerprint string, l plan.Limits, outcomes bool) string {
	return fmt.Sprintf("analysis:%s:%d:%d:%d:%d:%d:%t",
		fingerprint, l.Window, l.MaxPermutations, l.MaxCyclizations, l.MaxPlans, l.MaxScaffolds, outcomes)
}

//Personal.AI order the ending
