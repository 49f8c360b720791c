package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/bgc-scaffold/internal/domain/cluster"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/plan"
	"github.com/turtacn/bgc-scaffold/internal/domain/scaffold"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/common"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// run is one uncached pass of the pipeline.  Contigs and clusters are
// handled in input order; only the plans of one cluster run in parallel.
func (s *serviceImpl) run(ctx context.Context, runID string, l *ledger.Ledger, fingerprint string, limits plan.Limits, outcomes bool) (*dto.Result, error) {
	contigs, err := toContigs(l, s.catalogue)
	if err != nil {
		return nil, err
	}

	rc := plan.NewRunContext(runID, limits)
	log := s.logger.With(logging.RunID(runID))
	detector := cluster.NewDetector(limits.Window, log)

	res := &dto.Result{
		RunID:       runID,
		Fingerprint: fingerprint,
		Contigs:     make([]dto.Contig, 0, len(contigs)),
		CreatedAt:   common.Now(),
	}
	for _, contig := range contigs {
		t := time.Now()
		detected := detector.Detect(contig, rc)
		for _, cl := range detected {
			s.parser.ParseAll(cl.ORFs)
		}
		kept := s.classifier.ClassifyAll(detected)
		s.metrics.ObserveStage("detect", time.Since(t))

		report := dto.Contig{Name: contig.Name, Clusters: make([]dto.Cluster, 0, len(kept))}
		for _, cl := range kept {
			cr, err := s.analyzeCluster(ctx, rc, cl, log, outcomes)
			if err != nil {
				return nil, err
			}
			res.Diagnostics.Add(cr.Diagnostics)
			report.Clusters = append(report.Clusters, *cr)
		}
		res.Contigs = append(res.Contigs, report)
	}
	return res, nil
}

func (s *serviceImpl) analyzeCluster(ctx context.Context, rc *plan.RunContext, cl *genome.Cluster, log logging.Logger, outcomes bool) (*dto.Cluster, error) {
	log = log.With(logging.Cluster(cl.Index), logging.String("contig", cl.Contig))

	t := time.Now()
	planned, err := s.planner.Plan(rc, cl)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveStage("plan", time.Since(t))

	t = time.Now()
	runs, err := s.execute(ctx, planned.Plans, rc.Limits.MaxScaffolds)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveStage("execute", time.Since(t))

	diag := planned.Diagnostics
	report := &dto.Cluster{
		Index:     cl.Index,
		Start:     cl.Start,
		End:       cl.End,
		Types:     cl.TypeNames(),
		ORFs:      make([]dto.ORF, len(cl.ORFs)),
		Plans:     len(planned.Plans),
		Scaffolds: []dto.Scaffold{},
		Reactions: make(map[string]dto.ReactionStats),
	}
	for i, o := range cl.ORFs {
		report.ORFs[i] = toORFReport(o)
	}

	if rc.Limits.MaxScaffolds > 0 {
		lib := scaffold.NewLibrary(rc.Limits.MaxScaffolds)
		for _, r := range runs {
			s.metrics.RecordScaffold(string(r.State))
			if !r.Produced() {
				report.Aborted++
			}
			for _, o := range r.Outcomes {
				if outcomes {
					report.Outcomes = append(report.Outcomes, toOutcome(r.Plan.Index, o))
				}
				if o.Domain == nil {
					continue
				}
				st := report.Reactions[o.Reaction]
				if o.Success {
					st.Applied++
				} else {
					st.Skipped++
				}
				report.Reactions[o.Reaction] = st
				s.metrics.RecordReaction(o.Reaction, o.Success)
			}
			lib.Add(r)
		}
		diag.Scaffolds = lib.Counter()
		report.Scaffolds = toScaffolds(lib.Entries())
	}
	report.Diagnostics = toDiagnostics(diag)

	s.metrics.RecordCluster(report.Types, cl.ModuleCounts(), report.Plans)
	for _, stage := range diag.TruncatedStages() {
		s.metrics.RecordTruncation(stage)
	}
	log.Info("cluster assembled",
		logging.Strings("types", report.Types),
		logging.Int("plans", report.Plans),
		logging.Int("aborted", report.Aborted),
		logging.Int("scaffolds", len(report.Scaffolds)),
		logging.Strings("truncated", diag.TruncatedStages()))
	return report, nil
}

// execute runs plans on the worker pool.  Runs come back in plan order so
// the library never depends on scheduling.  A non-positive scaffold cap
// skips execution.
func (s *serviceImpl) execute(ctx context.Context, plans []*plan.CombinatorialPlan, maxScaffolds int) ([]*scaffold.Run, error) {
	if maxScaffolds <= 0 || len(plans) == 0 {
		return nil, nil
	}
	runs := make([]*scaffold.Run, len(plans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range plans {
		if err := gctx.Err(); err != nil {
			break
		}
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runs[i] = s.executor.Execute(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, cancelled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	return runs, nil
}

func cancelled(err error) error {
	if err == context.DeadlineExceeded {
		return errors.Wrap(err, errors.ErrCodeTimeout, "analysis timed out")
	}
	return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "analysis cancelled")
}

//Personal.AI order the ending
