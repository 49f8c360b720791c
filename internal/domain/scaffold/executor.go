package scaffold

import (
	"sort"
	"strings"

	"github.com/turtacn/bgc-scaffold/internal/domain/annotation"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/plan"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/chem"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// State is the terminal state of one plan execution.
type State string

const (
	StateProduced State = "produced"
	StateAborted  State = "aborted"
)

// Stage is the executor step a run reached.
type Stage string

const (
	StageStart  Stage = "start"
	StageExtend Stage = "extend"
	StageReact  Stage = "react"
	StageFinish Stage = "finish"
)

// Outcome records one reaction or ring closure attempt.
type Outcome struct {
	Reaction string
	Domain   *genome.Domain
	Set      annotation.SubstrateSet
	Success  bool
	Reason   string
}

// Run is the result of executing one plan.
type Run struct {
	Plan     *plan.CombinatorialPlan
	State    State
	Stage    Stage
	Scaffold *Scaffold
	Outcomes []Outcome
	Err      error
}

func (r *Run) Produced() bool { return r.State == StateProduced }

// Applied is the tailoring reaction count of a produced scaffold.
func (r *Run) Applied() int {
	if r.Scaffold == nil {
		return 0
	}
	return r.Scaffold.Applied()
}

// Option configures an Executor.
type Option func(*Executor)

// WithReactions registers implementations, replacing defaults of the same kind.
func WithReactions(rs ...Reaction) Option {
	return func(e *Executor) {
		for _, r := range rs {
			e.reactions[r.Kind()] = r
		}
	}
}

func WithResidueFactory(f *ResidueFactory) Option {
	return func(e *Executor) { e.factory = f }
}

func WithBuilder(b MoleculeBuilder) Option {
	return func(e *Executor) { e.builder = b }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Executor) { e.log = logging.OrNop(l).Named("scaffold") }
}

// Executor turns plans into scaffolds.  It is safe for concurrent use; each
// Execute call owns its own molecule.
type Executor struct {
	reactions map[reaction.Kind]Reaction
	factory   *ResidueFactory
	builder   MoleculeBuilder
	log       logging.Logger
}

// NewExecutor checks that every reaction kind the registry can plan has an
// implementation.
func NewExecutor(reg *reaction.Registry, opts ...Option) (*Executor, error) {
	if reg == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "executor needs a reaction registry")
	}
	e := &Executor{
		reactions: make(map[reaction.Kind]Reaction),
		builder:   DefaultBuilder(),
		log:       logging.NewNopLogger(),
	}
	for _, r := range DefaultReactions() {
		e.reactions[r.Kind()] = r
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.factory == nil {
		e.factory = NewResidueFactory(e.builder)
	}
	var missing []string
	for _, k := range reg.Kinds() {
		if _, ok := e.reactions[k]; !ok {
			missing = append(missing, string(k))
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeImplementationLack, "reaction kinds without implementation").
			WithDetail(strings.Join(missing, ","))
	}
	return e, nil
}

// Kinds lists the implemented reaction kinds.
func (e *Executor) Kinds() []reaction.Kind {
	out := make([]reaction.Kind, 0, len(e.reactions))
	for k := range e.reactions {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Execute runs the start, extend, react and finish steps of p.
func (e *Executor) Execute(p *plan.CombinatorialPlan) *Run {
	run := &Run{Plan: p, Stage: StageStart}
	log := e.log.With(logging.Int(logging.KeyPlan, p.Index))
	s := newScaffold(e.builder)
	mods := p.Permutation.Modules

	abort := func(err error, m *genome.Module) *Run {
		run.State = StateAborted
		run.Err = err
		log.Warn("plan aborted",
			logging.String("stage", string(run.Stage)),
			logging.String("module", moduleName(m)),
			logging.String("code", string(errors.GetCode(err))),
			logging.Err(err))
		return run
	}

	if len(mods) == 0 {
		return abort(errors.New(errors.ErrCodeResidueUnavailable, "permutation has no modules"), nil)
	}
	first, err := e.factory.Build(s, mods[0], 0)
	if err != nil {
		return abort(err, mods[0])
	}
	s.residues = make([]*Residue, len(mods))
	s.residues[0] = first

	run.Stage = StageExtend
	last := first
	for i := 1; i < len(mods); i++ {
		m := mods[i]
		if !m.Active || !m.CanExtend {
			continue
		}
		r, err := e.factory.Build(s, m, i)
		if err != nil {
			return abort(err, m)
		}
		if !r.CanExtend() {
			return abort(errors.Newf(errors.ErrCodeBondFailed, "%s has no extender atom", r.Substrate.Name), m)
		}
		if err := s.mol.AddBond(last.ketone, r.extender, chem.Single); err != nil {
			return abort(err, m)
		}
		s.residues[i] = r
		last = r
	}

	run.Stage = StageReact
	rs := append([]plan.ReactionPlan(nil), p.Reactions...)
	plan.SortReactions(rs)
	for _, rp := range rs {
		out := Outcome{Reaction: string(rp.Kind), Domain: rp.Domain, Set: rp.Set}
		err := e.react(s, rp)
		if err != nil {
			out.Reason = err.Error()
			log.Debug("reaction skipped",
				logging.String(logging.KeyReaction, string(rp.Kind)),
				logging.String("domain", domainName(rp.Domain)),
				logging.Any("set", []int(rp.Set)),
				logging.Err(err))
		} else {
			out.Success = true
			s.applied++
		}
		run.Outcomes = append(run.Outcomes, out)
	}

	run.Stage = StageFinish
	if out, ok := e.finish(s, first, last, p.Cyclization); ok {
		run.Outcomes = append(run.Outcomes, out)
	}
	run.State = StateProduced
	run.Scaffold = s
	return run
}

func (e *Executor) react(s *Scaffold, rp plan.ReactionPlan) error {
	impl, ok := e.reactions[rp.Kind]
	if !ok {
		return errors.Newf(errors.ErrCodeImplementationLack, "no implementation for %s", rp.Kind)
	}
	targets := make([]*Residue, len(rp.Set))
	for i, idx := range rp.Set {
		if idx < 0 || idx >= len(s.residues) || s.residues[idx] == nil {
			return errors.Newf(errors.ErrCodeResidueUnavailable, "substrate %d has no residue", idx)
		}
		targets[i] = s.residues[idx]
	}
	return s.tx(func() error { return impl.Apply(s, rp.Domain, targets) })
}

// finish caps the terminal residue.  A ring that cannot close falls back to
// the linear acid and is reported as a failed outcome; so is an acid cap that
// cannot attach.  A successful linear release records nothing.
func (e *Executor) finish(s *Scaffold, first, last *Residue, c plan.Cyclization) (Outcome, bool) {
	if c.Kind == plan.LinearAldehyde {
		return Outcome{}, false
	}
	release := func() error {
		return s.tx(func() error { return s.attach(last.ketone, hydroxyl) })
	}
	if c.Kind == plan.Linear {
		if err := release(); err != nil {
			e.log.Debug("linear release failed", logging.Err(err))
			return Outcome{Reaction: c.String(), Reason: err.Error()}, true
		}
		return Outcome{}, false
	}
	out := Outcome{Reaction: c.String()}
	err := s.tx(func() error { return closeRing(s, first, last, c) })
	if err == nil {
		out.Success = true
		return out, true
	}
	out.Reason = err.Error()
	e.log.Debug("cyclization failed, releasing linear",
		logging.String("cyclization", c.String()), logging.Err(err))
	if rerr := release(); rerr != nil {
		out.Reason += "; linear release: " + rerr.Error()
	}
	return out, true
}

var hydroxyl = chem.MustParseSMILES("O")

func closeRing(s *Scaffold, first, last *Residue, c plan.Cyclization) error {
	if first == last {
		return errors.New(errors.ErrCodeCyclizationFailed, "a single residue cannot cyclize")
	}
	switch c.Kind {
	case plan.Lactam:
		n := first.extender
		if n == chem.NoAtom || s.mol.Element(n) != "N" || s.mol.Hydrogens(n) < 1 {
			return errors.New(errors.ErrCodeCyclizationFailed, "first residue has no free amine")
		}
		return s.mol.AddBond(last.ketone, n, chem.Single)
	case plan.Lactone:
		if c.Module < 0 || c.Module >= len(s.residues) || s.residues[c.Module] == nil {
			return errors.Newf(errors.ErrCodeCyclizationFailed, "lactone residue %d is missing", c.Module)
		}
		ohs := s.hydroxyls(s.residues[c.Module])
		if len(ohs) == 0 {
			return errors.Newf(errors.ErrCodeCyclizationFailed, "residue %d has no free hydroxyl", c.Module)
		}
		return s.mol.AddBond(last.ketone, ohs[0], chem.Single)
	case plan.Imine:
		n := first.extender
		if n == chem.NoAtom || s.mol.Element(n) != "N" || s.mol.Hydrogens(n) < 2 {
			return errors.New(errors.ErrCodeCyclizationFailed, "first residue has no primary amine")
		}
		o := s.carbonyl(last)
		if o == chem.NoAtom {
			return errors.New(errors.ErrCodeCyclizationFailed, "terminal residue has no carbonyl")
		}
		if err := s.mol.RemoveAtom(o); err != nil {
			return err
		}
		return s.mol.AddBond(last.ketone, n, chem.Double)
	default:
		return errors.Newf(errors.ErrCodeCyclizationFailed, "unknown cyclization %s", c.Kind)
	}
}

func moduleName(m *genome.Module) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func domainName(d *genome.Domain) string {
	if d == nil {
		return ""
	}
	return string(d.Type)
}

//Personal.AI order the ending
