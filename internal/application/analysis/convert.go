package analysis

import (
	"sort"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/plan"
	"github.com/turtacn/bgc-scaffold/internal/domain/scaffold"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// ─────────────────────────────────────────────────────────────
// ledger → genome
// ─────────────────────────────────────────────────────────────

// toContigs resolves domain types and substrate names against the built-in
// tables.  Domains of each ORF are put in genomic order and their substrate
// predictions ranked.
func toContigs(l *ledger.Ledger, cat *genome.Catalogue) ([]*genome.Contig, error) {
	out := make([]*genome.Contig, 0, len(l.Contigs))
	for _, c := range l.Contigs {
		contig := &genome.Contig{Name: c.Name, ORFs: make([]*genome.ORF, 0, len(c.ORFs))}
		for _, o := range c.ORFs {
			orf, err := toORF(o, cat)
			if err != nil {
				return nil, err.WithDetailf("contig %s", c.Name)
			}
			contig.ORFs = append(contig.ORFs, orf)
		}
		sort.SliceStable(contig.ORFs, func(i, j int) bool { return contig.ORFs[i].Start < contig.ORFs[j].Start })
		out = append(out, contig)
	}
	return out, nil
}

func toORF(o ledger.ORF, cat *genome.Catalogue) (*genome.ORF, *errors.AppError) {
	orf := &genome.ORF{
		Name:    o.Name,
		Start:   o.Start,
		End:     o.End,
		Strand:  genome.Strand(o.Strand),
		Domains: make([]*genome.Domain, 0, len(o.Domains)),
	}
	for _, d := range o.Domains {
		t, ok := genome.ParseDomainType(d.Type)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeUnknownDomainType, "ORF %s: unknown domain type %q", o.Name, d.Type)
		}
		dom := &genome.Domain{Type: t, Start: d.Start, End: d.End, Score: d.Score}
		for _, s := range d.Substrates {
			sub, ok := cat.Lookup(s.Name)
			if !ok {
				return nil, errors.Newf(errors.ErrCodeUnknownSubstrate, "ORF %s: unknown substrate %q", o.Name, s.Name)
			}
			dom.Substrates = append(dom.Substrates, genome.ScoredSubstrate{Substrate: sub, Score: s.Score})
		}
		for _, h := range d.Homologs {
			dom.Homologs = append(dom.Homologs, genome.Homolog{Name: h.Name, Identity: h.Identity})
		}
		dom.RankSubstrates()
		orf.Domains = append(orf.Domains, dom)
	}
	sort.SliceStable(orf.Domains, func(i, j int) bool { return orf.Domains[i].Less(orf.Domains[j]) })
	return orf, nil
}

// ─────────────────────────────────────────────────────────────
// domain → report
// ─────────────────────────────────────────────────────────────

func toCounter(c plan.Counter) dto.Counter {
	return dto.Counter{Seen: c.Seen, Kept: c.Kept, Limit: c.Limit, Truncated: c.Truncated}
}

func toDiagnostics(d plan.Diagnostics) dto.Diagnostics {
	return dto.Diagnostics{
		Permutations: toCounter(d.Permutations),
		Cyclizations: toCounter(d.Cyclizations),
		Plans:        toCounter(d.Plans),
		Scaffolds:    toCounter(d.Scaffolds),
	}
}

func toModule(m *genome.Module) dto.Module {
	out := dto.Module{
		Kind:      string(m.Kind),
		First:     m.First,
		Last:      m.Last,
		Domains:   make([]string, len(m.Domains)),
		Active:    m.Active,
		CanExtend: m.CanExtend,
	}
	for i, d := range m.Domains {
		out.Domains[i] = string(d.Type)
	}
	if s := m.Substrate(); s != nil {
		out.Substrate = s.Abbreviation
	}
	return out
}

func toORFReport(o *genome.ORF) dto.ORF {
	out := dto.ORF{Name: o.Name, Start: o.Start, End: o.End, Strand: int(o.Strand), Type: string(o.Type)}
	for _, m := range o.Modules {
		out.Modules = append(out.Modules, toModule(m))
	}
	return out
}

func toScaffolds(es []scaffold.Entry) []dto.Scaffold {
	out := make([]dto.Scaffold, len(es))
	for i, e := range es {
		out[i] = dto.Scaffold{
			SMILES:      e.SMILES,
			Formula:     e.Formula,
			Reactions:   e.Reactions,
			Plan:        e.Plan,
			Cyclization: e.Cyclization,
		}
	}
	return out
}

func toOutcome(planIndex int, o scaffold.Outcome) dto.Outcome {
	out := dto.Outcome{
		Plan:     planIndex,
		Reaction: o.Reaction,
		Success:  o.Success,
		Reason:   o.Reason,
	}
	if o.Domain != nil {
		out.Domain = string(o.Domain.Type)
		out.Start = o.Domain.Start
	}
	if len(o.Set) > 0 {
		out.Set = append([]int(nil), o.Set...)
	}
	return out
}

//Personal.AI order the ending
