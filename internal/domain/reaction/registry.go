// Package reaction maps tailoring domain types to reaction kinds and
// priorities.  The table is built once at startup and validated eagerly.
package reaction

import (
	"sort"
	"strings"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Kind names a chemical transformation.
type Kind string

const (
	Heterocyclization Kind = "HETEROCYCLIZATION"
	P450Crosslink     Kind = "P450_CROSSLINK"
	ProlineOxidation  Kind = "PROLINE_OXIDATION"
	NitroReduction    Kind = "NITRO_REDUCTION"
	Ketoreduction     Kind = "KETOREDUCTION"
	Dehydration       Kind = "DEHYDRATION"
	Enoylreduction    Kind = "ENOYLREDUCTION"
	Halogenation      Kind = "HALOGENATION"
	NMethylation      Kind = "N_METHYLATION"
	CMethylation      Kind = "C_METHYLATION"
	OMethylation      Kind = "O_METHYLATION"
	Formylation       Kind = "FORMYLATION"
	Epimerization     Kind = "EPIMERIZATION"
	Sulfation         Kind = "SULFATION"
	Carbamoylation    Kind = "CARBAMOYLATION"
	Phosphorylation   Kind = "PHOSPHORYLATION"
	Glycosylation     Kind = "GLYCOSYLATION"
	PenamClosure      Kind = "PENAM_CLOSURE"
	AcylExchange      Kind = "ACYL_EXCHANGE"
	TrpDioxygenation  Kind = "TRP_DIOXYGENATION"
	AcylLigation      Kind = "ACYL_LIGATION"
)

func (k Kind) String() string { return string(k) }

// Entry binds one domain type to its reaction.  OnceOnly entries are applied
// at most once per plan.
type Entry struct {
	Type     genome.DomainType
	Kind     Kind
	Priority int
	OnceOnly bool
}

// DefaultEntries is the built-in table in ascending priority.  Ring-forming
// reactions come first and substituents on hydroxyl groups last.
func DefaultEntries() []Entry {
	return []Entry{
		{genome.Heterocyclization, Heterocyclization, 10, true},
		{genome.P450A, P450Crosslink, 20, true},
		{genome.P450B, P450Crosslink, 21, true},
		{genome.P450C, P450Crosslink, 22, true},
		{genome.P450D, P450Crosslink, 23, true},
		{genome.ProlineDehydrogenase, ProlineOxidation, 25, false},
		{genome.IPNSynthase, PenamClosure, 26, true},
		{genome.IPNAcyltransferase, AcylExchange, 27, true},
		{genome.Nitroreductase, NitroReduction, 28, false},
		{genome.Ketoreductase, Ketoreduction, 30, false},
		{genome.Dehydratase, Dehydration, 31, false},
		{genome.Enoylreductase, Enoylreduction, 32, false},
		{genome.TrpDioxygenase, TrpDioxygenation, 35, false},
		{genome.Halogenase, Halogenation, 40, false},
		{genome.NMethyltransferase, NMethylation, 50, false},
		{genome.CMethyltransferase, CMethylation, 51, false},
		{genome.OMethyltransferase, OMethylation, 52, false},
		{genome.Formyltransferase, Formylation, 55, false},
		{genome.Epimerization, Epimerization, 58, false},
		{genome.Sulfotransferase, Sulfation, 60, false},
		{genome.Carbamoyltransferase, Carbamoylation, 61, false},
		{genome.Phosphotransferase, Phosphorylation, 62, false},
		{genome.AcylAdenylating, AcylLigation, 65, false},
		{genome.Glycosyltransferase, Glycosylation, 70, false},
	}
}

// Registry is the validated domain type → reaction lookup.
type Registry struct {
	entries map[genome.DomainType]Entry
}

// NewRegistry validates the table: each domain type appears once and every
// tailoring type is covered.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[genome.DomainType]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := r.entries[e.Type]; dup {
			return nil, errors.Newf(errors.ErrCodeReactionDuplicate, "domain type %s registered twice", e.Type)
		}
		r.entries[e.Type] = e
	}
	var missing []string
	for _, t := range genome.TailoringTypes() {
		if _, ok := r.entries[t]; !ok {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeReactionMissing, "tailoring domain types without reaction").
			WithDetail(strings.Join(missing, ","))
	}
	return r, nil
}

// NewDefaultRegistry is NewRegistry over DefaultEntries.
func NewDefaultRegistry() (*Registry, error) { return NewRegistry(DefaultEntries()...) }

// Lookup returns the entry for t.
func (r *Registry) Lookup(t genome.DomainType) (Entry, bool) {
	e, ok := r.entries[t]
	return e, ok
}

// MustLookup returns the entry for t or a CFG_002 error.
func (r *Registry) MustLookup(t genome.DomainType) (Entry, error) {
	e, ok := r.entries[t]
	if !ok {
		return Entry{}, errors.Newf(errors.ErrCodeReactionMissing, "no reaction for domain type %s", t)
	}
	return e, nil
}

// Entries returns the table ordered by (priority, type).
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Kinds returns the distinct reaction kinds in priority order.
func (r *Registry) Kinds() []Kind {
	seen := make(map[Kind]bool)
	var out []Kind
	for _, e := range r.Entries() {
		if !seen[e.Kind] {
			seen[e.Kind] = true
			out = append(out, e.Kind)
		}
	}
	return out
}

//Personal.AI order the ending
