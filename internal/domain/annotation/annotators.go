package annotation

import "github.com/turtacn/bgc-scaffold/internal/domain/genome"

// DefaultAnnotators returns the closed annotator table.
func DefaultAnnotators() []Annotator {
	return []Annotator{
		Modular(),
		ReductiveLoop(),
		Heterocyclization(),
		Hydroxyl(),
		P450A(), P450B(), P450C(), P450D(),
		Halogenase(),
		ProlineDehydrogenase(),
		Formyl(),
		Epimerase(),
		TrpDioxygenase(),
		AcylLigase(),
		IPNSynthase(), IPNAcyltransferase(),
	}
}

// containing returns the permutation index of the module holding d, or -1.
func containing(d *genome.Domain, perm []*genome.Module) int {
	for i, m := range perm {
		if m.Contains(d) {
			return i
		}
	}
	return -1
}

func single(i int) []SubstrateSet {
	if i < 0 {
		return nil
	}
	return []SubstrateSet{{i}}
}

func each(perm []*genome.Module, pred func(*genome.Module) bool) []SubstrateSet {
	var out []SubstrateSet
	for i, m := range perm {
		if pred(m) {
			out = append(out, SubstrateSet{i})
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Generic annotators
// ─────────────────────────────────────────────────────────────────────────────

type base struct {
	name  string
	types []genome.DomainType
	min   int
}

func (b base) Name() string               { return b.name }
func (b base) Types() []genome.DomainType { return b.types }
func (b base) MinLength() int             { return b.min }

// funcAnnotator adapts a plain function.
type funcAnnotator struct {
	base
	find func(d *genome.Domain, perm []*genome.Module) []SubstrateSet
}

func (f funcAnnotator) Find(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
	return f.find(d, perm)
}

// Func builds an annotator from a find function.
func Func(name string, minLength int, find func(*genome.Domain, []*genome.Module) []SubstrateSet, types ...genome.DomainType) Annotator {
	return funcAnnotator{base: base{name: name, types: types, min: minLength}, find: find}
}

// Site is one fixed 0-based offset among the plain adenylation modules of a
// permutation and the residues accepted there.
type Site struct {
	Offset int
	Accept func(*genome.Substrate) bool
}

// positional targets fixed sites.  Trans-adenylation and acyl-adenylate
// modules do not advance the offset.
type positional struct {
	base
	sites []Site
}

// Positional builds an annotator whose substrate set is the modules at sites,
// in order.  Any missing or rejected site yields no set.
func Positional(name string, t genome.DomainType, minLength int, sites ...Site) Annotator {
	return positional{base: base{name: name, types: []genome.DomainType{t}, min: minLength}, sites: sites}
}

func (p positional) Find(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
	var adenylation []int
	for i, m := range perm {
		if m.Kind == genome.KindAdenylation {
			adenylation = append(adenylation, i)
		}
	}
	set := make(SubstrateSet, 0, len(p.sites))
	for _, site := range p.sites {
		if site.Offset >= len(adenylation) {
			return nil
		}
		idx := adenylation[site.Offset]
		if !site.Accept(perm[idx].Substrate()) {
			return nil
		}
		set = append(set, idx)
	}
	return []SubstrateSet{set}
}

// ─────────────────────────────────────────────────────────────────────────────
// Closed table
// ─────────────────────────────────────────────────────────────────────────────

// Modular targets the module that carries the domain.
func Modular() Annotator {
	return Func("modular", 1, func(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return single(containing(d, perm))
	}, genome.NMethyltransferase, genome.CMethyltransferase, genome.OMethyltransferase, genome.Nitroreductase)
}

// Epimerase targets the module that carries the domain.
func Epimerase() Annotator {
	return Func("epimerase", 1, func(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return single(containing(d, perm))
	}, genome.Epimerization)
}

// ReductiveLoop handles KR, DH and ER.  In polyketide modules the loop acts
// on the beta-keto group, which belongs to the previous residue.
func ReductiveLoop() Annotator {
	return Func("reductive-loop", 1, func(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
		i := containing(d, perm)
		if i < 0 {
			return nil
		}
		m := perm[i]
		switch d.Type {
		case genome.Dehydratase:
			if !m.Has(genome.Ketoreductase) {
				return nil
			}
		case genome.Enoylreductase:
			if !m.Has(genome.Ketoreductase) || !m.Has(genome.Dehydratase) {
				return nil
			}
		}
		if m.Kind.IsAcyltransferase() {
			if i == 0 {
				return nil
			}
			prev := perm[i-1]
			if prev.Kind.IsAcyltransferase() && !prev.Substrate().Is(genome.FlagMalonyl) &&
				prev.Has(genome.CMethyltransferase) && !prev.Has(genome.Enoylreductase) {
				return nil
			}
			return single(i - 1)
		}
		if m.Kind == genome.KindAcylAdenylate && m.Substrate().Is(genome.FlagAlphaKeto) {
			return nil
		}
		return single(i)
	}, genome.Ketoreductase, genome.Dehydratase, genome.Enoylreductase)
}

// Heterocyclization pairs a Ser/Thr/Cys module with its upstream neighbour.
func Heterocyclization() Annotator {
	return Func("heterocyclization", 2, func(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
		i := containing(d, perm)
		if i < 1 || !perm[i].Substrate().Is(genome.FlagCyclizable) {
			return nil
		}
		return []SubstrateSet{{i - 1, i}}
	}, genome.Heterocyclization)
}

// Hydroxyl targets every module whose substrate bears a hydroxyl.
func Hydroxyl() Annotator {
	return Func("hydroxyl", 1, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return each(perm, func(m *genome.Module) bool { return m.Substrate().Is(genome.FlagHydroxyl) })
	}, genome.Sulfotransferase, genome.Carbamoyltransferase, genome.Glycosyltransferase, genome.Phosphotransferase)
}

func aromatic(s *genome.Substrate) bool { return s.Is(genome.FlagAromatic) }

// oneOf accepts the listed abbreviations.
func oneOf(abbrs ...string) func(*genome.Substrate) bool {
	return func(s *genome.Substrate) bool {
		if s == nil {
			return false
		}
		for _, a := range abbrs {
			if s.Abbreviation == a {
				return true
			}
		}
		return false
	}
}

// tyrosyl covers the glycopeptide ring residues: tyrosine,
// beta-hydroxytyrosine and 4-hydroxyphenylglycine.
var tyrosyl = oneOf("Tyr", "Bht", "Hpg")

// P450A closes the D-O-E ring between adenylation modules 3 and 5.
func P450A() Annotator {
	return Positional("p450a", genome.P450A, 6, Site{3, tyrosyl}, Site{5, tyrosyl})
}

// P450B crosslinks adenylation modules 5 and 7.
func P450B() Annotator {
	return Positional("p450b", genome.P450B, 7, Site{5, aromatic}, Site{7, aromatic})
}

// P450C joins a tyrosyl residue at adenylation module 4 to the
// dihydroxyphenylglycine at module 6.
func P450C() Annotator {
	return Positional("p450c", genome.P450C, 7, Site{4, tyrosyl}, Site{6, oneOf("Dhpg")})
}

// P450D crosslinks adenylation modules 1 and 3.
func P450D() Annotator {
	return Positional("p450d", genome.P450D, 7, Site{1, aromatic}, Site{3, aromatic})
}

// Halogenase targets every aromatic module.
func Halogenase() Annotator {
	return Func("halogenase", 1, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return each(perm, func(m *genome.Module) bool { return m.Substrate().Is(genome.FlagAromatic) })
	}, genome.Halogenase)
}

// ProlineDehydrogenase targets acyl-adenylate modules loading proline.
func ProlineDehydrogenase() Annotator {
	return Func("proline-dehydrogenase", 1, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return each(perm, func(m *genome.Module) bool {
			return m.Kind == genome.KindAcylAdenylate && m.Substrate().Is(genome.FlagProline)
		})
	}, genome.ProlineDehydrogenase)
}

// Formyl targets the first module when it is an adenylation module.
func Formyl() Annotator {
	return Func("formyl", 1, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		if perm[0].Kind.IsAdenylation() {
			return single(0)
		}
		return nil
	}, genome.Formyltransferase)
}

// TrpDioxygenase targets every tryptophan module.
func TrpDioxygenase() Annotator {
	trp := oneOf("Trp")
	return Func("trp-dioxygenase", 1, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return each(perm, func(m *genome.Module) bool { return trp(m.Substrate()) })
	}, genome.TrpDioxygenase)
}

// AcylLigase acylates hydroxyl modules with the domain's own substrate.  A
// domain that loads a module of the permutation is not a ligase.
func AcylLigase() Annotator {
	return Func("acyl-ligase", 1, func(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
		if containing(d, perm) >= 0 || d.TopSubstrate() == nil {
			return nil
		}
		return each(perm, func(m *genome.Module) bool { return m.Substrate().Is(genome.FlagHydroxyl) })
	}, genome.AcylAdenylating)
}

// IPNSynthase pairs each cysteine with a directly following valine.
func IPNSynthase() Annotator {
	cys, val := oneOf("Cys"), oneOf("Val")
	return Func("ipn-synthase", 2, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		var out []SubstrateSet
		for i := 0; i+1 < len(perm); i++ {
			if cys(perm[i].Substrate()) && val(perm[i+1].Substrate()) {
				out = append(out, SubstrateSet{i, i + 1})
			}
		}
		return out
	}, genome.IPNSynthase)
}

// IPNAcyltransferase targets every 2-aminoadipate module.
func IPNAcyltransferase() Annotator {
	aad := oneOf("Aad")
	return Func("ipn-acyltransferase", 2, func(_ *genome.Domain, perm []*genome.Module) []SubstrateSet {
		return each(perm, func(m *genome.Module) bool { return aad(m.Substrate()) })
	}, genome.IPNAcyltransferase)
}

//Personal.AI order the ending
