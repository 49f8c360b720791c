package module

import "github.com/turtacn/bgc-scaffold/internal/domain/genome"

// nrpsExtension opens on a condensation domain and closes on T or TE.  A
// second condensation domain before the terminator restarts the span.
type nrpsExtension struct{}

func (nrpsExtension) Name() string { return "nrps-extension" }

func (nrpsExtension) Match(orf *genome.ORF) []*genome.Module {
	var out []*genome.Module
	ds := orf.Domains
	start, split := -1, false
	for i, d := range ds {
		switch {
		case d.Type.IsCondensation():
			start, split = i, false
			if isStarterCs(d) {
				// the Cs itself becomes a C_STARTER module
				start, split = i+1, true
			}
		case start >= 0 && d.Type.IsThiolationOrTE():
			span := ds[start : i+1]
			kind, ok := adenylationKind(span)
			if ok || !split {
				out = append(out, genome.NewModule(kind, orf, start, absorbEpimerase(ds, i)))
			}
			start = -1
		}
	}
	return out
}

// adenylationKind picks the kind of an extension span.  When both an A and an
// AL are present the higher score wins and ties go to the earlier domain.  ok
// is false when the span has no loading domain.
func adenylationKind(span []*genome.Domain) (genome.ModuleKind, bool) {
	a := indexOf(span, genome.Adenylation)
	al := indexOf(span, genome.AcylAdenylating)
	switch {
	case a < 0 && al < 0:
		return genome.KindTransAdenylationInsertion, false
	case al < 0:
		return genome.KindAdenylation, true
	case a < 0:
		return genome.KindAcylAdenylate, true
	}
	if alWins(span[a], a, span[al], al) {
		return genome.KindAcylAdenylate, true
	}
	return genome.KindAdenylation, true
}

func alWins(a *genome.Domain, ai int, al *genome.Domain, ali int) bool {
	if al.Score != a.Score {
		return al.Score > a.Score
	}
	return ali < ai
}

// starterAdenylation loads the first unit of an NRPS ORF: A or AL at index 0
// (1 behind a formyltransferase) through the first T.
type starterAdenylation struct{}

func (starterAdenylation) Name() string { return "starter-adenylation" }

func (starterAdenylation) Match(orf *genome.ORF) []*genome.Module {
	ds := orf.Domains
	s := 0
	if len(ds) > 0 && ds[0].Type == genome.Formyltransferase {
		s = 1
	}
	if s >= len(ds) {
		return nil
	}
	if t := ds[s].Type; t != genome.Adenylation && t != genome.AcylAdenylating {
		return nil
	}
	for i := s + 1; i < len(ds); i++ {
		switch {
		case ds[i].Type.IsCondensation():
			return nil
		case ds[i].Type == genome.Thiolation:
			span := ds[s : i+1]
			kind := genome.KindTransAdenylation
			if k, _ := adenylationKind(span); k == genome.KindAcylAdenylate {
				kind = k
			}
			return []*genome.Module{genome.NewModule(kind, orf, s, absorbEpimerase(ds, i))}
		}
	}
	return nil
}

// endAdenylation covers a C-A pair split from its T across an ORF boundary.
type endAdenylation struct{}

func (endAdenylation) Name() string { return "end-adenylation" }

func (endAdenylation) Match(orf *genome.ORF) []*genome.Module {
	ds := orf.Domains
	n := len(ds)
	if n < 2 || ds[n-2].Type != genome.Condensation || ds[n-1].Type != genome.Adenylation {
		return nil
	}
	return []*genome.Module{genome.NewModule(genome.KindAdenylation, orf, n-2, n-1)}
}

// pyrrole covers stand-alone adenylation ORFs loading proline for oxidation
// to a pyrrole starter.
type pyrrole struct{}

func (pyrrole) Name() string { return "pyrrole" }

func (pyrrole) Match(orf *genome.ORF) []*genome.Module {
	ok := all(orf.Domains, func(d *genome.Domain) bool {
		return d.Type == genome.Adenylation && d.TopSubstrate().Is(genome.FlagPyrrole)
	})
	if !ok {
		return nil
	}
	return []*genome.Module{genome.NewModule(genome.KindAcylAdenylate, orf, 0, len(orf.Domains)-1)}
}

//Personal.AI order the ending
