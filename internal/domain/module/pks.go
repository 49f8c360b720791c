package module

import "github.com/turtacn/bgc-scaffold/internal/domain/genome"

// pksExtension opens on a ketosynthase and closes on T or TE.
type pksExtension struct{}

func (pksExtension) Name() string { return "pks-extension" }

func (pksExtension) Match(orf *genome.ORF) []*genome.Module {
	var out []*genome.Module
	ds := orf.Domains
	start := -1
	for i, d := range ds {
		switch {
		case d.Type == genome.Ketosynthase:
			start = i
		case start >= 0 && d.Type.IsThiolationOrTE():
			span := ds[start : i+1]
			switch {
			case indexOf(span, genome.Acyltransferase) >= 0:
				out = append(out, genome.NewModule(genome.KindAcyltransferase, orf, start, i))
			case indexOf(span, genome.Adenylation) < 0:
				out = append(out, genome.NewModule(genome.KindTransATInsertion, orf, start, i))
			}
			start = -1
		}
	}
	return out
}

// starterAcyltransferase loads the first polyketide unit: AT at index 0
// through the first T.
type starterAcyltransferase struct{}

func (starterAcyltransferase) Name() string { return "starter-at" }

func (starterAcyltransferase) Match(orf *genome.ORF) []*genome.Module {
	ds := orf.Domains
	if len(ds) == 0 || ds[0].Type != genome.Acyltransferase {
		return nil
	}
	for i := 1; i < len(ds); i++ {
		switch ds[i].Type {
		case genome.Ketosynthase:
			return nil
		case genome.Thiolation:
			return []*genome.Module{genome.NewModule(genome.KindAcyltransferase, orf, 0, i)}
		}
	}
	return nil
}

// endAcyltransferase covers a KS-AT split from its T across an ORF boundary.
type endAcyltransferase struct{}

func (endAcyltransferase) Name() string { return "end-at" }

func (endAcyltransferase) Match(orf *genome.ORF) []*genome.Module {
	ds := orf.Domains
	n := len(ds)
	if n < 2 || ds[n-1].Type != genome.Acyltransferase {
		return nil
	}
	ks := -1
	for i := n - 2; i >= 0; i-- {
		if ds[i].Type == genome.Ketosynthase {
			ks = i
			break
		}
	}
	if ks < 0 {
		return nil
	}
	start := ks
	for i := ks + 1; i < n-1; i++ {
		if ds[i].Type.IsThiolationOrTE() {
			// the KS already closed its own module
			start = n - 1
			break
		}
	}
	return []*genome.Module{genome.NewModule(genome.KindAcyltransferase, orf, start, n-1)}
}

// transAcyltransferase covers stand-alone AT ORFs.
type transAcyltransferase struct{}

func (transAcyltransferase) Name() string { return "trans-at" }

func (transAcyltransferase) Match(orf *genome.ORF) []*genome.Module {
	if !all(orf.Domains, func(d *genome.Domain) bool { return d.Type == genome.Acyltransferase }) {
		return nil
	}
	return []*genome.Module{genome.NewModule(genome.KindTransAT, orf, 0, len(orf.Domains)-1)}
}

//Personal.AI order the ending
