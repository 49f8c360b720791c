package module

import "github.com/turtacn/bgc-scaffold/internal/domain/genome"

// fattyAcid covers stand-alone fatty-acyl-AMP ligase ORFs.
type fattyAcid struct{}

func (fattyAcid) Name() string { return "fatty-acid" }

func (fattyAcid) Match(orf *genome.ORF) []*genome.Module {
	if !all(orf.Domains, func(d *genome.Domain) bool { return d.Type == genome.AcylAdenylating }) {
		return nil
	}
	return []*genome.Module{genome.NewModule(genome.KindAcylAdenylate, orf, 0, len(orf.Domains)-1)}
}

// cStarter emits a single-domain module for every starter condensation
// domain that is predicted to load a fatty acid.
type cStarter struct{}

func (cStarter) Name() string { return "c-starter" }

func (cStarter) Match(orf *genome.ORF) []*genome.Module {
	var out []*genome.Module
	for i, d := range orf.Domains {
		if isStarterCs(d) {
			out = append(out, genome.NewModule(genome.KindCStarter, orf, i, i))
		}
	}
	return out
}

//Personal.AI order the ending
