// Package module parses the ordered domain content of an ORF into catalytic
// modules using assembly-line grammar rules.
package module

import (
	"sort"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
)

// Rule recognises one module pattern in an ORF's domain list.
type Rule interface {
	Name() string
	Match(orf *genome.ORF) []*genome.Module
}

// DefaultRules returns the peptide, polyketide and starter rule families in
// tie-break order.
func DefaultRules() []Rule {
	return []Rule{
		nrpsExtension{},
		starterAdenylation{},
		endAdenylation{},
		pksExtension{},
		starterAcyltransferase{},
		endAcyltransferase{},
		transAcyltransferase{},
		fattyAcid{},
		pyrrole{},
		cStarter{},
	}
}

// Parser runs every rule over an ORF and merges the results into a disjoint
// set of modules.
type Parser struct {
	rules []Rule
	log   logging.Logger
}

// NewParser returns a parser with DefaultRules when rules is empty.
func NewParser(log logging.Logger, rules ...Rule) *Parser {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Parser{rules: rules, log: logging.OrNop(log).Named("module")}
}

type candidate struct {
	mod  *genome.Module
	rule int
}

// Parse assigns the ORF's modules and returns them in genomic order.
func (p *Parser) Parse(orf *genome.ORF) []*genome.Module {
	var cands []candidate
	for ri, r := range p.rules {
		for _, m := range r.Match(orf) {
			cands = append(cands, candidate{mod: m, rule: ri})
		}
	}

	// Narrower spans first, then earlier start, then rule order.
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.mod.Width() != b.mod.Width() {
			return a.mod.Width() < b.mod.Width()
		}
		if a.mod.First != b.mod.First {
			return a.mod.First < b.mod.First
		}
		return a.rule < b.rule
	})

	var kept []*genome.Module
	for _, c := range cands {
		if winner := overlapping(kept, c.mod); winner != nil {
			p.log.Debug("dropping overlapping module",
				logging.String(logging.KeyORF, orf.Name),
				logging.String("rule", p.rules[c.rule].Name()),
				logging.String("dropped", c.mod.String()),
				logging.String("kept", winner.String()))
			continue
		}
		kept = append(kept, c.mod)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].First < kept[j].First })

	if len(kept) == 0 {
		p.log.Debug("no biosynthetic modules found", logging.String(logging.KeyORF, orf.Name))
	}
	orf.Modules = kept
	return kept
}

// ParseAll parses every ORF in place.
func (p *Parser) ParseAll(orfs []*genome.ORF) {
	for _, o := range orfs {
		p.Parse(o)
	}
}

func overlapping(kept []*genome.Module, m *genome.Module) *genome.Module {
	for _, k := range kept {
		if k.Overlaps(m) {
			return k
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared helpers
// ─────────────────────────────────────────────────────────────────────────────

func all(ds []*genome.Domain, pred func(*genome.Domain) bool) bool {
	if len(ds) == 0 {
		return false
	}
	for _, d := range ds {
		if !pred(d) {
			return false
		}
	}
	return true
}

func indexOf(ds []*genome.Domain, t genome.DomainType) int {
	for i, d := range ds {
		if d.Type == t {
			return i
		}
	}
	return -1
}

// absorbEpimerase extends a span ending at a thiolation domain over the
// epimerization domains that directly follow it.
func absorbEpimerase(ds []*genome.Domain, end int) int {
	for end+1 < len(ds) && ds[end+1].Type == genome.Epimerization {
		end++
	}
	return end
}

func isStarterCs(d *genome.Domain) bool {
	return d.Type == genome.StarterCondensation && d.TopSubstrate().Is(genome.FlagStarter)
}

//Personal.AI order the ending
