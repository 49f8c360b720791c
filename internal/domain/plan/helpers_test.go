package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/domain/annotation"
	"github.com/turtacn/bgc-scaffold/internal/domain/cluster"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/module"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
)

type orfDef struct {
	name   string
	layout string
	strand genome.Strand
}

func fwd(name, layout string) orfDef { return orfDef{name, layout, genome.Forward} }
func rev(name, layout string) orfDef { return orfDef{name, layout, genome.Reverse} }

// buildCluster lays ORFs out 10 kb apart, parses and classifies them.
// Layout tokens are "TYPE" or "TYPE:substrate".
func buildCluster(t *testing.T, defs ...orfDef) *genome.Cluster {
	t.Helper()
	cl := &genome.Cluster{Index: 1}
	for oi, s := range defs {
		base := oi * 10000
		orf := &genome.ORF{Name: s.name, Strand: s.strand, Start: base}
		for i, tok := range strings.Fields(s.layout) {
			var subName string
			if c := strings.Index(tok, ":"); c >= 0 {
				subName, tok = tok[c+1:], tok[:c]
			}
			typ, ok := genome.ParseDomainType(tok)
			require.True(t, ok, tok)
			d := &genome.Domain{Type: typ, Start: base + i*1000, End: base + i*1000 + 900, Score: 50}
			if subName != "" {
				sub, ok := genome.Substrates().Lookup(subName)
				require.True(t, ok, subName)
				d.Substrates = []genome.ScoredSubstrate{{Substrate: sub, Score: 50}}
			}
			orf.Domains = append(orf.Domains, d)
		}
		orf.End = base + 9000
		module.NewParser(nil).Parse(orf)
		cl.ORFs = append(cl.ORFs, orf)
	}
	require.True(t, cluster.NewClassifier(nil).Classify(cl), "cluster rejected")
	return cl
}

func newPlanner(t *testing.T) *Planner {
	t.Helper()
	reg, err := reaction.NewDefaultRegistry()
	require.NoError(t, err)
	res, err := annotation.NewDefaultResolver()
	require.NoError(t, err)
	p, err := NewPlanner(reg, res, nil)
	require.NoError(t, err)
	return p
}

func orfOrder(perms []Permutation) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = strings.Join(p.ORFs, ",")
	}
	return out
}

func substrates(mods []*genome.Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		if s := m.Substrate(); s != nil {
			out[i] = s.Abbreviation
		}
	}
	return out
}

//Personal.AI order the ending
