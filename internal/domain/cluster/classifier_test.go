package cluster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/module"
)

// parsedORF builds an ORF from "C A:Tyr T" and parses its modules.
func parsedORF(t *testing.T, name, layout string) *genome.ORF {
	t.Helper()
	orf := &genome.ORF{Name: name, Strand: genome.Forward}
	for i, tok := range strings.Fields(layout) {
		var subName string
		if c := strings.Index(tok, ":"); c >= 0 {
			subName, tok = tok[c+1:], tok[:c]
		}
		typ, ok := genome.ParseDomainType(tok)
		require.True(t, ok, tok)
		d := &genome.Domain{Type: typ, Start: i * 1000, End: i*1000 + 900, Score: 50}
		if subName != "" {
			s, ok := genome.Substrates().Lookup(subName)
			require.True(t, ok, subName)
			d.Substrates = []genome.ScoredSubstrate{{Substrate: s, Score: 50}}
		}
		orf.Domains = append(orf.Domains, d)
	}
	module.NewParser(nil).Parse(orf)
	return orf
}

func newCluster(orfs ...*genome.ORF) *genome.Cluster {
	return &genome.Cluster{Index: 1, ORFs: orfs}
}

type ClassifierSuite struct {
	suite.Suite
	c *Classifier
}

func (s *ClassifierSuite) SetupTest() {
	s.c = NewClassifier(nil)
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) TestPyrroleRemovedWithoutDehydrogenase() {
	t := s.T()
	cl := newCluster(
		parsedORF(t, "pyr", "A:proline-pyrrole"),
		parsedORF(t, "nrps", "C A:Val T"),
	)
	s.True(s.c.Classify(cl))
	s.Empty(cl.ORFs[0].Modules)
	s.Len(cl.ActiveModules(), 1)
}

func (s *ClassifierSuite) TestPyrroleKeptWithDehydrogenase() {
	t := s.T()
	cl := newCluster(
		parsedORF(t, "pyr", "A:proline-pyrrole"),
		parsedORF(t, "nrps", "C A:Val T"),
		parsedORF(t, "ox", "PRODH"),
	)
	s.True(s.c.Classify(cl))
	s.Require().Len(cl.ORFs[0].Modules, 1)
	s.False(cl.ORFs[0].Modules[0].CanExtend)
	s.Equal(genome.ORFTailoring, cl.ORFs[2].Type)
}

func (s *ClassifierSuite) TestTransAdenylation() {
	t := s.T()

	// lone starter without insertion sites becomes a plain module
	cl := newCluster(parsedORF(t, "a", "A:Val T"), parsedORF(t, "b", "C A:Ala T"))
	s.True(s.c.Classify(cl))
	s.Equal(genome.KindAdenylation, cl.ORFs[0].Modules[0].Kind)

	// starter followed by other modules on the same ORF
	cl = newCluster(parsedORF(t, "a", "A:Val T C A:Ala T"), parsedORF(t, "i", "C T"))
	s.True(s.c.Classify(cl))
	s.Equal(genome.KindAdenylation, cl.ORFs[0].Modules[0].Kind)

	// stand-alone with insertion sites stays in trans; only the first
	// insertion remains active
	cl = newCluster(
		parsedORF(t, "ta", "A:Ser T"),
		parsedORF(t, "n1", "C A:Ala T C T"),
		parsedORF(t, "n2", "C T TE"),
	)
	s.True(s.c.Classify(cl))
	s.Equal(genome.KindTransAdenylation, cl.ORFs[0].Modules[0].Kind)
	s.True(cl.ORFs[1].Modules[1].Active)
	s.False(cl.ORFs[2].Modules[0].Active)
}

func (s *ClassifierSuite) TestTransAcyltransferase() {
	t := s.T()

	cl := newCluster(parsedORF(t, "pks", "KS AT:MeMal T KS KR T"))
	s.True(s.c.Classify(cl))
	s.False(cl.ORFs[0].Modules[1].Active)

	at := parsedORF(t, "at", "AT:Mal")
	cl = newCluster(parsedORF(t, "pks", "KS AT:MeMal T KS KR T"), at)
	s.True(s.c.Classify(cl))
	ins := cl.ORFs[0].Modules[1]
	s.True(ins.Active)
	s.Same(at.Domains[0], ins.Donor)
	s.Equal("malonyl", ins.Substrate().Name)
	s.False(at.Modules[0].Active)
	s.Equal(genome.ORFInactive, at.Type)
}

func (s *ClassifierSuite) TestExtendabilityAndStarterPreference() {
	t := s.T()
	faal := parsedORF(t, "faal", "AL:decanoyl")
	cs := parsedORF(t, "cs", "Cs:octanoyl A:Leu T")
	cl := newCluster(faal, cs)
	s.True(s.c.Classify(cl))

	s.False(faal.Modules[0].CanExtend)
	s.Equal(genome.KindCStarter, cs.Modules[0].Kind)
	s.False(cs.Modules[0].Active)
	s.True(cs.Modules[1].Active)
	s.True(cs.Modules[1].CanExtend)
}

func (s *ClassifierSuite) TestCStarterKeptWithoutFAAL() {
	t := s.T()
	cs := parsedORF(t, "cs", "Cs:octanoyl A:Leu T")
	s.True(s.c.Classify(newCluster(cs)))
	s.True(cs.Modules[0].Active)
	s.False(cs.Modules[0].CanExtend)
}

func (s *ClassifierSuite) TestTyping() {
	t := s.T()
	tests := []struct {
		name    string
		layouts []string
		orfs    []genome.ORFType
		types   []genome.ClusterType
		keep    bool
	}{
		{"nrps", []string{"C A:Val T", "HAL"},
			[]genome.ORFType{genome.ORFNRPS, genome.ORFTailoring},
			[]genome.ClusterType{genome.ClusterNRPS}, true},
		{"pks", []string{"KS AT T"},
			[]genome.ORFType{genome.ORFPKS},
			[]genome.ClusterType{genome.ClusterPKS}, true},
		{"hybrid", []string{"C A:Val T KS AT T", "REG"},
			[]genome.ORFType{genome.ORFHybrid, genome.ORFInactive},
			[]genome.ClusterType{genome.ClusterNRPS, genome.ClusterPKS}, true},
		{"thiotemplated", []string{"Cs:octanoyl", "C"},
			[]genome.ORFType{genome.ORFInactive, genome.ORFInactive},
			[]genome.ClusterType{genome.ClusterThiotemplated}, true},
		{"thiotemplated without modules", []string{"A", "KS"},
			[]genome.ORFType{genome.ORFInactive, genome.ORFInactive},
			[]genome.ClusterType{genome.ClusterThiotemplated}, false},
		{"untyped", []string{"Cs:octanoyl"},
			[]genome.ORFType{genome.ORFInactive},
			nil, false},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			var orfs []*genome.ORF
			for i, l := range tt.layouts {
				orfs = append(orfs, parsedORF(t, string(rune('a'+i)), l))
			}
			cl := newCluster(orfs...)
			s.Equal(tt.keep, s.c.Classify(cl))
			for i, o := range cl.ORFs {
				s.Equal(tt.orfs[i], o.Type, o.Name)
			}
			s.Equal(tt.types, cl.Types)
		})
	}
}

func TestClassifyAll_DropsRejected(t *testing.T) {
	keep := newCluster(parsedORF(t, "a", "C A:Val T"))
	drop := newCluster(parsedORF(t, "b", "HAL"))
	out := NewClassifier(nil).ClassifyAll([]*genome.Cluster{keep, drop})
	require.Len(t, out, 1)
	assert.Same(t, keep, out[0])
}

//Personal.AI order the ending
