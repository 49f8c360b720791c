package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(t *testing.T, name string) *Substrate {
	t.Helper()
	s, ok := Substrates().Lookup(name)
	require.True(t, ok, name)
	return s
}

func dom(t DomainType, start int, subs ...*Substrate) *Domain {
	d := &Domain{Type: t, Start: start, End: start + 100, Score: 100}
	for i, s := range subs {
		d.Substrates = append(d.Substrates, ScoredSubstrate{Substrate: s, Score: float64(len(subs) - i)})
	}
	return d
}

func TestParseDomainType(t *testing.T) {
	tests := []struct {
		in   string
		want DomainType
		ok   bool
	}{
		{"C", Condensation, true},
		{"cy", Heterocyclization, true},
		{"p450a", P450A, true},
		{"NMT", NMethyltransferase, true},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDomainType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomainTypeFamilies(t *testing.T) {
	assert.True(t, Adenylation.IsBiosynthetic())
	assert.True(t, Ketoreductase.IsBiosynthetic())
	assert.False(t, P450A.IsBiosynthetic())
	assert.False(t, Regulator.IsBiosynthetic())

	assert.True(t, P450A.IsTailoring())
	assert.True(t, Ketoreductase.IsTailoring())
	assert.False(t, Adenylation.IsTailoring())
	assert.False(t, SugarBiosynthesis.IsTailoring())

	assert.True(t, StarterCondensation.IsCondensation())
	assert.False(t, Epimerization.IsCondensation())
	assert.Equal(t, FamilyAuxiliary, Resistance.Family())
	assert.Equal(t, FamilyUnknown, DomainType("X").Family())
}

func TestTailoringTypes_SortedAndTailoring(t *testing.T) {
	types := TailoringTypes()
	require.NotEmpty(t, types)
	for i, tt := range types {
		assert.True(t, tt.IsTailoring())
		if i > 0 {
			assert.Less(t, string(types[i-1]), string(tt))
		}
	}
	assert.Len(t, DomainTypes(), len(families))
}

func TestDomain_RankAndTop(t *testing.T) {
	d := &Domain{Substrates: []ScoredSubstrate{
		{Substrate: sub(t, "Ala"), Score: 50},
		{Substrate: sub(t, "Ser"), Score: 90},
		{Substrate: sub(t, "Gly"), Score: 90},
	}}
	d.RankSubstrates()
	assert.Equal(t, "serine", d.TopSubstrate().Name)
	assert.Equal(t, "glycine", d.Substrates[1].Substrate.Name)

	var nilDomain *Domain
	assert.Nil(t, nilDomain.TopSubstrate())
	assert.Nil(t, (&Domain{}).TopSubstrate())
}

func TestDomain_Less(t *testing.T) {
	a := &Domain{Type: NMethyltransferase, Start: 1, End: 5}
	b := &Domain{Type: CMethyltransferase, Start: 1, End: 5}
	c := &Domain{Type: Adenylation, Start: 1, End: 9}
	assert.True(t, b.Less(a))
	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
}

func TestModule_SpanQueries(t *testing.T) {
	orf := &ORF{Name: "orf1", Domains: []*Domain{
		dom(Condensation, 0), dom(Adenylation, 200, sub(t, "Tyr")), dom(Thiolation, 400),
		dom(Condensation, 600), dom(Adenylation, 800), dom(Thiolation, 1000),
	}}
	m1 := NewModule(KindAdenylation, orf, 0, 2)
	m2 := NewModule(KindAdenylation, orf, 2, 4)
	m3 := NewModule(KindAdenylation, orf, 3, 5)

	assert.True(t, m1.Active)
	assert.True(t, m1.CanExtend)
	assert.Equal(t, 3, m1.Width())
	assert.Equal(t, 0, m1.Start())
	assert.Equal(t, 500, m1.End())
	assert.True(t, m1.Overlaps(m2))
	assert.False(t, m1.Overlaps(m3))
	assert.True(t, m1.Contains(orf.Domains[1]))
	assert.False(t, m1.Contains(orf.Domains[3]))
	assert.Equal(t, "tyrosine", m1.Substrate().Name)
	assert.Nil(t, m3.Substrate())
	assert.Equal(t, "ADENYLATION[orf1:0-2]", m1.String())
}

func TestModule_ScaffoldDomainByKind(t *testing.T) {
	al := dom(AcylAdenylating, 0, sub(t, "octanoyl"))
	a := dom(Adenylation, 100, sub(t, "Val"))
	at := dom(Acyltransferase, 200)
	orf := &ORF{Name: "x", Domains: []*Domain{al, a, at}}

	assert.Same(t, al, NewModule(KindAcylAdenylate, orf, 0, 1).ScaffoldDomain())
	assert.Same(t, a, NewModule(KindAcylAdenylate, orf, 1, 1).ScaffoldDomain())
	assert.Same(t, a, NewModule(KindAdenylation, orf, 0, 2).ScaffoldDomain())
	assert.Same(t, at, NewModule(KindAcyltransferase, orf, 0, 2).ScaffoldDomain())
	assert.Nil(t, NewModule(KindTransATInsertion, orf, 0, 0).ScaffoldDomain())

	ins := NewModule(KindTransATInsertion, orf, 0, 0)
	assert.Equal(t, "malonyl", ins.Substrate().Name)

	borrowed := ins.WithDonor(a)
	assert.Same(t, a, borrowed.ScaffoldDomain())
	assert.Nil(t, ins.Donor)
}

func TestModuleKind_Families(t *testing.T) {
	assert.True(t, KindTransAdenylationInsertion.IsAdenylation())
	assert.False(t, KindAcylAdenylate.IsAdenylation())
	assert.True(t, KindTransATInsertion.IsAcyltransferase())
	assert.False(t, KindCStarter.IsAcyltransferase())
	assert.Len(t, ModuleKinds(), 8)
}

func TestORF_Queries(t *testing.T) {
	orf := &ORF{Name: "o", Domains: []*Domain{
		dom(Condensation, 0), dom(Adenylation, 100), dom(Thioesterase, 200), dom(P450A, 300),
	}}
	assert.True(t, orf.HasDomains())
	assert.True(t, orf.IsBiosynthetic())
	assert.True(t, orf.Has(P450A))
	assert.Len(t, orf.DomainsOf(Adenylation), 1)
	assert.Equal(t, Thioesterase, orf.LastThiotemplated().Type)

	tailoring := &ORF{Domains: []*Domain{dom(Halogenase, 0)}}
	assert.False(t, tailoring.IsBiosynthetic())
	assert.Nil(t, tailoring.LastThiotemplated())
	assert.False(t, (&ORF{}).HasDomains())
}

func TestGap(t *testing.T) {
	assert.Equal(t, 0, Gap(0, 100, 50, 150))
	assert.Equal(t, 50, Gap(0, 100, 150, 200))
	assert.Equal(t, 50, Gap(150, 200, 0, 100))
	assert.Equal(t, 0, Gap(0, 100, 100, 200))
}

func TestCluster_DerivedCollections(t *testing.T) {
	o1 := &ORF{Name: "a", Domains: []*Domain{dom(Condensation, 0), dom(Adenylation, 100), dom(Thiolation, 200)}}
	o2 := &ORF{Name: "b", Domains: []*Domain{dom(Halogenase, 1000)}}
	m := NewModule(KindAdenylation, o1, 0, 2)
	off := NewModule(KindAdenylation, o1, 1, 1)
	off.Active = false
	o1.Modules = []*Module{m, off}
	c := &Cluster{ORFs: []*ORF{o1, o2}, Types: []ClusterType{ClusterNRPS}}

	assert.Len(t, c.Modules(), 2)
	assert.Equal(t, []*Module{m}, c.ActiveModules())
	assert.Len(t, c.ModulesOf(KindAdenylation), 1)
	assert.Len(t, c.Domains(), 4)
	assert.True(t, c.Has(Halogenase))
	assert.Len(t, c.TailoringDomains(), 1)
	assert.Same(t, o1, c.ORFOf(m))
	assert.Same(t, m, c.ModuleOf(o1.Domains[2]))
	assert.Nil(t, c.ModuleOf(o2.Domains[0]))
	assert.Equal(t, map[string]int{"ADENYLATION": 1}, c.ModuleCounts())
	assert.True(t, c.HasType(ClusterNRPS))
	assert.False(t, c.HasType(ClusterPKS))
	assert.Equal(t, []string{"NRPS"}, c.TypeNames())
}

func TestSubstrates_Catalogue(t *testing.T) {
	cat := Substrates()
	assert.Same(t, cat, Substrates())

	ser, ok := cat.Lookup(" SER ")
	require.True(t, ok)
	assert.Equal(t, "serine", ser.Name)
	assert.True(t, ser.Is(FlagHydroxyl))
	assert.True(t, ser.Is(FlagCyclizable))
	assert.False(t, ser.Is(FlagAromatic))
	assert.True(t, ser.CanExtend())

	_, ok = cat.Lookup("unobtainium")
	assert.False(t, ok)

	assert.False(t, sub(t, "octanoyl").CanExtend())
	assert.False(t, sub(t, "proline-pyrrole").CanExtend())
	assert.True(t, sub(t, "proline-pyrrole").Is(FlagPyrrole))
	assert.True(t, sub(t, "Kiv").Is(FlagAlphaKeto))
	assert.Equal(t, "malonyl", cat.Malonyl().Name)

	var none *Substrate
	assert.False(t, none.Is(FlagAromatic))
	assert.False(t, none.CanExtend())
}

func TestSubstrates_AllSortedAndUnique(t *testing.T) {
	all := Substrates().All()
	require.Equal(t, Substrates().Len(), len(all))
	seen := make(map[string]bool)
	for i, s := range all {
		assert.False(t, seen[s.Abbreviation], s.Abbreviation)
		seen[s.Abbreviation] = true
		assert.Contains(t, s.Template, "I", s.Name)
		if i > 0 {
			assert.Less(t, all[i-1].Name, s.Name)
		}
	}
}

func TestSubstrateFlag_Names(t *testing.T) {
	assert.Equal(t, []string{"hydroxyl", "aromatic", "phenolic"}, (FlagHydroxyl | FlagAromatic | FlagPhenolic).Names())
	assert.Nil(t, SubstrateFlag(0).Names())
}

//Personal.AI order the ending
