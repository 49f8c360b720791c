package module

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
)

// buildORF turns "C A:Tyr T AL@90" into an ORF.  ":" names the top substrate
// and "@" sets the score (default 50).
func buildORF(t *testing.T, name, layout string) *genome.ORF {
	t.Helper()
	orf := &genome.ORF{Name: name, Strand: genome.Forward}
	for i, tok := range strings.Fields(layout) {
		score := 50.0
		if at := strings.Index(tok, "@"); at >= 0 {
			v, err := strconv.ParseFloat(tok[at+1:], 64)
			require.NoError(t, err)
			score, tok = v, tok[:at]
		}
		var subName string
		if c := strings.Index(tok, ":"); c >= 0 {
			subName, tok = tok[c+1:], tok[:c]
		}
		typ, ok := genome.ParseDomainType(tok)
		require.True(t, ok, tok)
		d := &genome.Domain{Type: typ, Start: i * 1000, End: i*1000 + 900, Score: score}
		if subName != "" {
			s, ok := genome.Substrates().Lookup(subName)
			require.True(t, ok, subName)
			d.Substrates = []genome.ScoredSubstrate{{Substrate: s, Score: score}}
		}
		orf.Domains = append(orf.Domains, d)
	}
	if n := len(orf.Domains); n > 0 {
		orf.Start, orf.End = orf.Domains[0].Start, orf.Domains[n-1].End
	}
	return orf
}

type span struct {
	kind        genome.ModuleKind
	first, last int
}

func spans(mods []*genome.Module) []span {
	out := make([]span, len(mods))
	for i, m := range mods {
		out[i] = span{m.Kind, m.First, m.Last}
	}
	return out
}

func TestParser_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   []span
	}{
		{"condensation adenylation thiolation", "C A T",
			[]span{{genome.KindAdenylation, 0, 2}}},
		{"starter AT", "AT T",
			[]span{{genome.KindAcyltransferase, 0, 1}}},
		{"two extensions", "C A T C A T TE",
			[]span{{genome.KindAdenylation, 0, 2}, {genome.KindAdenylation, 3, 5}}},
		{"starter adenylation then extension", "A T C A T",
			[]span{{genome.KindTransAdenylation, 0, 1}, {genome.KindAdenylation, 2, 4}}},
		{"starter behind formyltransferase", "FT A T C A T",
			[]span{{genome.KindTransAdenylation, 1, 2}, {genome.KindAdenylation, 3, 5}}},
		{"starter aborted by condensation", "A C A T",
			[]span{{genome.KindAdenylation, 1, 3}}},
		{"starter acyl adenylate", "AL@80 A@20 T",
			[]span{{genome.KindAcylAdenylate, 0, 2}}},
		{"end adenylation", "C A T C A",
			[]span{{genome.KindAdenylation, 0, 2}, {genome.KindAdenylation, 3, 4}}},
		{"restart on second condensation", "C C A T",
			[]span{{genome.KindAdenylation, 1, 3}}},
		{"trans adenylation insertion", "C T",
			[]span{{genome.KindTransAdenylationInsertion, 0, 1}}},
		{"epimerase absorbed", "C A T E C A T",
			[]span{{genome.KindAdenylation, 0, 3}, {genome.KindAdenylation, 4, 6}}},
		{"pks extension with loop", "KS AT KR DH ER T",
			[]span{{genome.KindAcyltransferase, 0, 5}}},
		{"trans AT insertion", "KS KR T",
			[]span{{genome.KindTransATInsertion, 0, 2}}},
		{"KS with A only yields nothing", "KS A T", nil},
		{"starter AT plus extension", "AT T KS AT T TE",
			[]span{{genome.KindAcyltransferase, 0, 1}, {genome.KindAcyltransferase, 2, 4}}},
		{"end AT split module", "KS AT T KS AT",
			[]span{{genome.KindAcyltransferase, 0, 2}, {genome.KindAcyltransferase, 3, 4}}},
		{"end AT after closed module", "KS AT T AT",
			[]span{{genome.KindAcyltransferase, 0, 2}, {genome.KindAcyltransferase, 3, 3}}},
		{"trans AT", "AT AT",
			[]span{{genome.KindTransAT, 0, 1}}},
		{"fatty acid", "AL",
			[]span{{genome.KindAcylAdenylate, 0, 0}}},
		{"pyrrole", "A:proline-pyrrole",
			[]span{{genome.KindAcylAdenylate, 0, 0}}},
		{"stand-alone A", "A:Val", nil},
		{"hybrid", "C A T KS AT T",
			[]span{{genome.KindAdenylation, 0, 2}, {genome.KindAcyltransferase, 3, 5}}},
		{"C starter splits its extension", "Cs:octanoyl A T",
			[]span{{genome.KindCStarter, 0, 0}, {genome.KindAdenylation, 1, 2}}},
		{"plain Cs opens an extension", "Cs:Val A T",
			[]span{{genome.KindAdenylation, 0, 2}}},
		{"tailoring only", "P450A HAL", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orf := buildORF(t, "orf", tt.layout)
			got := NewParser(nil).Parse(orf)
			assert.Equal(t, tt.want, spanOrNil(got))
			assert.Equal(t, got, orf.Modules)
		})
	}
}

func spanOrNil(mods []*genome.Module) []span {
	if len(mods) == 0 {
		return nil
	}
	return spans(mods)
}

func TestParser_AdenylationTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   genome.ModuleKind
	}{
		{"AL out-scores A", "C AL@90 A@10 T", genome.KindAcylAdenylate},
		{"A out-scores AL", "C AL@10 A@90 T", genome.KindAdenylation},
		{"tie goes to earlier AL", "C AL@50 A@50 T", genome.KindAcylAdenylate},
		{"tie goes to earlier A", "C A@50 AL@50 T", genome.KindAdenylation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := NewParser(nil).Parse(buildORF(t, "orf", tt.layout))
			require.Len(t, mods, 1)
			assert.Equal(t, tt.want, mods[0].Kind)
			// the losing domain stays in the module
			assert.True(t, mods[0].Has(genome.Adenylation))
			assert.True(t, mods[0].Has(genome.AcylAdenylating))
		})
	}
}

func TestParser_SpansAreDisjoint(t *testing.T) {
	layouts := []string{
		"C A T C A T KS AT KR T TE",
		"Cs:decanoyl A T C A T C A",
		"A T KS AT T KS AT",
		"FT A T C AL@70 A@70 T E C A T TE",
		"AT T C A T KS KR T",
	}
	for _, layout := range layouts {
		t.Run(layout, func(t *testing.T) {
			mods := NewParser(nil).Parse(buildORF(t, "orf", layout))
			require.NotEmpty(t, mods)
			for i := range mods {
				for j := i + 1; j < len(mods); j++ {
					assert.False(t, mods[i].Overlaps(mods[j]), "%s overlaps %s", mods[i], mods[j])
				}
				if i > 0 {
					assert.Less(t, mods[i-1].First, mods[i].First)
				}
			}
		})
	}
}

type wideRule struct{}

func (wideRule) Name() string { return "wide" }

func (wideRule) Match(orf *genome.ORF) []*genome.Module {
	return []*genome.Module{genome.NewModule(genome.KindAdenylation, orf, 0, len(orf.Domains)-1)}
}

func TestParser_NarrowerSpanWinsAndDropIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewParser(logging.NewLoggerFromCore(core), wideRule{}, nrpsExtension{})

	mods := p.Parse(buildORF(t, "orf7", "C A T C A T"))
	assert.Equal(t, []span{{genome.KindAdenylation, 0, 2}, {genome.KindAdenylation, 3, 5}}, spans(mods))

	dropped := logs.FilterMessage("dropping overlapping module").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, "wide", dropped[0].ContextMap()["rule"])
	assert.Equal(t, "orf7", dropped[0].ContextMap()[logging.KeyORF])
}

func TestParser_RuleOrderBreaksFullTies(t *testing.T) {
	p := NewParser(nil, pyrrole{}, fattyAcid{}, wideRule{})
	mods := p.Parse(buildORF(t, "orf", "A:proline-pyrrole"))
	require.Len(t, mods, 1)
	assert.Equal(t, genome.KindAcylAdenylate, mods[0].Kind)

	p = NewParser(nil, wideRule{}, pyrrole{})
	mods = p.Parse(buildORF(t, "orf", "A:proline-pyrrole"))
	require.Len(t, mods, 1)
	assert.Equal(t, genome.KindAdenylation, mods[0].Kind)
}

func TestParser_EmptyResultIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewParser(logging.NewLoggerFromCore(core))

	assert.Empty(t, p.Parse(buildORF(t, "lonely", "HAL")))
	entries := logs.FilterMessage("no biosynthetic modules found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "lonely", entries[0].ContextMap()[logging.KeyORF])
}

func TestParser_ParseAll(t *testing.T) {
	a := buildORF(t, "a", "C A T")
	b := buildORF(t, "b", "KS AT T")
	NewParser(nil).ParseAll([]*genome.ORF{a, b})
	assert.Len(t, a.Modules, 1)
	assert.Len(t, b.Modules, 1)
	assert.True(t, a.Modules[0].Active)
}

//Personal.AI order the ending
