package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/domain/annotation"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

func cycKinds(cs []Cyclization) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func TestCyclizations(t *testing.T) {
	tests := []struct {
		name  string
		defs  []orfDef
		want  []string
	}{
		{"lactam and lactone", []orfDef{fwd("a", "C A:Ala T C A:Ser T C A:Val T C A:Thr T")},
			[]string{"LINEAR", "LACTAM", "LACTONE(1)"}},
		{"short peptide has no lactam", []orfDef{fwd("a", "C A:Ser T C A:Val T")},
			[]string{"LINEAR", "LACTONE(0)"}},
		{"reductase", []orfDef{fwd("a", "C A:Ala T C A:Ser T C A:Val T C A:Thr T R")},
			[]string{"LINEAR_ALDEHYDE", "IMINE"}},
		{"crosslinked", []orfDef{fwd("a", "C A:Ala T C A:Ser T C A:Val T C A:Val T"), fwd("p", "P450A P450B P450C")},
			[]string{"LINEAR"}},
		{"polyketide start", []orfDef{fwd("a", "AT:Mal T KS AT:Mal T KS AT:Mal T KS AT:Mal T")},
			[]string{"LINEAR"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := buildCluster(t, tt.defs...)
			perms, _ := newPermuter(cl, 10).enumerate()
			require.Len(t, perms, 1)
			assert.Equal(t, tt.want, cycKinds(cyclizations(cl, perms[0].Modules)))
		})
	}
}

func tailoredCluster(t *testing.T) *genome.Cluster {
	return buildCluster(t,
		fwd("a", "C A:Tyr NMT T C A:Phe T TE"),
		fwd("h", "HAL"),
		fwd("g", "GTR"),
	)
}

func TestPlanner_EnumerationOrder(t *testing.T) {
	p := newPlanner(t)
	res, err := p.Plan(NewRunContext("run", DefaultLimits()), tailoredCluster(t))
	require.NoError(t, err)
	require.Len(t, res.Plans, 4)

	type row struct {
		cyc string
		hal annotation.SubstrateSet
	}
	var got []row
	for i, pl := range res.Plans {
		assert.Equal(t, i, pl.Index)
		require.Len(t, pl.Reactions, 3)
		assert.Equal(t, reaction.Halogenation, pl.Reactions[0].Kind)
		assert.Equal(t, reaction.NMethylation, pl.Reactions[1].Kind)
		assert.Equal(t, reaction.Glycosylation, pl.Reactions[2].Kind)
		assert.Equal(t, annotation.SubstrateSet{0}, pl.Reactions[1].Set)
		got = append(got, row{pl.Cyclization.String(), pl.Reactions[0].Set})
	}
	assert.Equal(t, []row{
		{"LINEAR", annotation.SubstrateSet{0}},
		{"LINEAR", annotation.SubstrateSet{1}},
		{"LACTONE(0)", annotation.SubstrateSet{0}},
		{"LACTONE(0)", annotation.SubstrateSet{1}},
	}, got)

	d := res.Diagnostics
	assert.Equal(t, int64(1), d.Permutations.Kept)
	assert.Equal(t, int64(2), d.Cyclizations.Kept)
	assert.Equal(t, int64(4), d.Plans.Seen)
	assert.Equal(t, int64(4), d.Plans.Kept)
	assert.False(t, d.Truncated())
}

func TestPlanner_CapIsDeterministicPrefix(t *testing.T) {
	p := newPlanner(t)
	cl := tailoredCluster(t)

	full, err := p.Plan(NewRunContext("full", DefaultLimits()), cl)
	require.NoError(t, err)

	limits := DefaultLimits()
	limits.MaxPlans = 3
	first, err := p.Plan(NewRunContext("a", limits), cl)
	require.NoError(t, err)
	second, err := p.Plan(NewRunContext("b", limits), cl)
	require.NoError(t, err)

	require.Len(t, first.Plans, 3)
	assert.Equal(t, first.Plans, second.Plans)
	assert.Equal(t, full.Plans[:3], first.Plans)
	assert.True(t, first.Diagnostics.Plans.Truncated)
	assert.Equal(t, int64(4), first.Diagnostics.Plans.Seen)
	assert.Equal(t, int64(3), first.Diagnostics.Plans.Kept)
	assert.Equal(t, []string{"plans"}, first.Diagnostics.TruncatedStages())
}

func TestPlanner_CyclizationCap(t *testing.T) {
	p := newPlanner(t)
	limits := DefaultLimits()
	limits.MaxCyclizations = 1
	res, err := p.Plan(NewRunContext("c", limits), tailoredCluster(t))
	require.NoError(t, err)
	assert.Len(t, res.Plans, 2)
	assert.True(t, res.Diagnostics.Cyclizations.Truncated)
	assert.Equal(t, int64(2), res.Diagnostics.Cyclizations.Seen)
	assert.Equal(t, int64(1), res.Diagnostics.Cyclizations.Kept)
}

func TestPlanner_PlanCapStillCountsRemainingPermutations(t *testing.T) {
	p := newPlanner(t)
	// serine adds a lactone in the four orderings where it is not last
	cl := buildCluster(t,
		fwd("a", "C A:Ser T"),
		rev("b", "C A:Ala T"),
		fwd("c", "C A:Gly T"),
	)
	full, err := p.Plan(NewRunContext("full", DefaultLimits()), cl)
	require.NoError(t, err)
	require.False(t, full.Diagnostics.Truncated())
	require.Equal(t, int64(6), full.Diagnostics.Permutations.Kept)

	limits := DefaultLimits()
	limits.MaxPlans = 1
	capped, err := p.Plan(NewRunContext("capped", limits), cl)
	require.NoError(t, err)
	require.Len(t, capped.Plans, 1)

	d := capped.Diagnostics
	assert.Equal(t, int64(len(full.Plans)), d.Plans.Seen)
	assert.Equal(t, int64(1), d.Plans.Kept)
	assert.True(t, d.Plans.Truncated)
	assert.Equal(t, int64(10), d.Plans.Seen)
	assert.Equal(t, full.Diagnostics.Cyclizations, d.Cyclizations)
	assert.Equal(t, int64(10), d.Cyclizations.Seen)
}

func TestPlanner_OnceOnlyReactions(t *testing.T) {
	p := newPlanner(t)
	cl := buildCluster(t, fwd("a", "C A:Ala T Cy A:Cys T Cy A:Ser T TE"))
	res, err := p.Plan(NewRunContext("r", DefaultLimits()), cl)
	require.NoError(t, err)
	require.NotEmpty(t, res.Plans)
	for _, pl := range res.Plans {
		n := 0
		for _, r := range pl.Reactions {
			if r.Kind == reaction.Heterocyclization {
				n++
				assert.Equal(t, annotation.SubstrateSet{0, 1}, r.Set)
			}
		}
		assert.Equal(t, 1, n)
	}
}

func TestPlanner_NoTailoringStillPlansEachCyclization(t *testing.T) {
	p := newPlanner(t)
	cl := buildCluster(t, fwd("a", "C A:Ala T C A:Val T TE"))
	res, err := p.Plan(NewRunContext("r", DefaultLimits()), cl)
	require.NoError(t, err)
	require.Len(t, res.Plans, 1)
	assert.Empty(t, res.Plans[0].Reactions)
	assert.Equal(t, Linear, res.Plans[0].Cyclization.Kind)
}

func TestPlanner_ZeroPlanCap(t *testing.T) {
	p := newPlanner(t)
	limits := DefaultLimits()
	limits.MaxPlans = 0
	res, err := p.Plan(NewRunContext("r", limits), tailoredCluster(t))
	require.NoError(t, err)
	assert.Empty(t, res.Plans)
	assert.True(t, res.Diagnostics.Plans.Truncated)
}

func TestSortReactions_ShuffleInvariant(t *testing.T) {
	d1 := &genome.Domain{Type: genome.Halogenase, Start: 100, End: 200}
	d2 := &genome.Domain{Type: genome.Halogenase, Start: 50, End: 80}
	d3 := &genome.Domain{Type: genome.NMethyltransferase, Start: 10, End: 20}
	want := []ReactionPlan{
		{Domain: d2, Priority: 40, Set: annotation.SubstrateSet{3}},
		{Domain: d1, Priority: 40, Set: annotation.SubstrateSet{0}},
		{Domain: d1, Priority: 40, Set: annotation.SubstrateSet{2}},
		{Domain: d3, Priority: 50, Set: annotation.SubstrateSet{1}},
	}
	orders := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, order := range orders {
		in := make([]ReactionPlan, len(want))
		for i, j := range order {
			in[i] = want[j]
		}
		SortReactions(in)
		assert.Equal(t, want, in)
	}
}

func TestNewPlanner_Validation(t *testing.T) {
	_, err := NewPlanner(nil, nil, nil)
	assert.True(t, errors.IsConfigError(err))
}

func TestRunContext_ClusterIndices(t *testing.T) {
	rc := NewRunContext("id", DefaultLimits())
	assert.Equal(t, 1, rc.NextClusterIndex())
	assert.Equal(t, 2, rc.NextClusterIndex())
	assert.Equal(t, 2, rc.ClusterCount())
}

func TestCounter(t *testing.T) {
	c := newCounter(2)
	assert.True(t, c.Take())
	assert.False(t, c.Full())
	assert.True(t, c.Take())
	assert.True(t, c.Full())
	assert.False(t, c.Take())
	assert.True(t, c.Truncated)

	c.AddSeen(1 << 62)
	c.AddSeen(1 << 62)
	c.AddSeen(1 << 62)
	assert.Equal(t, int64(1<<63-1), c.Seen)

	var total Counter
	total.Merge(c)
	total.Merge(Counter{Seen: 1, Kept: 1, Limit: 5})
	assert.Equal(t, int64(3), total.Kept)
	assert.Equal(t, 5, total.Limit)
	assert.True(t, total.Truncated)

	assert.Equal(t, int64(120), factorial(5))
	assert.Equal(t, int64(1<<63-1), factorial(40))
	assert.Equal(t, int64(8), pow(2, 3))
}

//Personal.AI order the ending
