package plan

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
)

func TestPermuter_ColinearForward(t *testing.T) {
	cl := buildCluster(t,
		fwd("a", "A:Val T"),
		fwd("b", "C A:Ala T"),
		fwd("c", "C A:Gly T TE"),
	)
	perms, c := newPermuter(cl, 10).enumerate()
	require.Len(t, perms, 1)
	assert.Equal(t, []string{"a,b,c"}, orfOrder(perms))
	assert.Equal(t, []string{"Val", "Ala", "Gly"}, substrates(perms[0].Modules))
	assert.Equal(t, int64(1), c.Kept)
	assert.False(t, c.Truncated)
}

func TestPermuter_ColinearReverse(t *testing.T) {
	cl := buildCluster(t,
		rev("a", "C A:Val T"),
		rev("b", "C A:Ala T"),
		rev("c", "C A:Gly T"),
	)
	perms, _ := newPermuter(cl, 10).enumerate()
	assert.Equal(t, []string{"c,b,a"}, orfOrder(perms))
}

func TestPermuter_FixedEndBreaksColinearity(t *testing.T) {
	// the TE ORF would come first on the reverse strand
	cl := buildCluster(t,
		rev("a", "C A:Val T"),
		rev("b", "C A:Ala T"),
		rev("c", "C A:Gly T TE"),
	)
	perms, _ := newPermuter(cl, 10).enumerate()
	assert.Equal(t, []string{"a,b,c", "b,a,c"}, orfOrder(perms))
}

func TestPermuter_LexicographicMiddle(t *testing.T) {
	cl := buildCluster(t,
		fwd("a", "C A:Val T"),
		rev("b", "C A:Ala T"),
		fwd("c", "C A:Gly T"),
	)
	perms, c := newPermuter(cl, 10).enumerate()
	assert.Equal(t, []string{"a,b,c", "a,c,b", "b,a,c", "b,c,a", "c,a,b", "c,b,a"}, orfOrder(perms))
	assert.Equal(t, int64(6), c.Seen)
	assert.Equal(t, int64(6), c.Kept)
}

func TestPermuter_CapKeepsFirstFound(t *testing.T) {
	cl := buildCluster(t,
		fwd("a", "C A:Val T"),
		rev("b", "C A:Ala T"),
		fwd("c", "C A:Gly T"),
	)
	perms, c := newPermuter(cl, 2).enumerate()
	assert.Equal(t, []string{"a,b,c", "a,c,b"}, orfOrder(perms))
	assert.Equal(t, int64(6), c.Seen)
	assert.Equal(t, int64(2), c.Kept)
	assert.True(t, c.Truncated)

	again, _ := newPermuter(cl, 2).enumerate()
	assert.Equal(t, orfOrder(perms), orfOrder(again))
}

func TestPermuter_FAALStart(t *testing.T) {
	cl := buildCluster(t,
		fwd("a", "C A:Val T"),
		rev("b", "C A:Ala T TE"),
		fwd("f", "AL:decanoyl"),
	)
	perms, _ := newPermuter(cl, 10).enumerate()
	assert.Equal(t, []string{"f,a,b"}, orfOrder(perms))
	assert.Equal(t, []string{"C10", "Val", "Ala"}, substrates(perms[0].Modules))
}

func TestPermuter_StarterATStart(t *testing.T) {
	cl := buildCluster(t,
		rev("k", "KS AT:MeMal T"),
		fwd("s", "AT:Mal T"),
	)
	perms, _ := newPermuter(cl, 10).enumerate()
	assert.Equal(t, []string{"s,k"}, orfOrder(perms))
}

func TestPermuter_TwoFAALsFilter(t *testing.T) {
	cl := buildCluster(t,
		fwd("f1", "AL:decanoyl"),
		rev("f2", "AL:octanoyl"),
		fwd("n", "C A:Val T"),
	)
	perms, c := newPermuter(cl, 10).enumerate()
	require.Len(t, perms, 4)
	assert.Equal(t, []string{"f1,f2,n", "f1,n,f2", "f2,f1,n", "f2,n,f1"}, orfOrder(perms))
	for _, p := range perms {
		require.Len(t, p.Modules, 2)
		assert.Equal(t, genome.KindAcylAdenylate, p.Modules[0].Kind)
		assert.Equal(t, "Val", p.Modules[1].Substrate().Abbreviation)
	}
	assert.Equal(t, int64(6), c.Seen)
	assert.Equal(t, int64(4), c.Kept)
}

func TestPermuter_LimitBoundsRejectedOrderings(t *testing.T) {
	// ten middle ORFs; the FAALs sort last, so every early ordering starts
	// with an elongation ORF and is rejected
	var defs []orfDef
	for i := 0; i < 8; i++ {
		d := fwd(fmt.Sprintf("g%d", i), "C A:Gly T")
		if i%2 == 1 {
			d = rev(d.name, d.layout)
		}
		defs = append(defs, d)
	}
	defs = append(defs, fwd("f1", "AL:decanoyl"), rev("f2", "AL:octanoyl"))
	cl := buildCluster(t, defs...)

	start := time.Now()
	perms, c := newPermuter(cl, 500).enumerate()
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Empty(t, perms)
	assert.Equal(t, int64(3628800), c.Seen)
	assert.Equal(t, int64(0), c.Kept)
	assert.True(t, c.Truncated)
}

func TestPermuter_LimitCountsFilteredCandidates(t *testing.T) {
	cl := buildCluster(t,
		fwd("f1", "AL:decanoyl"),
		rev("f2", "AL:octanoyl"),
		fwd("n", "C A:Val T"),
	)
	// the fifth candidate n,f1,f2 is rejected but still uses up the cap
	perms, c := newPermuter(cl, 5).enumerate()
	assert.Equal(t, []string{"f1,f2,n", "f1,n,f2", "f2,f1,n", "f2,n,f1"}, orfOrder(perms))
	assert.Equal(t, int64(6), c.Seen)
	assert.Equal(t, int64(4), c.Kept)
	assert.True(t, c.Truncated)
}

func TestPermuter_TransAdenylationSubstitution(t *testing.T) {
	cl := buildCluster(t,
		fwd("ta1", "A:Ser T"),
		fwd("ta2", "A:Cys T"),
		fwd("n", "C A:Ala T C T TE"),
	)
	perms, c := newPermuter(cl, 10).enumerate()
	require.Len(t, perms, 2)
	assert.Equal(t, []string{"n", "n"}, orfOrder(perms))
	assert.Equal(t, []string{"Ala", "Ser"}, substrates(perms[0].Modules))
	assert.Equal(t, []string{"Ala", "Cys"}, substrates(perms[1].Modules))
	assert.Equal(t, int64(2), c.Seen)

	// the shared module is never mutated
	ins := cl.ORFs[2].Modules[1]
	assert.Nil(t, ins.Donor)
}

func TestNextPermutation(t *testing.T) {
	idx := []int{0, 1, 2}
	var seen [][]int
	for {
		seen = append(seen, append([]int(nil), idx...))
		if !nextPermutation(idx) {
			break
		}
	}
	assert.Len(t, seen, 6)
	assert.Equal(t, []int{2, 1, 0}, seen[5])
	assert.False(t, nextPermutation(nil))
}

//Personal.AI order the ending
