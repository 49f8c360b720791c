package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

func TestDefaultRegistry_CoversEveryTailoringType(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)
	for _, typ := range genome.TailoringTypes() {
		e, ok := r.Lookup(typ)
		assert.True(t, ok, typ)
		assert.NotEmpty(t, e.Kind)
	}
	assert.Len(t, r.Entries(), len(genome.TailoringTypes()))
}

func TestDefaultRegistry_PriorityOrder(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	entries := r.Entries()
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Priority, entries[i].Priority)
	}

	prio := func(typ genome.DomainType) int {
		e, _ := r.Lookup(typ)
		return e.Priority
	}
	assert.Less(t, prio(genome.Heterocyclization), prio(genome.NMethyltransferase))
	assert.Less(t, prio(genome.P450A), prio(genome.CMethyltransferase))
	assert.Less(t, prio(genome.Ketoreductase), prio(genome.Dehydratase))
	assert.Less(t, prio(genome.Dehydratase), prio(genome.Enoylreductase))
	assert.Less(t, prio(genome.OMethyltransferase), prio(genome.Glycosyltransferase))
}

func TestDefaultRegistry_SharedKindAndOnceOnly(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	for _, typ := range []genome.DomainType{genome.P450A, genome.P450B, genome.P450C, genome.P450D} {
		e, _ := r.Lookup(typ)
		assert.Equal(t, P450Crosslink, e.Kind)
		assert.True(t, e.OnceOnly)
	}
	cy, _ := r.Lookup(genome.Heterocyclization)
	assert.True(t, cy.OnceOnly)
	kr, _ := r.Lookup(genome.Ketoreductase)
	assert.False(t, kr.OnceOnly)
	for _, typ := range []genome.DomainType{genome.IPNSynthase, genome.IPNAcyltransferase} {
		e, _ := r.Lookup(typ)
		assert.True(t, e.OnceOnly, typ)
	}
	al, _ := r.Lookup(genome.AcylAdenylating)
	assert.Equal(t, AcylLigation, al.Kind)
	assert.False(t, al.OnceOnly)

	kinds := r.Kinds()
	assert.Equal(t, Heterocyclization, kinds[0])
	assert.Equal(t, P450Crosslink, kinds[1])
	assert.Equal(t, ProlineOxidation, kinds[2])
	assert.Len(t, kinds, 21)
}

func TestNewRegistry_Validation(t *testing.T) {
	entries := DefaultEntries()

	_, err := NewRegistry(entries[1:]...)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionMissing))
	assert.True(t, errors.IsConfigError(err))

	_, err = NewRegistry(append(entries, entries[0])...)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionDuplicate))
}

func TestRegistry_MustLookup(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	e, err := r.MustLookup(genome.Halogenase)
	require.NoError(t, err)
	assert.Equal(t, Halogenation, e.Kind)

	_, err = r.MustLookup(genome.Adenylation)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionMissing))
}

//Personal.AI order the ending
