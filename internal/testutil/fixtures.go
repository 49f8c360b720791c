package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

// DipeptideYAML is one NRPS ORF loading Ala then Gly and releasing through
// a thioesterase.  It assembles to the linear dipeptide C5H10N2O3.
const DipeptideYAML = `
contigs:
  - name: contig_1
    orfs:
      - name: nrps1
        start: 0
        end: 7000
        strand: 1
        domains:
          - {type: C, start: 0, end: 900, score: 50}
          - {type: A, start: 1000, end: 1900, score: 50, substrates: [{name: Ala, score: 90}]}
          - {type: T, start: 2000, end: 2900, score: 50}
          - {type: C, start: 3000, end: 3900, score: 50}
          - {type: A, start: 4000, end: 4900, score: 50, substrates: [{name: Gly, score: 88}]}
          - {type: T, start: 5000, end: 5900, score: 50}
          - {type: TE, start: 6000, end: 6900, score: 50}
`

// DipeptideFormula is the molecular formula DipeptideYAML assembles to.
const DipeptideFormula = "C5H10N2O3"

// LoadLedger decodes doc or fails the test.
func LoadLedger(t testing.TB, doc string, f ledger.Format) *ledger.Ledger {
	t.Helper()
	l, err := ledger.DecodeBytes([]byte(doc), f)
	require.NoError(t, err)
	return l
}

// DipeptideLedger is DipeptideYAML decoded.
func DipeptideLedger(t testing.TB) *ledger.Ledger {
	t.Helper()
	return LoadLedger(t, DipeptideYAML, ledger.FormatYAML)
}

//Personal.AI order the ending
