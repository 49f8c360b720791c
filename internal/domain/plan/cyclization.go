package plan

import (
	"fmt"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
)

// CyclizationKind is how the terminal residue is released.
type CyclizationKind string

const (
	Linear         CyclizationKind = "LINEAR"
	LinearAldehyde CyclizationKind = "LINEAR_ALDEHYDE"
	Lactam         CyclizationKind = "LACTAM"
	Lactone        CyclizationKind = "LACTONE"
	Imine          CyclizationKind = "IMINE"
)

// Cyclization is one release pattern.  Module is the permutation index of
// the hydroxyl-bearing residue for lactones and -1 otherwise.
type Cyclization struct {
	Kind   CyclizationKind `json:"kind"`
	Module int             `json:"module"`
}

func (c Cyclization) String() string {
	if c.Kind == Lactone {
		return fmt.Sprintf("%s(%d)", c.Kind, c.Module)
	}
	return string(c.Kind)
}

// cyclizations lists the release patterns of one permutation in the fixed
// order linear, lactam, lactones, imine.
func cyclizations(cl *genome.Cluster, perm []*genome.Module) []Cyclization {
	reductase := cl.Has(genome.ThioesterReductase)
	out := []Cyclization{{Kind: Linear, Module: -1}}
	if reductase {
		out[0].Kind = LinearAldehyde
	}
	if len(perm) == 0 {
		return out
	}
	firstA := perm[0].Kind.IsAdenylation()
	crosslinked := cl.Has(genome.P450A) && cl.Has(genome.P450B) && cl.Has(genome.P450C)
	if !reductase && !crosslinked {
		if firstA && len(perm) > 3 {
			out = append(out, Cyclization{Kind: Lactam, Module: -1})
		}
		for i, m := range perm[:len(perm)-1] {
			if m.Substrate().Is(genome.FlagHydroxyl) {
				out = append(out, Cyclization{Kind: Lactone, Module: i})
			}
		}
	}
	if reductase && firstA {
		out = append(out, Cyclization{Kind: Imine, Module: -1})
	}
	return out
}

//Personal.AI order the ending
