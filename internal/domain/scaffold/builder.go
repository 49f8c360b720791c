// Package scaffold executes combinatorial plans against a growing molecular
// graph: residues are built from substrate templates, joined along the
// assembly line, tailored in priority order and released.
package scaffold

import "github.com/turtacn/bgc-scaffold/internal/infrastructure/chem"

// MoleculeBuilder is the molecule capability the executor depends on.
type MoleculeBuilder interface {
	New() *chem.Molecule
	Parse(smiles string) (*chem.Molecule, error)
}

type chemBuilder struct{}

func (chemBuilder) New() *chem.Molecule { return chem.New() }

func (chemBuilder) Parse(smiles string) (*chem.Molecule, error) { return chem.ParseSMILES(smiles) }

// DefaultBuilder returns the in-tree graph implementation.
func DefaultBuilder() MoleculeBuilder { return chemBuilder{} }

//Personal.AI order the ending
