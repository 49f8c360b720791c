package scaffold

import (
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/chem"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Scaffold is a molecule under construction.  It owns its graph exclusively;
// callers only ever see the rendered SMILES and formula.
type Scaffold struct {
	mol      *chem.Molecule
	residues []*Residue
	applied  int
}

func newScaffold(b MoleculeBuilder) *Scaffold {
	return &Scaffold{mol: b.New()}
}

func (s *Scaffold) SMILES() string  { return s.mol.SMILES() }
func (s *Scaffold) Formula() string { return s.mol.Formula() }

// Applied is the number of tailoring reactions that succeeded.
func (s *Scaffold) Applied() int { return s.applied }

// Len is the number of residues in the backbone.
func (s *Scaffold) Len() int { return len(s.residues) }

func (s *Scaffold) AtomCount() int { return s.mol.AtomCount() }

// tx runs fn and rolls the graph back if it fails, so a failing step never
// leaves a half-edited molecule behind.
func (s *Scaffold) tx(fn func() error) error {
	snap := s.mol.Clone()
	if err := fn(); err != nil {
		s.mol = snap
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// site lookups
// ─────────────────────────────────────────────────────────────

func siteMissing(r *Residue, what string) error {
	return errors.Newf(errors.ErrCodeReactionSiteMissing, "no %s on residue %d", what, r.Index).
		WithDetail(r.Substrate.Name)
}

func (s *Scaffold) live(r *Residue) []chem.AtomID {
	out := make([]chem.AtomID, 0, len(r.atoms))
	for _, id := range r.atoms {
		if s.mol.Exists(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Scaffold) carbonyl(r *Residue) chem.AtomID {
	return carbonylOxygen(s.mol, r.ketone)
}

// alphaPartner is the carbon next to r's former carbonyl joined with the
// given order: the downstream extender carbon first, r's own alpha second.
func (s *Scaffold) alphaPartner(r *Residue, order chem.BondOrder) chem.AtomID {
	ok := func(c chem.AtomID) bool {
		return s.mol.Element(c) == "C" && s.mol.BondOrder(r.ketone, c) == order &&
			(order != chem.Single || s.mol.Hydrogens(c) >= 1)
	}
	for _, nb := range s.mol.Neighbors(r.ketone) {
		if !containsAtom(r.atoms, nb) && ok(nb) {
			return nb
		}
	}
	if r.alpha != chem.NoAtom && ok(r.alpha) {
		return r.alpha
	}
	return chem.NoAtom
}

func (s *Scaffold) onlySingle(id chem.AtomID) bool {
	for _, nb := range s.mol.Neighbors(id) {
		if s.mol.BondOrder(id, nb) != chem.Single {
			return false
		}
	}
	return true
}

// isAcidOxygen reports whether o is the OH of a carboxylic acid.
func (s *Scaffold) isAcidOxygen(o chem.AtomID) bool {
	for _, c := range s.mol.Neighbors(o) {
		if carbonylOxygen(s.mol, c) != chem.NoAtom {
			return true
		}
	}
	return false
}

// hydroxyls returns the free OH oxygens of a residue, carboxylic acids
// excluded.
func (s *Scaffold) hydroxyls(r *Residue) []chem.AtomID {
	var out []chem.AtomID
	for _, id := range s.live(r) {
		if s.mol.Element(id) != "O" || s.mol.Aromatic(id) || s.mol.Charge(id) != 0 {
			continue
		}
		if s.mol.Degree(id) != 1 || s.mol.Hydrogens(id) < 1 || !s.onlySingle(id) {
			continue
		}
		if s.isAcidOxygen(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// sideChainHeteroatom is the OH or SH used by heterocyclization.
func (s *Scaffold) sideChainHeteroatom(r *Residue) chem.AtomID {
	for _, id := range s.live(r) {
		el := s.mol.Element(id)
		if el != "O" && el != "S" {
			continue
		}
		if s.mol.Degree(id) == 1 && s.mol.Hydrogens(id) >= 1 && s.onlySingle(id) && !s.isAcidOxygen(id) {
			return id
		}
	}
	return chem.NoAtom
}

func (s *Scaffold) phenolic(r *Residue) chem.AtomID {
	for _, o := range s.hydroxyls(r) {
		c := s.mol.Neighbors(o)[0]
		if s.mol.Aromatic(c) {
			return o
		}
	}
	return chem.NoAtom
}

// aromaticCH picks an aromatic carbon with a free hydrogen, preferring one
// ortho to a substituted ring carbon.
func (s *Scaffold) aromaticCH(r *Residue) chem.AtomID {
	first := chem.NoAtom
	for _, id := range s.live(r) {
		if s.mol.Element(id) != "C" || !s.mol.Aromatic(id) || s.mol.Hydrogens(id) < 1 {
			continue
		}
		if first == chem.NoAtom {
			first = id
		}
		for _, nb := range s.mol.Neighbors(id) {
			if s.mol.Aromatic(nb) && s.mol.Hydrogens(nb) == 0 && s.mol.Degree(nb) > 2 {
				return id
			}
		}
	}
	return first
}

func (s *Scaffold) nitrogen(r *Residue) chem.AtomID {
	if r.extender != chem.NoAtom && s.mol.Element(r.extender) == "N" && s.mol.Hydrogens(r.extender) >= 1 {
		return r.extender
	}
	for _, id := range s.live(r) {
		if s.mol.Element(id) == "N" && !s.mol.Aromatic(id) && s.mol.Charge(id) == 0 && s.mol.Hydrogens(id) >= 1 {
			return id
		}
	}
	return chem.NoAtom
}

// ring5 finds a five-membered ring through start inside the residue and
// returns it in walk order beginning with start.
func (s *Scaffold) ring5(r *Residue, start chem.AtomID) []chem.AtomID {
	in := make(map[chem.AtomID]bool, len(r.atoms))
	for _, id := range s.live(r) {
		in[id] = true
	}
	path := []chem.AtomID{start}
	var walk func(cur chem.AtomID) bool
	walk = func(cur chem.AtomID) bool {
		for _, nb := range s.mol.Neighbors(cur) {
			if !in[nb] {
				continue
			}
			if len(path) == 5 {
				if nb == start {
					return true
				}
				continue
			}
			if containsAtom(path, nb) {
				continue
			}
			path = append(path, nb)
			if walk(nb) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if walk(start) {
		return path
	}
	return nil
}

func containsAtom(ids []chem.AtomID, id chem.AtomID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// attach merges a substituent fragment and bonds its first atom to site.
func (s *Scaffold) attach(site chem.AtomID, fragment *chem.Molecule) error {
	atoms := fragment.Atoms()
	if len(atoms) == 0 {
		return errors.New(errors.ErrCodeBondFailed, "empty substituent")
	}
	mapping := s.mol.Merge(fragment)
	return s.mol.AddBond(site, mapping[atoms[0]], chem.Single)
}

// graft is attach for fragments that become part of r's side chain.
func (s *Scaffold) graft(r *Residue, site chem.AtomID, fragment *chem.Molecule) error {
	atoms := fragment.Atoms()
	if len(atoms) == 0 {
		return errors.New(errors.ErrCodeBondFailed, "empty substituent")
	}
	mapping := s.mol.Merge(fragment)
	if err := s.mol.AddBond(site, mapping[atoms[0]], chem.Single); err != nil {
		return err
	}
	for _, id := range atoms {
		r.atoms = append(r.atoms, mapping[id])
	}
	return nil
}

// aromaticSystem returns the fused aromatic atoms reachable from start.
func (s *Scaffold) aromaticSystem(start chem.AtomID) []chem.AtomID {
	seen := map[chem.AtomID]bool{start: true}
	out := []chem.AtomID{start}
	for i := 0; i < len(out); i++ {
		for _, nb := range s.mol.Neighbors(out[i]) {
			if !seen[nb] && s.mol.Aromatic(nb) {
				seen[nb] = true
				out = append(out, nb)
			}
		}
	}
	return out
}

//Personal.AI order the ending
