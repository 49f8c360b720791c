package scaffold

import (
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/chem"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Reaction edits a scaffold on behalf of one tailoring domain.  targets are
// the residues named by the plan's substrate set, in set order.
type Reaction interface {
	Kind() reaction.Kind
	Apply(s *Scaffold, d *genome.Domain, targets []*Residue) error
}

// ApplyFunc is the body of a Reaction.
type ApplyFunc func(s *Scaffold, d *genome.Domain, targets []*Residue) error

type funcReaction struct {
	kind  reaction.Kind
	arity int
	apply ApplyFunc
}

// NewReaction wraps fn as a Reaction needing at least arity target residues.
func NewReaction(kind reaction.Kind, arity int, fn ApplyFunc) Reaction {
	return funcReaction{kind: kind, arity: arity, apply: fn}
}

func (r funcReaction) Kind() reaction.Kind { return r.kind }

func (r funcReaction) Apply(s *Scaffold, d *genome.Domain, targets []*Residue) error {
	if len(targets) < r.arity {
		return errors.Newf(errors.ErrCodeReactionSiteMissing, "%s needs %d residues, got %d", r.kind, r.arity, len(targets))
	}
	return r.apply(s, d, targets)
}

// DefaultReactions implements every kind in the default registry.
func DefaultReactions() []Reaction {
	return []Reaction{
		NewReaction(reaction.Ketoreduction, 1, ketoreduction),
		NewReaction(reaction.Dehydration, 1, dehydration),
		NewReaction(reaction.Enoylreduction, 1, enoylreduction),
		NewReaction(reaction.NMethylation, 1, nMethylation),
		NewReaction(reaction.CMethylation, 1, cMethylation),
		NewReaction(reaction.OMethylation, 1, onHydroxyl(methyl)),
		NewReaction(reaction.Heterocyclization, 2, heterocyclization),
		NewReaction(reaction.P450Crosslink, 2, crosslink),
		NewReaction(reaction.Halogenation, 1, halogenation),
		NewReaction(reaction.Sulfation, 1, onHydroxyl(sulfate)),
		NewReaction(reaction.Carbamoylation, 1, onHydroxyl(carbamoyl)),
		NewReaction(reaction.Phosphorylation, 1, onHydroxyl(phosphate)),
		NewReaction(reaction.Glycosylation, 1, onHydroxyl(hexose)),
		NewReaction(reaction.NitroReduction, 1, nitroReduction),
		NewReaction(reaction.ProlineOxidation, 1, prolineOxidation),
		NewReaction(reaction.Formylation, 1, formylation),
		NewReaction(reaction.Epimerization, 1, func(*Scaffold, *genome.Domain, []*Residue) error { return nil }),
		NewReaction(reaction.TrpDioxygenation, 1, trpDioxygenation),
		NewReaction(reaction.AcylLigation, 1, acylLigation),
		NewReaction(reaction.PenamClosure, 2, penamClosure),
		NewReaction(reaction.AcylExchange, 1, acylExchange),
	}
}

// substituent fragments; the first atom bonds to the scaffold.
var (
	methyl    = chem.MustParseSMILES("C")
	chlorine  = chem.MustParseSMILES("Cl")
	formyl    = chem.MustParseSMILES("C=O")
	sulfate   = chem.MustParseSMILES("S(=O)(=O)O")
	carbamoyl = chem.MustParseSMILES("C(N)=O")
	phosphate = chem.MustParseSMILES("P(=O)(O)O")
	hexose    = chem.MustParseSMILES("C1OC(CO)C(O)C(O)C1O")

	kynurenyl    = chem.MustParseSMILES("C(=O)c1ccccc1N")
	phenylacetyl = chem.MustParseSMILES("C(=O)Cc1ccccc1")
)

// acyls parses the substrates that acyl-adenylate ligases transfer.
var acyls = NewResidueFactory(nil)

// ─────────────────────────────────────────────────────────────
// reductive loop
// ─────────────────────────────────────────────────────────────

func ketoreduction(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	o := s.carbonyl(r)
	if o == chem.NoAtom {
		return siteMissing(r, "ketone")
	}
	return s.mol.SetBondOrder(r.ketone, o, chem.Single)
}

func dehydration(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	oh := chem.NoAtom
	for _, nb := range s.mol.Neighbors(r.ketone) {
		if s.mol.Element(nb) == "O" && s.mol.BondOrder(r.ketone, nb) == chem.Single && s.mol.Hydrogens(nb) >= 1 {
			oh = nb
			break
		}
	}
	if oh == chem.NoAtom {
		return siteMissing(r, "beta hydroxyl")
	}
	alpha := s.alphaPartner(r, chem.Single)
	if alpha == chem.NoAtom {
		return siteMissing(r, "alpha hydrogen")
	}
	if err := s.mol.RemoveAtom(oh); err != nil {
		return err
	}
	return s.mol.SetBondOrder(r.ketone, alpha, chem.Double)
}

func enoylreduction(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	alpha := s.alphaPartner(r, chem.Double)
	if alpha == chem.NoAtom {
		return siteMissing(r, "enoyl double bond")
	}
	return s.mol.SetBondOrder(r.ketone, alpha, chem.Single)
}

// ─────────────────────────────────────────────────────────────
// methylation and substitution
// ─────────────────────────────────────────────────────────────

func nMethylation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	n := s.nitrogen(t[0])
	if n == chem.NoAtom {
		return siteMissing(t[0], "NH")
	}
	return s.attach(n, methyl)
}

func cMethylation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	if r.alpha == chem.NoAtom || s.mol.Hydrogens(r.alpha) < 1 {
		return siteMissing(r, "alpha CH")
	}
	return s.attach(r.alpha, methyl)
}

func onHydroxyl(fragment *chem.Molecule) ApplyFunc {
	return func(s *Scaffold, _ *genome.Domain, t []*Residue) error {
		ohs := s.hydroxyls(t[0])
		if len(ohs) == 0 {
			return siteMissing(t[0], "hydroxyl")
		}
		return s.attach(ohs[0], fragment)
	}
}

func halogenation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	c := s.aromaticCH(t[0])
	if c == chem.NoAtom {
		return siteMissing(t[0], "aromatic CH")
	}
	return s.attach(c, chlorine)
}

// acylLigation esterifies t[0]'s first hydroxyl with the domain's acyl unit.
func acylLigation(s *Scaffold, d *genome.Domain, t []*Residue) error {
	sub := d.TopSubstrate()
	if sub == nil {
		return errors.New(errors.ErrCodeResidueUnavailable, "acyl-adenylating domain has no substrate prediction")
	}
	tmpl, err := acyls.template(sub)
	if err != nil {
		return err
	}
	ohs := s.hydroxyls(t[0])
	if len(ohs) == 0 {
		return siteMissing(t[0], "hydroxyl")
	}
	mapping := s.mol.Merge(tmpl.mol)
	return s.mol.AddBond(ohs[0], mapping[tmpl.ketone], chem.Single)
}

func formylation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	n := s.nitrogen(t[0])
	if n == chem.NoAtom {
		return siteMissing(t[0], "NH")
	}
	return s.attach(n, formyl)
}

// ─────────────────────────────────────────────────────────────
// ring forming
// ─────────────────────────────────────────────────────────────

// heterocyclization closes an oxazoline or thiazoline between t[0]'s
// carbonyl and t[1]'s side chain.
func heterocyclization(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	prev, cur := t[0], t[1]
	x := s.sideChainHeteroatom(cur)
	if x == chem.NoAtom {
		return siteMissing(cur, "side-chain OH or SH")
	}
	o := s.carbonyl(prev)
	if o == chem.NoAtom {
		return siteMissing(prev, "carbonyl")
	}
	if cur.extender == chem.NoAtom || s.mol.BondOrder(prev.ketone, cur.extender) != chem.Single {
		return siteMissing(cur, "amide bond to the previous residue")
	}
	if err := s.mol.RemoveAtom(o); err != nil {
		return err
	}
	if err := s.mol.AddBond(x, prev.ketone, chem.Single); err != nil {
		return err
	}
	return s.mol.SetBondOrder(prev.ketone, cur.extender, chem.Double)
}

// crosslink joins two aromatic residues: an aryl ether for P450A, a biaryl
// bond otherwise.
func crosslink(s *Scaffold, d *genome.Domain, t []*Residue) error {
	a, b := t[0], t[1]
	if a == b {
		return errors.New(errors.ErrCodeReactionSiteMissing, "crosslink needs two distinct residues")
	}
	var from chem.AtomID
	if d != nil && d.Type == genome.P450A {
		from = s.phenolic(a)
		if from == chem.NoAtom {
			return siteMissing(a, "phenolic OH")
		}
	} else {
		from = s.aromaticCH(a)
		if from == chem.NoAtom {
			return siteMissing(a, "aromatic CH")
		}
	}
	to := s.aromaticCH(b)
	if to == chem.NoAtom {
		return siteMissing(b, "aromatic CH")
	}
	return s.mol.AddBond(from, to, chem.Single)
}

// penamClosure forms the beta-lactam and thiazolidine rings of isopenicillin
// N from a cysteine t[0] and the valine t[1] it is amide-bonded to.
func penamClosure(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	cys, val := t[0], t[1]
	if cys == val {
		return errors.New(errors.ErrCodeReactionSiteMissing, "penam closure needs two distinct residues")
	}
	sulfur := s.sideChainHeteroatom(cys)
	if sulfur == chem.NoAtom || s.mol.Element(sulfur) != "S" {
		return siteMissing(cys, "thiol")
	}
	beta := s.mol.Neighbors(sulfur)[0]
	if s.mol.Hydrogens(beta) < 1 {
		return siteMissing(cys, "beta CH")
	}
	n := val.extender
	if n == chem.NoAtom || s.mol.BondOrder(cys.ketone, n) != chem.Single || s.mol.Hydrogens(n) < 1 {
		return siteMissing(val, "amide NH to the previous residue")
	}
	valBeta := chem.NoAtom
	if val.alpha != chem.NoAtom {
		for _, nb := range s.mol.Neighbors(val.alpha) {
			if nb != val.ketone && containsAtom(val.atoms, nb) && s.mol.Element(nb) == "C" &&
				!s.mol.Aromatic(nb) && s.mol.Hydrogens(nb) >= 1 {
				valBeta = nb
				break
			}
		}
	}
	if valBeta == chem.NoAtom {
		return siteMissing(val, "beta CH")
	}
	if err := s.mol.AddBond(beta, n, chem.Single); err != nil {
		return err
	}
	return s.mol.AddBond(valBeta, sulfur, chem.Single)
}

// acylExchange swaps the 2-aminoadipyl side chain t[0] for a phenylacetyl
// group on the downstream amide nitrogen.
func acylExchange(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	n := chem.NoAtom
	for _, nb := range s.mol.Neighbors(r.ketone) {
		if s.mol.Element(nb) == "N" && !containsAtom(r.atoms, nb) {
			n = nb
			break
		}
	}
	if n == chem.NoAtom {
		return siteMissing(r, "downstream amide")
	}
	for _, id := range s.live(r) {
		if err := s.mol.RemoveAtom(id); err != nil {
			return err
		}
	}
	return s.attach(n, phenylacetyl)
}

// trpDioxygenation opens the indole of t[0] to kynurenine: the pyrrole ring
// is cleaved and the beta carbon carries a 2-aminobenzoyl group.
func trpDioxygenation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	beta, gamma := chem.NoAtom, chem.NoAtom
	for _, id := range s.live(r) {
		if s.mol.Element(id) != "C" || !s.mol.Aromatic(id) {
			continue
		}
		for _, nb := range s.mol.Neighbors(id) {
			if containsAtom(r.atoms, nb) && s.mol.Element(nb) == "C" && !s.mol.Aromatic(nb) {
				beta, gamma = nb, id
			}
		}
	}
	if gamma == chem.NoAtom {
		return siteMissing(r, "indole")
	}
	ring := s.aromaticSystem(gamma)
	nitrogens := 0
	for _, id := range ring {
		if s.mol.Element(id) == "N" {
			nitrogens++
		}
		for _, nb := range s.mol.Neighbors(id) {
			if !s.mol.Aromatic(nb) && nb != beta {
				return siteMissing(r, "unsubstituted indole")
			}
		}
	}
	if len(ring) != 9 || nitrogens != 1 {
		return siteMissing(r, "indole")
	}
	for _, id := range ring {
		if err := s.mol.RemoveAtom(id); err != nil {
			return err
		}
	}
	return s.graft(r, beta, kynurenyl)
}

func nitroReduction(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	for _, n := range s.live(r) {
		if s.mol.Element(n) != "N" || s.mol.Charge(n) != 1 {
			continue
		}
		var oxygens []chem.AtomID
		for _, nb := range s.mol.Neighbors(n) {
			if s.mol.Element(nb) == "O" {
				oxygens = append(oxygens, nb)
			}
		}
		if len(oxygens) != 2 {
			continue
		}
		for _, o := range oxygens {
			if err := s.mol.RemoveAtom(o); err != nil {
				return err
			}
		}
		return s.mol.Normalize(n)
	}
	return siteMissing(r, "nitro group")
}

// prolineOxidation desaturates the pyrrolidine ring to a pyrrole.
func prolineOxidation(s *Scaffold, _ *genome.Domain, t []*Residue) error {
	r := t[0]
	for _, n := range s.live(r) {
		if s.mol.Element(n) != "N" {
			continue
		}
		ring := s.ring5(r, n)
		if ring == nil {
			continue
		}
		for _, pair := range [][2]chem.AtomID{{ring[1], ring[2]}, {ring[3], ring[4]}} {
			if s.mol.BondOrder(pair[0], pair[1]) != chem.Single ||
				s.mol.Hydrogens(pair[0]) < 1 || s.mol.Hydrogens(pair[1]) < 1 {
				return siteMissing(r, "saturated ring")
			}
			if err := s.mol.SetBondOrder(pair[0], pair[1], chem.Double); err != nil {
				return err
			}
		}
		return nil
	}
	return siteMissing(r, "pyrrolidine ring")
}

//Personal.AI order the ending
