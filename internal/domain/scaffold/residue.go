package scaffold

import (
	"sync"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/chem"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Residue is the part of the scaffold contributed by one module.
type Residue struct {
	Module    *genome.Module
	Substrate *genome.Substrate
	Index     int

	atoms    []chem.AtomID
	ketone   chem.AtomID
	extender chem.AtomID
	alpha    chem.AtomID
}

// CanExtend reports whether an upstream residue can bond to this one.
func (r *Residue) CanExtend() bool { return r.extender != chem.NoAtom }

// template is a parsed substrate with its markers already removed.
type template struct {
	mol      *chem.Molecule
	ketone   chem.AtomID
	extender chem.AtomID
	alpha    chem.AtomID
}

// ResidueFactory turns modules into residues.  Parsed templates are cached
// and the factory is safe for concurrent use.
type ResidueFactory struct {
	builder MoleculeBuilder

	mu    sync.RWMutex
	cache map[string]*template
}

func NewResidueFactory(builder MoleculeBuilder) *ResidueFactory {
	if builder == nil {
		builder = DefaultBuilder()
	}
	return &ResidueFactory{builder: builder, cache: make(map[string]*template)}
}

// Build merges the module's substrate into s and returns the new residue.
func (f *ResidueFactory) Build(s *Scaffold, m *genome.Module, index int) (*Residue, error) {
	sub := m.Substrate()
	if sub == nil {
		return nil, errors.Newf(errors.ErrCodeResidueUnavailable, "module %s has no substrate prediction", m)
	}
	tmpl, err := f.template(sub)
	if err != nil {
		return nil, err
	}
	mapping := s.mol.Merge(tmpl.mol)
	r := &Residue{
		Module:    m,
		Substrate: sub,
		Index:     index,
		ketone:    mapping[tmpl.ketone],
		extender:  chem.NoAtom,
		alpha:     chem.NoAtom,
	}
	if tmpl.extender != chem.NoAtom {
		r.extender = mapping[tmpl.extender]
	}
	if tmpl.alpha != chem.NoAtom {
		r.alpha = mapping[tmpl.alpha]
	}
	for _, id := range tmpl.mol.Atoms() {
		r.atoms = append(r.atoms, mapping[id])
	}
	return r, nil
}

// Check parses a substrate template without building anything.
func (f *ResidueFactory) Check(sub *genome.Substrate) error {
	_, err := f.template(sub)
	return err
}

func (f *ResidueFactory) template(sub *genome.Substrate) (*template, error) {
	f.mu.RLock()
	t, ok := f.cache[sub.Template]
	f.mu.RUnlock()
	if ok {
		return t, nil
	}
	t, err := f.parse(sub)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.cache[sub.Template] = t
	f.mu.Unlock()
	return t, nil
}

func (f *ResidueFactory) parse(sub *genome.Substrate) (*template, error) {
	invalid := func(msg string) error {
		return errors.New(errors.ErrCodeTemplateInvalid, msg).WithDetail(sub.Name + ": " + sub.Template)
	}
	mol, err := f.builder.Parse(sub.Template)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplateInvalid, "substrate template does not parse").WithDetail(sub.Name)
	}
	t := &template{mol: mol, ketone: chem.NoAtom, extender: chem.NoAtom, alpha: chem.NoAtom}
	var markers []chem.AtomID
	for _, id := range mol.Atoms() {
		el := mol.Element(id)
		if el != "I" && el != "F" {
			continue
		}
		nbs := mol.Neighbors(id)
		if len(nbs) != 1 {
			return nil, invalid("marker must have exactly one neighbour")
		}
		switch {
		case el == "I" && t.ketone == chem.NoAtom:
			t.ketone = nbs[0]
		case el == "F" && t.extender == chem.NoAtom:
			t.extender = nbs[0]
		default:
			return nil, invalid("duplicate marker " + el)
		}
		markers = append(markers, id)
	}
	if t.ketone == chem.NoAtom {
		return nil, invalid("template has no carbonyl marker")
	}
	for _, id := range markers {
		if err := mol.RemoveAtom(id); err != nil {
			return nil, err
		}
	}
	if mol.Element(t.ketone) != "C" || carbonylOxygen(mol, t.ketone) == chem.NoAtom {
		return nil, invalid("carbonyl marker is not on a C=O carbon")
	}
	for _, nb := range mol.Neighbors(t.ketone) {
		if mol.Element(nb) == "C" {
			t.alpha = nb
			break
		}
	}
	return t, nil
}

func carbonylOxygen(mol *chem.Molecule, c chem.AtomID) chem.AtomID {
	for _, nb := range mol.Neighbors(c) {
		if mol.Element(nb) == "O" && mol.BondOrder(c, nb) == chem.Double {
			return nb
		}
	}
	return chem.NoAtom
}

//Personal.AI order the ending
