// Package chem is a small arena-backed molecular graph.  Atoms are addressed
// by AtomID handles that stay valid until the atom is removed; removed slots
// are tombstoned and never reused, so handles held by callers cannot alias a
// later atom.
package chem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// AtomID is a handle into one Molecule.
type AtomID int32

// NoAtom is the zero handle returned when a lookup fails.
const NoAtom AtomID = -1

// BondOrder is the multiplicity of a bond.
type BondOrder uint8

const (
	NoBond   BondOrder = 0
	Single   BondOrder = 1
	Double   BondOrder = 2
	Triple   BondOrder = 3
	Aromatic BondOrder = 4
)

// valence contribution of a bond order when counting implicit hydrogens.
func (o BondOrder) valence() int {
	if o == Aromatic {
		return 1
	}
	return int(o)
}

func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	default:
		return "none"
	}
}

var defaultValences = map[string][]int{
	"B": {3}, "C": {4}, "N": {3, 5}, "O": {2}, "P": {3, 5}, "S": {2, 4, 6},
	"F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
}

type atom struct {
	element  string
	aromatic bool
	charge   int
	// bracket atoms carry an explicit hydrogen count in hcount.
	bracket bool
	hcount  int
	alive   bool
}

// Molecule is a mutable molecular graph.  It is not safe for concurrent use.
type Molecule struct {
	atoms []atom
	adj   []map[AtomID]BondOrder
	live  int
}

// New returns an empty molecule.
func New() *Molecule { return &Molecule{} }

func (m *Molecule) valid(id AtomID) bool {
	return id >= 0 && int(id) < len(m.atoms) && m.atoms[id].alive
}

func (m *Molecule) mustAtom(id AtomID) (*atom, error) {
	if !m.valid(id) {
		return nil, errors.Newf(errors.ErrCodeBondFailed, "atom %d does not exist", id)
	}
	return &m.atoms[id], nil
}

// AddAtom appends a non-bracket atom whose hydrogens are implicit.
func (m *Molecule) AddAtom(element string, aromatic bool) AtomID {
	return m.addAtom(atom{element: element, aromatic: aromatic, alive: true})
}

// AddBracketAtom appends an atom with an explicit hydrogen count and charge.
func (m *Molecule) AddBracketAtom(element string, aromatic bool, hcount, charge int) AtomID {
	return m.addAtom(atom{element: element, aromatic: aromatic, bracket: true, hcount: hcount, charge: charge, alive: true})
}

func (m *Molecule) addAtom(a atom) AtomID {
	id := AtomID(len(m.atoms))
	m.atoms = append(m.atoms, a)
	m.adj = append(m.adj, make(map[AtomID]BondOrder, 4))
	m.live++
	return id
}

// RemoveAtom deletes an atom and every bond it takes part in.
func (m *Molecule) RemoveAtom(id AtomID) error {
	if _, err := m.mustAtom(id); err != nil {
		return err
	}
	for nb := range m.adj[id] {
		m.detach(id, nb)
	}
	m.atoms[id].alive = false
	m.adj[id] = nil
	m.live--
	return nil
}

// AddBond joins two distinct, unbonded atoms.  Explicit hydrogens of bracket
// atoms are consumed by the new bond.
func (m *Molecule) AddBond(a, b AtomID, order BondOrder) error {
	if a == b {
		return errors.Newf(errors.ErrCodeBondFailed, "cannot bond atom %d to itself", a)
	}
	if order == NoBond {
		return errors.New(errors.ErrCodeBondFailed, "bond order must be set")
	}
	aa, err := m.mustAtom(a)
	if err != nil {
		return err
	}
	ab, err := m.mustAtom(b)
	if err != nil {
		return err
	}
	if _, ok := m.adj[a][b]; ok {
		return errors.Newf(errors.ErrCodeBondFailed, "atoms %d and %d are already bonded", a, b)
	}
	m.adj[a][b] = order
	m.adj[b][a] = order
	consumeH(aa, order.valence())
	consumeH(ab, order.valence())
	return nil
}

// link bonds two atoms without touching explicit hydrogen counts; the parser
// uses it because bracket counts are already final.
func (m *Molecule) link(a, b AtomID, order BondOrder) error {
	if a == b || !m.valid(a) || !m.valid(b) {
		return errors.Newf(errors.ErrCodeBondFailed, "cannot bond atoms %d and %d", a, b)
	}
	if _, ok := m.adj[a][b]; ok {
		return errors.Newf(errors.ErrCodeBondFailed, "atoms %d and %d are already bonded", a, b)
	}
	m.adj[a][b] = order
	m.adj[b][a] = order
	return nil
}

// RemoveBond breaks an existing bond.
func (m *Molecule) RemoveBond(a, b AtomID) error {
	if m.BondOrder(a, b) == NoBond {
		return errors.Newf(errors.ErrCodeBondFailed, "atoms %d and %d are not bonded", a, b)
	}
	m.detach(a, b)
	return nil
}

func (m *Molecule) detach(a, b AtomID) {
	order := m.adj[a][b]
	delete(m.adj[a], b)
	delete(m.adj[b], a)
	releaseH(&m.atoms[a], order.valence())
	releaseH(&m.atoms[b], order.valence())
}

func consumeH(a *atom, n int) {
	if a.bracket {
		a.hcount -= n
		if a.hcount < 0 {
			a.hcount = 0
		}
	}
}

// releaseH only restores hydrogens on bracket atoms that had some, so that
// charged atoms such as [O-] keep their bare form.
func releaseH(a *atom, n int) {
	if a.bracket && a.hcount > 0 {
		a.hcount += n
	}
}

// SetBondOrder changes the order of an existing bond.
func (m *Molecule) SetBondOrder(a, b AtomID, order BondOrder) error {
	old := m.BondOrder(a, b)
	if old == NoBond {
		return errors.Newf(errors.ErrCodeBondFailed, "atoms %d and %d are not bonded", a, b)
	}
	if order == NoBond {
		return m.RemoveBond(a, b)
	}
	m.adj[a][b] = order
	m.adj[b][a] = order
	if delta := order.valence() - old.valence(); delta > 0 {
		consumeH(&m.atoms[a], delta)
		consumeH(&m.atoms[b], delta)
	} else if delta < 0 {
		releaseH(&m.atoms[a], -delta)
		releaseH(&m.atoms[b], -delta)
	}
	return nil
}

// BondOrder returns NoBond when a and b are not bonded.
func (m *Molecule) BondOrder(a, b AtomID) BondOrder {
	if !m.valid(a) || !m.valid(b) {
		return NoBond
	}
	return m.adj[a][b]
}

// Neighbors returns the bonded atoms of id in ascending handle order.
func (m *Molecule) Neighbors(id AtomID) []AtomID {
	if !m.valid(id) {
		return nil
	}
	out := make([]AtomID, 0, len(m.adj[id]))
	for nb := range m.adj[id] {
		out = append(out, nb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degree is the number of bonded neighbours.
func (m *Molecule) Degree(id AtomID) int {
	if !m.valid(id) {
		return 0
	}
	return len(m.adj[id])
}

func (m *Molecule) Exists(id AtomID) bool { return m.valid(id) }

// Element returns "" for a removed atom.
func (m *Molecule) Element(id AtomID) string {
	if !m.valid(id) {
		return ""
	}
	return m.atoms[id].element
}

func (m *Molecule) Aromatic(id AtomID) bool {
	return m.valid(id) && m.atoms[id].aromatic
}

func (m *Molecule) Charge(id AtomID) int {
	if !m.valid(id) {
		return 0
	}
	return m.atoms[id].charge
}

// SetCharge marks the atom as bracketed so the charge survives a round trip.
func (m *Molecule) SetCharge(id AtomID, charge int) error {
	a, err := m.mustAtom(id)
	if err != nil {
		return err
	}
	if !a.bracket {
		a.hcount = m.implicitH(id)
		a.bracket = true
	}
	a.charge = charge
	return nil
}

// Normalize drops an atom's explicit hydrogen count and charge so that its
// hydrogens are derived from the default valence again.
func (m *Molecule) Normalize(id AtomID) error {
	a, err := m.mustAtom(id)
	if err != nil {
		return err
	}
	a.bracket = false
	a.hcount = 0
	a.charge = 0
	return nil
}

// Hydrogens returns the explicit count of a bracket atom, or the implicit
// count from the lowest default valence that fits the bonds otherwise.
func (m *Molecule) Hydrogens(id AtomID) int {
	if !m.valid(id) {
		return 0
	}
	a := m.atoms[id]
	if a.bracket {
		return a.hcount
	}
	return m.implicitH(id)
}

func (m *Molecule) implicitH(id AtomID) int {
	a := m.atoms[id]
	used := 0
	for _, o := range m.adj[id] {
		used += o.valence()
	}
	if a.aromatic {
		used++
	}
	for _, v := range defaultValences[a.element] {
		if v >= used {
			return v - used
		}
	}
	return 0
}

// Atoms returns every live handle in ascending order.
func (m *Molecule) Atoms() []AtomID {
	out := make([]AtomID, 0, m.live)
	for i := range m.atoms {
		if m.atoms[i].alive {
			out = append(out, AtomID(i))
		}
	}
	return out
}

// AtomCount is the number of live heavy atoms.
func (m *Molecule) AtomCount() int { return m.live }

// BondCount is the number of bonds between live atoms.
func (m *Molecule) BondCount() int {
	n := 0
	for i := range m.adj {
		n += len(m.adj[i])
	}
	return n / 2
}

// Merge copies every live atom and bond of other into m and returns the
// mapping from other's handles to the new handles in m.
func (m *Molecule) Merge(other *Molecule) map[AtomID]AtomID {
	mapping := make(map[AtomID]AtomID, other.live)
	for _, id := range other.Atoms() {
		a := other.atoms[id]
		mapping[id] = m.addAtom(a)
	}
	for _, id := range other.Atoms() {
		for nb, o := range other.adj[id] {
			if id < nb {
				m.adj[mapping[id]][mapping[nb]] = o
				m.adj[mapping[nb]][mapping[id]] = o
			}
		}
	}
	return mapping
}

// Clone returns an independent deep copy with identical handles.
func (m *Molecule) Clone() *Molecule {
	c := &Molecule{
		atoms: make([]atom, len(m.atoms)),
		adj:   make([]map[AtomID]BondOrder, len(m.adj)),
		live:  m.live,
	}
	copy(c.atoms, m.atoms)
	for i, nbs := range m.adj {
		if nbs == nil {
			continue
		}
		c.adj[i] = make(map[AtomID]BondOrder, len(nbs))
		for k, v := range nbs {
			c.adj[i][k] = v
		}
	}
	return c
}

// Formula returns the molecular formula in Hill order.
func (m *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, id := range m.Atoms() {
		counts[m.atoms[id].element]++
		if h := m.Hydrogens(id); h > 0 {
			counts["H"] += h
		}
	}
	var b strings.Builder
	write := func(el string) {
		n := counts[el]
		if n == 0 {
			return
		}
		b.WriteString(el)
		if n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
		delete(counts, el)
	}
	if counts["C"] > 0 {
		write("C")
		write("H")
	}
	rest := make([]string, 0, len(counts))
	for el := range counts {
		rest = append(rest, el)
	}
	sort.Strings(rest)
	for _, el := range rest {
		write(el)
	}
	return b.String()
}

func (m *Molecule) String() string {
	return fmt.Sprintf("Molecule(%d atoms, %d bonds)", m.AtomCount(), m.BondCount())
}

//Personal.AI order the ending
