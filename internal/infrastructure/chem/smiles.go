package chem

import (
	"strconv"
	"strings"

	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Parsing
// ─────────────────────────────────────────────────────────────────────────────

var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

var aromaticSubset = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

type ringOpen struct {
	atom  AtomID
	order BondOrder
}

type smilesParser struct {
	src     string
	pos     int
	mol     *Molecule
	prev    AtomID
	pending BondOrder
	stack   []AtomID
	rings   map[int]ringOpen
}

// ParseSMILES reads the organic subset of SMILES: bracket atoms with
// hydrogen counts and charges, branches, ring closures (including %nn), the
// bond symbols - = # : and components separated by ".".  Stereo marks are
// accepted and discarded.
func ParseSMILES(s string) (*Molecule, error) {
	p := &smilesParser{src: s, mol: New(), prev: NoAtom, rings: make(map[int]ringOpen)}
	if err := p.parse(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSMILESInvalid, "invalid SMILES").WithDetail(s)
	}
	return p.mol, nil
}

// MustParseSMILES panics on malformed input; for package-level templates.
func MustParseSMILES(s string) *Molecule {
	m, err := ParseSMILES(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (p *smilesParser) fail(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrCodeSMILESInvalid, "position %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *smilesParser) parse() error {
	if strings.TrimSpace(p.src) == "" {
		return p.fail("empty input")
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev == NoAtom {
				return p.fail("branch without a preceding atom")
			}
			p.stack = append(p.stack, p.prev)
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return p.fail("unbalanced ')'")
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.pos++
		case c == '.':
			p.prev = NoAtom
			p.pending = NoBond
			p.pos++
		case c == '-' || c == '/' || c == '\\':
			p.pending = Single
			p.pos++
		case c == '=':
			p.pending = Double
			p.pos++
		case c == '#':
			p.pending = Triple
			p.pos++
		case c == ':':
			p.pending = Aromatic
			p.pos++
		case c >= '0' && c <= '9':
			if err := p.ring(int(c - '0')); err != nil {
				return err
			}
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.src) {
				return p.fail("truncated ring number")
			}
			n, err := strconv.Atoi(p.src[p.pos+1 : p.pos+3])
			if err != nil {
				return p.fail("bad ring number %q", p.src[p.pos+1:p.pos+3])
			}
			if err := p.ring(n); err != nil {
				return err
			}
			p.pos += 3
		case c == '[':
			id, err := p.bracket()
			if err != nil {
				return err
			}
			if err := p.attach(id); err != nil {
				return err
			}
		default:
			id, err := p.organic()
			if err != nil {
				return err
			}
			if err := p.attach(id); err != nil {
				return err
			}
		}
	}
	if len(p.stack) != 0 {
		return p.fail("unclosed branch")
	}
	if len(p.rings) != 0 {
		return p.fail("unclosed ring bond")
	}
	if p.pending != NoBond {
		return p.fail("dangling bond symbol")
	}
	return nil
}

func (p *smilesParser) defaultOrder(a, b AtomID) BondOrder {
	if p.mol.Aromatic(a) && p.mol.Aromatic(b) {
		return Aromatic
	}
	return Single
}

func (p *smilesParser) attach(id AtomID) error {
	if p.prev != NoAtom {
		order := p.pending
		if order == NoBond {
			order = p.defaultOrder(p.prev, id)
		}
		if err := p.mol.link(p.prev, id, order); err != nil {
			return err
		}
	} else if p.pending != NoBond {
		return p.fail("bond symbol without a preceding atom")
	}
	p.pending = NoBond
	p.prev = id
	return nil
}

func (p *smilesParser) ring(n int) error {
	if p.prev == NoAtom {
		return p.fail("ring bond %d without an atom", n)
	}
	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = ringOpen{atom: p.prev, order: p.pending}
		p.pending = NoBond
		return nil
	}
	delete(p.rings, n)
	order := p.pending
	if order == NoBond {
		order = open.order
	}
	if order == NoBond {
		order = p.defaultOrder(open.atom, p.prev)
	}
	p.pending = NoBond
	return p.mol.link(open.atom, p.prev, order)
}

func (p *smilesParser) organic() (AtomID, error) {
	c := p.src[p.pos]
	if el, ok := aromaticSubset[c]; ok {
		p.pos++
		return p.mol.AddAtom(el, true), nil
	}
	if p.pos+1 < len(p.src) {
		two := p.src[p.pos : p.pos+2]
		if two == "Cl" || two == "Br" {
			p.pos += 2
			return p.mol.AddAtom(two, false), nil
		}
	}
	one := string(c)
	if !organicSubset[one] {
		return NoAtom, p.fail("unexpected character %q", c)
	}
	p.pos++
	return p.mol.AddAtom(one, false), nil
}

// bracket parses [isotope? symbol chirality? hcount? charge? class?].
func (p *smilesParser) bracket() (AtomID, error) {
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return NoAtom, p.fail("unclosed bracket atom")
	}
	body := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1

	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}
	if i >= len(body) {
		return NoAtom, p.fail("bracket atom without element")
	}

	var element string
	aromatic := false
	switch {
	case body[i] >= 'A' && body[i] <= 'Z':
		element = body[i : i+1]
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			element += body[i : i+1]
			i++
		}
	case strings.HasPrefix(body[i:], "se") || strings.HasPrefix(body[i:], "as"):
		element = strings.ToUpper(body[i:i+1]) + body[i+1:i+2]
		aromatic = true
		i += 2
	default:
		el, ok := aromaticSubset[body[i]]
		if !ok {
			return NoAtom, p.fail("bad bracket element %q", body)
		}
		element = el
		aromatic = true
		i++
	}

	for i < len(body) && body[i] == '@' {
		i++
	}

	hcount := 0
	if i < len(body) && body[i] == 'H' {
		i++
		hcount = 1
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j > i {
			hcount, _ = strconv.Atoi(body[i:j])
			i = j
		}
	}

	charge := 0
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sym := body[i]
		i++
		mag := 1
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j > i {
			mag, _ = strconv.Atoi(body[i:j])
			i = j
		} else {
			for i < len(body) && body[i] == sym {
				mag++
				i++
			}
		}
		charge = sign * mag
	}

	if i < len(body) && body[i] == ':' {
		i = len(body)
	}
	if i != len(body) {
		return NoAtom, p.fail("trailing characters in bracket atom %q", body)
	}
	return p.mol.AddBracketAtom(element, aromatic, hcount, charge), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Writing
// ─────────────────────────────────────────────────────────────────────────────

type smilesWriter struct {
	mol      *Molecule
	visited  map[AtomID]bool
	parent   map[AtomID]AtomID
	children map[AtomID][]AtomID
	rings    map[AtomID][]AtomID
	rank     map[AtomID]int
	seen     map[[2]AtomID]bool
	emitted  map[AtomID]bool
	open     map[[2]AtomID]int
	inUse    []bool
	b        strings.Builder
}

// SMILES writes a deterministic SMILES string.  Each component starts from
// its lowest handle, neighbours are visited in ascending handle order and
// back edges become ring closures numbered from 1.
func (m *Molecule) SMILES() string {
	w := &smilesWriter{
		mol:      m,
		visited:  make(map[AtomID]bool),
		parent:   make(map[AtomID]AtomID),
		children: make(map[AtomID][]AtomID),
		rings:    make(map[AtomID][]AtomID),
		rank:     make(map[AtomID]int),
		seen:     make(map[[2]AtomID]bool),
		emitted:  make(map[AtomID]bool),
		open:     make(map[[2]AtomID]int),
	}
	first := true
	for _, id := range m.Atoms() {
		if w.visited[id] {
			continue
		}
		w.parent[id] = NoAtom
		w.walk(id)
		if !first {
			w.b.WriteByte('.')
		}
		first = false
		w.emit(id)
	}
	return w.b.String()
}

func edgeKey(a, b AtomID) [2]AtomID {
	if a > b {
		a, b = b, a
	}
	return [2]AtomID{a, b}
}

func (w *smilesWriter) walk(v AtomID) {
	w.visited[v] = true
	w.rank[v] = len(w.rank)
	for _, nb := range w.mol.Neighbors(v) {
		if nb == w.parent[v] {
			continue
		}
		key := edgeKey(v, nb)
		if !w.visited[nb] {
			w.seen[key] = true
			w.parent[nb] = v
			w.children[v] = append(w.children[v], nb)
			w.walk(nb)
			continue
		}
		if !w.seen[key] {
			w.seen[key] = true
			w.rings[v] = append(w.rings[v], nb)
			w.rings[nb] = append(w.rings[nb], v)
		}
	}
}

func (w *smilesWriter) emit(v AtomID) {
	w.emitted[v] = true
	w.b.WriteString(w.atomSymbol(v))

	partners := append([]AtomID(nil), w.rings[v]...)
	for i := 1; i < len(partners); i++ {
		for j := i; j > 0 && w.rank[partners[j]] < w.rank[partners[j-1]]; j-- {
			partners[j], partners[j-1] = partners[j-1], partners[j]
		}
	}
	for _, nb := range partners {
		key := edgeKey(v, nb)
		if w.emitted[nb] {
			n := w.open[key]
			delete(w.open, key)
			w.inUse[n] = false
			w.writeRing(n)
			continue
		}
		n := w.allocRing()
		w.open[key] = n
		w.b.WriteString(w.bondSymbol(v, nb))
		w.writeRing(n)
	}

	kids := w.children[v]
	for i, c := range kids {
		branch := i < len(kids)-1
		if branch {
			w.b.WriteByte('(')
		}
		w.b.WriteString(w.bondSymbol(v, c))
		w.emit(c)
		if branch {
			w.b.WriteByte(')')
		}
	}
}

// allocRing returns the lowest ring number not currently open.
func (w *smilesWriter) allocRing() int {
	for n := 1; n < len(w.inUse); n++ {
		if !w.inUse[n] {
			w.inUse[n] = true
			return n
		}
	}
	if len(w.inUse) == 0 {
		w.inUse = append(w.inUse, false)
	}
	w.inUse = append(w.inUse, true)
	return len(w.inUse) - 1
}

func (w *smilesWriter) writeRing(n int) {
	if n < 10 {
		w.b.WriteByte(byte('0' + n))
		return
	}
	w.b.WriteByte('%')
	w.b.WriteString(strconv.Itoa(n))
}

func (w *smilesWriter) bondSymbol(a, b AtomID) string {
	both := w.mol.Aromatic(a) && w.mol.Aromatic(b)
	switch w.mol.BondOrder(a, b) {
	case Double:
		return "="
	case Triple:
		return "#"
	case Aromatic:
		if both {
			return ""
		}
		return ":"
	default:
		if both {
			return "-"
		}
		return ""
	}
}

func (w *smilesWriter) atomSymbol(id AtomID) string {
	a := w.mol.atoms[id]
	sym := a.element
	if a.aromatic {
		sym = strings.ToLower(sym)
	}
	if !a.bracket && a.charge == 0 && organicSubset[a.element] {
		return sym
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(sym)
	if h := w.mol.Hydrogens(id); h > 0 {
		b.WriteByte('H')
		if h > 1 {
			b.WriteString(strconv.Itoa(h))
		}
	}
	switch {
	case a.charge == 1:
		b.WriteByte('+')
	case a.charge == -1:
		b.WriteByte('-')
	case a.charge > 1:
		b.WriteString("+" + strconv.Itoa(a.charge))
	case a.charge < -1:
		b.WriteString(strconv.Itoa(a.charge))
	}
	b.WriteByte(']')
	return b.String()
}

//Personal.AI order the ending
