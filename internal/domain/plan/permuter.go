package plan

import (
	"sort"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
)

// Permutation is one ordered list of active modules.
type Permutation struct {
	ORFs    []string
	Modules []*genome.Module
}

// permuter enumerates module orderings for one cluster in a fixed
// lexicographic order.
type permuter struct {
	cl     *genome.Cluster
	limit  int
	orfs   []*genome.ORF // candidate ORFs in genomic order
	start  *genome.ORF
	end    *genome.ORF
	transA []*genome.Module
}

func newPermuter(cl *genome.Cluster, limit int) *permuter {
	p := &permuter{cl: cl, limit: limit}
	for _, o := range cl.ORFs {
		active := o.ActiveModules()
		if len(active) == 0 {
			continue
		}
		if allKind(active, genome.KindTransAdenylation) {
			p.transA = append(p.transA, active...)
			continue
		}
		p.orfs = append(p.orfs, o)
	}
	sort.SliceStable(p.orfs, func(i, j int) bool { return p.orfs[i].Start < p.orfs[j].Start })
	p.start = p.startORF()
	p.end = p.endORF()
	if p.start != nil && p.start == p.end {
		p.end = nil
	}
	return p
}

func allKind(ms []*genome.Module, k genome.ModuleKind) bool {
	for _, m := range ms {
		if m.Kind != k {
			return false
		}
	}
	return true
}

func isFAAL(m *genome.Module) bool {
	return m.Kind == genome.KindAcylAdenylate && !m.CanExtend
}

// startORF prefers an FAAL, then a C-starter, then a starter AT.  Two or more
// FAAL starters leave the start open.
func (p *permuter) startORF() *genome.ORF {
	var faal []*genome.ORF
	for _, o := range p.orfs {
		if o.CountModules(isFAAL) > 0 {
			faal = append(faal, o)
		}
	}
	switch {
	case len(faal) == 1:
		return faal[0]
	case len(faal) > 1:
		return nil
	}
	for _, o := range p.orfs {
		if o.CountModules(func(m *genome.Module) bool { return m.Kind == genome.KindCStarter }) > 0 {
			return o
		}
	}
	for _, o := range p.orfs {
		if first := o.ActiveModules()[0]; first.Kind == genome.KindAcyltransferase && first.First == 0 &&
			o.Domains[0].Type == genome.Acyltransferase {
			return o
		}
	}
	return nil
}

// endORF is the single ORF whose last thiotemplated domain is a TE.
func (p *permuter) endORF() *genome.ORF {
	var end *genome.ORF
	for _, o := range p.orfs {
		if d := o.LastThiotemplated(); d != nil && d.Type == genome.Thioesterase {
			if end != nil {
				return nil
			}
			end = o
		}
	}
	return end
}

func (p *permuter) colinear() ([]*genome.ORF, bool) {
	if len(p.orfs) == 0 {
		return nil, false
	}
	strand := p.orfs[0].Strand
	for _, o := range p.orfs[1:] {
		if o.Strand != strand {
			return nil, false
		}
	}
	order := make([]*genome.ORF, len(p.orfs))
	copy(order, p.orfs)
	if strand == genome.Reverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	if p.start != nil && order[0] != p.start {
		return nil, false
	}
	if p.end != nil && order[len(order)-1] != p.end {
		return nil, false
	}
	return order, true
}

// rawCount is the number of orderings before filtering.
func (p *permuter) rawCount() int64 {
	if _, ok := p.colinear(); ok {
		return p.variants()
	}
	middle := len(p.orfs)
	if p.start != nil {
		middle--
	}
	if p.end != nil {
		middle--
	}
	return satMul(factorial(middle), p.variants())
}

func (p *permuter) variants() int64 {
	if len(p.transA) == 0 {
		return 1
	}
	n := 0
	for _, m := range p.cl.ActiveModules() {
		if m.Kind == genome.KindTransAdenylationInsertion {
			n++
		}
	}
	return pow(int64(len(p.transA)), n)
}

// enumerate returns the kept permutations in order and the counter.  The
// limit bounds the candidates considered, filtered or not, so a cluster
// whose orderings are mostly rejected still stops after limit candidates.
func (p *permuter) enumerate() ([]Permutation, Counter) {
	c := newCounter(p.limit)
	c.AddSeen(p.rawCount())
	var out []Permutation
	considered := int64(0)
	emit := func(order []*genome.ORF) bool {
		if considered >= int64(p.limit) {
			c.Truncated = true
			return false
		}
		considered = satAdd(considered, p.variants())
		for _, perm := range p.expand(order) {
			if !c.Take() {
				return false
			}
			out = append(out, perm)
		}
		return true
	}

	if order, ok := p.colinear(); ok {
		emit(order)
		return out, c
	}

	var middle []*genome.ORF
	for _, o := range p.orfs {
		if o != p.start && o != p.end {
			middle = append(middle, o)
		}
	}
	idx := make([]int, len(middle))
	for i := range idx {
		idx[i] = i
	}
	for {
		order := make([]*genome.ORF, 0, len(p.orfs))
		if p.start != nil {
			order = append(order, p.start)
		}
		for _, i := range idx {
			order = append(order, middle[i])
		}
		if p.end != nil {
			order = append(order, p.end)
		}
		if !emit(order) || !nextPermutation(idx) {
			break
		}
	}
	if c.Seen < c.Kept {
		c.Seen = c.Kept
	}
	return out, c
}

// expand flattens an ORF order into module lists, applies the starter
// filters and substitutes trans-adenylation insertions.
func (p *permuter) expand(order []*genome.ORF) []Permutation {
	names := make([]string, len(order))
	var mods []*genome.Module
	for i, o := range order {
		names[i] = o.Name
		mods = append(mods, o.ActiveModules()...)
	}

	faal := 0
	for _, m := range mods {
		if isFAAL(m) {
			faal++
		}
	}
	if faal > 1 && (len(mods) == 0 || mods[0].Kind != genome.KindAcylAdenylate) {
		return nil
	}

	kept := mods[:0:0]
	var insertions []int
	for i, m := range mods {
		if i > 0 && !m.CanExtend {
			continue
		}
		if m.Kind == genome.KindTransAdenylationInsertion {
			if len(p.transA) == 0 {
				continue
			}
			insertions = append(insertions, len(kept))
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return nil
	}
	if len(insertions) == 0 {
		return []Permutation{{ORFs: names, Modules: kept}}
	}

	// odometer over insertion sites, last site fastest
	choice := make([]int, len(insertions))
	var out []Permutation
	for {
		ms := make([]*genome.Module, len(kept))
		copy(ms, kept)
		for k, pos := range insertions {
			donor := p.transA[choice[k]]
			ms[pos] = kept[pos].WithDonor(donor.ScaffoldDomain())
		}
		out = append(out, Permutation{ORFs: names, Modules: ms})
		k := len(choice) - 1
		for ; k >= 0; k-- {
			choice[k]++
			if choice[k] < len(p.transA) {
				break
			}
			choice[k] = 0
		}
		if k < 0 {
			return out
		}
	}
}

// nextPermutation advances idx to the next lexicographic ordering and
// reports false after the last one.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

//Personal.AI order the ending
