package genome

import "fmt"

// ModuleKind is the assembly-line role of a parsed module.
type ModuleKind string

const (
	KindAdenylation               ModuleKind = "ADENYLATION"
	KindAcylAdenylate             ModuleKind = "ACYL_ADENYLATE"
	KindTransAdenylation          ModuleKind = "TRANS_ADENYLATION"
	KindTransAdenylationInsertion ModuleKind = "TRANS_ADENYLATION_INSERTION"
	KindAcyltransferase           ModuleKind = "ACYLTRANSFERASE"
	KindTransAT                   ModuleKind = "TRANS_AT"
	KindTransATInsertion          ModuleKind = "TRANS_AT_INSERTION"
	KindCStarter                  ModuleKind = "C_STARTER"
)

// ModuleKinds lists every kind in declaration order.
func ModuleKinds() []ModuleKind {
	return []ModuleKind{
		KindAdenylation, KindAcylAdenylate, KindTransAdenylation, KindTransAdenylationInsertion,
		KindAcyltransferase, KindTransAT, KindTransATInsertion, KindCStarter,
	}
}

func (k ModuleKind) String() string { return string(k) }

// IsAdenylation covers the amino-acid loading kinds.
func (k ModuleKind) IsAdenylation() bool {
	return k == KindAdenylation || k == KindTransAdenylation || k == KindTransAdenylationInsertion
}

// IsAcyltransferase covers the polyketide kinds.
func (k ModuleKind) IsAcyltransferase() bool {
	return k == KindAcyltransferase || k == KindTransAT || k == KindTransATInsertion
}

// Module is a contiguous run of one ORF's domains.  First and Last index into
// the owning ORF's Domains slice and are inclusive.
type Module struct {
	Kind      ModuleKind
	ORF       string
	First     int
	Last      int
	Domains   []*Domain
	Active    bool
	CanExtend bool

	// Donor supplies the loading domain for insertion modules that borrow
	// their substrate from a stand-alone A or AT.
	Donor *Domain
}

// NewModule returns an active, extendable module over orf.Domains[first:last+1].
func NewModule(kind ModuleKind, orf *ORF, first, last int) *Module {
	return &Module{
		Kind:      kind,
		ORF:       orf.Name,
		First:     first,
		Last:      last,
		Domains:   orf.Domains[first : last+1],
		Active:    true,
		CanExtend: true,
	}
}

// Start is the genomic start of the first domain.
func (m *Module) Start() int { return m.Domains[0].Start }

// End is the genomic end of the last domain.
func (m *Module) End() int { return m.Domains[len(m.Domains)-1].End }

// Width is the number of domains covered.
func (m *Module) Width() int { return m.Last - m.First + 1 }

// Overlaps reports whether the two spans share a domain of the same ORF.
func (m *Module) Overlaps(o *Module) bool {
	return m.ORF == o.ORF && m.First <= o.Last && o.First <= m.Last
}

// Contains reports whether d is one of the module's domains.
func (m *Module) Contains(d *Domain) bool {
	for _, x := range m.Domains {
		if x == d {
			return true
		}
	}
	return false
}

// Has reports whether the module carries a domain of type t.
func (m *Module) Has(t DomainType) bool { return m.Find(t) != nil }

// Find returns the first domain of type t or nil.
func (m *Module) Find(t DomainType) *Domain {
	for _, d := range m.Domains {
		if d.Type == t {
			return d
		}
	}
	return nil
}

// ScaffoldDomain returns the domain that selects the module's substrate.
func (m *Module) ScaffoldDomain() *Domain {
	if m.Donor != nil {
		return m.Donor
	}
	switch m.Kind {
	case KindAcylAdenylate:
		if d := m.Find(AcylAdenylating); d != nil {
			return d
		}
		return m.Find(Adenylation)
	case KindAdenylation, KindTransAdenylation, KindTransAdenylationInsertion:
		return m.Find(Adenylation)
	case KindAcyltransferase, KindTransAT:
		return m.Find(Acyltransferase)
	case KindCStarter:
		return m.Find(StarterCondensation)
	}
	return nil
}

// Substrate returns the top-ranked substrate of the scaffold domain.  Modules
// without a prediction fall back to malonyl when they are polyketide modules.
func (m *Module) Substrate() *Substrate {
	if s := m.ScaffoldDomain().TopSubstrate(); s != nil {
		return s
	}
	if m.Kind.IsAcyltransferase() {
		return Substrates().Malonyl()
	}
	return nil
}

// WithDonor returns a copy of m that loads from d.
func (m *Module) WithDonor(d *Domain) *Module {
	c := *m
	c.Donor = d
	return &c
}

func (m *Module) String() string {
	return fmt.Sprintf("%s[%s:%d-%d]", m.Kind, m.ORF, m.First, m.Last)
}

//Personal.AI order the ending
