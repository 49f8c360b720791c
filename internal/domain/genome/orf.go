package genome

// Strand is the coding direction of an ORF.
type Strand int

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// ORFType is the chemistry an ORF contributes, assigned by the classifier.
type ORFType string

const (
	ORFNRPS      ORFType = "NRPS"
	ORFPKS       ORFType = "PKS"
	ORFHybrid    ORFType = "HYBRID"
	ORFTailoring ORFType = "TAILORING"
	ORFInactive  ORFType = "INACTIVE"
)

// ORF is an open reading frame with its annotated domains in genomic order.
type ORF struct {
	Name    string
	Start   int
	End     int
	Strand  Strand
	Domains []*Domain
	Modules []*Module
	Type    ORFType
}

// HasDomains reports whether any domain was annotated.
func (o *ORF) HasDomains() bool { return len(o.Domains) > 0 }

// IsBiosynthetic reports whether the ORF carries a thiotemplated domain.
func (o *ORF) IsBiosynthetic() bool {
	for _, d := range o.Domains {
		if d.Type.IsBiosynthetic() {
			return true
		}
	}
	return false
}

// Has reports whether the ORF carries a domain of type t.
func (o *ORF) Has(t DomainType) bool {
	for _, d := range o.Domains {
		if d.Type == t {
			return true
		}
	}
	return false
}

// DomainsOf returns the domains of type t in genomic order.
func (o *ORF) DomainsOf(t DomainType) []*Domain {
	var out []*Domain
	for _, d := range o.Domains {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// LastThiotemplated returns the last thiotemplated domain or nil.
func (o *ORF) LastThiotemplated() *Domain {
	for i := len(o.Domains) - 1; i >= 0; i-- {
		if o.Domains[i].Type.IsBiosynthetic() {
			return o.Domains[i]
		}
	}
	return nil
}

// ActiveModules returns the active modules in order.
func (o *ORF) ActiveModules() []*Module {
	var out []*Module
	for _, m := range o.Modules {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// CountModules returns how many active modules satisfy pred.
func (o *ORF) CountModules(pred func(*Module) bool) int {
	n := 0
	for _, m := range o.Modules {
		if m.Active && pred(m) {
			n++
		}
	}
	return n
}

// Gap is the distance between the two intervals, zero when they overlap.
func Gap(aStart, aEnd, bStart, bEnd int) int {
	if bStart > aEnd {
		return bStart - aEnd
	}
	if aStart > bEnd {
		return aStart - bEnd
	}
	return 0
}

//Personal.AI order the ending
