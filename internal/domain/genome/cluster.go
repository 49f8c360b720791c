package genome

// ClusterType is a chemical class tag.
type ClusterType string

const (
	ClusterNRPS          ClusterType = "NRPS"
	ClusterPKS           ClusterType = "PKS"
	ClusterThiotemplated ClusterType = "THIOTEMPLATED"
)

// Contig is one genomic sequence and its ORFs.
type Contig struct {
	Name string
	ORFs []*ORF
}

// Cluster is a group of ORFs within proximity of each other.
type Cluster struct {
	Index  int
	Contig string
	Start  int
	End    int
	ORFs   []*ORF
	Types  []ClusterType
}

// HasType reports whether t was assigned.
func (c *Cluster) HasType(t ClusterType) bool {
	for _, x := range c.Types {
		if x == t {
			return true
		}
	}
	return false
}

// Modules returns every module in ORF order, active or not.
func (c *Cluster) Modules() []*Module {
	var out []*Module
	for _, o := range c.ORFs {
		out = append(out, o.Modules...)
	}
	return out
}

// ActiveModules returns the active modules in ORF order.
func (c *Cluster) ActiveModules() []*Module {
	var out []*Module
	for _, o := range c.ORFs {
		out = append(out, o.ActiveModules()...)
	}
	return out
}

// ModulesOf returns the active modules of kind k.
func (c *Cluster) ModulesOf(k ModuleKind) []*Module {
	var out []*Module
	for _, m := range c.ActiveModules() {
		if m.Kind == k {
			out = append(out, m)
		}
	}
	return out
}

// Domains returns every domain in ORF order.
func (c *Cluster) Domains() []*Domain {
	var out []*Domain
	for _, o := range c.ORFs {
		out = append(out, o.Domains...)
	}
	return out
}

// Has reports whether any ORF carries a domain of type t.
func (c *Cluster) Has(t DomainType) bool {
	for _, o := range c.ORFs {
		if o.Has(t) {
			return true
		}
	}
	return false
}

// TailoringDomains returns every domain that modifies the scaffold.
func (c *Cluster) TailoringDomains() []*Domain {
	var out []*Domain
	for _, d := range c.Domains() {
		if d.Type.IsTailoring() {
			out = append(out, d)
		}
	}
	return out
}

// ORFOf returns the ORF that owns m, or nil.
func (c *Cluster) ORFOf(m *Module) *ORF {
	for _, o := range c.ORFs {
		if o.Name == m.ORF {
			return o
		}
	}
	return nil
}

// ModuleOf returns the module containing d, or nil.
func (c *Cluster) ModuleOf(d *Domain) *Module {
	for _, m := range c.Modules() {
		if m.Contains(d) {
			return m
		}
	}
	return nil
}

// ModuleCounts tallies active modules per kind.
func (c *Cluster) ModuleCounts() map[string]int {
	out := make(map[string]int)
	for _, m := range c.ActiveModules() {
		out[string(m.Kind)]++
	}
	return out
}

// TypeNames returns the type tags as strings.
func (c *Cluster) TypeNames() []string {
	out := make([]string, len(c.Types))
	for i, t := range c.Types {
		out[i] = string(t)
	}
	return out
}

//Personal.AI order the ending
