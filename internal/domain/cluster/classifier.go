package cluster

import (
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
)

// Classifier adjusts parsed modules to the cluster context and assigns ORF
// and cluster types.
type Classifier struct {
	log logging.Logger
}

func NewClassifier(log logging.Logger) *Classifier {
	return &Classifier{log: logging.OrNop(log).Named("classifier")}
}

// Classify runs the module checks in order and types the cluster.  It returns
// false when the cluster has no active module or no type tag and should be
// dropped.
func (c *Classifier) Classify(cl *genome.Cluster) bool {
	checkPyrroleModules(cl)
	checkTransAdenylationModules(cl)
	checkTransAcyltransferaseModules(cl)
	setExtendability(cl)
	checkStarterModules(cl)

	for _, o := range cl.ORFs {
		o.Type = orfType(o)
	}
	cl.Types = clusterTypes(cl)

	log := c.log.With(logging.Cluster(cl.Index), logging.String("contig", cl.Contig))
	if len(cl.ActiveModules()) == 0 {
		log.Debug("cluster dropped: no active modules")
		return false
	}
	if len(cl.Types) == 0 {
		log.Debug("cluster dropped: untyped")
		return false
	}
	log.Debug("cluster classified", logging.Strings("types", cl.TypeNames()))
	return true
}

// ClassifyAll returns the clusters that survive classification.
func (c *Classifier) ClassifyAll(clusters []*genome.Cluster) []*genome.Cluster {
	var out []*genome.Cluster
	for _, cl := range clusters {
		if c.Classify(cl) {
			out = append(out, cl)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Module checks
// ─────────────────────────────────────────────────────────────────────────────

func isPyrroleModule(m *genome.Module) bool {
	return m.Kind == genome.KindAcylAdenylate && m.Substrate().Is(genome.FlagPyrrole)
}

// checkPyrroleModules removes pyrrole starters when nothing can oxidise the
// prolyl unit.
func checkPyrroleModules(cl *genome.Cluster) {
	if cl.Has(genome.ProlineDehydrogenase) {
		return
	}
	for _, o := range cl.ORFs {
		kept := o.Modules[:0]
		for _, m := range o.Modules {
			if !isPyrroleModule(m) {
				kept = append(kept, m)
			}
		}
		o.Modules = kept
	}
}

// checkTransAdenylationModules keeps a single insertion site and turns
// trans-adenylation modules that cannot act in trans into plain ones.
func checkTransAdenylationModules(cl *genome.Cluster) {
	insertions := cl.ModulesOf(genome.KindTransAdenylationInsertion)
	for _, m := range insertions[min(1, len(insertions)):] {
		m.Active = false
	}
	for _, o := range cl.ORFs {
		for _, m := range o.Modules {
			if m.Kind != genome.KindTransAdenylation {
				continue
			}
			if len(o.Modules) > 1 || len(insertions) == 0 {
				m.Kind = genome.KindAdenylation
			}
		}
	}
}

// checkTransAcyltransferaseModules lets insertion modules borrow the
// stand-alone AT, and disables them when there is none.  The stand-alone AT
// module itself never contributes a residue.
func checkTransAcyltransferaseModules(cl *genome.Cluster) {
	donors := cl.ModulesOf(genome.KindTransAT)
	for _, m := range cl.ModulesOf(genome.KindTransATInsertion) {
		if len(donors) == 0 {
			m.Active = false
			continue
		}
		m.Donor = donors[0].ScaffoldDomain()
	}
	for _, m := range donors {
		m.Active = false
	}
}

// setExtendability marks modules whose substrate has no extender atom.
func setExtendability(cl *genome.Cluster) {
	for _, m := range cl.Modules() {
		if s := m.Substrate(); s != nil && !s.CanExtend() {
			m.CanExtend = false
		}
	}
}

// checkStarterModules prefers an FAAL starter over a C-starter.
func checkStarterModules(cl *genome.Cluster) {
	faal := false
	for _, m := range cl.ModulesOf(genome.KindAcylAdenylate) {
		if !m.CanExtend {
			faal = true
			break
		}
	}
	if !faal {
		return
	}
	for _, m := range cl.ModulesOf(genome.KindCStarter) {
		m.Active = false
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Typing
// ─────────────────────────────────────────────────────────────────────────────

func isPeptideModule(m *genome.Module) bool {
	return m.Kind.IsAdenylation() || m.Kind == genome.KindAcylAdenylate
}

func isPolyketideModule(m *genome.Module) bool { return m.Kind.IsAcyltransferase() }

func orfType(o *genome.ORF) genome.ORFType {
	nrps := o.CountModules(isPeptideModule)
	pks := o.CountModules(isPolyketideModule)
	switch {
	case nrps > 0 && pks > 0:
		return genome.ORFHybrid
	case nrps > 0:
		return genome.ORFNRPS
	case pks > 0:
		return genome.ORFPKS
	}
	for _, d := range o.Domains {
		if d.Type.IsTailoring() {
			return genome.ORFTailoring
		}
	}
	return genome.ORFInactive
}

func clusterTypes(cl *genome.Cluster) []genome.ClusterType {
	var nrps, pks bool
	for _, o := range cl.ORFs {
		switch o.Type {
		case genome.ORFNRPS:
			nrps = true
		case genome.ORFPKS:
			pks = true
		case genome.ORFHybrid:
			nrps, pks = true, true
		}
	}
	var out []genome.ClusterType
	if nrps {
		out = append(out, genome.ClusterNRPS)
	}
	if pks {
		out = append(out, genome.ClusterPKS)
	}
	if nrps || pks {
		return out
	}
	loader := cl.Has(genome.Adenylation) || cl.Has(genome.AcylAdenylating) ||
		cl.Has(genome.Acyltransferase) || cl.Has(genome.StarterCondensation)
	backbone := cl.Has(genome.Condensation) || cl.Has(genome.Ketosynthase)
	if loader && backbone {
		out = append(out, genome.ClusterThiotemplated)
	}
	return out
}

//Personal.AI order the ending
