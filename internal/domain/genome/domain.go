// Package genome holds the data model shared by every stage of the assembly
// engine: annotated domains, ORFs, modules, clusters and the substrate
// catalogue.  It has no behaviour beyond queries over that data.
package genome

import (
	"sort"
	"strings"
)

// DomainType enumerates the catalytic functions a domain can carry.
type DomainType string

// Thiotemplated (assembly-line) domains.
const (
	Condensation        DomainType = "C"
	Heterocyclization   DomainType = "Cy"
	StarterCondensation DomainType = "Cs"
	Epimerization       DomainType = "E"
	Adenylation         DomainType = "A"
	AcylAdenylating     DomainType = "AL"
	Thiolation          DomainType = "T"
	Thioesterase        DomainType = "TE"
	Ketosynthase        DomainType = "KS"
	Acyltransferase     DomainType = "AT"
	Ketoreductase       DomainType = "KR"
	Dehydratase         DomainType = "DH"
	Enoylreductase      DomainType = "ER"
	NMethyltransferase  DomainType = "NMT"
	CMethyltransferase  DomainType = "CMT"
	OMethyltransferase  DomainType = "OMT"
	ThioesterReductase  DomainType = "R"
)

// Tailoring domains, usually on stand-alone ORFs.
const (
	Formyltransferase    DomainType = "FT"
	P450A                DomainType = "P450A"
	P450B                DomainType = "P450B"
	P450C                DomainType = "P450C"
	P450D                DomainType = "P450D"
	Halogenase           DomainType = "HAL"
	Glycosyltransferase  DomainType = "GTR"
	Carbamoyltransferase DomainType = "CAR"
	Sulfotransferase     DomainType = "SULF"
	Phosphotransferase   DomainType = "PHOS"
	ProlineDehydrogenase DomainType = "PRODH"
	Nitroreductase       DomainType = "NITRO"
	TrpDioxygenase       DomainType = "TDO"
	IPNSynthase          DomainType = "IPNS"
	IPNAcyltransferase   DomainType = "IAT"
)

// Auxiliary domains that mark passenger ORFs.
const (
	SugarBiosynthesis DomainType = "SUGAR"
	Resistance        DomainType = "RES"
	Regulator         DomainType = "REG"
)

// Family groups domain types by role.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyThiotemplated
	FamilyTailoring
	FamilyAuxiliary
)

var families = map[DomainType]Family{
	Condensation: FamilyThiotemplated, Heterocyclization: FamilyThiotemplated,
	StarterCondensation: FamilyThiotemplated, Epimerization: FamilyThiotemplated,
	Adenylation: FamilyThiotemplated, AcylAdenylating: FamilyThiotemplated,
	Thiolation: FamilyThiotemplated, Thioesterase: FamilyThiotemplated,
	Ketosynthase: FamilyThiotemplated, Acyltransferase: FamilyThiotemplated,
	Ketoreductase: FamilyThiotemplated, Dehydratase: FamilyThiotemplated,
	Enoylreductase: FamilyThiotemplated, NMethyltransferase: FamilyThiotemplated,
	CMethyltransferase: FamilyThiotemplated, OMethyltransferase: FamilyThiotemplated,
	ThioesterReductase: FamilyThiotemplated,

	Formyltransferase: FamilyTailoring, P450A: FamilyTailoring, P450B: FamilyTailoring,
	P450C: FamilyTailoring, P450D: FamilyTailoring, Halogenase: FamilyTailoring,
	Glycosyltransferase: FamilyTailoring, Carbamoyltransferase: FamilyTailoring,
	Sulfotransferase: FamilyTailoring, Phosphotransferase: FamilyTailoring,
	ProlineDehydrogenase: FamilyTailoring, Nitroreductase: FamilyTailoring,
	TrpDioxygenase: FamilyTailoring, IPNSynthase: FamilyTailoring, IPNAcyltransferase: FamilyTailoring,

	SugarBiosynthesis: FamilyAuxiliary, Resistance: FamilyAuxiliary, Regulator: FamilyAuxiliary,
}

// modifying lists every type that acts on a finished scaffold and therefore
// needs a reaction and an annotator.  It includes the in-module tailoring
// activities of the reductive loop, the methyltransferases, cyclization and
// epimerization.  An acyl-adenylating domain is both: it loads its own
// module, and outside an assembled module it acylates hydroxyls in trans.
var modifying = map[DomainType]bool{
	Heterocyclization: true, Epimerization: true,
	Ketoreductase: true, Dehydratase: true, Enoylreductase: true,
	NMethyltransferase: true, CMethyltransferase: true, OMethyltransferase: true,
	Formyltransferase: true, P450A: true, P450B: true, P450C: true, P450D: true,
	Halogenase: true, Glycosyltransferase: true, Carbamoyltransferase: true,
	Sulfotransferase: true, Phosphotransferase: true,
	ProlineDehydrogenase: true, Nitroreductase: true,
	TrpDioxygenase: true, IPNSynthase: true, IPNAcyltransferase: true,
	AcylAdenylating: true,
}

// ParseDomainType resolves a ledger label.  Matching is case-insensitive.
func ParseDomainType(s string) (DomainType, bool) {
	for t := range families {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// DomainTypes returns every known type in lexical order.
func DomainTypes() []DomainType {
	out := make([]DomainType, 0, len(families))
	for t := range families {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TailoringTypes returns every type that needs a reaction, in lexical order.
func TailoringTypes() []DomainType {
	out := make([]DomainType, 0, len(modifying))
	for t := range modifying {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t DomainType) String() string { return string(t) }

func (t DomainType) Family() Family { return families[t] }

// IsBiosynthetic reports whether the type seeds and widens clusters.
func (t DomainType) IsBiosynthetic() bool { return families[t] == FamilyThiotemplated }

// IsTailoring reports whether the type modifies the scaffold.
func (t DomainType) IsTailoring() bool { return modifying[t] }

// IsCondensation covers the C-family start triggers.
func (t DomainType) IsCondensation() bool {
	return t == Condensation || t == Heterocyclization || t == StarterCondensation
}

// IsThiolationOrTE covers extension-module terminators.
func (t DomainType) IsThiolationOrTE() bool { return t == Thiolation || t == Thioesterase }

// IsP450 covers the crosslinking cytochromes.
func (t DomainType) IsP450() bool {
	return t == P450A || t == P450B || t == P450C || t == P450D
}

// ─────────────────────────────────────────────────────────────────────────────
// Domain
// ─────────────────────────────────────────────────────────────────────────────

// ScoredSubstrate is one ranked specificity prediction.
type ScoredSubstrate struct {
	Substrate *Substrate
	Score     float64
}

// Homolog is an external homology hit carried through for reporting.
type Homolog struct {
	Name     string
	Identity float64
}

// Domain is one annotated catalytic unit.  Substrates are ranked best first.
type Domain struct {
	Type       DomainType
	Start      int
	End        int
	Score      float64
	Substrates []ScoredSubstrate
	Homologs   []Homolog
}

// TopSubstrate returns the best-ranked substrate or nil.
func (d *Domain) TopSubstrate() *Substrate {
	if d == nil || len(d.Substrates) == 0 {
		return nil
	}
	return d.Substrates[0].Substrate
}

// RankSubstrates orders the candidates by descending score keeping ties in
// input order.
func (d *Domain) RankSubstrates() {
	sort.SliceStable(d.Substrates, func(i, j int) bool {
		return d.Substrates[i].Score > d.Substrates[j].Score
	})
}

// Less orders domains by (start, end, type).
func (d *Domain) Less(o *Domain) bool {
	if d.Start != o.Start {
		return d.Start < o.Start
	}
	if d.End != o.End {
		return d.End < o.End
	}
	return d.Type < o.Type
}

//Personal.AI order the ending
