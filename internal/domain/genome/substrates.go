package genome

import (
	"sort"
	"strings"
	"sync"
)

// SubstrateFlag marks chemical features the annotators test for.
type SubstrateFlag uint16

const (
	FlagHydroxyl SubstrateFlag = 1 << iota
	FlagAromatic
	FlagPhenolic
	FlagMalonyl
	FlagAlphaKeto
	FlagStarter
	FlagProline
	FlagPyrrole
	FlagCyclizable
	FlagNitro
)

var flagNames = []struct {
	flag SubstrateFlag
	name string
}{
	{FlagHydroxyl, "hydroxyl"}, {FlagAromatic, "aromatic"}, {FlagPhenolic, "phenolic"},
	{FlagMalonyl, "malonyl"}, {FlagAlphaKeto, "alpha-keto"}, {FlagStarter, "starter"},
	{FlagProline, "proline"}, {FlagPyrrole, "pyrrole"}, {FlagCyclizable, "cyclizable"},
	{FlagNitro, "nitro"},
}

// Names lists the set flags in declaration order.
func (f SubstrateFlag) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

// Substrate is a monomer the assembly line can load.  Template is a SMILES
// string in which F marks the atom bonded to the extender atom and I the atom
// bonded to the carbonyl carbon; both markers are removed when the residue is
// built.  A template without F cannot be extended from upstream.
type Substrate struct {
	Name         string
	Abbreviation string
	Template     string
	Flags        SubstrateFlag
}

func (s *Substrate) Is(f SubstrateFlag) bool { return s != nil && s.Flags&f != 0 }

// CanExtend reports whether an upstream residue can bond to this one.
func (s *Substrate) CanExtend() bool { return s != nil && strings.Contains(s.Template, "F") }

// ─────────────────────────────────────────────────────────────────────────────
// Catalogue
// ─────────────────────────────────────────────────────────────────────────────

// Catalogue is an immutable name index over substrates.
type Catalogue struct {
	entries []*Substrate
	index   map[string]*Substrate
}

func newCatalogue(entries []*Substrate) *Catalogue {
	c := &Catalogue{entries: entries, index: make(map[string]*Substrate, 2*len(entries))}
	for _, s := range entries {
		c.index[strings.ToLower(s.Name)] = s
		c.index[strings.ToLower(s.Abbreviation)] = s
	}
	return c
}

// Lookup resolves a name or abbreviation, case-insensitively.
func (c *Catalogue) Lookup(name string) (*Substrate, bool) {
	s, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// All returns every entry sorted by name.
func (c *Catalogue) All() []*Substrate {
	out := make([]*Substrate, len(c.entries))
	copy(out, c.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of entries.
func (c *Catalogue) Len() int { return len(c.entries) }

// Malonyl is the default polyketide extender.
func (c *Catalogue) Malonyl() *Substrate {
	s, _ := c.Lookup("malonyl")
	return s
}

var (
	catalogueOnce sync.Once
	catalogue     *Catalogue
)

// Substrates returns the built-in catalogue.
func Substrates() *Catalogue {
	catalogueOnce.Do(func() { catalogue = newCatalogue(builtinSubstrates()) })
	return catalogue
}

func builtinSubstrates() []*Substrate {
	return []*Substrate{
		// proteinogenic
		{"glycine", "Gly", "FNCC(=O)I", 0},
		{"alanine", "Ala", "FNC(C)C(=O)I", 0},
		{"valine", "Val", "FNC(C(C)C)C(=O)I", 0},
		{"leucine", "Leu", "FNC(CC(C)C)C(=O)I", 0},
		{"isoleucine", "Ile", "FNC(C(C)CC)C(=O)I", 0},
		{"serine", "Ser", "FNC(CO)C(=O)I", FlagHydroxyl | FlagCyclizable},
		{"threonine", "Thr", "FNC(C(C)O)C(=O)I", FlagHydroxyl | FlagCyclizable},
		{"cysteine", "Cys", "FNC(CS)C(=O)I", FlagCyclizable},
		{"methionine", "Met", "FNC(CCSC)C(=O)I", 0},
		{"aspartate", "Asp", "FNC(CC(=O)O)C(=O)I", 0},
		{"asparagine", "Asn", "FNC(CC(N)=O)C(=O)I", 0},
		{"glutamate", "Glu", "FNC(CCC(=O)O)C(=O)I", 0},
		{"glutamine", "Gln", "FNC(CCC(N)=O)C(=O)I", 0},
		{"lysine", "Lys", "FNC(CCCCN)C(=O)I", 0},
		{"arginine", "Arg", "FNC(CCCNC(N)=N)C(=O)I", 0},
		{"histidine", "His", "FNC(Cc1c[nH]cn1)C(=O)I", FlagAromatic},
		{"proline", "Pro", "FN1CCCC1C(=O)I", FlagProline},
		{"phenylalanine", "Phe", "FNC(Cc1ccccc1)C(=O)I", FlagAromatic},
		{"tyrosine", "Tyr", "FNC(Cc1ccc(O)cc1)C(=O)I", FlagAromatic | FlagHydroxyl | FlagPhenolic},
		{"tryptophan", "Trp", "FNC(Cc1c[nH]c2ccccc12)C(=O)I", FlagAromatic},

		// non-proteinogenic
		{"ornithine", "Orn", "FNC(CCCN)C(=O)I", 0},
		{"2-aminobutyrate", "Abu", "FNC(CC)C(=O)I", 0},
		{"beta-alanine", "bAla", "FNCCC(=O)I", 0},
		{"pipecolate", "Pip", "FN1CCCCC1C(=O)I", 0},
		{"2-aminoadipate", "Aad", "FNC(CCCC(=O)O)C(=O)I", 0},
		{"4-hydroxyphenylglycine", "Hpg", "FNC(c1ccc(O)cc1)C(=O)I", FlagAromatic | FlagHydroxyl | FlagPhenolic},
		{"3,5-dihydroxyphenylglycine", "Dhpg", "FNC(c1cc(O)cc(O)c1)C(=O)I", FlagAromatic | FlagHydroxyl | FlagPhenolic},
		{"beta-hydroxytyrosine", "Bht", "FNC(C(O)c1ccc(O)cc1)C(=O)I", FlagAromatic | FlagHydroxyl | FlagPhenolic},
		{"4-nitrophenylalanine", "NO2Phe", "FNC(Cc1ccc(cc1)[N+](=O)[O-])C(=O)I", FlagAromatic | FlagNitro},
		{"2,3-dihydroxybenzoate", "Dhb", "Oc1cccc(C(=O)I)c1O", FlagAromatic | FlagHydroxyl},

		// polyketide extenders
		{"malonyl", "Mal", "FCC(=O)I", FlagMalonyl},
		{"methylmalonyl", "MeMal", "FC(C)C(=O)I", 0},
		{"ethylmalonyl", "EtMal", "FC(CC)C(=O)I", 0},
		{"methoxymalonyl", "OMeMal", "FC(OC)C(=O)I", 0},

		// fatty-acid starters
		{"acetyl", "Ac", "CC(=O)I", FlagStarter},
		{"octanoyl", "C8", "CCCCCCCC(=O)I", FlagStarter},
		{"decanoyl", "C10", "CCCCCCCCCC(=O)I", FlagStarter},
		{"3-hydroxymyristoyl", "3OH-C14", "CCCCCCCCCCCC(O)CC(=O)I", FlagStarter | FlagHydroxyl},

		// alpha-keto acids
		{"alpha-ketoisovalerate", "Kiv", "CC(C)C(=O)C(=O)I", FlagAlphaKeto},
		{"alpha-ketoisocaproate", "Kic", "CC(C)CC(=O)C(=O)I", FlagAlphaKeto},

		{"proline-pyrrole", "Pyr", "N1CCCC1C(=O)I", FlagProline | FlagPyrrole},
	}
}

//Personal.AI order the ending
