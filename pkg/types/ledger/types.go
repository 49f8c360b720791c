// Package ledger holds the wire form of a domain ledger: the per-ORF domain
// calls of one or more contigs, as produced by an upstream domain annotator.
package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Ledger is the root input document.
type Ledger struct {
	Contigs []Contig `json:"contigs" yaml:"contigs"`
}

// Contig is one sequence record.
type Contig struct {
	Name string `json:"name" yaml:"name"`
	ORFs []ORF  `json:"orfs" yaml:"orfs"`
}

// ORF is one coding sequence and its domain calls.  Strand is 1 or -1.
type ORF struct {
	Name    string   `json:"name" yaml:"name"`
	Start   int      `json:"start" yaml:"start"`
	End     int      `json:"end" yaml:"end"`
	Strand  int      `json:"strand" yaml:"strand"`
	Domains []Domain `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// Domain is one domain call.
type Domain struct {
	Type       string      `json:"type" yaml:"type"`
	Start      int         `json:"start" yaml:"start"`
	End        int         `json:"end" yaml:"end"`
	Score      float64     `json:"score" yaml:"score"`
	Substrates []Substrate `json:"substrates,omitempty" yaml:"substrates,omitempty"`
	Homologs   []Homolog   `json:"homologs,omitempty" yaml:"homologs,omitempty"`
}

// Substrate is a scored substrate prediction of an A, AL or AT domain.
type Substrate struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Homolog is a named database hit.
type Homolog struct {
	Name     string  `json:"name" yaml:"name"`
	Identity float64 `json:"identity" yaml:"identity"`
}

// ─────────────────────────────────────────────────────────────
// decoding
// ─────────────────────────────────────────────────────────────

// Format is a ledger serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrCodeLedgerFormat, "cannot infer ledger format from %q", path)
	}
}

// Decode reads a ledger strictly: unknown fields are rejected.
func Decode(r io.Reader, f Format) (*Ledger, error) {
	var l Ledger
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&l); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeLedgerInvalid, "malformed JSON ledger")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&l); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrCodeLedgerInvalid, "malformed YAML ledger")
		}
	default:
		return nil, errors.Newf(errors.ErrCodeLedgerFormat, "unsupported ledger format %q", f)
	}
	return &l, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, f Format) (*Ledger, error) {
	return Decode(bytes.NewReader(data), f)
}

// Encode writes the ledger in the given format.
func (l *Ledger) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf(errors.ErrCodeLedgerFormat, "unsupported ledger format %q", f)
	}
}

// Fingerprint is the hex SHA-256 of the ledger's compact JSON form.  Two
// ledgers with the same content always share a fingerprint regardless of
// the format they were read from.
func (l *Ledger) Fingerprint() (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode ledger")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ─────────────────────────────────────────────────────────────
// validation
// ─────────────────────────────────────────────────────────────

// Validate checks structure only: names, coordinates and strands.  Domain
// types and substrate names are resolved by the consumer.
func (l *Ledger) Validate() error {
	if l == nil || len(l.Contigs) == 0 {
		return errors.New(errors.ErrCodeLedgerInvalid, "ledger has no contigs")
	}
	contigs := make(map[string]bool, len(l.Contigs))
	for ci, c := range l.Contigs {
		if c.Name == "" {
			return errors.Newf(errors.ErrCodeLedgerInvalid, "contig %d has no name", ci)
		}
		if contigs[c.Name] {
			return errors.Newf(errors.ErrCodeLedgerInvalid, "contig %q appears twice", c.Name)
		}
		contigs[c.Name] = true
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Contig) validate() error {
	seen := make(map[string]bool, len(c.ORFs))
	for oi, o := range c.ORFs {
		if o.Name == "" {
			return errors.Newf(errors.ErrCodeLedgerInvalid, "ORF %d of contig %q has no name", oi, c.Name)
		}
		if seen[o.Name] {
			return errors.Newf(errors.ErrCodeDuplicateORF, "ORF %q appears twice", o.Name).WithDetail(c.Name)
		}
		seen[o.Name] = true
		if o.Start < 0 || o.End < o.Start {
			return errors.Newf(errors.ErrCodeInvalidCoordinates, "ORF %q spans %d..%d", o.Name, o.Start, o.End)
		}
		if o.Strand != 1 && o.Strand != -1 {
			return errors.Newf(errors.ErrCodeLedgerInvalid, "ORF %q has strand %d, want 1 or -1", o.Name, o.Strand)
		}
		for di, d := range o.Domains {
			if d.Type == "" {
				return errors.Newf(errors.ErrCodeUnknownDomainType, "domain %d of ORF %q has no type", di, o.Name)
			}
			if d.Start < 0 || d.End < d.Start {
				return errors.Newf(errors.ErrCodeInvalidCoordinates, "domain %d of ORF %q spans %d..%d", di, o.Name, d.Start, d.End)
			}
			for _, s := range d.Substrates {
				if s.Name == "" {
					return errors.Newf(errors.ErrCodeUnknownSubstrate, "domain %d of ORF %q has an unnamed substrate", di, o.Name)
				}
			}
		}
	}
	return nil
}

// DomainCount is the number of domain calls across all contigs.
func (l *Ledger) DomainCount() int {
	n := 0
	for _, c := range l.Contigs {
		for _, o := range c.ORFs {
			n += len(o.Domains)
		}
	}
	return n
}

//Personal.AI order the ending
