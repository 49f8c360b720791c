// Package annotation resolves, for each tailoring domain, the modules of a
// permutation it can act on.
package annotation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// SubstrateSet is an ordered list of permutation indices that one tailoring
// domain acts on.
type SubstrateSet []int

// Key is a stable string form used for de-duplication and sorting.
func (s SubstrateSet) Key() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Less orders sets element-wise, shorter first on a common prefix.
func (s SubstrateSet) Less(o SubstrateSet) bool {
	for i := 0; i < len(s) && i < len(o); i++ {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return len(s) < len(o)
}

// Annotator finds the candidate substrate sets for the domain types it
// covers.  Find is only called when the permutation reaches MinLength.
type Annotator interface {
	Name() string
	Types() []genome.DomainType
	MinLength() int
	Find(d *genome.Domain, perm []*genome.Module) []SubstrateSet
}

// Resolver is the validated domain type → annotators table.
type Resolver struct {
	byType map[genome.DomainType][]Annotator
}

// NewResolver indexes annotators by domain type and fails when a tailoring
// type is left without one.
func NewResolver(annotators ...Annotator) (*Resolver, error) {
	r := &Resolver{byType: make(map[genome.DomainType][]Annotator)}
	for _, a := range annotators {
		for _, t := range a.Types() {
			r.byType[t] = append(r.byType[t], a)
		}
	}
	var missing []string
	for _, t := range genome.TailoringTypes() {
		if len(r.byType[t]) == 0 {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeAnnotatorMissing, "tailoring domain types without annotator").
			WithDetail(strings.Join(missing, ","))
	}
	return r, nil
}

// NewDefaultResolver is NewResolver over DefaultAnnotators.
func NewDefaultResolver() (*Resolver, error) { return NewResolver(DefaultAnnotators()...) }

// Resolve unions the sets of every annotator for d.Type.  The result is
// de-duplicated and sorted.  Permutations shorter than an annotator's minimum
// length contribute nothing.
func (r *Resolver) Resolve(d *genome.Domain, perm []*genome.Module) []SubstrateSet {
	seen := make(map[string]bool)
	var out []SubstrateSet
	for _, a := range r.byType[d.Type] {
		if len(perm) < a.MinLength() {
			continue
		}
		for _, s := range a.Find(d, perm) {
			if k := s.Key(); !seen[k] {
				seen[k] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Has reports whether d.Type has an annotator.
func (r *Resolver) Has(t genome.DomainType) bool { return len(r.byType[t]) > 0 }

// AnnotatorNames returns the annotator names registered for t.
func (r *Resolver) AnnotatorNames(t genome.DomainType) []string {
	var out []string
	for _, a := range r.byType[t] {
		out = append(out, a.Name())
	}
	return out
}

//Personal.AI order the ending
