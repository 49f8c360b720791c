// Package plan enumerates the bounded set of combinatorial plans for a
// cluster: module permutations, cyclization patterns and per-domain
// substrate choices.
package plan

import "sync/atomic"

// Default enumeration caps.
const (
	DefaultWindow          = 20000
	DefaultMaxPermutations = 500
	DefaultMaxCyclizations = 100
	DefaultMaxPlans        = 1000
	DefaultMaxScaffolds    = 50
)

// Limits bounds every level of the enumeration.  MaxScaffolds <= 0 disables
// execution after planning.
type Limits struct {
	Window          int `json:"window" yaml:"window"`
	MaxPermutations int `json:"max_permutations" yaml:"max_permutations"`
	MaxCyclizations int `json:"max_cyclizations" yaml:"max_cyclizations"`
	MaxPlans        int `json:"max_plans" yaml:"max_plans"`
	MaxScaffolds    int `json:"max_scaffolds" yaml:"max_scaffolds"`
}

// DefaultLimits returns the built-in caps.
func DefaultLimits() Limits {
	return Limits{
		Window:          DefaultWindow,
		MaxPermutations: DefaultMaxPermutations,
		MaxCyclizations: DefaultMaxCyclizations,
		MaxPlans:        DefaultMaxPlans,
		MaxScaffolds:    DefaultMaxScaffolds,
	}
}

// RunContext carries per-analysis state.  It replaces any process-wide
// counter so concurrent analyses never share numbering.
type RunContext struct {
	ID     string
	Limits Limits

	clusters atomic.Int64
}

// NewRunContext returns a context whose first cluster index is 1.
func NewRunContext(id string, limits Limits) *RunContext {
	return &RunContext{ID: id, Limits: limits}
}

// NextClusterIndex is safe for concurrent use.
func (rc *RunContext) NextClusterIndex() int { return int(rc.clusters.Add(1)) }

// ClusterCount is the number of indices handed out so far.
func (rc *RunContext) ClusterCount() int { return int(rc.clusters.Load()) }

//Personal.AI order the ending
