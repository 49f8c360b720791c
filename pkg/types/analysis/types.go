// Package analysis holds the wire form of an assembly analysis: detected
// clusters, their modules, the scaffold library and enumeration diagnostics.
package analysis

import (
	"time"

	"github.com/turtacn/bgc-scaffold/pkg/types/common"
)

// Counter is the seen / kept tally of one enumeration stage.
type Counter struct {
	Seen      int64 `json:"seen" yaml:"seen"`
	Kept      int64 `json:"kept" yaml:"kept"`
	Limit     int   `json:"limit" yaml:"limit"`
	Truncated bool  `json:"truncated" yaml:"truncated"`
}

// Diagnostics reports every capped stage.
type Diagnostics struct {
	Permutations Counter `json:"permutations" yaml:"permutations"`
	Cyclizations Counter `json:"cyclizations" yaml:"cyclizations"`
	Plans        Counter `json:"plans" yaml:"plans"`
	Scaffolds    Counter `json:"scaffolds" yaml:"scaffolds"`
}

// Add folds o into d.  Seen and kept values are summed and the limits kept.
func (d *Diagnostics) Add(o Diagnostics) {
	add := func(a *Counter, b Counter) {
		a.Seen += b.Seen
		a.Kept += b.Kept
		a.Limit = max(a.Limit, b.Limit)
		a.Truncated = a.Truncated || b.Truncated
	}
	add(&d.Permutations, o.Permutations)
	add(&d.Cyclizations, o.Cyclizations)
	add(&d.Plans, o.Plans)
	add(&d.Scaffolds, o.Scaffolds)
}

// TruncatedStages names the stages that hit their cap.
func (d Diagnostics) TruncatedStages() []string {
	var out []string
	for _, s := range []struct {
		name string
		c    Counter
	}{{"permutations", d.Permutations}, {"cyclizations", d.Cyclizations}, {"plans", d.Plans}, {"scaffolds", d.Scaffolds}} {
		if s.c.Truncated {
			out = append(out, s.name)
		}
	}
	return out
}

// Module is one parsed module.
type Module struct {
	Kind      string   `json:"kind" yaml:"kind"`
	First     int      `json:"first" yaml:"first"`
	Last      int      `json:"last" yaml:"last"`
	Domains   []string `json:"domains" yaml:"domains"`
	Substrate string   `json:"substrate,omitempty" yaml:"substrate,omitempty"`
	Active    bool     `json:"active" yaml:"active"`
	CanExtend bool     `json:"can_extend" yaml:"can_extend"`
}

// ORF is one cluster member.
type ORF struct {
	Name    string   `json:"name" yaml:"name"`
	Start   int      `json:"start" yaml:"start"`
	End     int      `json:"end" yaml:"end"`
	Strand  int      `json:"strand" yaml:"strand"`
	Type    string   `json:"type" yaml:"type"`
	Modules []Module `json:"modules,omitempty" yaml:"modules,omitempty"`
}

// Scaffold is one retained library member.
type Scaffold struct {
	SMILES      string `json:"smiles" yaml:"smiles"`
	Formula     string `json:"formula" yaml:"formula"`
	Reactions   int    `json:"reactions" yaml:"reactions"`
	Plan        int    `json:"plan" yaml:"plan"`
	Cyclization string `json:"cyclization" yaml:"cyclization"`
}

// Outcome is one reaction or ring-closure attempt of one plan.
type Outcome struct {
	Plan     int    `json:"plan" yaml:"plan"`
	Reaction string `json:"reaction" yaml:"reaction"`
	Domain   string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Start    int    `json:"domain_start,omitempty" yaml:"domain_start,omitempty"`
	Set      []int  `json:"set,omitempty" yaml:"set,omitempty"`
	Success  bool   `json:"success" yaml:"success"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ReactionStats counts attempts of one reaction kind over all plans.
type ReactionStats struct {
	Applied int `json:"applied" yaml:"applied"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Cluster is one detected and typed cluster.
type Cluster struct {
	Index       int                      `json:"index" yaml:"index"`
	Start       int                      `json:"start" yaml:"start"`
	End         int                      `json:"end" yaml:"end"`
	Types       []string                 `json:"types" yaml:"types"`
	ORFs        []ORF                    `json:"orfs" yaml:"orfs"`
	Plans       int                      `json:"plans" yaml:"plans"`
	Aborted     int                      `json:"aborted" yaml:"aborted"`
	Scaffolds   []Scaffold               `json:"scaffolds" yaml:"scaffolds"`
	Reactions   map[string]ReactionStats `json:"reactions,omitempty" yaml:"reactions,omitempty"`
	Outcomes    []Outcome                `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Diagnostics Diagnostics              `json:"diagnostics" yaml:"diagnostics"`
}

// Contig groups the clusters of one sequence record.
type Contig struct {
	Name     string    `json:"name" yaml:"name"`
	Clusters []Cluster `json:"clusters" yaml:"clusters"`
}

// Result is the full answer to one analysis request.
type Result struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
	Contigs     []Contig         `json:"contigs" yaml:"contigs"`
	Diagnostics Diagnostics      `json:"diagnostics" yaml:"diagnostics"`
	CreatedAt   common.Timestamp `json:"created_at" yaml:"-"`
	Duration    time.Duration    `json:"duration_ns" yaml:"-"`
	Cached      bool             `json:"cached" yaml:"cached"`
}

// ClusterCount is the number of reported clusters.
func (r *Result) ClusterCount() int {
	n := 0
	for _, c := range r.Contigs {
		n += len(c.Clusters)
	}
	return n
}

// ScaffoldCount is the number of retained scaffolds across clusters.
func (r *Result) ScaffoldCount() int {
	n := 0
	for _, c := range r.Contigs {
		for _, cl := range c.Clusters {
			n += len(cl.Scaffolds)
		}
	}
	return n
}

// ─────────────────────────────────────────────────────────────
// request and event
// ─────────────────────────────────────────────────────────────

// Limits overrides the configured caps for one request.  Zero fields keep
// the configured value.
type Limits struct {
	Window          int `json:"window,omitempty" yaml:"window,omitempty"`
	MaxPermutations int `json:"max_permutations,omitempty" yaml:"max_permutations,omitempty"`
	MaxCyclizations int `json:"max_cyclizations,omitempty" yaml:"max_cyclizations,omitempty"`
	MaxPlans        int `json:"max_plans,omitempty" yaml:"max_plans,omitempty"`
	MaxScaffolds    int `json:"max_scaffolds,omitempty" yaml:"max_scaffolds,omitempty"`
}

// EventTypeCompleted is published once per finished analysis.
const EventTypeCompleted = "analysis.completed"

// CompletedEvent summarises one analysis for downstream consumers.
type CompletedEvent struct {
	common.BaseEvent
	Type      string   `json:"type"`
	RunID     string   `json:"run_id"`
	Contigs   []string `json:"contigs"`
	Clusters  int      `json:"clusters"`
	Scaffolds int      `json:"scaffolds"`
	Truncated []string `json:"truncated,omitempty"`
	Cached    bool     `json:"cached"`
}

// NewCompletedEvent builds the event of r.
func NewCompletedEvent(r *Result) CompletedEvent {
	names := make([]string, len(r.Contigs))
	for i, c := range r.Contigs {
		names[i] = c.Name
	}
	return CompletedEvent{
		BaseEvent: common.NewBaseEvent(r.RunID),
		Type:      EventTypeCompleted,
		RunID:     r.RunID,
		Contigs:   names,
		Clusters:  r.ClusterCount(),
		Scaffolds: r.ScaffoldCount(),
		Truncated: r.Diagnostics.TruncatedStages(),
		Cached:    r.Cached,
	}
}

//Personal.AI order the ending
