package plan

import (
	"sort"

	"github.com/turtacn/bgc-scaffold/internal/domain/annotation"
	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/domain/reaction"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// ReactionPlan is one tailoring step: a domain acting on a substrate set.
type ReactionPlan struct {
	Domain   *genome.Domain
	Kind     reaction.Kind
	Priority int
	Set      annotation.SubstrateSet
}

// Less is the execution order: priority, then domain start, end and type,
// then substrate indices.
func (r ReactionPlan) Less(o ReactionPlan) bool {
	if r.Priority != o.Priority {
		return r.Priority < o.Priority
	}
	if r.Domain.Less(o.Domain) {
		return true
	}
	if o.Domain.Less(r.Domain) {
		return false
	}
	return r.Set.Less(o.Set)
}

// SortReactions orders plans for execution.
func SortReactions(rs []ReactionPlan) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Less(rs[j]) })
}

// CombinatorialPlan is one fully determined assembly.
type CombinatorialPlan struct {
	Index       int
	Permutation Permutation
	Cyclization Cyclization
	Reactions   []ReactionPlan
}

// Result is the plan list of one cluster.
type Result struct {
	Plans       []*CombinatorialPlan
	Diagnostics Diagnostics
}

// Planner enumerates plans.  It is stateless between calls.
type Planner struct {
	reactions *reaction.Registry
	resolver  *annotation.Resolver
	log       logging.Logger
}

// NewPlanner checks that every tailoring type has both a reaction and an
// annotator.
func NewPlanner(reactions *reaction.Registry, resolver *annotation.Resolver, log logging.Logger) (*Planner, error) {
	if reactions == nil || resolver == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "planner requires a reaction registry and a resolver")
	}
	for _, t := range genome.TailoringTypes() {
		if _, err := reactions.MustLookup(t); err != nil {
			return nil, err
		}
		if !resolver.Has(t) {
			return nil, errors.Newf(errors.ErrCodeAnnotatorMissing, "no annotator for domain type %s", t)
		}
	}
	return &Planner{reactions: reactions, resolver: resolver, log: logging.OrNop(log).Named("planner")}, nil
}

type choice struct {
	domain *genome.Domain
	entry  reaction.Entry
	sets   []annotation.SubstrateSet
}

// Plan enumerates permutations × cyclizations × substrate choices in
// lexicographic order, stopping at each cap.
func (p *Planner) Plan(rc *RunContext, cl *genome.Cluster) (*Result, error) {
	limits := rc.Limits
	res := &Result{}
	res.Diagnostics.Cyclizations = newCounter(limits.MaxCyclizations)
	res.Diagnostics.Plans = newCounter(limits.MaxPlans)

	domains := cl.TailoringDomains()
	sort.SliceStable(domains, func(i, j int) bool { return domains[i].Less(domains[j]) })
	entries := make([]reaction.Entry, len(domains))
	for i, d := range domains {
		e, err := p.reactions.MustLookup(d.Type)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	perms, pc := newPermuter(cl, limits.MaxPermutations).enumerate()
	res.Diagnostics.Permutations = pc

	plans := &res.Diagnostics.Plans
	cycs := &res.Diagnostics.Cyclizations
	// once the plan cap is hit, the remaining permutations are still counted
	// so Seen reports the full search space
	planning := true
	for _, perm := range perms {
		choices := p.choices(domains, entries, perm.Modules)
		combos := int64(1)
		for _, c := range choices {
			combos = satMul(combos, int64(len(c.sets)))
		}

		all := cyclizations(cl, perm.Modules)
		cycs.AddSeen(int64(len(all)))
		if len(all) > limits.MaxCyclizations {
			all = all[:max(limits.MaxCyclizations, 0)]
			cycs.Truncated = true
		}
		cycs.Kept = satAdd(cycs.Kept, int64(len(all)))
		plans.AddSeen(satMul(combos, int64(len(all))))

		for _, cyc := range all {
			if !planning {
				break
			}
			planning = p.odometer(choices, func(rs []ReactionPlan) bool {
				if !plans.Take() {
					return false
				}
				res.Plans = append(res.Plans, &CombinatorialPlan{
					Index:       len(res.Plans),
					Permutation: perm,
					Cyclization: cyc,
					Reactions:   rs,
				})
				return true
			})
		}
	}

	log := p.log.With(logging.Cluster(cl.Index))
	if stages := res.Diagnostics.TruncatedStages(); len(stages) > 0 {
		log.Debug("enumeration truncated",
			logging.Strings("stages", stages),
			logging.String("code", string(errors.ErrCodePlanLimit)))
	}
	log.Debug("plans enumerated",
		logging.Int("permutations", len(perms)),
		logging.Int("plans", len(res.Plans)))
	return res, nil
}

// choices resolves every domain against the permutation.  Domains without a
// target are left out, and once-only types keep their first domain only.
func (p *Planner) choices(domains []*genome.Domain, entries []reaction.Entry, perm []*genome.Module) []choice {
	var out []choice
	used := make(map[genome.DomainType]bool)
	for i, d := range domains {
		if entries[i].OnceOnly && used[d.Type] {
			continue
		}
		sets := p.resolver.Resolve(d, perm)
		if len(sets) == 0 {
			continue
		}
		used[d.Type] = true
		out = append(out, choice{domain: d, entry: entries[i], sets: sets})
	}
	return out
}

// odometer calls emit for every combination, the last domain spinning
// fastest.  It returns false when emit asks to stop.
func (p *Planner) odometer(choices []choice, emit func([]ReactionPlan) bool) bool {
	pos := make([]int, len(choices))
	for {
		rs := make([]ReactionPlan, len(choices))
		for i, c := range choices {
			rs[i] = ReactionPlan{Domain: c.domain, Kind: c.entry.Kind, Priority: c.entry.Priority, Set: c.sets[pos[i]]}
		}
		SortReactions(rs)
		if !emit(rs) {
			return false
		}
		k := len(pos) - 1
		for ; k >= 0; k-- {
			pos[k]++
			if pos[k] < len(choices[k].sets) {
				break
			}
			pos[k] = 0
		}
		if k < 0 {
			return true
		}
	}
}

//Personal.AI order the ending
