// Package cluster groups ORFs into candidate gene clusters and classifies the
// parsed result.
package cluster

import (
	"sort"

	"github.com/turtacn/bgc-scaffold/internal/domain/genome"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
)

// IndexSource hands out cluster indices for one run.
type IndexSource interface {
	NextClusterIndex() int
}

// Detector seeds clusters on biosynthetic ORFs and absorbs neighbours that
// lie within the window.
type Detector struct {
	window int
	log    logging.Logger
}

// NewDetector returns a detector for window W in nucleotides.
func NewDetector(window int, log logging.Logger) *Detector {
	return &Detector{window: window, log: logging.OrNop(log).Named("detector")}
}

// Detect returns the clusters of one contig in genomic order.  Every ORF
// joins at most one cluster.
func (d *Detector) Detect(contig *genome.Contig, ids IndexSource) []*genome.Cluster {
	orfs := make([]*genome.ORF, len(contig.ORFs))
	copy(orfs, contig.ORFs)
	sort.SliceStable(orfs, func(i, j int) bool {
		if orfs[i].Start != orfs[j].Start {
			return orfs[i].Start < orfs[j].Start
		}
		return orfs[i].End < orfs[j].End
	})

	taken := make([]bool, len(orfs))
	var out []*genome.Cluster
	for i, seed := range orfs {
		if taken[i] || !seed.IsBiosynthetic() {
			continue
		}
		taken[i] = true
		members := []int{i}
		start, end := seed.Start, seed.End

		for changed := true; changed; {
			changed = false
			for j, o := range orfs {
				if taken[j] || !o.HasDomains() {
					continue
				}
				if genome.Gap(start, end, o.Start, o.End) >= d.window {
					continue
				}
				taken[j] = true
				members = append(members, j)
				changed = true
				if o.IsBiosynthetic() {
					start, end = min(start, o.Start), max(end, o.End)
				}
			}
		}

		sort.Ints(members)
		c := &genome.Cluster{
			Index:  ids.NextClusterIndex(),
			Contig: contig.Name,
			Start:  start,
			End:    end,
		}
		for _, j := range members {
			c.ORFs = append(c.ORFs, orfs[j])
		}
		d.log.Debug("cluster detected",
			logging.Cluster(c.Index),
			logging.String("contig", contig.Name),
			logging.Int("orfs", len(c.ORFs)),
			logging.Int("start", start),
			logging.Int("end", end))
		out = append(out, c)
	}
	return out
}

//Personal.AI order the ending
