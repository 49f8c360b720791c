package plan

import "math"

// Counter reports how many candidates existed at one level of the
// enumeration and how many were kept under the cap.  Seen saturates at
// math.MaxInt64.
type Counter struct {
	Seen      int64 `json:"seen"`
	Kept      int64 `json:"kept"`
	Limit     int   `json:"limit"`
	Truncated bool  `json:"truncated"`
}

func newCounter(limit int) Counter { return Counter{Limit: limit} }

// Take reserves one slot under the cap.  It returns false and marks the
// counter truncated once the cap is reached.
func (c *Counter) Take() bool {
	if c.Kept >= int64(c.Limit) {
		c.Truncated = true
		return false
	}
	c.Kept++
	return true
}

// Full reports whether another Take would fail.
func (c *Counter) Full() bool { return c.Kept >= int64(c.Limit) }

// AddSeen adds n to Seen without overflowing.
func (c *Counter) AddSeen(n int64) { c.Seen = satAdd(c.Seen, n) }

// Merge folds o into c.
func (c *Counter) Merge(o Counter) {
	c.Seen = satAdd(c.Seen, o.Seen)
	c.Kept = satAdd(c.Kept, o.Kept)
	if o.Limit > c.Limit {
		c.Limit = o.Limit
	}
	c.Truncated = c.Truncated || o.Truncated
}

// Diagnostics groups the counters of one cluster.
type Diagnostics struct {
	Permutations Counter `json:"permutations"`
	Cyclizations Counter `json:"cyclizations"`
	Plans        Counter `json:"plans"`
	Scaffolds    Counter `json:"scaffolds"`
}

// Truncated reports whether any level hit its cap.
func (d Diagnostics) Truncated() bool {
	return d.Permutations.Truncated || d.Cyclizations.Truncated || d.Plans.Truncated || d.Scaffolds.Truncated
}

// TruncatedStages names the levels that hit their cap.
func (d Diagnostics) TruncatedStages() []string {
	var out []string
	for _, s := range []struct {
		name string
		c    Counter
	}{
		{"permutations", d.Permutations},
		{"cyclizations", d.Cyclizations},
		{"plans", d.Plans},
		{"scaffolds", d.Scaffolds},
	} {
		if s.c.Truncated {
			out = append(out, s.name)
		}
	}
	return out
}

func satAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

// factorial saturates at math.MaxInt64.
func factorial(n int) int64 {
	f := int64(1)
	for i := 2; i <= n; i++ {
		f = satMul(f, int64(i))
	}
	return f
}

func pow(base int64, exp int) int64 {
	r := int64(1)
	for i := 0; i < exp; i++ {
		r = satMul(r, base)
	}
	return r
}

//Personal.AI order the ending
