package scaffold

import "github.com/turtacn/bgc-scaffold/internal/domain/plan"

// Entry is one retained scaffold.
type Entry struct {
	SMILES      string `json:"smiles"`
	Formula     string `json:"formula"`
	Reactions   int    `json:"reactions"`
	Plan        int    `json:"plan"`
	Cyclization string `json:"cyclization"`
}

// Library keeps the distinct scaffolds of the highest reaction-count tier.
// Runs must be added in plan order for the result to be reproducible.
type Library struct {
	tier    int
	entries []Entry
	seen    map[string]struct{}
	counter plan.Counter
}

func NewLibrary(max int) *Library {
	return &Library{
		tier:    -1,
		seen:    make(map[string]struct{}),
		counter: plan.Counter{Limit: max},
	}
}

// Add offers a run to the library and reports whether it was kept.
func (l *Library) Add(run *Run) bool {
	if run == nil || !run.Produced() {
		return false
	}
	l.counter.Seen++
	applied := run.Applied()
	if applied < l.tier {
		return false
	}
	if applied > l.tier {
		l.tier = applied
		l.entries = l.entries[:0]
		l.seen = make(map[string]struct{})
		l.counter.Kept = 0
		l.counter.Truncated = false
	}
	smiles := run.Scaffold.SMILES()
	if _, dup := l.seen[smiles]; dup {
		return false
	}
	if len(l.entries) >= l.counter.Limit {
		l.counter.Truncated = true
		return false
	}
	l.seen[smiles] = struct{}{}
	l.entries = append(l.entries, Entry{
		SMILES:      smiles,
		Formula:     run.Scaffold.Formula(),
		Reactions:   applied,
		Plan:        run.Plan.Index,
		Cyclization: run.Plan.Cyclization.String(),
	})
	l.counter.Kept++
	return true
}

func (l *Library) Entries() []Entry { return append([]Entry(nil), l.entries...) }

func (l *Library) Len() int { return len(l.entries) }

// Tier is the reaction count of the retained scaffolds, -1 when empty.
func (l *Library) Tier() int { return l.tier }

// Counter reports produced scaffolds as seen and retained ones as kept.
func (l *Library) Counter() plan.Counter { return l.counter }

//Personal.AI order the ending
