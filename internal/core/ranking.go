package core

import "sort"

// Default Ranking Selector parameters.
const (
	DefaultNotableWindow      = 6
	DefaultNotablePerElection = 10
)

// TopNotable returns the parties worth offering in a selector: the union of
// each recent election's top parties by votes, sorted ascending.
//
// The window covers the most recent elections by descending ID. Within an
// election only parties on that ballot are ranked; equal totals are ordered by
// ascending key so the result is deterministic. The set only narrows selector
// options, never the underlying data.
func TopNotable(agg *AggregateTable, window, perElectionTop int) []string {
	if agg == nil || window <= 0 || perElectionTop <= 0 {
		return []string{}
	}

	elections := agg.elections
	if len(elections) > window {
		elections = elections[len(elections)-window:]
	}

	seen := make(map[string]bool)
	for i := len(elections) - 1; i >= 0; i-- {
		ranked := agg.ranked(elections[i])
		if len(ranked) > perElectionTop {
			ranked = ranked[:perElectionTop]
		}
		for _, key := range ranked {
			seen[key] = true
		}
	}

	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// TopParties returns election e's top n parties by votes, highest first.
func TopParties(agg *AggregateTable, e ElectionID, n int) []string {
	ranked := agg.ranked(e)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
