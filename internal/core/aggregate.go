package core

import (
	"maps"
	"slices"
	"sort"
)

// AggregateTable holds total votes per election and party: one row per
// election, one column per party key. Cells for parties absent from an
// election are zero. It is derived from a UnifiedTable and never mutated.
type AggregateTable struct {
	elections []ElectionID // ascending
	partyKeys []string     // sorted
	column    map[string]int
	row       map[ElectionID]int
	votes     [][]int64 // [row][column]
	turnout   []Turnout
	stations  []int
	ballots   []map[string]bool
}

// Aggregate groups the unified rows by election and sums every party column.
// Sums use int64 accumulators so totals match official tallies exactly.
func Aggregate(u *UnifiedTable) *AggregateTable {
	a := &AggregateTable{
		elections: slices.Clone(u.elections),
		partyKeys: slices.Clone(u.partyKeys),
		column:    make(map[string]int, len(u.partyKeys)),
		row:       make(map[ElectionID]int, len(u.elections)),
		votes:     make([][]int64, len(u.elections)),
		turnout:   make([]Turnout, len(u.elections)),
		stations:  make([]int, len(u.elections)),
		ballots:   make([]map[string]bool, len(u.elections)),
	}
	for i, key := range a.partyKeys {
		a.column[key] = i
	}

	// Per election, map the file's party layout onto aggregate columns once.
	layout := make(map[ElectionID][]int, len(u.elections))
	for r, e := range a.elections {
		a.row[e] = r
		a.votes[r] = make([]int64, len(a.partyKeys))
		a.ballots[r] = make(map[string]bool, len(u.ballots[e]))

		cols := make([]int, len(u.ballots[e]))
		for key, idx := range u.ballots[e] {
			cols[idx] = a.column[key]
			a.ballots[r][key] = true
		}
		layout[e] = cols
	}

	for _, row := range u.rows {
		r := a.row[row.Election]
		cols := layout[row.Election]
		sums := a.votes[r]
		for i, n := range row.Votes {
			sums[cols[i]] += n
		}
		a.turnout[r].add(row.Turnout)
		a.stations[r]++
	}

	return a
}

// Elections returns the election IDs in ascending order.
func (a *AggregateTable) Elections() []ElectionID { return slices.Clone(a.elections) }

// PartyKeys returns the party columns, sorted.
func (a *AggregateTable) PartyKeys() []string { return slices.Clone(a.partyKeys) }

// Has reports whether key is a party column.
func (a *AggregateTable) Has(key string) bool {
	_, ok := a.column[key]
	return ok
}

// HasElection reports whether e was loaded.
func (a *AggregateTable) HasElection(e ElectionID) bool {
	_, ok := a.row[e]
	return ok
}

// Votes returns the total votes for key in election e. Unknown elections or
// keys read as zero.
func (a *AggregateTable) Votes(e ElectionID, key string) int64 {
	r, ok := a.row[e]
	if !ok {
		return 0
	}
	c, ok := a.column[key]
	if !ok {
		return 0
	}
	return a.votes[r][c]
}

// Row returns every party's total for election e, keyed by party.
func (a *AggregateTable) Row(e ElectionID) map[string]int64 {
	r, ok := a.row[e]
	if !ok {
		return nil
	}
	out := make(map[string]int64, len(a.partyKeys))
	for c, key := range a.partyKeys {
		out[key] = a.votes[r][c]
	}
	return out
}

// Turnout returns the summed metadata counts of election e.
func (a *AggregateTable) Turnout(e ElectionID) Turnout {
	if r, ok := a.row[e]; ok {
		return a.turnout[r]
	}
	return Turnout{}
}

// Stations returns how many source rows election e contributed.
func (a *AggregateTable) Stations(e ElectionID) int {
	if r, ok := a.row[e]; ok {
		return a.stations[r]
	}
	return 0
}

// OnBallot reports whether key ran in election e.
func (a *AggregateTable) OnBallot(e ElectionID, key string) bool {
	r, ok := a.row[e]
	return ok && a.ballots[r][key]
}

// Span returns the range covering every loaded election.
func (a *AggregateTable) Span() Range {
	if len(a.elections) == 0 {
		return Range{}
	}
	return Range{Lo: a.elections[0], Hi: a.elections[len(a.elections)-1]}
}

// Equal reports whether two aggregates hold the same derived data: rows,
// columns, votes, turnout, station counts and ballots.
func (a *AggregateTable) Equal(b *AggregateTable) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !slices.Equal(a.elections, b.elections) || !slices.Equal(a.partyKeys, b.partyKeys) {
		return false
	}
	if !slices.Equal(a.stations, b.stations) {
		return false
	}
	for r := range a.votes {
		if !slices.Equal(a.votes[r], b.votes[r]) || a.turnout[r] != b.turnout[r] {
			return false
		}
		if !maps.Equal(a.ballots[r], b.ballots[r]) {
			return false
		}
	}
	return true
}

// ranked returns election e's on-ballot parties by descending votes, ties
// broken by ascending key.
func (a *AggregateTable) ranked(e ElectionID) []string {
	r, ok := a.row[e]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(a.ballots[r]))
	for key := range a.ballots[r] {
		keys = append(keys, key)
	}
	sums := a.votes[r]
	sort.Slice(keys, func(i, j int) bool {
		vi, vj := sums[a.column[keys[i]]], sums[a.column[keys[j]]]
		if vi != vj {
			return vi > vj
		}
		return keys[i] < keys[j]
	})
	return keys
}
