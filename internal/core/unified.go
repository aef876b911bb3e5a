package core

import (
	"fmt"
	"slices"
	"sort"

	"github.com/jackc/pgx/v5/pgtype"
)

// UnifiedTable is the long-form concatenation of every normalized election.
//
// Rows keep the party layout of their own election; Cell resolves a party key
// against that layout and reports a null for parties that were not on that
// election's ballot. The table is immutable once built.
type UnifiedTable struct {
	elections []ElectionID // ascending
	partyKeys []string     // sorted union across elections
	rows      []NormalizedRow
	ballots   map[ElectionID]map[string]int // party key -> index into row.Votes
}

// Build concatenates normalized tables into one UnifiedTable. Input order does
// not matter. A table without an election ID or without the canonical
// metadata columns, or two tables for the same election, fail the build.
func Build(tables ...*NormalizedTable) (*UnifiedTable, error) {
	sorted := make([]*NormalizedTable, 0, len(tables))
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("build: input %d: %w: nil table", i, ErrSchemaDrift)
		}
		if t.Election <= 0 {
			return nil, &DriftError{Election: t.Election, Reason: fmt.Sprintf("input %d has no election identifier", i)}
		}
		if !slices.Equal(t.MetadataColumns, CanonicalMetadata) {
			return nil, &DriftError{Election: t.Election, Reason: fmt.Sprintf("metadata columns %v, want %v", t.MetadataColumns, CanonicalMetadata)}
		}
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Election < sorted[j].Election })

	u := &UnifiedTable{
		ballots: make(map[ElectionID]map[string]int, len(sorted)),
	}

	union := make(map[string]bool)
	total := 0
	for _, t := range sorted {
		if _, dup := u.ballots[t.Election]; dup {
			return nil, &DriftError{Election: t.Election, Reason: "election loaded twice"}
		}
		ballot := make(map[string]int, len(t.PartyKeys))
		for i, key := range t.PartyKeys {
			if IsMetadata(key) {
				return nil, &DriftError{Election: t.Election, Column: key, Reason: "party key collides with a metadata field"}
			}
			ballot[key] = i
			union[key] = true
		}
		for _, row := range t.Rows {
			if row.Election != t.Election || len(row.Votes) != len(t.PartyKeys) {
				return nil, &DriftError{Election: t.Election, Reason: "row does not match its table layout"}
			}
		}
		u.ballots[t.Election] = ballot
		u.elections = append(u.elections, t.Election)
		total += len(t.Rows)
	}

	u.partyKeys = make([]string, 0, len(union))
	for key := range union {
		u.partyKeys = append(u.partyKeys, key)
	}
	sort.Strings(u.partyKeys)

	u.rows = make([]NormalizedRow, 0, total)
	for _, t := range sorted {
		u.rows = append(u.rows, t.Rows...)
	}

	return u, nil
}

// Len returns the number of rows.
func (u *UnifiedTable) Len() int { return len(u.rows) }

// Row returns row i. The returned row must be treated as read-only.
func (u *UnifiedTable) Row(i int) NormalizedRow { return u.rows[i] }

// Elections returns the loaded election IDs in ascending order.
func (u *UnifiedTable) Elections() []ElectionID { return slices.Clone(u.elections) }

// PartyKeys returns every party key seen in any election, sorted.
func (u *UnifiedTable) PartyKeys() []string { return slices.Clone(u.partyKeys) }

// Columns returns the unified column list: election ID, canonical metadata,
// then the party key union.
func (u *UnifiedTable) Columns() []string {
	cols := make([]string, 0, 1+len(CanonicalMetadata)+len(u.partyKeys))
	cols = append(cols, ColumnElection)
	cols = append(cols, CanonicalMetadata...)
	return append(cols, u.partyKeys...)
}

// OnBallot reports whether a party key appears in an election's file.
func (u *UnifiedTable) OnBallot(e ElectionID, key string) bool {
	_, ok := u.ballots[e][key]
	return ok
}

// Ballot returns the party keys of one election, sorted.
func (u *UnifiedTable) Ballot(e ElectionID) []string {
	keys := make([]string, 0, len(u.ballots[e]))
	for k := range u.ballots[e] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cell returns row i's votes for a party. The result is null (Valid == false)
// when the party was not on that row's ballot, which keeps "not running"
// distinct from "ran and got zero votes".
func (u *UnifiedTable) Cell(i int, key string) pgtype.Int8 {
	row := u.rows[i]
	idx, ok := u.ballots[row.Election][key]
	if !ok {
		return pgtype.Int8{}
	}
	return ToPgInt8(row.Votes[idx])
}
