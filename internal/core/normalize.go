package core

import "fmt"

// Normalize reconciles one raw table with the canonical schema. Columns are
// classified by name: a cleaned name in CanonicalMetadata is metadata and every
// other admitted column is a party. The only positional assumption is that
// metadata columns come before party columns.
//
// Any mismatch (a missing metadata field, two columns collapsing onto one
// name, metadata after a party column, an unparseable count) is a DriftError.
func Normalize(raw *RawTable) (*NormalizedTable, error) {
	if raw == nil {
		return nil, fmt.Errorf("normalize: nil table")
	}
	if raw.Election <= 0 {
		return nil, &DriftError{Election: raw.Election, Reason: "missing election identifier"}
	}

	drift := func(column, format string, args ...any) error {
		return &DriftError{Election: raw.Election, Column: column, Reason: fmt.Sprintf(format, args...)}
	}

	metaPos := make([]int, len(CanonicalMetadata))
	for i := range metaPos {
		metaPos[i] = -1
	}

	var (
		partyKeys []string
		partyPos  []int
		seen      = make(map[string]string, len(raw.Columns))
	)
	for i, header := range raw.Columns {
		name := CanonicalName(header)
		if name == "" {
			return nil, drift(header, "column name is empty after cleanup")
		}
		if prev, dup := seen[name]; dup {
			return nil, drift(name, "columns %q and %q both clean to the same name", prev, header)
		}
		seen[name] = header

		if slot, ok := canonicalMetadataSet[name]; ok {
			if len(partyKeys) > 0 {
				return nil, drift(name, "metadata column follows party column %q", partyKeys[len(partyKeys)-1])
			}
			metaPos[slot] = i
			continue
		}
		partyKeys = append(partyKeys, name)
		partyPos = append(partyPos, i)
	}

	for slot, pos := range metaPos {
		if pos < 0 {
			return nil, drift(CanonicalMetadata[slot], "canonical metadata column is missing")
		}
	}

	table := &NormalizedTable{
		Election:        raw.Election,
		MetadataColumns: append([]string(nil), CanonicalMetadata...),
		PartyKeys:       partyKeys,
		Rows:            make([]NormalizedRow, 0, len(raw.Rows)),
	}

	counts := metaPos[1:] // every metadata field after the locality name is a count
	for r, rec := range raw.Rows {
		line := r + 2
		cell := func(col int) (int64, error) {
			n, err := ParseCount(rec[col])
			if err != nil {
				return 0, drift(raw.Columns[col], "line %d: %v", line, err)
			}
			return n, nil
		}

		row := NormalizedRow{
			Election: raw.Election,
			Locality: CleanCell(rec[metaPos[0]]),
			Votes:    make([]int64, len(partyPos)),
		}

		var tallies [4]int64
		for k, col := range counts {
			n, err := cell(col)
			if err != nil {
				return nil, err
			}
			tallies[k] = n
		}
		row.Turnout = Turnout{
			Registered: tallies[0],
			Voters:     tallies[1],
			Invalid:    tallies[2],
			Valid:      tallies[3],
		}

		for k, col := range partyPos {
			n, err := cell(col)
			if err != nil {
				return nil, err
			}
			row.Votes[k] = n
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
