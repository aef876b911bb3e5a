package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// writeCSV writes lines to dir/name in the given encoding and returns the path.
func writeCSV(t *testing.T, dir, name string, enc Encoding, lines ...string) string {
	t.Helper()

	text := strings.Join(lines, "\n") + "\n"
	var data []byte
	switch enc {
	case EncodingUTF8:
		data = []byte(text)
	case EncodingUTF8BOM:
		data = append([]byte("\xef\xbb\xbf"), text...)
	case EncodingISO8859_8:
		b, err := charmap.ISO8859_8.NewEncoder().Bytes([]byte(text))
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		data = b
	case EncodingWindows1255:
		b, err := charmap.Windows1255.NewEncoder().Bytes([]byte(text))
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		data = b
	default:
		t.Fatalf("writeCSV: unsupported encoding %q", enc)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// normalized builds a NormalizedTable with one row per vote vector. Each row's
// valid-ballot count is the sum of its votes.
func normalized(e ElectionID, parties []string, rows ...[]int64) *NormalizedTable {
	t := &NormalizedTable{
		Election:        e,
		MetadataColumns: append([]string(nil), CanonicalMetadata...),
		PartyKeys:       parties,
	}
	for i, votes := range rows {
		var valid int64
		for _, v := range votes {
			valid += v
		}
		t.Rows = append(t.Rows, NormalizedRow{
			Election: e,
			Locality: "station-" + string(rune('a'+i)),
			Turnout:  Turnout{Registered: valid * 2, Voters: valid + 1, Invalid: 1, Valid: valid},
			Votes:    votes,
		})
	}
	return t
}

// aggregateOf builds an aggregate from per-election party totals, one station
// per election.
func aggregateOf(t *testing.T, totals map[ElectionID]map[string]int64) *AggregateTable {
	t.Helper()

	tables := make([]*NormalizedTable, 0, len(totals))
	for e, parties := range totals {
		keys := make([]string, 0, len(parties))
		votes := make([]int64, 0, len(parties))
		for k, v := range parties {
			keys = append(keys, k)
			votes = append(votes, v)
		}
		tables = append(tables, normalized(e, keys, votes))
	}

	u, err := Build(tables...)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return Aggregate(u)
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
