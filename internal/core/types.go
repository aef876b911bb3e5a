package core

import (
	"fmt"
	"strconv"
)

// ElectionID identifies one election cycle (Knesset number). IDs are unique
// and totally ordered; every table in the pipeline is keyed on them.
type ElectionID int

// String returns the decimal form of the ID.
func (e ElectionID) String() string {
	return strconv.Itoa(int(e))
}

// ParseElectionID parses a decimal election ID.
func ParseElectionID(s string) (ElectionID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid election %q: %w", s, ErrInvalidSelection)
	}
	return ElectionID(n), nil
}

// Encoding names the text encoding a source file was written in.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF8BOM     Encoding = "utf-8-sig"
	EncodingISO8859_8   Encoding = "iso-8859-8"
	EncodingWindows1255 Encoding = "windows-1255"
)

// Format names the container format of a source file.
type Format string

const (
	FormatCSV Format = "csv" // comma-separated text
	FormatXLS Format = "xls" // legacy binary spreadsheet (BIFF)
)

// SourceSpec locates one election's source file.
type SourceSpec struct {
	Election ElectionID
	Path     string // relative paths are resolved against the data directory
	Encoding Encoding
	Format   Format
}

// Validate checks that the source is usable.
func (s SourceSpec) Validate() error {
	if s.Election <= 0 {
		return fmt.Errorf("source %q: election must be positive", s.Path)
	}
	if s.Path == "" {
		return fmt.Errorf("election %d: path is required", s.Election)
	}
	if _, err := decoderFor(s.Encoding); err != nil {
		return fmt.Errorf("election %d: %w", s.Election, err)
	}
	switch s.Format {
	case FormatCSV, FormatXLS:
	default:
		return fmt.Errorf("election %d: %w: %q", s.Election, ErrUnsupportedFormat, s.Format)
	}
	return nil
}

// RawTable is one election's file as parsed, after column admission and
// before any name cleanup. It is not modified after Read returns.
type RawTable struct {
	Election ElectionID
	Source   SourceSpec
	Columns  []string   // admitted header names, as written in the file
	Rows     [][]string // one entry per data record, aligned with Columns
	Dropped  []string   // header names rejected by the admission predicate
	Bytes    int64      // source bytes consumed
}

// Turnout holds the canonical count fields of a row, or their sums.
type Turnout struct {
	Registered int64 `json:"registered"`
	Voters     int64 `json:"voters"`
	Invalid    int64 `json:"invalid"`
	Valid      int64 `json:"valid"`
}

func (t *Turnout) add(o Turnout) {
	t.Registered += o.Registered
	t.Voters += o.Voters
	t.Invalid += o.Invalid
	t.Valid += o.Valid
}

// NormalizedRow is a raw row reduced to the canonical metadata fields plus the
// party votes of its election, tagged with the election ID.
type NormalizedRow struct {
	Election ElectionID
	Locality string
	Turnout  Turnout
	Votes    []int64 // aligned with the owning NormalizedTable's PartyKeys
}

// Metadata returns a canonical metadata field by name.
func (r NormalizedRow) Metadata(field string) (string, bool) {
	switch field {
	case FieldLocality:
		return r.Locality, true
	case FieldRegistered:
		return strconv.FormatInt(r.Turnout.Registered, 10), true
	case FieldVoters:
		return strconv.FormatInt(r.Turnout.Voters, 10), true
	case FieldInvalid:
		return strconv.FormatInt(r.Turnout.Invalid, 10), true
	case FieldValid:
		return strconv.FormatInt(r.Turnout.Valid, 10), true
	}
	return "", false
}

// NormalizedTable is one election after schema normalization.
type NormalizedTable struct {
	Election        ElectionID
	MetadataColumns []string // canonical metadata names, in canonical order
	PartyKeys       []string // canonical party keys, in file order
	Rows            []NormalizedRow
}

// Columns returns the table's full column list: the election ID, the metadata
// columns, then the party keys.
func (t *NormalizedTable) Columns() []string {
	cols := make([]string, 0, 1+len(t.MetadataColumns)+len(t.PartyKeys))
	cols = append(cols, ColumnElection)
	cols = append(cols, t.MetadataColumns...)
	return append(cols, t.PartyKeys...)
}

// Range is an inclusive span of election IDs.
type Range struct {
	Lo ElectionID `json:"from"`
	Hi ElectionID `json:"to"`
}

// Contains reports whether e lies within the range.
func (r Range) Contains(e ElectionID) bool {
	return r.Lo <= e && e <= r.Hi
}
