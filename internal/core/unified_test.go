package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestBuild(t *testing.T) {
	t18 := normalized(18, []string{"מחל", "אמת"}, []int64{10, 5}, []int64{3, 0})
	t20 := normalized(20, []string{"מחל", "שס"}, []int64{7, 2})

	u, err := Build(t20, t18)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if diff := cmp.Diff([]ElectionID{18, 20}, u.Elections()); diff != "" {
		t.Errorf("Elections() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"אמת", "מחל", "שס"}, u.PartyKeys()); diff != "" {
		t.Errorf("PartyKeys() mismatch (-want +got):\n%s", diff)
	}
	wantCols := []string{ColumnElection, "שם ישוב", "בזב", "מצביעים", "פסולים", "כשרים", "אמת", "מחל", "שס"}
	if diff := cmp.Diff(wantCols, u.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if u.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", u.Len())
	}
	for i, want := range []ElectionID{18, 18, 20} {
		if got := u.Row(i).Election; got != want {
			t.Errorf("Row(%d).Election = %d, want %d", i, got, want)
		}
	}

	tests := []struct {
		row  int
		key  string
		want pgtype.Int8
	}{
		{0, "מחל", pgtype.Int8{Int64: 10, Valid: true}},
		{1, "אמת", pgtype.Int8{Int64: 0, Valid: true}}, // ran, got nothing
		{2, "אמת", pgtype.Int8{}},                      // not on the ballot
		{0, "שס", pgtype.Int8{}},
		{2, "שס", pgtype.Int8{Int64: 2, Valid: true}},
		{2, "nope", pgtype.Int8{}},
	}
	for _, tt := range tests {
		if got := u.Cell(tt.row, tt.key); got != tt.want {
			t.Errorf("Cell(%d, %q) = %+v, want %+v", tt.row, tt.key, got, tt.want)
		}
	}

	if !u.OnBallot(18, "אמת") || u.OnBallot(20, "אמת") {
		t.Error("OnBallot() does not follow each election's file")
	}
	if diff := cmp.Diff([]string{"מחל", "שס"}, u.Ballot(20)); diff != "" {
		t.Errorf("Ballot(20) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_OrderIndependent(t *testing.T) {
	tables := []*NormalizedTable{
		normalized(16, []string{"א"}, []int64{1}),
		normalized(19, []string{"ב", "א"}, []int64{2, 3}),
		normalized(17, []string{"ג"}, []int64{4}),
	}

	a, err := Build(tables[0], tables[1], tables[2])
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(tables[2], tables[0], tables[1])
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(a.Columns(), b.Columns()); diff != "" {
		t.Errorf("Columns differ:\n%s", diff)
	}
	if a.Len() != b.Len() {
		t.Fatalf("Len differs: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		for _, key := range a.PartyKeys() {
			if a.Cell(i, key) != b.Cell(i, key) {
				t.Errorf("Cell(%d, %q) differs", i, key)
			}
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	u, err := Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if u.Len() != 0 || len(u.Elections()) != 0 {
		t.Errorf("empty build has %d rows, %d elections", u.Len(), len(u.Elections()))
	}
}

func TestBuild_Errors(t *testing.T) {
	noMeta := normalized(20, []string{"א"}, []int64{1})
	noMeta.MetadataColumns = []string{"שם ישוב", "בזב"}

	collides := normalized(20, []string{FieldValid}, []int64{1})

	misaligned := normalized(20, []string{"א", "ב"}, []int64{1, 2})
	misaligned.Rows[0].Votes = []int64{1}

	mislabeled := normalized(20, []string{"א"}, []int64{1})
	mislabeled.Rows[0].Election = 21

	tests := []struct {
		name   string
		tables []*NormalizedTable
	}{
		{"nil table", []*NormalizedTable{nil}},
		{"missing election", []*NormalizedTable{normalized(0, []string{"א"}, []int64{1})}},
		{"missing metadata", []*NormalizedTable{noMeta}},
		{"duplicate election", []*NormalizedTable{normalized(20, nil), normalized(20, nil)}},
		{"party named like metadata", []*NormalizedTable{collides}},
		{"row shorter than layout", []*NormalizedTable{misaligned}},
		{"row from another election", []*NormalizedTable{mislabeled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Build(tt.tables...)
			if u != nil {
				t.Error("Build() returned a table alongside an error")
			}
			if !errors.Is(err, ErrSchemaDrift) {
				t.Errorf("Build() error = %v, want ErrSchemaDrift", err)
			}
		})
	}
}
