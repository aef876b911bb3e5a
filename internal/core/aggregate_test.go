package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate(t *testing.T) {
	u, err := Build(
		normalized(20, []string{"א", "ב"}, []int64{100, 1}, []int64{250, 2}, []int64{0, 3}),
		normalized(21, []string{"ב", "ג"}, []int64{5, 6}),
	)
	if err != nil {
		t.Fatal(err)
	}
	agg := Aggregate(u)

	if got := agg.Votes(20, "א"); got != 350 {
		t.Errorf("Votes(20, א) = %d, want 350", got)
	}
	if got := agg.Votes(21, "א"); got != 0 {
		t.Errorf("Votes(21, א) = %d, want 0 for a party not on the ballot", got)
	}
	if got := agg.Votes(99, "א"); got != 0 {
		t.Errorf("Votes(99, א) = %d, want 0 for an unknown election", got)
	}
	if got := agg.Votes(20, "zz"); got != 0 {
		t.Errorf("Votes(20, zz) = %d, want 0 for an unknown party", got)
	}

	wantRow := map[string]int64{"א": 350, "ב": 6, "ג": 0}
	if diff := cmp.Diff(wantRow, agg.Row(20)); diff != "" {
		t.Errorf("Row(20) mismatch (-want +got):\n%s", diff)
	}
	if agg.Row(99) != nil {
		t.Error("Row(99) should be nil")
	}

	if diff := cmp.Diff([]string{"א", "ב", "ג"}, agg.PartyKeys()); diff != "" {
		t.Errorf("PartyKeys() mismatch (-want +got):\n%s", diff)
	}
	if !agg.Has("ג") || agg.Has("ד") {
		t.Error("Has() does not match the party columns")
	}
	if !agg.HasElection(21) || agg.HasElection(22) {
		t.Error("HasElection() does not match the loaded elections")
	}
	if agg.OnBallot(21, "א") || !agg.OnBallot(21, "ג") {
		t.Error("OnBallot() does not follow the source ballots")
	}

	// normalized sets valid = sum of the row's votes.
	wantTurnout := Turnout{Registered: 2 * 356, Voters: 356 + 3, Invalid: 3, Valid: 356}
	if got := agg.Turnout(20); got != wantTurnout {
		t.Errorf("Turnout(20) = %+v, want %+v", got, wantTurnout)
	}
	if got := agg.Stations(20); got != 3 {
		t.Errorf("Stations(20) = %d, want 3", got)
	}
	if got := agg.Span(); got != (Range{Lo: 20, Hi: 21}) {
		t.Errorf("Span() = %+v", got)
	}
}

func TestAggregate_ColumnTotalsMatchUnified(t *testing.T) {
	u, err := Build(
		normalized(16, []string{"מחל", "עבודה"}, []int64{7, 9}, []int64{11, 13}),
		normalized(17, []string{"קדימה", "מחל"}, []int64{21, 4}),
	)
	if err != nil {
		t.Fatal(err)
	}
	agg := Aggregate(u)

	for _, e := range agg.Elections() {
		for _, key := range agg.PartyKeys() {
			var want int64
			for i := 0; i < u.Len(); i++ {
				if u.Row(i).Election != e {
					continue
				}
				if c := u.Cell(i, key); c.Valid {
					want += c.Int64
				}
			}
			if got := agg.Votes(e, key); got != want {
				t.Errorf("Votes(%d, %q) = %d, want %d", e, key, got, want)
			}
		}
	}
}

func TestAggregate_Equal(t *testing.T) {
	build := func(v int64) *AggregateTable {
		u, err := Build(normalized(20, []string{"א"}, []int64{v}))
		if err != nil {
			t.Fatal(err)
		}
		return Aggregate(u)
	}

	if !build(1).Equal(build(1)) {
		t.Error("identical aggregates are not Equal")
	}
	if build(1).Equal(build(2)) {
		t.Error("different aggregates are Equal")
	}

	moreStations := build(1)
	moreStations.stations[0]++
	if build(1).Equal(moreStations) {
		t.Error("aggregates with different station counts are Equal")
	}

	// Same votes everywhere, but ב only ran in election 21 on one side.
	ballotsOf := func(first []string, votes []int64) *AggregateTable {
		u, err := Build(
			normalized(20, first, votes),
			normalized(21, []string{"א", "ב"}, []int64{3, 4}),
		)
		if err != nil {
			t.Fatal(err)
		}
		return Aggregate(u)
	}
	withB := ballotsOf([]string{"א", "ב"}, []int64{1, 0})
	withoutB := ballotsOf([]string{"א"}, []int64{1})
	if withB.Equal(withoutB) {
		t.Error("aggregates with different ballots are Equal")
	}
	var nilAgg *AggregateTable
	if nilAgg.Equal(build(1)) || !nilAgg.Equal(nil) {
		t.Error("nil handling in Equal is wrong")
	}
}

func TestAggregate_EmptySpan(t *testing.T) {
	u, err := Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := Aggregate(u).Span(); got != (Range{}) {
		t.Errorf("Span() = %+v, want zero range", got)
	}
}
