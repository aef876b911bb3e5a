package core

import "fmt"

// Point is one election's value in a party series.
type Point struct {
	Election ElectionID `json:"election"`
	Votes    int64      `json:"votes"`
	// Share is the party's percentage of that election's valid ballots.
	Share float64 `json:"share"`
}

// Series is one party's values across the requested range, ascending by election.
type Series struct {
	Key    string  `json:"party"`
	Points []Point `json:"points"`
}

// SeriesSet is the Query View result: one series per valid requested party,
// in request order, plus the requested keys that were not party columns.
type SeriesSet struct {
	Range     Range        `json:"range"`
	Elections []ElectionID `json:"elections"`
	Series    []Series     `json:"series"`
	Rejected  []string     `json:"rejected"`
}

// Get returns the points for key, or an empty series if key was not served.
func (s *SeriesSet) Get(key string) []Point {
	for _, series := range s.Series {
		if series.Key == key {
			return series.Points
		}
	}
	return []Point{}
}

// Keys returns the served party keys in request order.
func (s *SeriesSet) Keys() []string {
	keys := make([]string, len(s.Series))
	for i, series := range s.Series {
		keys[i] = series.Key
	}
	return keys
}

// SplitSelection partitions requested keys into party columns and rejected
// keys, dropping repeats and keeping request order. UIs use it to tell the
// user which of their choices are no longer valid.
func SplitSelection(agg *AggregateTable, keys []string) (valid, rejected []string) {
	valid, rejected = []string{}, []string{}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if agg != nil && agg.Has(key) {
			valid = append(valid, key)
		} else {
			rejected = append(rejected, key)
		}
	}
	return valid, rejected
}

// Slice projects the aggregate onto the elections within r (inclusive) and the
// requested party keys. Keys that are not party columns are left out of
// Series and reported in Rejected rather than failing the call; an empty key
// list yields an empty set. Only a reversed range is an error.
func Slice(agg *AggregateTable, r Range, keys []string) (*SeriesSet, error) {
	if r.Lo > r.Hi {
		return nil, fmt.Errorf("slice %d..%d: %w", r.Lo, r.Hi, ErrInvalidRange)
	}

	valid, rejected := SplitSelection(agg, keys)
	set := &SeriesSet{
		Range:     r,
		Elections: []ElectionID{},
		Series:    make([]Series, 0, len(valid)),
		Rejected:  rejected,
	}
	if agg == nil {
		return set, nil
	}

	for _, e := range agg.elections {
		if r.Contains(e) {
			set.Elections = append(set.Elections, e)
		}
	}

	for _, key := range valid {
		c := agg.column[key]
		points := make([]Point, len(set.Elections))
		for i, e := range set.Elections {
			row := agg.row[e]
			votes := agg.votes[row][c]
			points[i] = Point{
				Election: e,
				Votes:    votes,
				Share:    share(votes, agg.turnout[row].Valid),
			}
		}
		set.Series = append(set.Series, Series{Key: key, Points: points})
	}

	return set, nil
}

func share(votes, valid int64) float64 {
	if valid <= 0 {
		return 0
	}
	return float64(votes) * 100 / float64(valid)
}
