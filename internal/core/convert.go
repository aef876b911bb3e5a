package core

// convert.go turns raw cells into counts. Spreadsheet exports are messy in a
// few predictable ways: thousands separators, integral floats ("123.0") from
// numeric spreadsheet cells, Excel formula prefixes (="123") and blank cells.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ParseCount parses a vote or voter count. Blank cells count as zero.
// Negative, fractional or non-numeric values are rejected with ErrBadCell.
func ParseCount(s string) (int64, error) {
	s = CleanCell(s)
	if s == "" {
		return 0, nil
	}

	s = strings.ReplaceAll(s, ",", "")

	// Integral decimals such as "123.0" or "123." come from numeric spreadsheet cells.
	if whole, frac, ok := strings.Cut(s, "."); ok {
		if strings.Trim(frac, "0") != "" {
			return 0, fmt.Errorf("%w: %q is not a whole number", ErrBadCell, s)
		}
		s = whole
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrBadCell, s)
	}
	return n, nil
}

// ToPgInt8 wraps a count as a valid nullable integer.
func ToPgInt8(n int64) pgtype.Int8 {
	return pgtype.Int8{Int64: n, Valid: true}
}
