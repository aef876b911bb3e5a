package core

import (
	"errors"
	"testing"
)

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "123", "123"},
		{"surrounding whitespace", "  42 \t", "42"},
		{"excel formula prefix", `="0012"`, "0012"},
		{"bare equals", "=17", "17"},
		{"double quotes", `"ירושלים"`, "ירושלים"},
		{"single quotes", "'5'", "5"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseCount Tests
// ----------------------------------------------------------------------------

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		// Valid
		{name: "integer", input: "350", want: 350},
		{name: "zero", input: "0", want: 0},
		{name: "blank reads as zero", input: "", want: 0},
		{name: "whitespace reads as zero", input: "  ", want: 0},
		{name: "thousands separators", input: "1,234,567", want: 1234567},
		{name: "integral float", input: "123.0", want: 123},
		{name: "trailing point", input: "99.", want: 99},
		{name: "formula prefix", input: `="250"`, want: 250},
		{name: "large tally", input: "4764742", want: 4764742},

		// Invalid
		{name: "negative", input: "-5", wantErr: true},
		{name: "fraction", input: "12.5", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
		{name: "hebrew text", input: "ירושלים", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrBadCell) {
					t.Fatalf("ParseCount(%q) error = %v, want ErrBadCell", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPgInt8(t *testing.T) {
	v := ToPgInt8(0)
	if !v.Valid || v.Int64 != 0 {
		t.Errorf("ToPgInt8(0) = %+v, want valid zero", v)
	}
}
