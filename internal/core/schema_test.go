package core

import "testing"

func TestAdmit(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"מחל", true},
		{"שם ישוב", true},
		{"בזב", true},
		{"Unnamed: 0", false},
		{"Unnamed: 37", false},
		{"", false},
		{"   ", false},
		{"סמל ועדה", false},
		{" סמל ישוב ", false},
		{"מספר קלפי", false},
		{"סמל קלפי", false},
		{"ת. עדכון", false},
		{"כתובת", false},
		{"\ufeffסמל ועדה", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := Admit(tt.header); got != tt.want {
				t.Errorf("Admit(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"unchanged", "מחל", "מחל"},
		{"trims whitespace", "  אמת\t", "אמת"},
		{"strips double quote", `ש"ס`, "שס"},
		{"strips doubled single quote", "ש''ס", "שס"},
		{"single apostrophe kept", "ג'", "ג'"},
		{"registered alias", "בוחרים", FieldRegistered},
		{"registered long alias", "בעלי זכות בחירה", FieldRegistered},
		{"alias after trim", " בוחרים ", FieldRegistered},
		{"locality spelling", "שם יישוב", FieldLocality},
		{"valid ballots alias", "קולות כשרים", FieldValid},
		{"invalid ballots alias", "קולות פסולים", FieldInvalid},
		{"byte order mark", "\ufeffשם ישוב", FieldLocality},
		{"decomposed to composed", "e\u0301", "\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalName(tt.header); got != tt.want {
				t.Errorf("CanonicalName(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestIsMetadata(t *testing.T) {
	for _, f := range CanonicalMetadata {
		if !IsMetadata(f) {
			t.Errorf("IsMetadata(%q) = false", f)
		}
	}
	for _, k := range []string{"מחל", ColumnElection, "בוחרים"} {
		if IsMetadata(k) {
			t.Errorf("IsMetadata(%q) = true", k)
		}
	}
}
