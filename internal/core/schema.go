package core

// schema.go holds the only schema contract the source files have: which
// columns are admitted at parse time, how header names are cleaned, which
// historical names alias to one canonical field, and which canonical fields
// are metadata rather than party votes.

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ColumnElection is the name of the election ID column every row leads with.
const ColumnElection = "knesset"

// Canonical metadata fields.
const (
	FieldLocality   = "שם ישוב" // locality name
	FieldRegistered = "בזב"     // registered voters
	FieldVoters     = "מצביעים" // ballots cast
	FieldInvalid    = "פסולים"  // invalid ballots
	FieldValid      = "כשרים"   // valid ballots
)

// CanonicalMetadata is the fixed, ordered set of metadata fields every
// normalized row carries. Everything else that survives admission is a party.
var CanonicalMetadata = []string{
	FieldLocality,
	FieldRegistered,
	FieldVoters,
	FieldInvalid,
	FieldValid,
}

var canonicalMetadataSet = func() map[string]int {
	m := make(map[string]int, len(CanonicalMetadata))
	for i, f := range CanonicalMetadata {
		m[f] = i
	}
	return m
}()

// IsMetadata reports whether a canonical column name is a metadata field.
func IsMetadata(name string) bool {
	_, ok := canonicalMetadataSet[name]
	return ok
}

// administrativeColumns are never needed downstream and are dropped at parse time.
var administrativeColumns = map[string]bool{
	"סמל ועדה":  true, // committee code
	"סמל ישוב":  true, // locality code
	"מספר קלפי": true, // station number
	"סמל קלפי":  true, // station code
	"ת. עדכון":  true, // last update
	"כתובת":     true, // address
}

// Aliases maps historically renamed fields to their canonical names.
var Aliases = map[string]string{
	"בוחרים":          FieldRegistered,
	"בעלי זכות בחירה": FieldRegistered,
	"שם יישוב":        FieldLocality,
	"קולות כשרים":     FieldValid,
	"קולות פסולים":    FieldInvalid,
}

// AdmitFunc decides at parse time whether a header column is materialized.
type AdmitFunc func(header string) bool

// Admit is the default column-admission predicate. It rejects positional
// artifacts (blank or "Unnamed" headers) and administrative metadata.
func Admit(header string) bool {
	name := cleanName(header)
	if name == "" || strings.HasPrefix(name, "Unnamed") {
		return false
	}
	return !administrativeColumns[name]
}

// CanonicalName cleans a header and resolves aliases. The steps run in a fixed
// order: Unicode NFC, whitespace trim, removal of doubled single quotes and
// double quotes, then the alias table.
func CanonicalName(header string) string {
	name := cleanName(header)
	if alias, ok := Aliases[name]; ok {
		return alias
	}
	return name
}

// cleanName applies every cleanup step except aliasing.
func cleanName(header string) string {
	s := norm.NFC.String(header)
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "''", "")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
