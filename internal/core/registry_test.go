package core

import "testing"

func TestRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(SourceSpec{Election: 22, Path: "22.csv", Encoding: EncodingISO8859_8, Format: FormatCSV})
	Register(SourceSpec{Election: 17, Path: "17.xls", Encoding: EncodingUTF8, Format: FormatXLS})

	if got := SourceCount(); got != 2 {
		t.Fatalf("SourceCount() = %d, want 2", got)
	}
	all := All()
	if all[0].Election != 17 || all[1].Election != 22 {
		t.Errorf("All() not ascending: %+v", all)
	}
	if spec, ok := Get(22); !ok || spec.Path != "22.csv" {
		t.Errorf("Get(22) = %+v, %v", spec, ok)
	}
	if _, ok := Get(99); ok {
		t.Error("Get(99) found an unregistered election")
	}
}

func TestRegister_Panics(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	spec := SourceSpec{Election: 25, Path: "25.csv", Encoding: EncodingUTF8BOM, Format: FormatCSV}
	Register(spec)

	tests := []struct {
		name string
		spec SourceSpec
	}{
		{"duplicate", spec},
		{"no path", SourceSpec{Election: 3, Encoding: EncodingUTF8, Format: FormatCSV}},
		{"bad election", SourceSpec{Election: 0, Path: "x.csv", Encoding: EncodingUTF8, Format: FormatCSV}},
		{"bad format", SourceSpec{Election: 4, Path: "x.ods", Encoding: EncodingUTF8, Format: "ods"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			Register(tt.spec)
		})
	}
}

func TestParseElectionID(t *testing.T) {
	tests := []struct {
		in      string
		want    ElectionID
		wantErr bool
	}{
		{"25", 25, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseElectionID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseElectionID(%q) = %d, %v", tt.in, got, err)
		}
	}
	if got := ElectionID(21).String(); got != "21" {
		t.Errorf("String() = %q", got)
	}
}
