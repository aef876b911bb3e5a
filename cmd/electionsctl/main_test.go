package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/elections/internal/core"
)

// setupData writes two elections and a manifest and returns the args that
// point electionsctl at them.
func setupData(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"24.csv": "שם ישוב,בזב,מצביעים,פסולים,כשרים,מחל,פה\nחולון,100,80,0,80,50,30\n",
		"25.csv": "שם ישוב,בזב,מצביעים,פסולים,כשרים,מחל,פה,ט\nחולון,100,90,10,80,40,20,20\n",
		"manifest.yaml": `sources:
  - {election: 24, path: 24.csv, encoding: utf-8, format: csv}
  - {election: 25, path: 25.csv, encoding: utf-8, format: csv}
`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return []string{"--data-dir", dir, "--manifest", filepath.Join(dir, "manifest.yaml")}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSummaryCmd(t *testing.T) {
	out, _, err := run(t, append([]string{"summary", "--top", "2"}, setupData(t)...)...)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "25") || !strings.Contains(lines[2], "מחל, ט") {
		t.Errorf("unexpected election 25 line: %q", lines[2])
	}
}

func TestPartiesCmd(t *testing.T) {
	args := setupData(t)

	out, _, err := run(t, append([]string{"parties"}, args...)...)
	if err != nil {
		t.Fatalf("parties failed: %v", err)
	}
	if got := strings.Fields(out); strings.Join(got, " ") != "ט מחל פה" {
		t.Errorf("parties = %v", got)
	}

	out, _, err = run(t, append([]string{"parties", "--notable"}, args...)...)
	if err != nil {
		t.Fatalf("parties --notable failed: %v", err)
	}
	if got := len(strings.Fields(out)); got != 3 {
		t.Errorf("notable parties = %d, want 3", got)
	}
}

func TestSeriesCmd(t *testing.T) {
	args := setupData(t)

	out, stderr, err := run(t, append([]string{"series", "--party", "מחל", "--party", "nope"}, args...)...)
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}
	if !strings.Contains(stderr, `"nope"`) {
		t.Errorf("no warning for unknown party, stderr %q", stderr)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasSuffix(strings.TrimSpace(lines[1]), "50") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "40") {
		t.Errorf("unexpected series output:\n%s", out)
	}

	out, _, err = run(t, append([]string{"series", "--party", "פה", "--share", "--from", "25"}, args...)...)
	if err != nil {
		t.Fatalf("series --share failed: %v", err)
	}
	if !strings.Contains(out, "25.00") || strings.Contains(out, "37.50") {
		t.Errorf("unexpected share output:\n%s", out)
	}
}

func TestSeriesCmd_Errors(t *testing.T) {
	args := setupData(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no party", []string{"series"}, core.ErrInvalidSelection},
		{"too many", []string{"series", "--party", "a", "--party", "b", "--party", "c", "--party", "d"}, core.ErrInvalidSelection},
		{"reversed", []string{"series", "--party", "מחל", "--from", "25", "--to", "24"}, core.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, append(tt.args, args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMissingSource(t *testing.T) {
	args := setupData(t)
	if err := os.Remove(filepath.Join(args[1], "24.csv")); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, append([]string{"summary"}, args...)...)
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Fatalf("error = %v, want ErrSourceNotFound", err)
	}
	if msg := core.FormatUserError(err); !strings.Contains(msg, "SRC001") {
		t.Errorf("user message %q lacks the code", msg)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantCause bool
	}{
		{"coded error", &core.SourceError{Election: 24, Path: "24.csv", Err: core.ErrSourceNotFound}, "SRC001", false},
		{"fallback shows cause", errors.New("disk on fire"), "ERR000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			out := buf.String()
			if !strings.Contains(out, tt.wantCode) {
				t.Errorf("output %q lacks %s", out, tt.wantCode)
			}
			if got := strings.Contains(out, "cause: "+tt.err.Error()); got != tt.wantCause {
				t.Errorf("cause printed = %v, want %v (output %q)", got, tt.wantCause, out)
			}
		})
	}
}
