package protocol

import (
	"path/filepath"
	"testing"
)

func TestDiagnosticSeverity(t *testing.T) {
	severities := []DiagnosticSeverity{
		SeverityError,
		SeverityWarning,
		SeverityInformation,
		SeverityHint,
	}

	for i, s := range severities {
		if s != DiagnosticSeverity(i+1) {
			t.Errorf("Severity mismatch: got %d, want %d", s, i+1)
		}
		if ParseSeverity(s.String()) != s {
			t.Errorf("ParseSeverity(%q) did not round trip", s.String())
		}
	}

	if ParseSeverity("fatal") != 0 {
		t.Errorf("Unknown severity should map to 0")
	}
}

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{1, 0}, Position{1, 0}, 0},
		{Position{1, 0}, Position{1, 5}, -1},
		{Position{2, 0}, Position{1, 9}, 1},
		{Position{0, 9}, Position{1, 0}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	r := Range{
		Start: Position{Line: 3, Column: 2},
		End:   Position{Line: 3, Column: 10},
	}

	if r.IsEmpty() {
		t.Error("Range should not be empty")
	}
	if !r.IsValid() {
		t.Error("Range should be valid")
	}
	if !r.Contains(Position{Line: 3, Column: 2}) || !r.Contains(Position{Line: 3, Column: 10}) {
		t.Error("Range should contain both of its ends")
	}
	if r.Contains(Position{Line: 3, Column: 11}) || r.Contains(Position{Line: 2, Column: 5}) {
		t.Error("Range should not contain positions outside of it")
	}

	reversed := Range{Start: r.End, End: r.Start}
	if reversed.IsValid() {
		t.Error("Reversed range should be invalid")
	}

	insertion := TextEdit{Range: Range{Start: Position{1, 1}, End: Position{1, 1}}, NewText: "x"}
	if !insertion.IsInsertion() {
		t.Error("Zero-width edit should be an insertion")
	}
}

func TestFileKeyEquality(t *testing.T) {
	dir := t.TempDir()

	a := NewFileKey(filepath.Join(dir, "src", "Main.java"))
	b := NewFileKey(filepath.Join(dir, "src", ".", "other", "..", "Main.java"))

	if a != b {
		t.Fatalf("Keys for the same path differ: %q vs %q", a, b)
	}

	seen := map[FileKey]int{a: 1}
	if seen[b] != 1 {
		t.Error("Equal keys should hash equal")
	}

	if a.Name() != "Main.java" {
		t.Errorf("Name mismatch: got %s, want Main.java", a.Name())
	}
	if a.Ext() != ".java" {
		t.Errorf("Ext mismatch: got %s, want .java", a.Ext())
	}
}

func TestFileKeyURI(t *testing.T) {
	dir := t.TempDir()
	key := NewFileKey(filepath.Join(dir, "a b.kt"))

	back := FileKeyFromURI(key.URI())
	if back != key {
		t.Errorf("URI round trip mismatch: got %q, want %q", back, key)
	}

	if !FileKeyFromURI("https://example.com/a.kt").IsZero() {
		t.Error("Non-file URI should yield the zero key")
	}
	if !NewFileKey("").IsZero() {
		t.Error("Empty path should yield the zero key")
	}
}

func TestSearchResultsKeepEncounterOrder(t *testing.T) {
	dir := t.TempDir()
	b := NewFileKey(filepath.Join(dir, "b.java"))
	a := NewFileKey(filepath.Join(dir, "a.java"))

	results := NewSearchResults()
	results.Add(b, MatchPreview{Match: "first"})
	results.Add(a, MatchPreview{Match: "second"})
	results.Add(b, MatchPreview{Match: "third"})

	if len(results.Files) != 2 || results.Files[0] != b || results.Files[1] != a {
		t.Fatalf("File order mismatch: got %v", results.Files)
	}
	if got := results.Matches[b]; len(got) != 2 || got[1].Match != "third" {
		t.Errorf("Matches for b mismatch: got %v", got)
	}
	if results.Len() != 3 {
		t.Errorf("Len mismatch: got %d, want 3", results.Len())
	}
}

func TestNoUpdateSentinel(t *testing.T) {
	if !NoUpdate().IsNoUpdate() {
		t.Errorf("NoUpdate() should report IsNoUpdate")
	}
	if (&DiagnosticResult{}).IsNoUpdate() {
		t.Errorf("An empty result must not be mistaken for the sentinel")
	}
	var missing *DiagnosticResult
	if missing.IsNoUpdate() {
		t.Errorf("A nil result must not be mistaken for the sentinel")
	}
}
