package protocol

// Core types shared between the diagnostics engine, the edit router and the
// location builder. Lines and columns are zero-based; columns count UTF-16
// code units, as LSP does.

// Position represents a position in a text document
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Compare orders positions by line, then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Range represents a range in a text document
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// IsEmpty reports whether the range is an insertion point.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether start and end are non-negative and in document order.
func (r Range) IsValid() bool {
	if r.Start.Line < 0 || r.Start.Column < 0 || r.End.Line < 0 || r.End.Column < 0 {
		return false
	}
	return r.Start.Compare(r.End) <= 0
}

// Contains reports whether pos lies within the range. Both ends are inclusive.
func (r Range) Contains(pos Position) bool {
	return r.Start.Compare(pos) <= 0 && pos.Compare(r.End) <= 0
}

// TextEdit represents a text edit. Range is expressed in the coordinates of the
// document before the edit is applied.
type TextEdit struct {
	Range   Range  `json:"range" yaml:"range"`
	NewText string `json:"newText" yaml:"new_text"`
}

// IsInsertion reports whether the edit inserts text without replacing any.
func (e TextEdit) IsInsertion() bool {
	return e.Range.IsEmpty()
}

// Location represents a location inside a file
type Location struct {
	File  FileKey `json:"file" yaml:"file"`
	Range Range   `json:"range" yaml:"range"`
}

// MatchPreview is one entry of a location result list.
type MatchPreview struct {
	Range Range  `json:"range"`
	Line  string `json:"line"`
	Match string `json:"match"`
}

// SearchResults groups match previews by file. Files keeps the order in which
// each file was first encountered.
type SearchResults struct {
	Files   []FileKey
	Matches map[FileKey][]MatchPreview
}

// NewSearchResults returns an empty result set.
func NewSearchResults() *SearchResults {
	return &SearchResults{Matches: make(map[FileKey][]MatchPreview)}
}

// Add appends a preview for file.
func (s *SearchResults) Add(file FileKey, preview MatchPreview) {
	if _, ok := s.Matches[file]; !ok {
		s.Files = append(s.Files, file)
	}
	s.Matches[file] = append(s.Matches[file], preview)
}

// Len returns the total number of previews.
func (s *SearchResults) Len() int {
	n := 0
	for _, m := range s.Matches {
		n += len(m)
	}
	return n
}

// ShowDocumentParams asks the client to reveal a file and select a range in it.
type ShowDocumentParams struct {
	File      FileKey `json:"file"`
	Selection Range   `json:"selection"`
}

// ShowDocumentResult reports whether the document could be shown.
type ShowDocumentResult struct {
	Success bool `json:"success"`
}
