// Package session reads YAML session files and replays them against a language
// client bound to the headless shell.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Session is a recorded sequence of backend events. Relative file paths are
// resolved against the directory holding the session file.
type Session struct {
	// Files to open, in tab order.
	Open         []string           `yaml:"open"`
	Diagnostics  []DiagnosticsEntry `yaml:"diagnostics"`
	Actions      []ActionEntry      `yaml:"actions"`
	Locations    []LocationEntry    `yaml:"locations"`
	ShowDocument *ShowDocumentEntry `yaml:"show_document"`

	// Internal fields
	path string
}

// DiagnosticsEntry is one publish event.
type DiagnosticsEntry struct {
	File  string            `yaml:"file"`
	Items []DiagnosticEntry `yaml:"items"`
}

// DiagnosticEntry is one diagnostic of a publish event.
type DiagnosticEntry struct {
	Range    protocol.Range `yaml:"range"`
	Severity string         `yaml:"severity"`
	Message  string         `yaml:"message"`
	Code     string         `yaml:"code"`
	Source   string         `yaml:"source"`
}

// ActionEntry is a code action performed from the Origin document.
type ActionEntry struct {
	Title   string           `yaml:"title"`
	Kind    string           `yaml:"kind"`
	Origin  string           `yaml:"origin"`
	Command protocol.Command `yaml:"command"`
	Changes []ChangeEntry    `yaml:"changes"`
}

// ChangeEntry holds the edits of an action for one file.
type ChangeEntry struct {
	File  string              `yaml:"file"`
	Edits []protocol.TextEdit `yaml:"edits"`
}

// LocationEntry is one location of a references or definition result.
type LocationEntry struct {
	File  string         `yaml:"file"`
	Range protocol.Range `yaml:"range"`
}

// ShowDocumentEntry asks the client to reveal a file.
type ShowDocumentEntry struct {
	File      string         `yaml:"file"`
	Selection protocol.Range `yaml:"selection"`
}

// ParseSession reads and validates the session file at path.
func ParseSession(fs afero.Fs, path string) (*Session, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &NotFoundError{
			Path: path,
			Err:  err,
		}
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{
			Path: path,
			Err:  err,
		}
	}

	s.path = path

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that every entry names a file and carries usable ranges.
func (s *Session) Validate() error {
	for i, f := range s.Open {
		if f == "" {
			return s.invalid(fmt.Sprintf("open[%d]", i), "file is required")
		}
	}

	for i, d := range s.Diagnostics {
		field := fmt.Sprintf("diagnostics[%d]", i)
		if d.File == "" {
			return s.invalid(field+".file", "file is required")
		}
		for j, item := range d.Items {
			itemField := fmt.Sprintf("%s.items[%d]", field, j)
			if protocol.ParseSeverity(item.Severity) == 0 {
				return s.invalid(itemField+".severity",
					fmt.Sprintf("unknown severity: %q (must be one of: error, warning, info, hint)", item.Severity))
			}
			if item.Message == "" {
				return s.invalid(itemField+".message", "message is required")
			}
		}
	}

	for i, a := range s.Actions {
		field := fmt.Sprintf("actions[%d]", i)
		if a.Title == "" {
			return s.invalid(field+".title", "title is required")
		}
		if a.Origin == "" {
			return s.invalid(field+".origin", "origin is required")
		}
		for j, c := range a.Changes {
			if c.File == "" {
				return s.invalid(fmt.Sprintf("%s.changes[%d].file", field, j), "file is required")
			}
		}
	}

	for i, l := range s.Locations {
		if l.File == "" {
			return s.invalid(fmt.Sprintf("locations[%d].file", i), "file is required")
		}
	}

	if s.ShowDocument != nil && s.ShowDocument.File == "" {
		return s.invalid("show_document.file", "file is required")
	}

	return nil
}

func (s *Session) invalid(field, message string) error {
	return &ValidationError{
		Path:    s.path,
		Field:   field,
		Message: message,
	}
}

// Path returns the session file path.
func (s *Session) Path() string {
	return s.path
}

// Dir returns the directory containing the session file.
func (s *Session) Dir() string {
	return filepath.Dir(s.path)
}

// Resolve converts a path from the session file into a FileKey.
func (s *Session) Resolve(path string) protocol.FileKey {
	if path == "" {
		return protocol.FileKey{}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir(), path)
	}
	return protocol.NewFileKey(path)
}

// OpenFiles returns the files to open in tab order.
func (s *Session) OpenFiles() []protocol.FileKey {
	files := make([]protocol.FileKey, len(s.Open))
	for i, f := range s.Open {
		files[i] = s.Resolve(f)
	}
	return files
}

// DiagnosticResults returns the publish events in session order.
func (s *Session) DiagnosticResults() []*protocol.DiagnosticResult {
	results := make([]*protocol.DiagnosticResult, 0, len(s.Diagnostics))
	for _, d := range s.Diagnostics {
		items := make([]protocol.DiagnosticItem, len(d.Items))
		for i, item := range d.Items {
			items[i] = protocol.DiagnosticItem{
				Range:    item.Range,
				Severity: protocol.ParseSeverity(item.Severity),
				Message:  item.Message,
				Code:     item.Code,
				Source:   item.Source,
			}
		}
		results = append(results, &protocol.DiagnosticResult{
			File:        s.Resolve(d.File),
			Diagnostics: items,
		})
	}
	return results
}

// CodeAction converts an action entry.
func (s *Session) CodeAction(a ActionEntry) *protocol.CodeActionItem {
	changes := make([]protocol.FileChange, len(a.Changes))
	for i, c := range a.Changes {
		changes[i] = protocol.FileChange{
			File:  s.Resolve(c.File),
			Edits: c.Edits,
		}
	}
	return &protocol.CodeActionItem{
		Title:   a.Title,
		Kind:    a.Kind,
		Command: a.Command,
		Changes: changes,
	}
}

// LocationList returns the session locations.
func (s *Session) LocationList() []protocol.Location {
	locations := make([]protocol.Location, len(s.Locations))
	for i, l := range s.Locations {
		locations[i] = protocol.Location{
			File:  s.Resolve(l.File),
			Range: l.Range,
		}
	}
	return locations
}
