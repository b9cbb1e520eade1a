// Package headless provides an in-memory UI shell. It backs the replay command
// and serves as the UI in tests.
package headless

import (
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/text"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Shell implements host.Shell on top of a Registry. Files are opened from fs.
type Shell struct {
	fs       afero.Fs
	registry *Registry
	logger   *zap.Logger

	mu               sync.Mutex
	diagnosticGroups []protocol.DiagnosticGroup
	diagnosticsState host.Visibility
	searchResults    *protocol.SearchResults
	searchState      host.Visibility
	errors           []string
	openCalls        []protocol.FileKey
}

var _ host.Shell = (*Shell)(nil)

// NewShell creates a shell with no open tabs.
func NewShell(fs afero.Fs, logger *zap.Logger) *Shell {
	return &Shell{
		fs:       fs,
		registry: NewRegistry(logger),
		logger:   logger.With(zap.String("component", "headless-shell")),
	}
}

// Registry returns the open-document registry.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Open is a convenience wrapper around OpenFile returning the concrete type.
func (s *Shell) Open(file protocol.FileKey) (*Document, error) {
	if doc, ok := s.registry.Get(file); ok {
		s.registry.Focus(file)
		return doc, nil
	}

	if !text.IsRegularFile(s.fs, file.Path()) {
		return nil, &FileNotFoundError{File: file}
	}
	content, err := text.ReadFile(s.fs, file.Path())
	if err != nil {
		return nil, &FileReadError{File: file, Err: err}
	}

	doc := NewDocument(file, content)
	if err := s.registry.Register(doc); err != nil {
		// Lost a race with another open of the same file.
		if existing, ok := s.registry.Get(file); ok {
			return existing, nil
		}
		return nil, err
	}
	return doc, nil
}

func (s *Shell) Document(file protocol.FileKey) (host.Document, bool) {
	doc, ok := s.registry.Get(file)
	if !ok {
		return nil, false
	}
	return doc, true
}

func (s *Shell) FocusedDocument() (host.Document, bool) {
	doc, ok := s.registry.Focused()
	if !ok {
		return nil, false
	}
	return doc, true
}

func (s *Shell) OpenFile(file protocol.FileKey) (host.Document, error) {
	s.mu.Lock()
	s.openCalls = append(s.openCalls, file)
	s.mu.Unlock()

	doc, err := s.Open(file)
	if err != nil {
		s.logger.Warn("Failed to open file", zap.String("file", file.Path()), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

func (s *Shell) OpenFileAndSelect(file protocol.FileKey, selection protocol.Range) error {
	doc, err := s.Open(file)
	if err != nil {
		return err
	}
	doc.SetSelection(selection)
	return nil
}

func (s *Shell) OpenFiles() []protocol.FileKey {
	return s.registry.Files()
}

func (s *Shell) SetDiagnosticsView(groups []protocol.DiagnosticGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnosticGroups = groups
}

func (s *Shell) SetDiagnosticsState(state host.Visibility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnosticsState = state
}

func (s *Shell) SetSearchResultsView(results *protocol.SearchResults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchResults = results
}

func (s *Shell) SetSearchResultsState(state host.Visibility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchState = state
}

func (s *Shell) ShowError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, message)
	s.logger.Warn("Error shown to user", zap.String("message", message))
}

// DiagnosticGroups returns the groups last set on the diagnostics view.
func (s *Shell) DiagnosticGroups() []protocol.DiagnosticGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagnosticGroups
}

// DiagnosticsState returns the last diagnostics view state.
func (s *Shell) DiagnosticsState() host.Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagnosticsState
}

// SearchResults returns the results last set on the search view.
func (s *Shell) SearchResults() *protocol.SearchResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchResults
}

// SearchState returns the last search view state.
func (s *Shell) SearchState() host.Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchState
}

// Errors returns the messages shown with ShowError.
func (s *Shell) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.errors))
	copy(out, s.errors)
	return out
}

// OpenCalls returns every file passed to OpenFile.
func (s *Shell) OpenCalls() []protocol.FileKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.FileKey, len(s.openCalls))
	copy(out, s.openCalls)
	return out
}
