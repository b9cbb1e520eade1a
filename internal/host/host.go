// Package host defines the contracts between the language client and the UI
// shell that owns open documents, and the Binding used to reach that shell.
package host

import (
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Document is a live, editable representation of a file attached to the UI.
// The client borrows a Document for the duration of a call and never keeps it.
type Document interface {
	// File returns the file shown by the document, or the zero key.
	File() protocol.FileKey

	// Text returns the current text of the document.
	Text() string

	Insert(line, column int, text string) error
	Replace(startLine, startColumn, endLine, endColumn int, text string) error

	SetDiagnosticOverlay(regions []DiagnosticRegion)
	SetSelection(selection protocol.Range)
	ExecuteCommand(cmd protocol.Command)
}

// Shell is the UI that owns tabs and result views.
type Shell interface {
	// Document returns the open document for file, focused or not.
	Document(file protocol.FileKey) (Document, bool)

	// FocusedDocument returns the document in the selected tab.
	FocusedDocument() (Document, bool)

	// OpenFile opens file in a new tab and returns its document.
	OpenFile(file protocol.FileKey) (Document, error)

	// OpenFileAndSelect opens file and selects the given range.
	OpenFileAndSelect(file protocol.FileKey, selection protocol.Range) error

	// OpenFiles returns the open files in tab order.
	OpenFiles() []protocol.FileKey

	SetDiagnosticsView(groups []protocol.DiagnosticGroup)
	SetDiagnosticsState(state Visibility)
	SetSearchResultsView(results *protocol.SearchResults)
	SetSearchResultsState(state Visibility)
	ShowError(message string)
}

// Executor schedules work onto the UI execution context. Document mutations
// and view updates must go through it.
type Executor interface {
	RunOnUI(fn func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func())

// RunOnUI calls f(fn).
func (f ExecutorFunc) RunOnUI(fn func()) {
	f(fn)
}

// Inline runs every task on the calling goroutine.
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

// Visibility is the state a result view should switch to.
type Visibility int

const (
	// Unchanged leaves the view as it is.
	Unchanged Visibility = iota
	// Empty shows the empty/error state.
	Empty
	// Populated shows the result list.
	Populated
	// Hidden hides the view.
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Unchanged:
		return "unchanged"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Hidden:
		return "hidden"
	}
	return "unknown"
}

// DiagnosticRegion is the overlay representation of a diagnostic inside a
// document.
type DiagnosticRegion struct {
	Start    protocol.Position
	End      protocol.Position
	Severity protocol.DiagnosticSeverity
	Message  string
}
