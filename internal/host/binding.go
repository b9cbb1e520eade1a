package host

import (
	"sync"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Binding holds the shell the client is currently attached to. Every method is
// safe to call while no shell is attached; they then report "not found".
type Binding struct {
	mu    sync.RWMutex
	shell Shell
}

// NewBinding creates a detached binding.
func NewBinding() *Binding {
	return &Binding{}
}

// Attach binds shell, replacing any previous one.
func (b *Binding) Attach(shell Shell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shell = shell
}

// Detach unbinds the current shell.
func (b *Binding) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shell = nil
}

// Shell returns the attached shell.
func (b *Binding) Shell() (Shell, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shell, b.shell != nil
}

// Locate returns the live document for file if it is open in any tab.
func (b *Binding) Locate(file protocol.FileKey) (Document, bool) {
	shell, ok := b.Shell()
	if !ok || file.IsZero() {
		return nil, false
	}
	doc, ok := shell.Document(file)
	if !ok || doc == nil {
		return nil, false
	}
	return doc, true
}

// OpenFiles returns the open files in tab order, or nil when detached.
func (b *Binding) OpenFiles() []protocol.FileKey {
	shell, ok := b.Shell()
	if !ok {
		return nil
	}
	return shell.OpenFiles()
}

// Open asks the shell to open file. It fails when detached or when the shell
// could not produce a document.
func (b *Binding) Open(file protocol.FileKey) (Document, error) {
	shell, ok := b.Shell()
	if !ok {
		return nil, &DetachedError{Operation: "open " + file.Path()}
	}
	doc, err := shell.OpenFile(file)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NoDocumentError{File: file}
	}
	return doc, nil
}
