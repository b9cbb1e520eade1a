package headless

import (
	"sync"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/text"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Document is an in-memory editor buffer.
type Document struct {
	mu        sync.RWMutex
	file      protocol.FileKey
	content   *text.Content
	overlay   []host.DiagnosticRegion
	selection protocol.Range
	commands  []protocol.Command
	edits     int
}

// NewDocument creates a document for file holding s.
func NewDocument(file protocol.FileKey, s string) *Document {
	return &Document{file: file, content: text.NewContent(s)}
}

func (d *Document) File() protocol.FileKey {
	return d.file
}

func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content.String()
}

func (d *Document) Insert(line, column int, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.content.Insert(line, column, s); err != nil {
		return err
	}
	d.edits++
	return nil
}

func (d *Document) Replace(startLine, startColumn, endLine, endColumn int, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := protocol.Range{
		Start: protocol.Position{Line: startLine, Column: startColumn},
		End:   protocol.Position{Line: endLine, Column: endColumn},
	}
	if err := d.content.Replace(r, s); err != nil {
		return err
	}
	d.edits++
	return nil
}

func (d *Document) SetDiagnosticOverlay(regions []host.DiagnosticRegion) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = regions
}

func (d *Document) SetSelection(selection protocol.Range) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = selection
}

func (d *Document) ExecuteCommand(cmd protocol.Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, cmd)
}

// Overlay returns the regions last pushed to the document.
func (d *Document) Overlay() []host.DiagnosticRegion {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.overlay
}

// Selection returns the current selection.
func (d *Document) Selection() protocol.Range {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selection
}

// Commands returns the commands executed so far, oldest first.
func (d *Document) Commands() []protocol.Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]protocol.Command, len(d.commands))
	copy(out, d.commands)
	return out
}

// EditCount returns how many inserts and replaces succeeded.
func (d *Document) EditCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.edits
}
