package headless

import (
	"sync"

	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Registry tracks open documents in tab order.
type Registry struct {
	sync.RWMutex
	docs    map[protocol.FileKey]*Document // file -> document
	tabs    []protocol.FileKey             // tab order
	focused int
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		docs:    make(map[protocol.FileKey]*Document),
		focused: -1,
		logger:  logger.With(zap.String("component", "document-registry")),
	}
}

// Register adds doc as the last tab and focuses it.
func (r *Registry) Register(doc *Document) error {
	r.Lock()
	defer r.Unlock()

	file := doc.File()
	if _, exists := r.docs[file]; exists {
		return &AlreadyOpenError{File: file}
	}

	r.docs[file] = doc
	r.tabs = append(r.tabs, file)
	r.focused = len(r.tabs) - 1

	r.logger.Debug("Document opened",
		zap.String("file", file.Path()),
		zap.Int("tab", r.focused),
	)

	return nil
}

// Get retrieves the document for file.
func (r *Registry) Get(file protocol.FileKey) (*Document, bool) {
	r.RLock()
	defer r.RUnlock()

	doc, ok := r.docs[file]
	return doc, ok
}

// Focus selects the tab showing file.
func (r *Registry) Focus(file protocol.FileKey) bool {
	r.Lock()
	defer r.Unlock()

	for i, f := range r.tabs {
		if f == file {
			r.focused = i
			return true
		}
	}
	return false
}

// Focused returns the document in the selected tab.
func (r *Registry) Focused() (*Document, bool) {
	r.RLock()
	defer r.RUnlock()

	if r.focused < 0 || r.focused >= len(r.tabs) {
		return nil, false
	}
	return r.docs[r.tabs[r.focused]], true
}

// Files returns the open files in tab order.
func (r *Registry) Files() []protocol.FileKey {
	r.RLock()
	defer r.RUnlock()

	// Return copy to avoid race conditions
	result := make([]protocol.FileKey, len(r.tabs))
	copy(result, r.tabs)
	return result
}

// Close removes the tab showing file.
func (r *Registry) Close(file protocol.FileKey) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.docs[file]; !ok {
		return
	}

	for i, f := range r.tabs {
		if f == file {
			r.tabs = append(r.tabs[:i], r.tabs[i+1:]...)
			if r.focused >= i {
				r.focused--
			}
			break
		}
	}
	if r.focused < 0 && len(r.tabs) > 0 {
		r.focused = 0
	}

	delete(r.docs, file)

	r.logger.Debug("Document closed", zap.String("file", file.Path()))
}

// Count returns the number of open documents.
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.docs)
}
