package host

import (
	"fmt"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// DetachedError occurs when an operation needs a shell but none is attached.
type DetachedError struct {
	Operation string
}

func (e *DetachedError) Error() string {
	return fmt.Sprintf("no UI shell attached (%s)", e.Operation)
}

// NoDocumentError occurs when the shell opened a file but produced no document.
type NoDocumentError struct {
	File protocol.FileKey
}

func (e *NoDocumentError) Error() string {
	return fmt.Sprintf("no document produced for '%s'", e.File)
}
