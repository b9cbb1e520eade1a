package diagnostics

import (
	"fmt"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// MappingError occurs when a diagnostic cannot be shown in a document overlay.
type MappingError struct {
	Item   protocol.DiagnosticItem
	Reason string
}

func (e *MappingError) Error() string {
	r := e.Item.Range
	return fmt.Sprintf("cannot map diagnostic at %d:%d-%d:%d: %s",
		r.Start.Line, r.Start.Column, r.End.Line, r.End.Column, e.Reason)
}
