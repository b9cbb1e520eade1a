package diagnostics

import (
	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// ToRegion converts a diagnostic into the overlay representation used by
// documents.
func ToRegion(item protocol.DiagnosticItem) (host.DiagnosticRegion, error) {
	if !item.Range.IsValid() {
		return host.DiagnosticRegion{}, &MappingError{Item: item, Reason: "invalid range"}
	}
	switch item.Severity {
	case protocol.SeverityError, protocol.SeverityWarning, protocol.SeverityInformation, protocol.SeverityHint:
	default:
		return host.DiagnosticRegion{}, &MappingError{Item: item, Reason: "unknown severity"}
	}

	return host.DiagnosticRegion{
		Start:    item.Range.Start,
		End:      item.Range.End,
		Severity: item.Severity,
		Message:  item.Message,
	}, nil
}
