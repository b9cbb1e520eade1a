package protocol

import "strings"

// DiagnosticSeverity represents the severity of a diagnostic
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	}
	return "unknown"
}

// ParseSeverity maps a severity name to its value. Unknown names map to 0.
func ParseSeverity(name string) DiagnosticSeverity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	case "info", "information":
		return SeverityInformation
	case "hint":
		return SeverityHint
	}
	return 0
}

// DiagnosticItem is one reported issue in a file
type DiagnosticItem struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Message  string             `json:"message"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
}

// DiagnosticResult is a publish event for one file. Items are expected to be
// sorted by range start.
type DiagnosticResult struct {
	File        FileKey          `json:"file"`
	Diagnostics []DiagnosticItem `json:"diagnostics"`
}

var noUpdate = &DiagnosticResult{}

// NoUpdate returns the sentinel result meaning "leave the store untouched".
func NoUpdate() *DiagnosticResult {
	return noUpdate
}

// IsNoUpdate reports whether r is the NoUpdate sentinel.
func (r *DiagnosticResult) IsNoUpdate() bool {
	return r == noUpdate
}

// DiagnosticGroup is a capped, ordered slice of one file's diagnostics prepared
// for display.
type DiagnosticGroup struct {
	File        FileKey
	Diagnostics []DiagnosticItem
	Icon        string
}
