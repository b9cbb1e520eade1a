package text

import (
	"fmt"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// PositionError occurs when a line/column pair does not address the text.
type PositionError struct {
	Line   int
	Column int
	Reason string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("invalid position %d:%d: %s", e.Line, e.Column, e.Reason)
}

// RangeError occurs when a range is negative or ends before it starts.
type RangeError struct {
	Range protocol.Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %d:%d-%d:%d",
		e.Range.Start.Line, e.Range.Start.Column, e.Range.End.Line, e.Range.End.Column)
}
