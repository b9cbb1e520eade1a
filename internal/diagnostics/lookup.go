package diagnostics

import (
	"sort"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Find returns the diagnostic covering pos. items must be sorted by range
// start. The search is a binary search for the last item starting at or before
// pos; an earlier item that also overlaps pos is not considered.
func Find(items []protocol.DiagnosticItem, pos protocol.Position) (protocol.DiagnosticItem, bool) {
	i := sort.Search(len(items), func(i int) bool {
		return items[i].Range.Start.Compare(pos) > 0
	}) - 1
	if i < 0 {
		return protocol.DiagnosticItem{}, false
	}
	if !items[i].Range.Contains(pos) {
		return protocol.DiagnosticItem{}, false
	}
	return items[i], true
}
