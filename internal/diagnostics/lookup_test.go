package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

func TestFind(t *testing.T) {
	items := []protocol.DiagnosticItem{
		diag(1, 0, 5, "first"),
		diag(3, 2, 10, "second"),
	}

	tests := []struct {
		name       string
		line, col  int
		want       string
		wantResult bool
	}{
		{"inside first", 1, 3, "first", true},
		{"between items", 2, 0, "", false},
		{"end is inclusive", 3, 10, "second", true},
		{"start is inclusive", 3, 2, "second", true},
		{"before start on same line", 3, 1, "", false},
		{"after last", 3, 11, "", false},
		{"before first", 0, 9, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(items, protocol.Position{Line: tt.line, Column: tt.col})
			require.Equal(t, tt.wantResult, ok)
			assert.Equal(t, tt.want, got.Message)
		})
	}
}

func TestFind_EmptyList(t *testing.T) {
	_, ok := Find(nil, protocol.Position{Line: 1, Column: 1})
	assert.False(t, ok)
}

func TestFind_MultiLineRange(t *testing.T) {
	items := []protocol.DiagnosticItem{
		{Range: protocol.Range{Start: protocol.Position{Line: 2, Column: 4}, End: protocol.Position{Line: 6, Column: 1}}, Message: "block"},
		diag(9, 0, 3, "later"),
	}

	got, ok := Find(items, protocol.Position{Line: 4, Column: 80})
	require.True(t, ok)
	assert.Equal(t, "block", got.Message)
}

func TestFind_Large(t *testing.T) {
	items := make([]protocol.DiagnosticItem, 10000)
	for i := range items {
		items[i] = diag(i, 2, 4, "")
	}

	got, ok := Find(items, protocol.Position{Line: 7777, Column: 3})
	require.True(t, ok)
	assert.Equal(t, 7777, got.Range.Start.Line)

	_, ok = Find(items, protocol.Position{Line: 7777, Column: 5})
	assert.False(t, ok)
}
