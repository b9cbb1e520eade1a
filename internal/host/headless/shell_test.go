package headless

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

func newTestShell(t *testing.T, files map[string]string) (*Shell, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return NewShell(fs, zap.NewNop()), fs
}

func TestShell_OpenFile(t *testing.T) {
	shell, _ := newTestShell(t, map[string]string{
		"/src/A.java": "\xef\xbb\xbfclass A {}\n",
	})
	file := protocol.NewFileKey("/src/A.java")

	doc, err := shell.OpenFile(file)
	require.NoError(t, err)
	assert.Equal(t, "class A {}\n", doc.Text(), "BOM is stripped")
	assert.Equal(t, file, doc.File())

	again, err := shell.OpenFile(file)
	require.NoError(t, err)
	assert.Same(t, doc, again, "opening twice returns the same document")
	assert.Equal(t, 1, shell.Registry().Count())
	assert.Len(t, shell.OpenCalls(), 2)
}

func TestShell_OpenFile_Missing(t *testing.T) {
	shell, fs := newTestShell(t, nil)
	require.NoError(t, fs.MkdirAll("/src/pkg", 0o755))

	_, err := shell.OpenFile(protocol.NewFileKey("/src/Missing.java"))
	var notFound *FileNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = shell.OpenFile(protocol.NewFileKey("/src/pkg"))
	assert.ErrorAs(t, err, &notFound, "directories cannot be opened")
}

func TestShell_TabOrderAndFocus(t *testing.T) {
	shell, _ := newTestShell(t, map[string]string{
		"/src/B.java": "b",
		"/src/A.java": "a",
		"/src/C.java": "c",
	})
	b := protocol.NewFileKey("/src/B.java")
	a := protocol.NewFileKey("/src/A.java")
	c := protocol.NewFileKey("/src/C.java")

	for _, f := range []protocol.FileKey{b, a, c} {
		_, err := shell.OpenFile(f)
		require.NoError(t, err)
	}
	assert.Equal(t, []protocol.FileKey{b, a, c}, shell.OpenFiles())

	focused, ok := shell.FocusedDocument()
	require.True(t, ok)
	assert.Equal(t, c, focused.File())

	shell.Registry().Close(c)
	focused, ok = shell.FocusedDocument()
	require.True(t, ok)
	assert.Equal(t, a, focused.File())
	assert.Equal(t, []protocol.FileKey{b, a}, shell.OpenFiles())

	require.True(t, shell.Registry().Focus(b))
	focused, _ = shell.FocusedDocument()
	assert.Equal(t, b, focused.File())
}

func TestShell_OpenFileAndSelect(t *testing.T) {
	shell, _ := newTestShell(t, map[string]string{"/src/A.java": "class A {}\n"})
	file := protocol.NewFileKey("/src/A.java")
	sel := protocol.Range{End: protocol.Position{Column: 5}}

	require.NoError(t, shell.OpenFileAndSelect(file, sel))

	doc, ok := shell.Registry().Get(file)
	require.True(t, ok)
	assert.Equal(t, sel, doc.Selection())
}

func TestShell_Views(t *testing.T) {
	shell, _ := newTestShell(t, nil)

	groups := []protocol.DiagnosticGroup{{File: protocol.NewFileKey("/src/A.java")}}
	shell.SetDiagnosticsView(groups)
	shell.SetDiagnosticsState(host.Populated)
	shell.SetSearchResultsState(host.Empty)
	shell.ShowError("Unable to perform code action")

	assert.Equal(t, groups, shell.DiagnosticGroups())
	assert.Equal(t, host.Populated, shell.DiagnosticsState())
	assert.Equal(t, host.Empty, shell.SearchState())
	assert.Equal(t, []string{"Unable to perform code action"}, shell.Errors())
}

func TestDocument_Edits(t *testing.T) {
	doc := NewDocument(protocol.NewFileKey("/src/A.java"), "class A {}\n")

	require.NoError(t, doc.Insert(0, 0, "public "))
	require.NoError(t, doc.Replace(0, 13, 0, 14, "B"))
	assert.Equal(t, "public class B {}\n", doc.Text())
	assert.Equal(t, 2, doc.EditCount())

	assert.Error(t, doc.Replace(5, 0, 5, 1, "x"))
	assert.Equal(t, 2, doc.EditCount())

	doc.ExecuteCommand(protocol.Command{Command: "editor.format"})
	assert.Equal(t, []protocol.Command{{Command: "editor.format"}}, doc.Commands())
}
