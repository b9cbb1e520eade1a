package location

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/host/headless"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

func loc(path string, line, startCol, endCol int) protocol.Location {
	return protocol.Location{
		File: protocol.NewFileKey(path),
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Column: startCol},
			End:   protocol.Position{Line: line, Column: endCol},
		},
	}
}

func newBuilder(t *testing.T, files map[string]string) (*Builder, *headless.Shell, afero.Fs) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	shell := headless.NewShell(fs, logger)
	binding := host.NewBinding()
	binding.Attach(shell)

	return NewBuilder(binding, fs, 2, logger), shell, fs
}

func TestBuild_FromDisk(t *testing.T) {
	b, _, _ := newBuilder(t, map[string]string{
		"/src/A.java": "class A {\n  void run() {}\n}\n",
		"/src/B.java": "class B extends A {}\r\n",
	})

	results := b.Build(context.Background(), []protocol.Location{
		loc("/src/B.java", 0, 16, 17),
		loc("/src/A.java", 1, 7, 10),
		loc("/src/A.java", 0, 6, 7),
	})

	require.Equal(t, []protocol.FileKey{protocol.NewFileKey("/src/B.java"), protocol.NewFileKey("/src/A.java")}, results.Files)

	bm := results.Matches[protocol.NewFileKey("/src/B.java")]
	require.Len(t, bm, 1)
	assert.Equal(t, "class B extends A {}", bm[0].Line)
	assert.Equal(t, "A", bm[0].Match)

	am := results.Matches[protocol.NewFileKey("/src/A.java")]
	require.Len(t, am, 2)
	assert.Equal(t, "  void run() {}", am[0].Line)
	assert.Equal(t, "run", am[0].Match)
	assert.Equal(t, "class A {", am[1].Line)
	assert.Equal(t, "A", am[1].Match)
}

func TestBuild_PrefersLiveDocument(t *testing.T) {
	b, shell, _ := newBuilder(t, map[string]string{"/src/A.java": "class A {}\n"})
	doc, err := shell.Open(protocol.NewFileKey("/src/A.java"))
	require.NoError(t, err)
	require.NoError(t, doc.Insert(0, 0, "public "))

	results := b.Build(context.Background(), []protocol.Location{loc("/src/A.java", 0, 13, 14)})

	matches := results.Matches[protocol.NewFileKey("/src/A.java")]
	require.Len(t, matches, 1)
	assert.Equal(t, "public class A {}", matches[0].Line)
	assert.Equal(t, "A", matches[0].Match)
}

func TestBuild_SkipsBadLocations(t *testing.T) {
	b, _, fs := newBuilder(t, map[string]string{"/src/A.java": "class A {}\n"})
	require.NoError(t, fs.MkdirAll("/src/dir", 0o755))

	reversed := loc("/src/A.java", 0, 7, 6)
	results := b.Build(context.Background(), []protocol.Location{
		loc("/src/Gone.java", 0, 0, 1),
		loc("/src/dir", 0, 0, 1),
		loc("/src/A.java", 9, 0, 1),
		reversed,
		loc("/src/A.java", 0, 6, 99),
		loc("/src/A.java", 0, 6, 7),
	})

	require.Equal(t, []protocol.FileKey{protocol.NewFileKey("/src/A.java")}, results.Files)
	require.Equal(t, 1, results.Len())
	assert.Equal(t, "A", results.Matches[protocol.NewFileKey("/src/A.java")][0].Match)
}

func TestBuild_ManyFiles(t *testing.T) {
	files := make(map[string]string)
	var locations []protocol.Location
	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("/src/F%02d.java", i)
		files[path] = fmt.Sprintf("class F%02d {}\n", i)
		locations = append(locations, loc(path, 0, 6, 9))
	}
	b, _, _ := newBuilder(t, files)

	results := b.Build(context.Background(), locations)

	require.Len(t, results.Files, 20)
	for i, file := range results.Files {
		assert.Equal(t, locations[i].File, file)
		assert.Equal(t, fmt.Sprintf("F%02d", i), results.Matches[file][0].Match)
	}
}

func TestBuild_Empty(t *testing.T) {
	b := NewBuilder(nil, afero.NewMemMapFs(), 0, zaptest.NewLogger(t))

	results := b.Build(context.Background(), nil)
	assert.Empty(t, results.Files)
	assert.Zero(t, results.Len())
}

func TestBuild_DetachedReadsDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/A.java", []byte("\xef\xbb\xbfclass A {}\n"), 0o644))
	b := NewBuilder(host.NewBinding(), fs, 1, zaptest.NewLogger(t))

	results := b.Build(context.Background(), []protocol.Location{loc("/src/A.java", 0, 0, 5)})

	matches := results.Matches[protocol.NewFileKey("/src/A.java")]
	require.Len(t, matches, 1)
	assert.Equal(t, "class", matches[0].Match)
}
