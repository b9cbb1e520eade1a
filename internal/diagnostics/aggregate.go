package diagnostics

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

const (
	// MaxDiagnosticFiles is the default number of files shown in the view.
	MaxDiagnosticFiles = 10
	// MaxDiagnosticItemsPerFile is the default number of items shown per file.
	MaxDiagnosticItemsPerFile = 20
)

// OpenFileLister returns the files open in the UI in tab order.
type OpenFileLister interface {
	OpenFiles() []protocol.FileKey
}

// Aggregator turns a store snapshot into the bounded list of groups the
// diagnostics view renders.
type Aggregator struct {
	maxFiles int
	maxItems int
	open     OpenFileLister
	logger   *zap.Logger
}

// NewAggregator creates an aggregator. Non-positive limits fall back to the
// defaults.
func NewAggregator(maxFiles, maxItems int, open OpenFileLister, logger *zap.Logger) *Aggregator {
	if maxFiles <= 0 {
		maxFiles = MaxDiagnosticFiles
	}
	if maxItems <= 0 {
		maxItems = MaxDiagnosticItemsPerFile
	}
	return &Aggregator{
		maxFiles: maxFiles,
		maxItems: maxItems,
		open:     open,
		logger:   logger.With(zap.String("component", "diagnostic-aggregator")),
	}
}

// Aggregate builds the display groups for snap.
//
// Up to maxFiles files are kept in snapshot order. Past that, open files come
// first in tab order, and the remaining slots are filled alphabetically by file
// name. Each group keeps at most maxItems diagnostics, in stored order.
func (a *Aggregator) Aggregate(snap *Snapshot) []protocol.DiagnosticGroup {
	if snap == nil || snap.Len() == 0 {
		return nil
	}

	files := snap.Files
	if len(files) > a.maxFiles {
		a.logger.Warn("Limiting the diagnostics view",
			zap.Int("files", len(files)),
			zap.Int("max_files", a.maxFiles),
		)
		files = a.selectFiles(snap)
	}

	groups := make([]protocol.DiagnosticGroup, 0, len(files))
	for _, file := range files {
		items := snap.Entries[file]
		if len(items) == 0 {
			continue
		}

		// Long lists make the view lag.
		if len(items) > a.maxItems {
			a.logger.Debug("Limiting diagnostics for file",
				zap.String("file", file.Path()),
				zap.Int("count", len(items)),
				zap.Int("max_items", a.maxItems),
			)
			items = items[:a.maxItems]
		}

		shown := make([]protocol.DiagnosticItem, len(items))
		copy(shown, items)
		groups = append(groups, protocol.DiagnosticGroup{
			File:        file,
			Diagnostics: shown,
			Icon:        IconFor(file),
		})
	}
	return groups
}

func (a *Aggregator) selectFiles(snap *Snapshot) []protocol.FileKey {
	selected := make([]protocol.FileKey, 0, a.maxFiles)
	seen := make(map[protocol.FileKey]bool, a.maxFiles)

	// Open files are always shown.
	if a.open != nil {
		for _, file := range a.open.OpenFiles() {
			if len(selected) == a.maxFiles {
				break
			}
			if _, ok := snap.Entries[file]; !ok || seen[file] {
				continue
			}
			selected = append(selected, file)
			seen[file] = true
		}
	}

	if len(selected) == a.maxFiles {
		return selected
	}

	alphabetical := make([]protocol.FileKey, len(snap.Files))
	copy(alphabetical, snap.Files)
	sort.SliceStable(alphabetical, func(i, j int) bool {
		ni, nj := alphabetical[i].Name(), alphabetical[j].Name()
		if ni != nj {
			return ni < nj
		}
		return alphabetical[i].Path() < alphabetical[j].Path()
	})

	for _, file := range alphabetical {
		if len(selected) == a.maxFiles {
			break
		}
		if seen[file] {
			continue
		}
		selected = append(selected, file)
		seen[file] = true
	}
	return selected
}

var icons = map[string]string{
	".java":   "java",
	".kt":     "kotlin",
	".kts":    "kotlin",
	".xml":    "xml",
	".gradle": "gradle",
	".json":   "json",
	".go":     "go",
}

// IconFor returns the display tag for file, based on its extension.
func IconFor(file protocol.FileKey) string {
	if icon, ok := icons[strings.ToLower(file.Ext())]; ok {
		return icon
	}
	return "file"
}
