// Package location builds match previews for cross-file location results.
package location

import (
	"context"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/text"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// DefaultReadConcurrency bounds the number of files loaded at once.
const DefaultReadConcurrency = 8

// Locator finds the live document for a file.
type Locator interface {
	Locate(file protocol.FileKey) (host.Document, bool)
}

// Builder turns locations into per-file previews. Text comes from the open
// document when there is one and from disk otherwise.
type Builder struct {
	locator     Locator
	fs          afero.Fs
	concurrency int
	logger      *zap.Logger
}

// NewBuilder creates a builder that loads at most concurrency files at once.
func NewBuilder(locator Locator, fs afero.Fs, concurrency int, logger *zap.Logger) *Builder {
	if concurrency <= 0 {
		concurrency = DefaultReadConcurrency
	}
	return &Builder{
		locator:     locator,
		fs:          fs,
		concurrency: concurrency,
		logger:      logger.With(zap.String("component", "location-builder")),
	}
}

// Build returns the previews for locations grouped by file. Files appear in
// the order they are first referenced, and each file's previews follow input
// order. Locations in missing or unreadable files, and locations whose range
// does not fit the text, are skipped.
func (b *Builder) Build(ctx context.Context, locations []protocol.Location) *protocol.SearchResults {
	results := protocol.NewSearchResults()
	if len(locations) == 0 {
		return results
	}

	contents := b.load(ctx, locations)

	for _, loc := range locations {
		content, ok := contents[loc.File]
		if !ok {
			continue
		}
		preview, err := previewOf(content, loc.Range)
		if err != nil {
			b.logger.Warn("Skipping location",
				zap.String("file", loc.File.Path()),
				zap.Int("line", loc.Range.Start.Line),
				zap.Int("column", loc.Range.Start.Column),
				zap.Error(err),
			)
			continue
		}
		results.Add(loc.File, preview)
	}
	return results
}

// load reads every distinct file referenced by locations.
func (b *Builder) load(ctx context.Context, locations []protocol.Location) map[protocol.FileKey]*text.Content {
	var (
		mu       sync.Mutex
		contents = make(map[protocol.FileKey]*text.Content)
		seen     = make(map[protocol.FileKey]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, loc := range locations {
		file := loc.File
		if seen[file] {
			continue
		}
		seen[file] = true

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			content, ok := b.read(file)
			if !ok {
				return nil
			}
			mu.Lock()
			contents[file] = content
			mu.Unlock()
			return nil
		})
	}

	// Jobs never return errors; failures only drop their file.
	_ = g.Wait()
	return contents
}

func (b *Builder) read(file protocol.FileKey) (*text.Content, bool) {
	if file.IsZero() || !text.IsRegularFile(b.fs, file.Path()) {
		b.logger.Debug("Skipping locations in missing file", zap.String("file", file.Path()))
		return nil, false
	}

	if b.locator != nil {
		if doc, ok := b.locator.Locate(file); ok {
			return text.NewContent(doc.Text()), true
		}
	}

	s, err := text.ReadFile(b.fs, file.Path())
	if err != nil {
		b.logger.Warn("Failed to read file", zap.String("file", file.Path()), zap.Error(err))
		return nil, false
	}
	return text.NewContent(s), true
}

func previewOf(content *text.Content, r protocol.Range) (protocol.MatchPreview, error) {
	line, err := content.LineString(r.Start.Line)
	if err != nil {
		return protocol.MatchPreview{}, err
	}
	match, err := content.SubContent(r)
	if err != nil {
		return protocol.MatchPreview{}, err
	}
	return protocol.MatchPreview{Range: r, Line: line, Match: match}, nil
}
