// Package diagnostics stores published diagnostics per file and prepares them
// for display.
package diagnostics

import (
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/text"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// DocumentLocator finds the live document for a file.
type DocumentLocator interface {
	Locate(file protocol.FileKey) (host.Document, bool)
}

// Store maps each file to the diagnostics last published for it.
//
// Lists are never modified after they are stored: a publish swaps in a new
// slice, so a list returned by Get or Snapshot stays consistent while later
// publishes happen. Callers must not modify returned lists.
type Store struct {
	mu      sync.RWMutex
	entries map[protocol.FileKey][]protocol.DiagnosticItem
	order   []protocol.FileKey // first-publish order

	locator DocumentLocator
	ui      host.Executor
	fs      afero.Fs
	logger  *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFileCheck makes the store ignore publishes for files that are not
// regular files in fs.
func WithFileCheck(fs afero.Fs) StoreOption {
	return func(s *Store) {
		s.fs = fs
	}
}

// NewStore creates an empty store. Overlay updates for open documents are
// scheduled through ui.
func NewStore(locator DocumentLocator, ui host.Executor, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[protocol.FileKey][]protocol.DiagnosticItem),
		locator: locator,
		ui:      ui,
		logger:  logger.With(zap.String("component", "diagnostic-store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish applies a publish event and returns how the diagnostics view should
// react.
//
//   - protocol.NoUpdate() leaves everything untouched and returns host.Unchanged.
//   - A nil result is an error from the backend: host.Empty, nothing stored.
//   - An empty list is stored as is and returns host.Empty.
//   - Otherwise the file's list is replaced as a whole and host.Populated is
//     returned.
//
// When the file is open, its diagnostic overlay is refreshed on the UI context.
func (s *Store) Publish(result *protocol.DiagnosticResult) host.Visibility {
	if result.IsNoUpdate() {
		return host.Unchanged
	}
	if result == nil {
		s.logger.Debug("Diagnostics request failed")
		return host.Empty
	}

	signal := host.Populated
	if len(result.Diagnostics) == 0 {
		signal = host.Empty
	}

	file := result.File
	if file.IsZero() {
		s.logger.Warn("Ignoring diagnostics without a file")
		return signal
	}
	if s.fs != nil && !text.IsRegularFile(s.fs, file.Path()) {
		s.logger.Debug("Ignoring diagnostics for a file that is not on disk",
			zap.String("file", file.Path()),
		)
		return signal
	}

	items := make([]protocol.DiagnosticItem, len(result.Diagnostics))
	copy(items, result.Diagnostics)

	s.mu.Lock()
	if _, exists := s.entries[file]; !exists {
		s.order = append(s.order, file)
	}
	s.entries[file] = items
	s.mu.Unlock()

	s.logger.Debug("Diagnostics published",
		zap.String("file", file.Path()),
		zap.Int("count", len(items)),
	)

	s.pushOverlay(file)

	return signal
}

// pushOverlay schedules an overlay refresh for file. The task reads the store
// when it runs, so overlapping publishes always leave the latest list shown.
func (s *Store) pushOverlay(file protocol.FileKey) {
	if s.locator == nil {
		return
	}
	doc, ok := s.locator.Locate(file)
	if !ok {
		return
	}

	s.ui.RunOnUI(func() {
		items, _ := s.Get(file)
		doc.SetDiagnosticOverlay(s.regions(file, items))
	})
}

func (s *Store) regions(file protocol.FileKey, items []protocol.DiagnosticItem) []host.DiagnosticRegion {
	regions := make([]host.DiagnosticRegion, 0, len(items))
	for i, item := range items {
		region, err := ToRegion(item)
		if err != nil {
			s.logger.Warn("Unable to map diagnostic to overlay region",
				zap.String("file", file.Path()),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		regions = append(regions, region)
	}
	return regions
}

// Get returns the list last published for file. A file whose last publish was
// empty reports an empty list and true.
func (s *Store) Get(file protocol.FileKey) ([]protocol.DiagnosticItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.entries[file]
	return items, ok
}

// DiagnosticAt returns the diagnostic of file covering (line, column).
func (s *Store) DiagnosticAt(file protocol.FileKey, line, column int) (protocol.DiagnosticItem, bool) {
	items, ok := s.Get(file)
	if !ok {
		return protocol.DiagnosticItem{}, false
	}
	return Find(items, protocol.Position{Line: line, Column: column})
}

// Snapshot returns a consistent view of every file holding diagnostics. Files
// whose last publish was empty are left out.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Files:   make([]protocol.FileKey, 0, len(s.order)),
		Entries: make(map[protocol.FileKey][]protocol.DiagnosticItem, len(s.entries)),
	}
	for _, file := range s.order {
		items := s.entries[file]
		if len(items) == 0 {
			continue
		}
		snap.Files = append(snap.Files, file)
		snap.Entries[file] = items
	}
	return snap
}

// Count returns the number of files holding diagnostics.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, items := range s.entries {
		if len(items) > 0 {
			n++
		}
	}
	return n
}

// Snapshot is a point-in-time copy of the store. Files keeps first-publish order.
type Snapshot struct {
	Files   []protocol.FileKey
	Entries map[protocol.FileKey][]protocol.DiagnosticItem
}

// Len returns the number of files in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Files)
}
