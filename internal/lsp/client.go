// Package lsp wires the language client together: it owns the diagnostics
// store, the edit router and the location builder, and binds them to a UI
// shell for the lifetime of a session.
package lsp

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/config"
	"github.com/woxQAQ/lsp-bridge/internal/diagnostics"
	"github.com/woxQAQ/lsp-bridge/internal/edit"
	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/location"
	"github.com/woxQAQ/lsp-bridge/internal/worker"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// CodeActionFailedMessage is shown to the user when a code action could not be
// performed.
const CodeActionFailedMessage = "Unable to perform code action"

// Client is the composition root of the language client. It is created once by
// the application and bound to a UI shell with Initialize.
type Client struct {
	cfg    *config.ClientConfig
	ui     host.Executor
	fs     afero.Fs
	logger *zap.Logger

	binding    *host.Binding
	store      *diagnostics.Store
	aggregator *diagnostics.Aggregator
	router     *edit.Router
	builder    *location.Builder
	pool       *worker.Pool

	// refreshSeq orders diagnostics view refreshes; only the latest one is shown.
	refreshSeq atomic.Uint64
	viewMu     sync.Mutex

	mu          sync.RWMutex
	initialized bool
	closed      bool
}

// NewClient builds a client. ui runs every document mutation and view update;
// fs is used for file checks and disk reads.
func NewClient(cfg *config.ClientConfig, ui host.Executor, fs afero.Fs, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	pool, err := worker.NewPool(cfg.Workers.PoolSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	binding := host.NewBinding()

	var storeOpts []diagnostics.StoreOption
	if cfg.Diagnostics.RequireExistingFile {
		storeOpts = append(storeOpts, diagnostics.WithFileCheck(fs))
	}

	c := &Client{
		cfg:        cfg,
		ui:         ui,
		fs:         fs,
		logger:     logger.With(zap.String("component", "lsp-client")),
		binding:    binding,
		store:      diagnostics.NewStore(binding, ui, logger, storeOpts...),
		aggregator: diagnostics.NewAggregator(cfg.Diagnostics.MaxFiles, cfg.Diagnostics.MaxItemsPerFile, binding, logger),
		router:     edit.NewRouter(binding, ui, fs, logger),
		builder:    location.NewBuilder(binding, fs, cfg.Workers.ReadConcurrency, logger),
		pool:       pool,
	}

	c.logger.Info("Language client created",
		zap.Int("pool_size", cfg.Workers.PoolSize),
		zap.Int("max_diagnostic_files", cfg.Diagnostics.MaxFiles),
		zap.Int("max_diagnostic_items", cfg.Diagnostics.MaxItemsPerFile),
	)

	return c, nil
}

// Initialize binds the client to shell.
func (c *Client) Initialize(shell host.Shell) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return &ClosedError{}
	}
	if c.initialized {
		return &AlreadyInitializedError{}
	}

	c.binding.Attach(shell)
	c.initialized = true

	c.logger.Info("Language client initialized")
	return nil
}

// Shutdown detaches the shell and waits for background jobs. The client cannot
// be initialized again afterwards.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return &NotInitializedError{Operation: "shut down"}
	}
	c.binding.Detach()
	c.initialized = false
	c.closed = true
	c.mu.Unlock()

	c.logger.Info("Shutting down language client")

	done := make(chan struct{})
	go func() {
		c.pool.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.logger.Error("Background jobs did not finish", zap.Error(ctx.Err()))
		return fmt.Errorf("wait for background jobs: %w", ctx.Err())
	}

	c.logger.Info("Language client shutdown complete")
	return nil
}

// IsInitialized returns whether a shell is bound.
func (c *Client) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Wait blocks until every background job submitted so far has finished.
// Work those jobs schedule on the UI executor may still be pending.
func (c *Client) Wait() {
	c.pool.Wait()
}

// Binding returns the document locator backed by the bound shell.
func (c *Client) Binding() *host.Binding {
	return c.binding
}

// PublishDiagnostics records result, switches the diagnostics view to the
// returned state and refreshes the view in the background.
func (c *Client) PublishDiagnostics(result *protocol.DiagnosticResult) host.Visibility {
	signal := c.store.Publish(result)

	shell, ok := c.binding.Shell()
	if !ok {
		return signal
	}
	if signal != host.Unchanged {
		c.ui.RunOnUI(func() {
			shell.SetDiagnosticsState(signal)
		})
	}
	if result == nil || result.IsNoUpdate() {
		return signal
	}

	c.refreshDiagnosticsView()
	return signal
}

func (c *Client) refreshDiagnosticsView() {
	seq := c.refreshSeq.Add(1)

	err := c.pool.Submit(func() {
		if seq != c.refreshSeq.Load() {
			return
		}
		groups := c.aggregator.Aggregate(c.store.Snapshot())

		c.ui.RunOnUI(func() {
			c.viewMu.Lock()
			defer c.viewMu.Unlock()

			if seq != c.refreshSeq.Load() {
				return
			}
			shell, ok := c.binding.Shell()
			if !ok {
				return
			}
			shell.SetDiagnosticsView(groups)
		})
	})
	if err != nil {
		c.logger.Warn("Failed to schedule diagnostics view refresh", zap.Error(err))
	}
}

// HideDiagnostics hides the diagnostics view.
func (c *Client) HideDiagnostics() {
	shell, ok := c.binding.Shell()
	if !ok {
		return
	}
	c.ui.RunOnUI(func() {
		shell.SetDiagnosticsState(host.Hidden)
	})
}

// Diagnostics returns the diagnostics stored for file.
func (c *Client) Diagnostics(file protocol.FileKey) ([]protocol.DiagnosticItem, bool) {
	return c.store.Get(file)
}

// DiagnosticAt returns the diagnostic of file covering (line, column).
func (c *Client) DiagnosticAt(file protocol.FileKey, line, column int) (protocol.DiagnosticItem, bool) {
	return c.store.DiagnosticAt(file, line, column)
}

// DiagnosticGroups returns the groups the diagnostics view would show now.
func (c *Client) DiagnosticGroups() []protocol.DiagnosticGroup {
	return c.aggregator.Aggregate(c.store.Snapshot())
}

// PerformCodeAction applies action in the background on behalf of origin. The
// user is told when the action cannot be performed. Without a bound shell it
// does nothing.
func (c *Client) PerformCodeAction(ctx context.Context, origin host.Document, action *protocol.CodeActionItem) error {
	shell, ok := c.binding.Shell()
	if !ok {
		c.logger.Debug("No UI attached, ignoring code action")
		return nil
	}

	if origin == nil || action == nil {
		c.ui.RunOnUI(func() {
			shell.ShowError(CodeActionFailedMessage)
		})
		return nil
	}

	err := c.pool.Submit(func() {
		if c.router.Apply(ctx, action, origin) {
			return
		}
		c.ui.RunOnUI(func() {
			shell.ShowError(CodeActionFailedMessage)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule code action %q: %w", action.Title, err)
	}
	return nil
}

// PerformCodeActionForFile applies action on behalf of the open document for
// file. It does nothing when file is not open.
func (c *Client) PerformCodeActionForFile(ctx context.Context, file protocol.FileKey, action *protocol.CodeActionItem) error {
	doc, ok := c.binding.Locate(file)
	if !ok {
		c.logger.Debug("File is not open, ignoring code action", zap.String("file", file.Path()))
		return nil
	}
	return c.PerformCodeAction(ctx, doc, action)
}

// ShowDocument reveals params.File and selects params.Selection. The file must
// be a regular UTF-8 text file.
func (c *Client) ShowDocument(params protocol.ShowDocumentParams) protocol.ShowDocumentResult {
	shell, ok := c.binding.Shell()
	if !ok {
		return protocol.ShowDocumentResult{Success: false}
	}

	file := params.File
	if file.IsZero() || !c.isTextFile(file) {
		c.logger.Debug("Cannot show document", zap.String("file", file.Path()))
		return protocol.ShowDocumentResult{Success: false}
	}

	selection := params.Selection
	c.ui.RunOnUI(func() {
		if doc, ok := shell.FocusedDocument(); ok && doc.File() == file {
			doc.SetSelection(selection)
			return
		}
		if err := shell.OpenFileAndSelect(file, selection); err != nil {
			c.logger.Warn("Failed to show document", zap.String("file", file.Path()), zap.Error(err))
		}
	})
	return protocol.ShowDocumentResult{Success: true}
}

func (c *Client) isTextFile(file protocol.FileKey) bool {
	info, err := c.fs.Stat(file.Path())
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	data, err := afero.ReadFile(c.fs, file.Path())
	if err != nil {
		return false
	}
	return utf8.Valid(data)
}

// ShowLocations builds previews for locations in the background and shows
// them in the search results view.
func (c *Client) ShowLocations(ctx context.Context, locations []protocol.Location) error {
	shell, ok := c.binding.Shell()
	if !ok {
		return nil
	}

	if len(locations) == 0 {
		c.showSearchResults(shell, protocol.NewSearchResults())
		return nil
	}

	err := c.pool.Submit(func() {
		c.showSearchResults(shell, c.builder.Build(ctx, locations))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule location previews: %w", err)
	}
	return nil
}

func (c *Client) showSearchResults(shell host.Shell, results *protocol.SearchResults) {
	state := host.Populated
	if results.Len() == 0 {
		state = host.Empty
	}
	c.ui.RunOnUI(func() {
		shell.SetSearchResultsState(state)
		shell.SetSearchResultsView(results)
	})
}

// BuildLocations returns the previews for locations without touching the UI.
func (c *Client) BuildLocations(ctx context.Context, locations []protocol.Location) *protocol.SearchResults {
	return c.builder.Build(ctx, locations)
}
