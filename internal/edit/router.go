// Package edit routes the file changes of a code action to live documents.
package edit

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/text"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Resolver finds or opens the live document for a file. *host.Binding
// implements it.
type Resolver interface {
	Locate(file protocol.FileKey) (host.Document, bool)
	Open(file protocol.FileKey) (host.Document, error)
}

// Router applies code actions. Resolution and disk checks run on the calling
// goroutine; every document mutation is scheduled on the UI executor.
type Router struct {
	resolver Resolver
	ui       host.Executor
	fs       afero.Fs
	logger   *zap.Logger
}

// NewRouter creates a router.
func NewRouter(resolver Resolver, ui host.Executor, fs afero.Fs, logger *zap.Logger) *Router {
	return &Router{
		resolver: resolver,
		ui:       ui,
		fs:       fs,
		logger:   logger.With(zap.String("component", "edit-router")),
	}
}

// Apply routes every edit of action and then hands action.Command to origin.
//
// It returns false without side effects when the action has no changes, or
// when ctx is cancelled before routing finished; in the latter case the command
// is not executed. Changes targeting missing files and edits whose document
// could not be opened are skipped.
func (r *Router) Apply(ctx context.Context, action *protocol.CodeActionItem, origin host.Document) bool {
	if action == nil || len(action.Changes) == 0 {
		return false
	}

	logger := r.logger.With(
		zap.String("apply_id", uuid.NewString()),
		zap.String("action", action.Title),
	)
	logger.Debug("Applying code action",
		zap.Int("files", len(action.Changes)),
		zap.Int("edits", action.EditCount()),
	)

	var originFile protocol.FileKey
	if origin != nil {
		originFile = origin.File()
	}

	scheduled := 0
	for _, change := range action.Changes {
		if err := ctx.Err(); err != nil {
			logger.Warn("Code action cancelled", zap.Int("scheduled", scheduled), zap.Error(err))
			return false
		}

		file := change.File
		if file.IsZero() || !text.Exists(r.fs, file.Path()) {
			logger.Warn("Skipping changes for missing file", zap.String("file", file.Path()))
			continue
		}

		for i, edit := range change.Edits {
			doc, ok := r.resolve(logger, file, originFile, origin)
			if !ok {
				logger.Warn("Skipping edit, no document",
					zap.String("file", file.Path()),
					zap.Int("index", i),
				)
				continue
			}
			r.schedule(logger, doc, edit)
			scheduled++
		}
	}

	logger.Debug("Code action routed", zap.Int("scheduled", scheduled))

	if origin == nil {
		logger.Warn("No originating document, command dropped", zap.String("command", action.Command.Command))
		return true
	}
	cmd := action.Command
	// The executor is FIFO, so the command runs after every edit above.
	r.ui.RunOnUI(func() {
		origin.ExecuteCommand(cmd)
	})
	return true
}

func (r *Router) resolve(logger *zap.Logger, file, originFile protocol.FileKey, origin host.Document) (host.Document, bool) {
	if origin != nil && file == originFile {
		return origin, true
	}
	if doc, ok := r.resolver.Locate(file); ok {
		return doc, true
	}

	doc, err := r.resolver.Open(file)
	if err != nil {
		logger.Warn("Failed to open file for edit", zap.String("file", file.Path()), zap.Error(err))
		return nil, false
	}
	return doc, true
}

func (r *Router) schedule(logger *zap.Logger, doc host.Document, edit protocol.TextEdit) {
	start, end := edit.Range.Start, edit.Range.End
	newText := edit.NewText
	r.ui.RunOnUI(func() {
		var err error
		if edit.IsInsertion() {
			err = doc.Insert(start.Line, start.Column, newText)
		} else {
			err = doc.Replace(start.Line, start.Column, end.Line, end.Column, newText)
		}
		if err != nil {
			logger.Warn("Failed to apply edit",
				zap.String("file", doc.File().Path()),
				zap.Int("line", start.Line),
				zap.Int("column", start.Column),
				zap.Error(err),
			)
		}
	})
}
