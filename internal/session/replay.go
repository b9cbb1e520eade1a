package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/host/headless"
	"github.com/woxQAQ/lsp-bridge/internal/lsp"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Flusher drains work queued on a UI executor. *host.Loop implements it.
type Flusher interface {
	Flush()
}

// Report is the state of the headless shell after a replay.
type Report struct {
	Opened       int
	OpenFailures int
	Published    int
	Actions      []ActionOutcome
	Groups       []protocol.DiagnosticGroup
	Documents    []DocumentState
	Search       *protocol.SearchResults
	ShowDocument *protocol.ShowDocumentResult
}

// ActionOutcome records whether a code action was performed.
type ActionOutcome struct {
	Title  string
	Failed bool
}

// DocumentState is the final text of one open document.
type DocumentState struct {
	File     protocol.FileKey
	Text     string
	Modified bool
}

// Replayer drives a client through a session.
type Replayer struct {
	client  *lsp.Client
	shell   *headless.Shell
	flusher Flusher
	logger  *zap.Logger
}

// NewReplayer creates a replayer. client must be initialized with shell.
// flusher may be nil when the client runs UI work inline.
func NewReplayer(client *lsp.Client, shell *headless.Shell, flusher Flusher, logger *zap.Logger) *Replayer {
	return &Replayer{
		client:  client,
		shell:   shell,
		flusher: flusher,
		logger:  logger.With(zap.String("component", "session-replayer")),
	}
}

// Replay runs s step by step: open files, publish diagnostics, perform code
// actions, show locations and finally show a document. Failures of single
// entries are logged and the replay continues.
func (r *Replayer) Replay(ctx context.Context, s *Session) (*Report, error) {
	r.logger.Info("Replaying session", zap.String("path", s.Path()))

	report := &Report{}

	for _, file := range s.OpenFiles() {
		if _, err := r.shell.OpenFile(file); err != nil {
			r.logger.Error("Failed to open file",
				zap.String("file", file.Path()),
				zap.Error(err),
			)
			report.OpenFailures++
			continue
		}
		report.Opened++
	}

	for _, result := range s.DiagnosticResults() {
		r.client.PublishDiagnostics(result)
		report.Published++
	}
	r.settle()

	for _, entry := range s.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Actions = append(report.Actions, r.performAction(ctx, s, entry))
	}

	if len(s.Locations) > 0 {
		if err := r.client.ShowLocations(ctx, s.LocationList()); err != nil {
			r.logger.Error("Failed to show locations", zap.Error(err))
		}
		r.settle()
		report.Search = r.shell.SearchResults()
	}

	if s.ShowDocument != nil {
		result := r.client.ShowDocument(protocol.ShowDocumentParams{
			File:      s.Resolve(s.ShowDocument.File),
			Selection: s.ShowDocument.Selection,
		})
		r.settle()
		report.ShowDocument = &result
	}

	report.Groups = r.client.DiagnosticGroups()
	for _, file := range r.shell.OpenFiles() {
		doc, ok := r.shell.Registry().Get(file)
		if !ok {
			continue
		}
		report.Documents = append(report.Documents, DocumentState{
			File:     file,
			Text:     doc.Text(),
			Modified: doc.EditCount() > 0,
		})
	}

	r.logger.Info("Session replayed",
		zap.Int("opened", report.Opened),
		zap.Int("published", report.Published),
		zap.Int("actions", len(report.Actions)),
	)

	return report, nil
}

func (r *Replayer) performAction(ctx context.Context, s *Session, entry ActionEntry) ActionOutcome {
	outcome := ActionOutcome{Title: entry.Title}
	errorsBefore := len(r.shell.Errors())

	origin, err := r.shell.Open(s.Resolve(entry.Origin))
	if err != nil {
		r.logger.Error("Failed to open action origin",
			zap.String("action", entry.Title),
			zap.String("origin", entry.Origin),
			zap.Error(err),
		)
		outcome.Failed = true
		return outcome
	}

	if err := r.client.PerformCodeAction(ctx, origin, s.CodeAction(entry)); err != nil {
		r.logger.Error("Failed to perform code action",
			zap.String("action", entry.Title),
			zap.Error(err),
		)
		outcome.Failed = true
		return outcome
	}
	r.settle()

	outcome.Failed = len(r.shell.Errors()) > errorsBefore
	return outcome
}

// settle waits for background jobs and then for the UI work they queued.
func (r *Replayer) settle() {
	r.client.Wait()
	if r.flusher != nil {
		r.flusher.Flush()
	}
}
