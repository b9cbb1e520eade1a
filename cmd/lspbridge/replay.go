package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/woxQAQ/lsp-bridge/internal/config"
	"github.com/woxQAQ/lsp-bridge/internal/host"
	"github.com/woxQAQ/lsp-bridge/internal/host/headless"
	"github.com/woxQAQ/lsp-bridge/internal/logging"
	"github.com/woxQAQ/lsp-bridge/internal/lsp"
	"github.com/woxQAQ/lsp-bridge/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newReplayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <session.yaml>",
		Short: "Replay a recorded session against an in-memory UI",
		Long: `Replay opens the files listed in the session, publishes its diagnostics,
performs its code actions and location queries, and prints the resulting
diagnostics view, search results and modified documents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}
}

func runReplay(cmd *cobra.Command, opts *rootOptions, path string) error {
	cfg, err := config.LoadClientConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lspbridge replay",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("session", path),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()

	s, err := session.ParseSession(fs, path)
	if err != nil {
		return err
	}

	loop := host.NewLoop(logger)
	defer loop.Close()

	client, err := lsp.NewClient(cfg, loop, fs, logger)
	if err != nil {
		return err
	}
	shell := headless.NewShell(fs, logger)
	if err := client.Initialize(shell); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down client", zap.Error(err))
		}
	}()

	report, err := session.NewReplayer(client, shell, loop, logger).Replay(ctx, s)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	renderReport(cmd.OutOrStdout(), report)
	return nil
}
