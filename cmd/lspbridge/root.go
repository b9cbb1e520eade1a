package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lspbridge",
		Short: "Language client bridge between a language backend and an editor UI",
		Long: `lspbridge routes diagnostics, code actions and location results from a
language backend to the documents and views of an editor UI.

The replay command runs a recorded session against an in-memory UI and prints
what the user would see.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	cmd.AddCommand(newReplayCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
