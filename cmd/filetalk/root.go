package main

import (
	"fmt"

	"filetalk/internal/version"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root filetalk command with all subcommands attached.
func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "filetalk",
		Short:         "FileTalk form producer",
		Long:          "filetalk compiles form-spec DSL files into typed schemas and\nexchanges JSON messages with other components over inbox/outbox directories.",
		Version:       fmt.Sprintf("filetalk %s", version.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.channel, "channel", "", "override the output channel")
	cmd.PersistentFlags().StringVar(&flags.outbox, "outbox", "", "override the OUTBOX directory")
	cmd.PersistentFlags().StringVar(&flags.inbox, "inbox", "", "override the INBOX directory")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default .filetalk/config.toml)")

	cmd.AddCommand(
		newCheckCmd(&flags),
		newEmitCmd(&flags),
		newCardCmd(&flags),
		newInboxCmd(&flags),
		newHistoryCmd(&flags),
	)

	return cmd
}
