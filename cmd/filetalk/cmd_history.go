package main

import (
	"context"
	"fmt"
	"io"

	"filetalk/pkg/journal"

	"github.com/spf13/cobra"
)

// newHistoryCmd creates the "filetalk history" subcommand.
func newHistoryCmd(flags *cliFlags) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent emitted and consumed messages",
		Long:  "Displays recent entries from the message journal.\nRequires a journal path in the config file or FILETALK_JOURNAL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runHistory(cmd.Context(), cmd.OutOrStdout(), cfg, tail)
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 20, "number of recent entries to show")

	return cmd
}

// runHistory prints the most recent journal entries, newest first.
func runHistory(ctx context.Context, w io.Writer, cfg config, tail int) error {
	if cfg.Journal == "" {
		return fmt.Errorf("no journal configured (set journal in %s or FILETALK_JOURNAL)", defaultConfigPath)
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(ctx, tail)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no entries")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-7s  %-12s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Direction, e.Channel, e.Filename)
	}
	return nil
}
