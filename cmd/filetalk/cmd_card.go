package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"filetalk/pkg/formspec"
	"filetalk/pkg/journal"
	"filetalk/pkg/patchboard"

	"github.com/spf13/cobra"
)

// newCardCmd creates the "filetalk card" subcommand.
func newCardCmd(flags *cliFlags) *cobra.Command {
	var emit bool

	cmd := &cobra.Command{
		Use:   "card [spec-file...]",
		Short: "Build the component ID card",
		Long: `Builds the Patchboard component ID card describing this component's
mailboxes and channels. Each spec file contributes its output channel.
By default the card is printed; --emit writes it to the OUTBOX as a
message on the "card" channel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runCard(cmd.Context(), cmd.OutOrStdout(), cfg, args, emit)
		},
	}

	cmd.Flags().BoolVar(&emit, "emit", false, "emit the card to the OUTBOX instead of printing it")

	return cmd
}

// runCard assembles the card from the given specs and prints or emits it.
func runCard(ctx context.Context, w io.Writer, cfg config, specPaths []string, emit bool) error {
	var schemas []*formspec.Schema
	for _, path := range specPaths {
		schema, err := parseSpecFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		schemas = append(schemas, schema)
	}

	inbox := formspec.ResolveInbox(cfg.Inbox)
	outbox := formspec.ResolveOutbox(cfg.Outbox, firstDirectives(schemas))

	card := patchboard.BuildCard(cfg.Title, inbox, outbox, cfg.Channel, schemas)

	if !emit {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	}

	filename, err := patchboard.Emit(card, patchboard.CardChannel, outbox)
	if err != nil {
		return err
	}
	recordJournal(ctx, w, cfg, journal.DirectionEmit, patchboard.CardChannel, filename)
	fmt.Fprintf(w, "wrote %s\n", filepath.Join(outbox, filename))
	return nil
}

// firstDirectives returns the directives of the first schema, if any.
// The card is emitted to the same OUTBOX a form emission would use.
func firstDirectives(schemas []*formspec.Schema) formspec.Directives {
	if len(schemas) == 0 {
		return formspec.Directives{}
	}
	return schemas[0].Directives
}
