package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filetalk/pkg/formspec"
	"filetalk/pkg/journal"
	"filetalk/pkg/patchboard"

	"github.com/spf13/cobra"
)

// newEmitCmd creates the "filetalk emit" subcommand.
func newEmitCmd(flags *cliFlags) *cobra.Command {
	var valuesPath string

	cmd := &cobra.Command{
		Use:   "emit <spec-file>",
		Short: "Validate input values against a spec and emit a message",
		Long: `Parses the spec, validates the values file against it, and writes the
resulting signal as a message into the resolved OUTBOX directory.

The values file is a JSON object mapping field id to raw input: a JSON
boolean for bool fields, a JSON string for everything else. "-" reads
the values from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runEmit(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], valuesPath)
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "-", "JSON file of field values (\"-\" for stdin)")

	return cmd
}

// runEmit performs the full parse-validate-emit pipeline.
func runEmit(ctx context.Context, w io.Writer, cfg config, specPath, valuesPath string) error {
	schema, err := parseSpecFile(specPath)
	if err != nil {
		return err
	}

	inputs, err := readValues(valuesPath)
	if err != nil {
		return err
	}

	signal, err := formspec.CollectSignal(schema, inputs)
	if err != nil {
		return err
	}

	// Resolved fresh per emission: the schema's directives participate.
	channel := formspec.ResolveChannel(cfg.Channel, schema.Directives)
	outbox := formspec.ResolveOutbox(cfg.Outbox, schema.Directives)

	filename, err := patchboard.Emit(signal, channel, outbox)
	if err != nil {
		return err
	}

	recordJournal(ctx, w, cfg, journal.DirectionEmit, channel, filename)

	fmt.Fprintf(w, "wrote %s\n", filepath.Join(outbox, filename))
	return nil
}

// readValues decodes the values JSON object ("-" reads stdin).
func readValues(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	var inputs map[string]any
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return inputs, nil
}

// recordJournal best-effort logs a message event when a journal is
// configured. Journal trouble must not fail the emission itself.
func recordJournal(ctx context.Context, w io.Writer, cfg config, direction, channel, filename string) {
	if cfg.Journal == "" {
		return
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		fmt.Fprintf(w, "journal: %v\n", err)
		return
	}
	defer j.Close()

	var recErr error
	if direction == journal.DirectionEmit {
		recErr = j.RecordEmit(ctx, channel, filename)
	} else {
		recErr = j.RecordConsume(ctx, channel, filename)
	}
	if recErr != nil {
		fmt.Fprintf(w, "journal: %v\n", recErr)
	}
}
