package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"filetalk/pkg/formspec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newCheckCmd creates the "filetalk check" subcommand.
func newCheckCmd(flags *cliFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <spec-file>",
		Short: "Parse a form-spec file and report its schema",
		Long:  "Parses the DSL file and prints the resulting schema.\nExits non-zero with the offending line on a parse error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "summary", "output format: summary, json, or yaml")

	return cmd
}

// runCheck parses the spec file and writes the schema in the requested format.
func runCheck(w io.Writer, specPath, format string) error {
	schema, err := parseSpecFile(specPath)
	if err != nil {
		return err
	}

	switch format {
	case "summary":
		printSummary(w, schema)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want summary, json, or yaml)", format)
	}

	return nil
}

// parseSpecFile reads and parses a DSL file ("-" reads stdin).
func parseSpecFile(path string) (*formspec.Schema, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	schema, err := formspec.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func printSummary(w io.Writer, schema *formspec.Schema) {
	if schema.Directives.Channel != "" {
		fmt.Fprintf(w, "channel: %s\n", schema.Directives.Channel)
	}
	if schema.Directives.Outbox != "" {
		fmt.Fprintf(w, "outbox: %s\n", schema.Directives.Outbox)
	}
	fmt.Fprintf(w, "%d field(s)\n", len(schema.Fields))
	for _, f := range schema.Fields {
		fmt.Fprintf(w, "  %s -- %s\n", f.ID, describeField(f))
	}
}

func describeField(f formspec.Field) string {
	switch f.Type {
	case formspec.TypeStr, formspec.TypeInt, formspec.TypeFloat:
		return fmt.Sprintf("%s<%d>", f.Type, f.Width)
	case formspec.TypeText, formspec.TypeJSON:
		return fmt.Sprintf("%s<%d,%d>", f.Type, f.Width, f.Height)
	case formspec.TypeChoice:
		return fmt.Sprintf("choice<%s>", strings.Join(f.Items, ","))
	case formspec.TypeFixed:
		return fmt.Sprintf("%q", f.Value)
	default:
		return string(f.Type)
	}
}
