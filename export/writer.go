// Package export writes inferred command grammars for downstream generators.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/napalu/helpscan/errs"
	"github.com/napalu/helpscan/types"
)

// Format is an output encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// SupportedFormats returns the names of every known format
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// IsUnknown reports whether f is not one of SupportedFormats
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// ParseFormat returns the Format named by s, ignoring case
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", errs.ErrUnsupportedFormat.WithArgs(s)
	}
	return f, nil
}

// Writer serializes ShellCommand trees to an io.Writer
type Writer struct {
	format Format
	output io.Writer
}

// NewWriter returns a Writer for format. Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer writing to standard output
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Format returns the format in use
func (w *Writer) Format() Format {
	return w.format
}

// Serialize writes cmd and all of its subcommands
func (w *Writer) Serialize(ctx context.Context, cmd *types.ShellCommand) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.writeTable(ctx, cmd)
	default:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

func (w *Writer) writeTable(ctx context.Context, root *types.ShellCommand) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tOPTION\tKIND\tMANDATORY")

	var err error
	types.Walk(root, func(cmd *types.ShellCommand) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		if len(cmd.Options) == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", cmd.Path())
			return true
		}
		for _, o := range cmd.Options {
			name := strings.Join(o.Flags(), ", ")
			if o.Inline {
				name = "<" + o.Argument + ">"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", cmd.Path(), name, o.Kind, o.Mandatory)
		}
		return true
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}
