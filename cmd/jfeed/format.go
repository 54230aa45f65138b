package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pders01/jfeed/internal/document"
	"github.com/pders01/jfeed/internal/jsonfeed"
)

type writeOptions struct {
	compact bool
	indent  string
}

func (wo *writeOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&wo.compact, "compact", false, "write on a single line")
	cmd.Flags().StringVar(&wo.indent, "indent", "", "indentation string (default from config)")
}

func (wo *writeOptions) write(w io.Writer, ro *rootOptions, doc *document.Object) error {
	var out []byte
	var err error
	if wo.compact {
		out, err = doc.MarshalJSON()
	} else {
		indent := wo.indent
		if indent == "" {
			indent = ro.cfg.Output.Indent
		}
		out, err = doc.Indent("", indent)
	}
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func newFormatCmd(ro *rootOptions) *cobra.Command {
	wo := &writeOptions{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Rewrite a JSON Feed in canonical form",
		Long: `Format reads a feed (standard input for '-' or no argument) and writes it
back with known fields in canonical order followed by extensions. Values that
could not be read and unrecognized keys are dropped; run with --log-level
debug to see what was removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(name, cmd.InOrStdin())
			if err != nil {
				return err
			}

			logger := ro.log.WithFields(map[string]interface{}{"source": sourceKey(name)})
			f, err := jsonfeed.ParseFeedBytes(data, jsonfeed.WithDiagnostics(logger))
			if err != nil {
				return err
			}
			return wo.write(cmd.OutOrStdout(), ro, f.ToDocument())
		},
	}
	wo.register(cmd)
	return cmd
}
