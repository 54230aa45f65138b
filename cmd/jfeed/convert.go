package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/jfeed/internal/feed"
)

func newConvertCmd(ro *rootOptions) *cobra.Command {
	wo := &writeOptions{}
	var check bool

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an RSS or Atom feed to JSON Feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(name, cmd.InOrStdin())
			if err != nil {
				return err
			}

			f, err := feed.NewConverter().Convert(bytes.NewReader(data))
			if err != nil {
				return err
			}
			ro.log.Infof("converted %s: %d items", sourceKey(name), len(f.Items))

			if check {
				if err := f.Validate(); err != nil {
					return fmt.Errorf("converted feed is not valid: %w", err)
				}
			}
			return wo.write(cmd.OutOrStdout(), ro, f.ToDocument())
		},
	}
	wo.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "fail if the converted feed does not validate")
	return cmd
}
