package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pders01/jfeed/internal/report"
	"github.com/pders01/jfeed/internal/storage"
)

type historyOptions struct {
	limit  int
	delete bool
	format string
}

func newHistoryCmd(ro *rootOptions) *cobra.Command {
	ho := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history [source]",
		Short: "Show recorded validation reports",
		Long: `History lists every source with recorded reports, or the reports of one
source, newest first. Reports are recorded by 'validate --record'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewStore(ro.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 0 {
				if ho.delete {
					return fmt.Errorf("--delete needs a source")
				}
				return listSources(cmd, store)
			}

			source := sourceKey(args[0])
			if ho.delete {
				if err := store.DeleteReports(source); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted history for %s\n", source)
				return nil
			}

			reports, err := store.GetReports(source, ho.limit)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			format := ho.format
			if format == "" {
				format = ro.cfg.Output.Format
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			enc := report.Encoder{Format: f, Color: ro.cfg.Output.Color}
			return enc.Encode(cmd.OutOrStdout(), reports)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&ho.limit, "limit", "n", 10, "maximum number of reports to show, 0 for all")
	flags.BoolVar(&ho.delete, "delete", false, "delete the recorded history of the source")
	flags.StringVarP(&ho.format, "output", "o", "", "output format: text, json, yaml or toml")
	return cmd
}

func listSources(cmd *cobra.Command, store *storage.Store) error {
	sources, err := store.Sources()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintln(out, "No reports recorded")
		return nil
	}
	for _, s := range sources {
		status := "ok"
		if !s.LastValid {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%-4s %s (%d reports, last %s)\n", status, s.Source, s.Reports, s.LastChecked.Format(time.RFC3339))
	}
	return nil
}
