package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/jfeed/internal/jsonfeed"
	"github.com/pders01/jfeed/internal/media"
	"github.com/pders01/jfeed/internal/report"
	"github.com/pders01/jfeed/internal/storage"
	"github.com/pders01/jfeed/internal/validation"
)

// errReportsFailed is returned when at least one document failed. The
// reports themselves are the user-facing output.
var errReportsFailed = errors.New("one or more feeds failed validation")

const stdinSource = "<stdin>"

type validateOptions struct {
	strict  bool
	record  bool
	verbose bool
	noColor bool
	format  string
	workers int
}

func newValidateCmd(ro *rootOptions) *cobra.Command {
	vo := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate JSON Feed documents",
		Long: `Validate reads each file (or standard input for '-' or no arguments),
builds the feed model and reports every missing required field. Values that
had to be dropped and keys that were not recognized are reported as well but
never make a document invalid. With --strict, advisory lint checks run and
any finding fails the document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, ro, vo, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&vo.strict, "strict", false, "run lint checks and fail on findings")
	flags.BoolVar(&vo.record, "record", false, "store the reports in the history database")
	flags.BoolVarP(&vo.verbose, "verbose", "v", false, "list every dropped value")
	flags.BoolVar(&vo.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&vo.format, "output", "o", "", "output format: text, json, yaml or toml")
	flags.IntVarP(&vo.workers, "workers", "j", 0, "number of documents checked in parallel")
	return cmd
}

// merge fills unset flags from the configuration.
func (vo *validateOptions) merge(cmd *cobra.Command, ro *rootOptions) {
	cfg := ro.cfg
	if !cmd.Flags().Changed("strict") {
		vo.strict = cfg.Validate.Strict
	}
	if !cmd.Flags().Changed("record") {
		vo.record = cfg.Store.Record
	}
	if vo.format == "" {
		vo.format = cfg.Output.Format
	}
	if vo.workers <= 0 {
		vo.workers = cfg.Validate.Workers
	}
	if !cfg.Output.Color {
		vo.noColor = true
	}
}

func runValidate(cmd *cobra.Command, ro *rootOptions, vo *validateOptions, args []string) error {
	vo.merge(cmd, ro)

	format, err := report.ParseFormat(vo.format)
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	opts := report.Options{Strict: vo.strict, Lint: lintOptions(ro)}
	reports, err := checkAll(cmd, ro, sources, opts, vo.workers)
	if err != nil {
		return err
	}

	enc := report.Encoder{Format: format, Color: !vo.noColor, Verbose: vo.verbose}
	if err := enc.Encode(cmd.OutOrStdout(), reports); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if vo.record {
		if err := recordReports(ro, reports); err != nil {
			return err
		}
	}

	if _, failed := report.Summary(reports); failed > 0 {
		return errReportsFailed
	}
	return nil
}

// checkAll validates sources concurrently. Reports keep argument order.
func checkAll(cmd *cobra.Command, ro *rootOptions, sources []string, opts report.Options, workers int) ([]*report.Report, error) {
	// Standard input can only be consumed once, so read it up front
	var stdin []byte
	var stdinErr error
	for _, src := range sources {
		if src == "-" {
			stdin, stdinErr = readInput("-", cmd.InOrStdin())
			break
		}
	}

	reports := make([]*report.Report, len(sources))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(workers, 1))

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if src == "-" {
				reports[i] = checkBytes(ro, stdinSource, stdin, stdinErr, opts)
				return nil
			}
			data, err := readInput(src, nil)
			reports[i] = checkBytes(ro, sourceKey(src), data, err, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkBytes(ro *rootOptions, source string, data []byte, readErr error, opts report.Options) *report.Report {
	logger := ro.log.WithFields(map[string]interface{}{"source": source})
	if readErr != nil {
		logger.Errorf("reading: %v", readErr)
		return report.FromError(source, readErr, opts)
	}

	f, err := jsonfeed.ParseFeedBytes(data, jsonfeed.WithDiagnostics(logger))
	if err != nil {
		logger.Errorf("decoding: %v", err)
		return report.FromError(source, err, opts)
	}

	r := report.Build(source, f, opts)
	logger.Infof("valid=%t errors=%d dropped=%d unmapped=%d", r.Valid, len(r.Errors), len(r.ParseErrors), r.UnmappedKeys)
	return r
}

func lintOptions(ro *rootOptions) validation.LintOptions {
	opts := validation.LintOptions{
		URLs: &validation.URLValidator{
			AllowLocalhost:  ro.cfg.Validate.AllowLocalhost,
			AllowPrivateIPs: ro.cfg.Validate.AllowPrivateIPs,
			MaxLength:       ro.cfg.Validate.MaxURLLength,
		},
	}
	detector, err := media.NewTypeDetector()
	if err != nil {
		ro.log.Warnf("media type checks disabled: %v", err)
		return opts
	}
	opts.Media = detector
	return opts
}

func recordReports(ro *rootOptions, reports []*report.Report) error {
	store, err := storage.NewStore(ro.cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range reports {
		if err := store.SaveReport(r); err != nil {
			return fmt.Errorf("recording report for %s: %w", r.Source, err)
		}
	}
	return nil
}

// sourceKey names a file the same way no matter which directory jfeed was
// run from, so its history accumulates under one key.
func sourceKey(name string) string {
	if name == "-" {
		return stdinSource
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}
