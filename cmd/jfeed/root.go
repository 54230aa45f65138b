package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/jfeed/internal/config"
	"github.com/pders01/jfeed/internal/debuglog"
)

// rootOptions carries the persistent flags and the state built from them
// before any subcommand runs.
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string

	cfg *config.Config
	log *debuglog.Logger
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jfeed",
		Short: "Read, validate and rewrite JSON Feed documents",
		Long: `jfeed reads JSON Feed documents, reports structural problems and
missing required fields, and writes feeds back in canonical form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ro.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if ro.log != nil {
				_ = ro.log.Close()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&ro.configPath, "config", "", "path to configuration file")
	flags.StringVar(&ro.logLevel, "log-level", "", "log level: debug, info, warn, error or off")
	flags.StringVar(&ro.logFile, "log-file", "", "log file path, '-' for stderr")

	cmd.AddCommand(
		newValidateCmd(ro),
		newFormatCmd(ro),
		newConvertCmd(ro),
		newHistoryCmd(ro),
		newConfigCmd(ro),
		newVersionCmd(),
	)
	return cmd
}

func (ro *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(ro.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ro.logLevel != "" {
		cfg.Log.Level = ro.logLevel
	}
	if ro.logFile != "" {
		cfg.Log.File = ro.logFile
	}
	ro.cfg = cfg

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.File == "-" {
		ro.log = debuglog.New(level, cmd.ErrOrStderr())
		return nil
	}
	logger, err := debuglog.Open(level, cfg.Log.File)
	if err != nil {
		// A broken log destination must not stop validation
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		logger = debuglog.Discard()
	}
	ro.log = logger
	return nil
}

// readInput returns the contents of name, or of in when name is "-".
func readInput(name string, in io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(name)
}
