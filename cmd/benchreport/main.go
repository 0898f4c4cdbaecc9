package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/benchreport/internal/report"
	"github.com/ethpandaops/benchreport/internal/version"
)

var (
	cfgFile  string
	logLevel string
	outDir   string
	format   string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchreport <directory>",
		Short: "Aggregate benchmark tool logs into a spreadsheet report",
		Long: `benchreport parses the text output of warp, oha and iftop
benchmark runs, normalizes every metric to canonical units, and
aggregates a directory of runs into a single spreadsheet-style table
with one column per test size.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVar(
		&cfgFile, "config", "",
		"path to config file (optional)",
	)
	cmd.Flags().StringVar(
		&logLevel, "log-level", "",
		"override log level (debug, info, warn, error)",
	)
	cmd.Flags().StringVar(
		&outDir, "output", "",
		"directory the report is written to",
	)
	cmd.Flags().StringVar(
		&format, "format", "",
		"report format (csv, xlsx)",
	)

	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.FullWithPlatform())
		},
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := report.DefaultConfig()

	if cfgFile != "" {
		var err error

		cfg, err = report.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags override config file.
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if outDir != "" {
		cfg.OutputDir = outDir
	}

	if format != "" {
		cfg.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
	}

	log.SetLevel(level)

	dir := args[0]

	table, err := report.NewAggregator(log).Aggregate(dir)
	if err != nil {
		return fmt.Errorf("aggregating %s: %w", dir, err)
	}

	base := filepath.Base(filepath.Clean(dir))

	path, err := report.NewWriter(log, cfg).Write(table, base)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	log.WithField("path", path).Info("Done")

	return nil
}
