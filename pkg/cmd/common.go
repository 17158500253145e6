package cmd

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ResourceMonitor/pkg/config"
	"ResourceMonitor/pkg/logging"
)

// setup parses shared flags on top of the loaded configuration and
// builds the logger. Flags win over environment and file values. The
// returned slice holds the positional arguments left after the flags.
func setup(name string, args []string) (*config.Config, *zap.Logger, []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	addCommonFlags(fs, cfg)
	fs.Parse(args)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(1)
	}

	return cfg, log, fs.Args()
}

func addCommonFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Float64Var(&cfg.SampleFrequency, "frequency", cfg.SampleFrequency, "Samples per second")
	fs.Float64Var(&cfg.ReportPeriodSec, "report-period", cfg.ReportPeriodSec, "Report period in seconds")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Telemetry file path (empty: log reported values)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Telemetry format, jsonl or parquet (empty: by extension)")
	fs.StringVar(&cfg.GraphDir, "graph-dir", cfg.GraphDir, "Graph output directory")
}
