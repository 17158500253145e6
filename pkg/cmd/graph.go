package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"ResourceMonitor/pkg/graphing"
	"ResourceMonitor/pkg/logging"
)

// Graph renders charts from a recorded telemetry file. The file path is
// the first positional argument after the flags.
func Graph(args []string) {
	cfg, log, rest := setup("graph", args)
	defer logging.Flush(log)

	input := cfg.Output
	if len(rest) > 0 {
		input = rest[0]
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: graph [flags] <telemetry-file>")
		os.Exit(1)
	}

	gen, err := graphing.NewGenerator(input, cfg.GraphDir)
	if err != nil {
		log.Fatal("invalid graph arguments", zap.Error(err))
	}

	out, err := gen.Generate()
	if err != nil {
		log.Fatal("failed to generate graphs", zap.Error(err))
	}
	log.Info("generated graphs", zap.String("path", out))
}
