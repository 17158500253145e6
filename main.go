package main

import (
	"fmt"
	"os"

	"ResourceMonitor/pkg/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "monitor", "m":
		cmd.Monitor(args)
	case "snapshot", "ss":
		cmd.Snapshot(args)
	case "graph", "g":
		cmd.Graph(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`ResourceMonitor - Background host/GPU telemetry sampler

Usage:
  resmon <command> [flags]

Commands:
  monitor, m      Sample continuously and report windowed averages until Ctrl+C
  snapshot, ss    Print a single metrics snapshot as JSON
  graph, g        Render charts from a recorded telemetry file
  help            Show this help

Common Flags:
  -frequency float      Samples per second (default 2)
  -report-period float  Report period in seconds (default 30)
  -log-level string     Log level: debug, info, warn, error (default info)
  -output string        Telemetry file path (monitor: empty logs reported values)
  -format string        Telemetry format: jsonl, parquet (default: by extension)
  -graph-dir string     Graph output directory (default graphs)

Examples:
  # Report averages to the log every 30s
  resmon monitor

  # Sample 4x/sec, flush every 10s into a parquet file
  resmon monitor -frequency 4 -report-period 10 -output telemetry.parquet

  # Single snapshot
  resmon snapshot

  # Render charts from a recorded file
  resmon graph -graph-dir out/ telemetry.jsonl
`)
}
