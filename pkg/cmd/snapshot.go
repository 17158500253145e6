package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ResourceMonitor/pkg/logging"
	"ResourceMonitor/pkg/stats"
)

// Snapshot takes a single snapshot and prints it as JSON to stdout.
func Snapshot(args []string) {
	_, log, _ := setup("snapshot", args)
	defer logging.Flush(log)

	provider := stats.NewProvider(log)
	defer provider.Close()

	snap := provider.Sample()

	values := make(map[string]float64, snap.Len())
	for name, v := range snap.Values {
		values[name] = v.V
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		log.Fatal("failed to marshal snapshot", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(data))
}
