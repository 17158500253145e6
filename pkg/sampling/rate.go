// Package sampling runs the background telemetry loop: it feeds stats
// snapshots through rate conversion into a windowed accumulator and
// flushes averages to a reporting sink on a fixed cadence.
package sampling

import "ResourceMonitor/pkg/stats"

// ConvertRates flattens a snapshot into plain per-metric values. Gauges
// pass through unchanged; counters become per-second rates against the
// previous snapshot.
//
// On the first tick (nil prev), or when the wall clock did not advance,
// counters yield 0 instead of a spurious rate. Metrics present only in
// prev are dropped, not carried forward.
func ConvertRates(prev *stats.Snapshot, cur stats.Snapshot, elapsedSeconds float64) map[string]float64 {
	out := make(map[string]float64, len(cur.Values))
	for name, val := range cur.Values {
		if val.Kind == stats.Gauge {
			out[name] = val.V
			continue
		}

		if prev == nil || elapsedSeconds <= 0 {
			out[name] = 0
			continue
		}

		prevVal, ok := prev.Values[name]
		if !ok {
			out[name] = 0
			continue
		}
		out[name] = (val.V - prevVal.V) / elapsedSeconds
	}
	return out
}
