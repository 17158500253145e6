// Package stats queries the host (and, when available, NVIDIA GPUs) for
// point-in-time resource usage snapshots.
package stats

import "time"

// Kind classifies how a metric value is meant to be read.
type Kind int

const (
	// Gauge is an instantaneous reading, reported as-is.
	Gauge Kind = iota
	// Counter is a monotonically non-decreasing cumulative total. It must
	// be converted to a per-second rate before aggregation.
	Counter
)

// Value is a single metric reading tagged with its kind. The kind is
// decided by the provider that produced the value, not inferred from the
// metric name downstream.
type Value struct {
	V    float64
	Kind Kind
}

// Snapshot holds one instantaneous set of named metric readings.
type Snapshot struct {
	Taken  time.Time
	Values map[string]Value
}

// NewSnapshot creates an empty snapshot stamped with the given time.
func NewSnapshot(taken time.Time) Snapshot {
	return Snapshot{
		Taken:  taken,
		Values: make(map[string]Value),
	}
}

// SetGauge records an instantaneous value.
func (s Snapshot) SetGauge(name string, v float64) {
	s.Values[name] = Value{V: v, Kind: Gauge}
}

// SetCounter records a cumulative value.
func (s Snapshot) SetCounter(name string, v float64) {
	s.Values[name] = Value{V: v, Kind: Counter}
}

// Get returns the reading for name, if present.
func (s Snapshot) Get(name string) (Value, bool) {
	v, ok := s.Values[name]
	return v, ok
}

// Len returns the number of metrics in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Values)
}
