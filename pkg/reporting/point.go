package reporting

// Point is one reported telemetry value as persisted by FileSink. Run
// identifies the monitor lifecycle that produced the point, so several
// runs can share one telemetry file.
type Point struct {
	Run       string  `json:"run" parquet:"run"`
	Timestamp int64   `json:"timestamp" parquet:"timestamp"`
	Group     string  `json:"group" parquet:"group"`
	Series    string  `json:"series" parquet:"series"`
	Iteration int64   `json:"iteration" parquet:"iteration"`
	Value     float64 `json:"value" parquet:"value"`
}
