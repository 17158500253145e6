// Package reporting receives averaged telemetry values from the sampler
// and delivers them to a destination: the structured log, or a telemetry
// file in one of the registered formats.
package reporting

import "go.uber.org/zap"

// Sink accepts one reported value per series per report window.
// Implementations must tolerate being called from the sampler's
// background goroutine.
type Sink interface {
	Report(group, series string, iteration int64, value float64) error
}

// LogSink writes reported values to the structured log.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink that logs each reported value at info level.
func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Report(group, series string, iteration int64, value float64) error {
	s.log.Info("telemetry",
		zap.String("group", group),
		zap.String("series", series),
		zap.Int64("iteration", iteration),
		zap.Float64("value", value))
	return nil
}
