package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ResourceMonitor/pkg/logging"
	"ResourceMonitor/pkg/reporting"
	"ResourceMonitor/pkg/sampling"
	"ResourceMonitor/pkg/stats"
)

// Monitor runs the background sampler until SIGINT/SIGTERM.
func Monitor(args []string) {
	cfg, log, _ := setup("monitor", args)
	defer logging.Flush(log)

	provider := stats.NewProvider(log)
	defer provider.Close()

	var sink reporting.Sink
	var fileSink *reporting.FileSink
	if cfg.Output != "" {
		var err error
		fileSink, err = reporting.NewFileSink(cfg.Output, cfg.Format)
		if err != nil {
			log.Fatal("failed to open telemetry file", zap.Error(err))
		}
		sink = fileSink
		log.Info("writing telemetry",
			zap.String("path", fileSink.Path()),
			zap.String("run", fileSink.Run()))
	} else {
		sink = reporting.NewLogSink(log)
	}

	monitor := sampling.NewMonitor(provider, sink, log, sampling.Options{
		SampleFrequency: cfg.SampleFrequency,
		ReportPeriod:    cfg.ReportPeriod(),
	})
	if err := monitor.Start(); err != nil {
		log.Fatal("failed to start monitor", zap.Error(err))
	}
	log.Info("monitor started",
		zap.Float64("frequency", cfg.SampleFrequency),
		zap.Duration("report_period", cfg.ReportPeriod()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	monitor.Stop()

	// Stop is fire-and-forget; give the loop a couple of sampling
	// periods to finish its in-flight tick before closing the sink
	// underneath it.
	select {
	case <-monitor.Done():
	case <-time.After(time.Duration(2 * float64(time.Second) / cfg.SampleFrequency)):
	}

	if fileSink != nil {
		if err := fileSink.Close(); err != nil {
			log.Warn("failed to close telemetry file", zap.Error(err))
		}
	}
}
