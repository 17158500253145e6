package sampling

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ResourceMonitor/pkg/reporting"
	"ResourceMonitor/pkg/stats"
)

const (
	// SeriesGroupMachine receives all host metric series.
	SeriesGroupMachine = ":monitor:machine"
	// SeriesGroupGPU receives all gpu_-prefixed metric series.
	SeriesGroupGPU = ":monitor:gpu"

	gpuSeriesPrefix = "gpu_"
)

// Defaults used when Options fields are left zero.
const (
	DefaultSampleFrequency = 2.0
	DefaultReportPeriod    = 30 * time.Second
)

// Errors returned by Start.
var (
	// ErrAlreadyRunning is returned while the monitor's loop is still
	// alive.
	ErrAlreadyRunning = errors.New("monitor already running")
	// ErrNoProvider is returned when the monitor has no stats provider
	// to sample from.
	ErrNoProvider = errors.New("monitor has no stats provider")
)

// StatsProvider produces one snapshot of current resource usage.
type StatsProvider interface {
	Sample() stats.Snapshot
}

// Options configures a Monitor. Zero fields fall back to the defaults.
type Options struct {
	// SampleFrequency is how many snapshots to take per second.
	SampleFrequency float64
	// ReportPeriod is how often accumulated averages are flushed to the
	// sink.
	ReportPeriod time.Duration
}

// Monitor periodically samples resource usage in a background goroutine
// and reports time-windowed averages to a sink.
//
// All window state (accumulator, previous-snapshot cache, elapsed
// counter) is owned by the loop goroutine; the only cross-goroutine
// signal is the stop channel.
type Monitor struct {
	provider StatsProvider
	sink     reporting.Sink
	log      *zap.Logger

	samplePeriod time.Duration
	reportPeriod time.Duration

	mu       sync.Mutex
	running  bool
	stopping bool
	stop     chan struct{}
	done     chan struct{}

	window          *Accumulator
	prev            *stats.Snapshot
	prevAt          time.Time
	reportedSeconds int64
}

// NewMonitor builds a monitor; Start must be called to begin sampling.
func NewMonitor(provider StatsProvider, sink reporting.Sink, log *zap.Logger, opts Options) *Monitor {
	freq := opts.SampleFrequency
	if freq <= 0 {
		freq = DefaultSampleFrequency
	}
	period := opts.ReportPeriod
	if period <= 0 {
		period = DefaultReportPeriod
	}

	done := make(chan struct{})
	close(done)

	return &Monitor{
		provider:     provider,
		sink:         sink,
		log:          log,
		samplePeriod: time.Duration(float64(time.Second) / freq),
		reportPeriod: period,
		done:         done,
		window:       NewAccumulator(),
	}
}

// Start launches the background sampling loop. It never blocks; a second
// Start while the loop is alive returns ErrAlreadyRunning.
func (m *Monitor) Start() error {
	if m.provider == nil {
		return ErrNoProvider
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return ErrAlreadyRunning
	}

	m.running = true
	m.stopping = false
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.window = NewAccumulator()
	m.prev = nil
	m.prevAt = time.Time{}
	m.reportedSeconds = 0

	go m.run()
	return nil
}

// Stop signals the loop to exit and returns immediately; it does not
// wait. Worst-case shutdown latency is one sampling period. Stopping an
// idle monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running || m.stopping {
		return
	}
	m.stopping = true
	close(m.stop)
}

// Done returns a channel closed once the loop has fully exited. Before
// the first Start it is already closed.
func (m *Monitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Monitor) run() {
	done := m.done
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(m.samplePeriod)
	defer ticker.Stop()

	windowStart := time.Now()
	for {
		select {
		case <-m.stop:
			// No partial-window flush on cancellation.
			return
		case <-ticker.C:
			m.tick()
			if elapsed := time.Since(windowStart); elapsed >= m.reportPeriod {
				m.flush(elapsed)
				windowStart = time.Now()
			}
		}
	}
}

// tick takes one snapshot and folds it into the current window. A bad
// sample is logged and skipped; it never stops future sampling.
func (m *Monitor) tick() {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("sample tick failed", zap.Any("reason", r))
		}
	}()

	snap := m.provider.Sample()

	// The cache is replaced before aggregation so a failing tick cannot
	// poison the next one's rate conversion.
	prev, prevAt := m.prev, m.prevAt
	m.prev, m.prevAt = &snap, snap.Taken

	elapsed := snap.Taken.Sub(prevAt).Seconds()
	m.window.Add(ConvertRates(prev, snap, elapsed))
}

// flush reports the window's averages and resets it. windowElapsed is
// the wall time the window actually spanned; its rounded value advances
// the cumulative x-axis counter.
func (m *Monitor) flush(windowElapsed time.Duration) {
	averages := m.window.Averages()
	m.reportedSeconds += int64(math.Round(windowElapsed.Seconds()))

	for name, v := range averages {
		group := SeriesGroupMachine
		if strings.HasPrefix(name, gpuSeriesPrefix) {
			group = SeriesGroupGPU
		}

		value := math.Round(v*1000) / 1000
		if err := m.sink.Report(group, name, m.reportedSeconds, value); err != nil {
			m.log.Warn("failed to report series",
				zap.String("group", group),
				zap.String("series", name),
				zap.Error(err))
		}
	}

	m.window.Reset()
}
