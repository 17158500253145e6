package sampling

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ResourceMonitor/pkg/stats"
)

// fakeProvider emits the same gauge readings on every tick.
type fakeProvider struct {
	values map[string]float64
}

func (p *fakeProvider) Sample() stats.Snapshot {
	snap := stats.NewSnapshot(time.Now())
	for name, v := range p.values {
		snap.SetGauge(name, v)
	}
	return snap
}

type reportedPoint struct {
	group     string
	series    string
	iteration int64
	value     float64
}

// recordingSink captures reported points; series named in fail are
// rejected with an error.
type recordingSink struct {
	mu     sync.Mutex
	points []reportedPoint
	fail   map[string]bool
}

func (s *recordingSink) Report(group, series string, iteration int64, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[series] {
		return errors.New("sink rejected value")
	}
	s.points = append(s.points, reportedPoint{group, series, iteration, value})
	return nil
}

func (s *recordingSink) snapshot() []reportedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reportedPoint(nil), s.points...)
}

func waitDone(t *testing.T, m *Monitor) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor loop did not exit")
	}
}

func TestMonitorRejectsDoubleStart(t *testing.T) {
	m := NewMonitor(&fakeProvider{}, &recordingSink{}, zap.NewNop(), Options{
		SampleFrequency: 100,
		ReportPeriod:    time.Hour,
	})

	require.NoError(t, m.Start())
	assert.ErrorIs(t, m.Start(), ErrAlreadyRunning)

	m.Stop()
	waitDone(t, m)

	// A stopped monitor can be started again for a fresh lifecycle.
	require.NoError(t, m.Start())
	m.Stop()
	waitDone(t, m)
}

func TestMonitorStopIsIdempotent(t *testing.T) {
	m := NewMonitor(&fakeProvider{}, &recordingSink{}, zap.NewNop(), Options{
		SampleFrequency: 100,
		ReportPeriod:    time.Hour,
	})

	m.Stop() // idle: no-op

	require.NoError(t, m.Start())
	m.Stop()
	m.Stop()
	waitDone(t, m)
}

func TestMonitorCancelSkipsPartialWindow(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(&fakeProvider{values: map[string]float64{"cpu_usage": 10}}, sink, zap.NewNop(), Options{
		SampleFrequency: 100,
		ReportPeriod:    time.Hour,
	})

	require.NoError(t, m.Start())
	time.Sleep(50 * time.Millisecond)
	m.Stop()
	waitDone(t, m)

	assert.Empty(t, sink.snapshot(), "cancellation must not flush a partial window")
}

func TestMonitorReportsWindowAverages(t *testing.T) {
	provider := &fakeProvider{values: map[string]float64{
		"cpu_usage":         12.5,
		"gpu_0_utilization": 80,
	}}
	sink := &recordingSink{}
	m := NewMonitor(provider, sink, zap.NewNop(), Options{
		SampleFrequency: 100,
		ReportPeriod:    80 * time.Millisecond,
	})

	require.NoError(t, m.Start())
	time.Sleep(300 * time.Millisecond)
	m.Stop()
	waitDone(t, m)

	points := sink.snapshot()
	require.NotEmpty(t, points)

	var sawCPU, sawGPU bool
	var lastIteration int64
	for _, p := range points {
		switch p.series {
		case "cpu_usage":
			sawCPU = true
			assert.Equal(t, SeriesGroupMachine, p.group)
			// Constant input: the window average is exact.
			assert.InDelta(t, 12.5, p.value, 0.001)
		case "gpu_0_utilization":
			sawGPU = true
			assert.Equal(t, SeriesGroupGPU, p.group)
			assert.InDelta(t, 80, p.value, 0.001)
		}
		assert.GreaterOrEqual(t, p.iteration, lastIteration)
		lastIteration = p.iteration
	}
	assert.True(t, sawCPU)
	assert.True(t, sawGPU)
}

func TestMonitorFlushAdvancesElapsedSeconds(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(&fakeProvider{}, sink, zap.NewNop(), Options{})

	// Sampling at 2/sec with a 2 s report period: four ticks per window.
	m.window.Add(map[string]float64{"cpu_usage": 1})
	m.window.Add(map[string]float64{"cpu_usage": 2})
	m.window.Add(map[string]float64{"cpu_usage": 3})
	m.window.Add(map[string]float64{"cpu_usage": 4})
	m.flush(2 * time.Second)

	m.window.Add(map[string]float64{"cpu_usage": 10})
	m.window.Add(map[string]float64{"cpu_usage": 20})
	m.window.Add(map[string]float64{"cpu_usage": 30})
	m.window.Add(map[string]float64{"cpu_usage": 40})
	m.flush(2 * time.Second)

	points := sink.snapshot()
	require.Len(t, points, 2)
	assert.Equal(t, int64(2), points[0].iteration)
	assert.InDelta(t, 2.5, points[0].value, 0.001)
	assert.Equal(t, int64(4), points[1].iteration)
	assert.InDelta(t, 25, points[1].value, 0.001)
}

func TestMonitorFlushRoundsToThreeDecimals(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(&fakeProvider{}, sink, zap.NewNop(), Options{})

	m.window.Add(map[string]float64{"memory_used_gb": 1.23456789})
	m.flush(30 * time.Second)

	points := sink.snapshot()
	require.Len(t, points, 1)
	assert.Equal(t, 1.235, points[0].value)
}

func TestMonitorFlushIsolatesReportFailures(t *testing.T) {
	sink := &recordingSink{fail: map[string]bool{"disk_free_percent": true}}
	m := NewMonitor(&fakeProvider{}, sink, zap.NewNop(), Options{})

	m.window.Add(map[string]float64{
		"disk_free_percent": 40,
		"cpu_usage":         7,
		"memory_free_gb":    3,
	})
	m.flush(30 * time.Second)

	points := sink.snapshot()
	require.Len(t, points, 2)
	for _, p := range points {
		assert.NotEqual(t, "disk_free_percent", p.series)
	}

	// The window resets even when some series were rejected.
	assert.Empty(t, m.window.Averages())
}

// panicProvider blows up on every sample.
type panicProvider struct{}

func (panicProvider) Sample() stats.Snapshot {
	panic("sensor exploded")
}

func TestMonitorSurvivesProviderPanic(t *testing.T) {
	m := NewMonitor(panicProvider{}, &recordingSink{}, zap.NewNop(), Options{
		SampleFrequency: 100,
		ReportPeriod:    time.Hour,
	})

	require.NoError(t, m.Start())
	time.Sleep(50 * time.Millisecond)

	// Loop must still be alive and stoppable.
	assert.ErrorIs(t, m.Start(), ErrAlreadyRunning)
	m.Stop()
	waitDone(t, m)
}

func TestMonitorRequiresProvider(t *testing.T) {
	m := NewMonitor(nil, &recordingSink{}, zap.NewNop(), Options{})
	assert.ErrorIs(t, m.Start(), ErrNoProvider)
}

func TestMonitorDefaultOptions(t *testing.T) {
	m := NewMonitor(&fakeProvider{}, &recordingSink{}, zap.NewNop(), Options{})
	assert.Equal(t, 500*time.Millisecond, m.samplePeriod)
	assert.Equal(t, 30*time.Second, m.reportPeriod)
}
