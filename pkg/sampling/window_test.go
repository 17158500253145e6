package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorAveragesArithmeticMean(t *testing.T) {
	a := NewAccumulator()
	for _, v := range []float64{1, 2, 3, 4} {
		a.Add(map[string]float64{"cpu_usage": v})
	}

	avg := a.Averages()
	assert.InDelta(t, 2.5, avg["cpu_usage"], 0.001)
}

func TestAccumulatorPartialPresenceUsesOwnCount(t *testing.T) {
	a := NewAccumulator()
	a.Add(map[string]float64{"cpu_usage": 10, "gpu_0_utilization": 50})
	a.Add(map[string]float64{"cpu_usage": 20})
	a.Add(map[string]float64{"cpu_usage": 30, "gpu_0_utilization": 70})
	a.Add(map[string]float64{"cpu_usage": 40})

	avg := a.Averages()
	assert.InDelta(t, 25, avg["cpu_usage"], 0.001)
	// Present in 2 of 4 ticks: mean over those 2 only.
	assert.InDelta(t, 60, avg["gpu_0_utilization"], 0.001)
}

func TestAccumulatorResetIsFresh(t *testing.T) {
	a := NewAccumulator()
	a.Add(map[string]float64{"cpu_usage": 99})
	a.Reset()

	assert.Empty(t, a.Averages())

	a.Add(map[string]float64{"cpu_usage": 5})
	assert.InDelta(t, 5, a.Averages()["cpu_usage"], 0.001)
}

func TestAccumulatorEmptyAverages(t *testing.T) {
	assert.Empty(t, NewAccumulator().Averages())
}
