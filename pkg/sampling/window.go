package sampling

type bucket struct {
	sum   float64
	count int
}

// Accumulator holds per-metric running sums and sample counts since the
// last reset. Each metric keeps its own count, so metrics that come and
// go between ticks (GPU capability changes, sensor dropouts) average
// only over the ticks where they appeared.
type Accumulator struct {
	buckets map[string]bucket
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{buckets: make(map[string]bucket)}
}

// Add folds one tick's values into the running sums.
func (a *Accumulator) Add(values map[string]float64) {
	for name, v := range values {
		b := a.buckets[name]
		b.sum += v
		b.count++
		a.buckets[name] = b
	}
}

// Averages returns sum/count per metric, using that metric's own
// accumulated count.
func (a *Accumulator) Averages() map[string]float64 {
	out := make(map[string]float64, len(a.buckets))
	for name, b := range a.buckets {
		if b.count == 0 {
			continue
		}
		out[name] = b.sum / float64(b.count)
	}
	return out
}

// Reset clears all sums and counts, leaving the accumulator equivalent
// to a freshly constructed one.
func (a *Accumulator) Reset() {
	a.buckets = make(map[string]bucket)
}
