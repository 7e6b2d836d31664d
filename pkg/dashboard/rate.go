package dashboard

import "github.com/VividCortex/ewma"

// rateTracker smooths a per-channel counter's rate of change across
// dashboard frames using an exponentially weighted moving average,
// rather than displaying the raw single-sample delta/Δt every tick.
type rateTracker struct {
	averages map[string]ewma.MovingAverage
}

func newRateTracker() *rateTracker {
	return &rateTracker{averages: make(map[string]ewma.MovingAverage)}
}

// observe folds in a new instantaneous rate (messages/sec) for key and
// returns the smoothed value. A key seen for the first time is seeded
// directly from the raw sample rather than starting from zero, so the
// first displayed rate isn't artificially suppressed.
func (r *rateTracker) observe(key string, instantaneous float64) float64 {
	avg, ok := r.averages[key]
	if !ok {
		// Average age of ~5 samples: alpha = 2 / (5 + 1).
		avg = ewma.NewMovingAverage(5)
		avg.Set(instantaneous)
		r.averages[key] = avg
		return avg.Value()
	}
	avg.Add(instantaneous)
	return avg.Value()
}

// rate computes the clamped-non-negative messages/sec between two
// counter readings deltaSeconds apart, per the spec's requirement that
// a counter reset or wrap never displays as a negative rate.
func rate(prev, cur uint64, deltaSeconds float64) float64 {
	if deltaSeconds <= 0 || cur <= prev {
		return 0
	}
	return float64(cur-prev) / deltaSeconds
}
