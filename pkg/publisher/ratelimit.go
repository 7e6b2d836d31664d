package publisher

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter builds the token bucket for postsPerSecond per spec: rates
// below 1/s get a single-token bucket refilled once every 1/rate
// seconds; rates at or above 1/s get a bucket sized to the (rounded up)
// rate, refilled at rate tokens/s. Either way, capacity bounds the burst
// a caller can draw down before waiting.
func NewLimiter(postsPerSecond float64) *rate.Limiter {
	if postsPerSecond < 1.0 {
		if postsPerSecond <= 0 {
			postsPerSecond = 1.0
		}
		interval := time.Duration(float64(time.Second) / postsPerSecond)
		return rate.NewLimiter(rate.Every(interval), 1)
	}
	capacity := int(math.Ceil(postsPerSecond))
	return rate.NewLimiter(rate.Limit(postsPerSecond), capacity)
}

// clampMaxDepth clamps the --max-depth flag to [1, 1000] per spec, with
// 0 meaning "publish without pausing" left untouched — it's the
// disable-the-gate sentinel, not a value to clamp.
func clampMaxDepth(v int) int {
	switch {
	case v == 0:
		return 0
	case v < 0:
		return 1
	case v > 1000:
		return 1000
	default:
		return v
	}
}

// admitted reports whether the depth-admission gate allows another send:
// disabled (maxDepth == 0) always admits; otherwise admit while observed
// depth is strictly below maxDepth.
func admitted(observedDepth, maxDepth int) bool {
	if maxDepth == 0 {
		return true
	}
	return observedDepth < maxDepth
}

// clampLimit caps limit to the true line count of the input, per spec
// step 1 ("capped to file length"). A requested limit of 0 means "use
// the full file" (no cap requested). lineCount of -1 (stdin, unknown)
// leaves limit untouched.
func clampLimit(requested, lineCount int) int {
	if lineCount < 0 {
		if requested <= 0 {
			return math.MaxInt32
		}
		return requested
	}
	if requested <= 0 || requested > lineCount {
		return lineCount
	}
	return requested
}
