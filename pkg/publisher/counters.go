package publisher

import "sync/atomic"

// counters holds the publisher's process-wide tallies as a struct of
// atomics rather than package globals, so independent Run invocations
// (tests, or a future embedding) don't share state.
type counters struct {
	sent          atomic.Int64
	errors        atomic.Int64
	offsetSkipped atomic.Int64
	observedDepth atomic.Int64
	observedInFlt atomic.Int64
}

// Report is the final, read-once summary Run returns.
type Report struct {
	Sent          int64
	Errors        int64
	OffsetSkipped int64
}

func (c *counters) snapshot() Report {
	return Report{
		Sent:          c.sent.Load(),
		Errors:        c.errors.Load(),
		OffsetSkipped: c.offsetSkipped.Load(),
	}
}
