// Package health provides a minimal HTTP reachability check used to pick a
// live broker host out of a set discovered from the lookup node.
package health

import (
	"context"
	"time"
)

// CheckType identifies the kind of health check performed.
type CheckType string

// CheckTypeHTTP is the only checker this toolkit needs: the broker's /ping
// admin endpoint is plain HTTP.
const CheckTypeHTTP CheckType = "http"

// Result represents the outcome of a single health check.
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker performs a single health check on demand. Unlike a container
// health monitor, callers here invoke Check once per candidate host and act
// immediately on the result — there is no retry/consecutive-failure state
// machine to track.
type Checker interface {
	Check(ctx context.Context) Result
	Type() CheckType
}
