package main

import "github.com/google/uuid"

// newRunID generates a correlation ID tagging every log line emitted by
// one invocation, so concurrent stats/send runs can be told apart in
// aggregated log output.
func newRunID() string {
	return uuid.NewString()
}
