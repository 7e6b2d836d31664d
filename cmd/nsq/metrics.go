package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/metrics"
)

// serveMetrics starts the Prometheus scrape endpoint in the background
// when addr is non-empty, and returns a shutdown func to call once the
// command's context is done. A no-op shutdown is returned when addr is
// empty, so callers can defer it unconditionally.
func serveMetrics(addr string, log zerolog.Logger) func(context.Context) {
	if addr == "" {
		return func(context.Context) {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	return func(ctx context.Context) {
		_ = srv.Shutdown(ctx)
	}
}
