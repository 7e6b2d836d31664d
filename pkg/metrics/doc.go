/*
Package metrics defines the toolkit's Prometheus instrumentation: a handful
of gauges/counters/histograms covering the poller and the publisher, plus a
Timer helper for histogram observations. Nothing here is served unless a
caller mounts Handler() behind an http.Server (gated by --metrics-addr).
*/
package metrics
