/*
Package snapshot builds a model.Snapshot from one poller tick. A topic's
producer and channel telemetry is recorded only when the reporting host
actually advertised that topic during discovery; a host's overall load
aggregate, by contrast, sums every channel it reports regardless of
advertised topic — a host can carry traffic for a topic nothing else
knows it serves, and that load should still count against its total.
*/
package snapshot
