/*
Package discovery resolves the producer hosts behind a lookup node's
/nodes endpoint and narrows them down by an optional host/topic Filter.
Liveness for a specific topic is checked later, at submission time, by
pkg/cluster's TopicURL, not here — a host absent from /nodes never
existed, but a host present in /nodes may still be unreachable, and
only a caller picking one host to submit to needs to know that.
*/
package discovery
