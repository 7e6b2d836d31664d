/*
Package model defines the data structures shared by discovery, polling,
snapshot building and rendering: the discovered Host set and Filter, the
poller's per-host status records, and the immutable Snapshot the rest of the
toolkit consumes.

# Core Types

Discovery:
  - Host: a broker node with its advertised topic set
  - Filter: the host/topic subset a command was asked to operate on

Poller output (input to the snapshot builder):
  - HostStatus, TopicStatus, ChannelStatus: one host's /stats response,
    decoded into either of the two historical envelope shapes

Snapshot:
  - Snapshot: the cluster-wide, self-consistent view at one instant
  - TopicSnapshot, ProducerSnapshot, ProducerAggregate, ChannelSnapshot

All maps here are keyed for O(1) lookup during construction; every
lexicographically-ordered view callers need (dashboard rendering, stable
test output) goes through the Sorted* accessor methods rather than
iterating the map directly.
*/
package model
