package model

import (
	"sort"
	"time"
)

// ProducerSnapshot is one host's production counters for one topic.
type ProducerSnapshot struct {
	Hostname     string
	MessageCount uint64
	Depth        uint64
}

// ProducerAggregate is a depth/message-count total. Two aggregations share
// this shape: TopicSnapshot.ProducerTotal sums one topic's ProducerSnapshot
// counters across hosts, and Snapshot.Producers holds, per host, the sum of
// every channel's depth and message count that host reported (its "total
// load").
type ProducerAggregate struct {
	MessageCount uint64
	Depth        uint64
}

// ChannelSnapshot is one channel's telemetry, merged across every host that
// reported it during the current tick.
type ChannelSnapshot struct {
	ChannelName string
	Depth       uint64
	InProgress  uint64
	FinishCount uint64
}

// TopicSnapshot is one topic's view within a Snapshot.
type TopicSnapshot struct {
	Name      string
	Producers map[string]*ProducerSnapshot // keyed by hostname
	Consumers map[string]*ChannelSnapshot  // keyed by channel name
}

// NewTopicSnapshot allocates an empty TopicSnapshot ready for the builder
// to upsert producers and channels into.
func NewTopicSnapshot(name string) *TopicSnapshot {
	return &TopicSnapshot{
		Name:      name,
		Producers: make(map[string]*ProducerSnapshot),
		Consumers: make(map[string]*ChannelSnapshot),
	}
}

// SortedProducerHosts returns this topic's producer hostnames, lexicographic.
func (t *TopicSnapshot) SortedProducerHosts() []string {
	names := make([]string, 0, len(t.Producers))
	for name := range t.Producers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedChannelNames returns this topic's channel names, lexicographic.
func (t *TopicSnapshot) SortedChannelNames() []string {
	names := make([]string, 0, len(t.Consumers))
	for name := range t.Consumers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProducerTotal sums this topic's producer counters across all hosts.
func (t *TopicSnapshot) ProducerTotal() ProducerAggregate {
	var total ProducerAggregate
	for _, p := range t.Producers {
		total.Depth += p.Depth
		total.MessageCount += p.MessageCount
	}
	return total
}

// Snapshot is an immutable, self-consistent, cluster-wide view at one
// instant. Once Build returns it, nothing mutates it further.
type Snapshot struct {
	PullFinished time.Time
	Topics       map[string]*TopicSnapshot     // keyed by topic name
	Producers    map[string]*ProducerAggregate // keyed by hostname
}

// SortedTopicNames returns every topic name in the snapshot, lexicographic.
func (s *Snapshot) SortedTopicNames() []string {
	names := make([]string, 0, len(s.Topics))
	for name := range s.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedProducerHosts returns every hostname with a producer aggregate,
// lexicographic.
func (s *Snapshot) SortedProducerHosts() []string {
	names := make([]string, 0, len(s.Producers))
	for name := range s.Producers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopicDepth returns the aggregate producer depth for a topic, or 0 if the
// topic is absent from this snapshot.
func (s *Snapshot) TopicDepth(topic string) uint64 {
	t, ok := s.Topics[topic]
	if !ok {
		return 0
	}
	return t.ProducerTotal().Depth
}

// TopicInFlight sums in-progress message counts across every channel of
// topic, or 0 if the topic is absent from this snapshot.
func (s *Snapshot) TopicInFlight(topic string) uint64 {
	t, ok := s.Topics[topic]
	if !ok {
		return 0
	}
	var total uint64
	for _, c := range t.Consumers {
		total += c.InProgress
	}
	return total
}
