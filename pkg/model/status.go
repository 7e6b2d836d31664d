package model

// ChannelStatus is one channel's telemetry as reported by a single host's
// /stats response, before cross-host merging.
type ChannelStatus struct {
	ChannelName   string
	Depth         uint64
	InFlightCount uint64
	MessageCount  uint64
}

// TopicStatus is one topic's telemetry as reported by a single host.
type TopicStatus struct {
	TopicName    string
	Depth        uint64
	MessageCount uint64
	Channels     []ChannelStatus
}

// HostStatus is the poller's per-host result for one tick: the topics (and
// their channels) that host reported, already normalized out of whichever
// envelope shape the broker returned. A host whose fetch failed entirely is
// simply absent from the tick's results, not represented by a zero-value
// HostStatus — see pkg/poller.
type HostStatus struct {
	Hostname string
	Topics   []TopicStatus
}
