// Package snapshot turns one poller tick's HostStatus results into an
// immutable, cluster-wide Snapshot.
package snapshot

import (
	"time"

	"github.com/cuemby/nsqops/pkg/model"
)

// Build implements the snapshot-construction algorithm: for every topic a
// host advertises (per discovery) and reports status for, it upserts a
// producer entry and merges that topic's channel telemetry cluster-wide;
// for every channel the host reports — regardless of whether its topic is
// advertised — it accumulates the host's total load. hosts is the
// discovered host set (for advertised-topic membership); statuses is
// this tick's poller output, including hosts with no topics (decode
// failures), which still get a zeroed producer aggregate.
func Build(hosts map[string]*model.Host, statuses []model.HostStatus, now time.Time) *model.Snapshot {
	snap := &model.Snapshot{
		PullFinished: now,
		Topics:       make(map[string]*model.TopicSnapshot),
		Producers:    make(map[string]*model.ProducerAggregate),
	}

	for _, status := range statuses {
		snap.Producers[status.Hostname] = &model.ProducerAggregate{}

		host := hosts[status.Hostname]
		for _, t := range status.Topics {
			if host != nil && host.HasTopic(t.TopicName) {
				topicSnap, ok := snap.Topics[t.TopicName]
				if !ok {
					topicSnap = model.NewTopicSnapshot(t.TopicName)
					snap.Topics[t.TopicName] = topicSnap
				}
				topicSnap.Producers[status.Hostname] = &model.ProducerSnapshot{
					Hostname:     status.Hostname,
					MessageCount: t.MessageCount,
					Depth:        t.Depth,
				}

				for _, c := range t.Channels {
					mergeChannel(topicSnap, c)
				}
			}

			agg := snap.Producers[status.Hostname]
			for _, c := range t.Channels {
				agg.Depth += c.Depth
				agg.MessageCount += c.MessageCount
			}
		}
	}

	return snap
}

func mergeChannel(topicSnap *model.TopicSnapshot, c model.ChannelStatus) {
	chanSnap, ok := topicSnap.Consumers[c.ChannelName]
	if !ok {
		chanSnap = &model.ChannelSnapshot{ChannelName: c.ChannelName}
		topicSnap.Consumers[c.ChannelName] = chanSnap
	}
	chanSnap.Depth += c.Depth
	chanSnap.InProgress += c.InFlightCount
	chanSnap.FinishCount += c.MessageCount
}
