// Package poller fetches /stats?format=json from every eligible broker
// host concurrently, tolerating both historical NSQ response envelopes.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/metrics"
	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
)

// Poller fetches and decodes one host's /stats response.
type Poller struct {
	client *nsqhttp.Client
	log    zerolog.Logger
}

// New returns a Poller using client for requests and log for decode
// warnings.
func New(client *nsqhttp.Client, log zerolog.Logger) *Poller {
	return &Poller{client: client, log: log}
}

// PollOne fetches a single host's stats. A transport or HTTP-status
// failure is returned as an error so the caller can drop the host from
// this tick entirely. A body that matches neither envelope shape is
// logged and reported as a HostStatus with no topics, never an error —
// the host still appears in the snapshot with zeroed aggregates.
func (p *Poller) PollOne(ctx context.Context, host *model.Host) (model.HostStatus, error) {
	url := fmt.Sprintf("http://%s/stats?format=json", host.BaseURL)

	body, err := p.client.GetBytes(ctx, host.Hostname, url)
	if err != nil {
		return model.HostStatus{}, err
	}

	var modern modernEnvelope
	if err := json.Unmarshal(body, &modern); err == nil && len(modern.Topics) > 0 {
		return model.HostStatus{Hostname: host.Hostname, Topics: toTopicStatuses(modern.Topics)}, nil
	}

	var legacy legacyEnvelope
	if err := json.Unmarshal(body, &legacy); err == nil && len(legacy.Data.Topics) > 0 {
		return model.HostStatus{Hostname: host.Hostname, Topics: toTopicStatuses(legacy.Data.Topics)}, nil
	}

	p.log.Warn().
		Str("host", host.Hostname).
		Str("body", truncate(body, 512)).
		Msg("stats response matched neither modern nor legacy envelope")

	return model.HostStatus{Hostname: host.Hostname, Topics: nil}, nil
}

// PollAll fans out PollOne across every host concurrently and returns
// only the hosts whose fetch succeeded (transport/HTTP failures are
// dropped, per spec: they are simply absent from this tick).
func PollAll(ctx context.Context, p *Poller, hosts map[string]*model.Host) []model.HostStatus {
	results := make([]model.HostStatus, len(hosts))
	ok := make([]bool, len(hosts))

	names := model.SortedHostnames(hosts)
	var wg sync.WaitGroup
	wg.Add(len(names))
	for i, name := range names {
		go func(i int, h *model.Host) {
			defer wg.Done()
			status, err := p.PollOne(ctx, h)
			if err != nil {
				if nsqerr.Is(err, nsqerr.KindTransport) || nsqerr.Is(err, nsqerr.KindHTTPError) {
					metrics.HostsUnreachableTotal.Inc()
				} else {
					p.log.Warn().Str("host", h.Hostname).Err(err).Msg("unexpected poll failure")
				}
				return
			}
			results[i] = status
			ok[i] = true
		}(i, hosts[name])
	}
	wg.Wait()

	out := make([]model.HostStatus, 0, len(names))
	for i, present := range ok {
		if present {
			out = append(out, results[i])
		}
	}
	return out
}

func toTopicStatuses(wire []topicWire) []model.TopicStatus {
	statuses := make([]model.TopicStatus, 0, len(wire))
	for _, t := range wire {
		channels := make([]model.ChannelStatus, 0, len(t.Channels))
		for _, c := range t.Channels {
			channels = append(channels, model.ChannelStatus{
				ChannelName:   c.ChannelName,
				Depth:         c.Depth,
				InFlightCount: c.InFlightCount,
				MessageCount:  c.MessageCount,
			})
		}
		statuses = append(statuses, model.TopicStatus{
			TopicName:    t.TopicName,
			Depth:        t.Depth,
			MessageCount: t.MessageCount,
			Channels:     channels,
		})
	}
	return statuses
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
