// Package discovery resolves the producer hosts behind a lookup node and
// narrows them to the hosts/topics a command was asked to operate on.
package discovery

import (
	"context"
	"fmt"

	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
)

// nodesResponse is the /nodes envelope served by the lookup node.
type nodesResponse struct {
	Data struct {
		Producers []struct {
			Hostname string   `json:"hostname"`
			HTTPPort int      `json:"http_port"`
			Topics   []string `json:"topics"`
		} `json:"producers"`
	} `json:"data"`
}

// Discover hits the lookup node's /nodes endpoint, builds one Host per
// reported producer, and applies filter. It fails fatally (KindDiscoveryFatal)
// only when /nodes itself cannot be reached or decoded — a single
// unreachable producer host is not a discovery failure; liveness for a
// specific topic is checked later, at submission time, by
// cluster.State.TopicURL.
func Discover(ctx context.Context, client *nsqhttp.Client, lookupAddr string, filter model.Filter) (map[string]*model.Host, error) {
	url := fmt.Sprintf("http://%s/nodes", lookupAddr)

	var resp nodesResponse
	if err := client.GetJSON(ctx, lookupAddr, url, &resp); err != nil {
		return nil, nsqerr.ForHost(nsqerr.KindDiscoveryFatal, lookupAddr,
			fmt.Errorf("discover producers from lookup node: %w", err))
	}

	hosts := make(map[string]*model.Host, len(resp.Data.Producers))
	for _, p := range resp.Data.Producers {
		topics := make(map[string]struct{}, len(p.Topics))
		for _, t := range p.Topics {
			topics[t] = struct{}{}
		}
		hosts[p.Hostname] = &model.Host{
			Hostname: p.Hostname,
			BaseURL:  fmt.Sprintf("%s:%d", p.Hostname, p.HTTPPort),
			Topics:   topics,
		}
	}

	return ApplyFilter(hosts, filter), nil
}

// ApplyFilter narrows hosts to those matching filter, per spec: a host
// filter retains named hosts outright; a topic filter keeps a host only
// if at least one of its advertised topics is requested, and trims its
// topic set down to the intersection; supplying both applies the host
// filter first, then the topic filter on what remains.
func ApplyFilter(hosts map[string]*model.Host, filter model.Filter) map[string]*model.Host {
	out := make(map[string]*model.Host, len(hosts))
	for name, h := range hosts {
		if filter.HasHosts() {
			if _, ok := filter.Hosts[name]; !ok {
				continue
			}
		}
		out[name] = h
	}

	if !filter.HasTopics() {
		return out
	}

	filtered := make(map[string]*model.Host, len(out))
	for name, h := range out {
		intersection := make(map[string]struct{})
		for t := range h.Topics {
			if _, want := filter.Topics[t]; want {
				intersection[t] = struct{}{}
			}
		}
		if len(intersection) == 0 {
			continue
		}
		filtered[name] = &model.Host{
			Hostname: h.Hostname,
			BaseURL:  h.BaseURL,
			Topics:   intersection,
		}
	}
	return filtered
}
