// Package cluster ties discovery, polling and snapshot building into the
// single refreshable view every command operates against.
package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/discovery"
	"github.com/cuemby/nsqops/pkg/health"
	"github.com/cuemby/nsqops/pkg/metrics"
	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
	"github.com/cuemby/nsqops/pkg/poller"
	"github.com/cuemby/nsqops/pkg/snapshot"
)

// State holds the discovered host set and the machinery to refresh a
// Snapshot of it. The host set is fixed at construction time — refresh
// never re-discovers.
type State struct {
	hosts      map[string]*model.Host
	lookupAddr string
	client     *nsqhttp.Client
	poller     *poller.Poller
}

// New discovers hosts behind lookupAddr, applies filter, and returns a
// ready-to-refresh State. Discovery failure is fatal (nsqerr.KindDiscoveryFatal).
func New(ctx context.Context, lookupAddr string, filter model.Filter, log zerolog.Logger) (*State, error) {
	client := nsqhttp.New(30 * time.Second)
	hosts, err := discovery.Discover(ctx, client, lookupAddr, filter)
	if err != nil {
		return nil, err
	}
	return &State{
		hosts:      hosts,
		lookupAddr: lookupAddr,
		client:     client,
		poller:     poller.New(client, log),
	}, nil
}

// Hosts returns the discovered (and filtered) host set. Callers must not
// mutate it.
func (s *State) Hosts() map[string]*model.Host {
	return s.hosts
}

// Refresh runs one poller tick across every discovered host concurrently,
// then builds a fresh Snapshot from the results. It never re-discovers
// and never mutates the host set.
func (s *State) Refresh(ctx context.Context) *model.Snapshot {
	timer := metrics.NewTimer()
	statuses := poller.PollAll(ctx, s.poller, s.hosts)
	timer.ObserveDuration(metrics.PollDuration)
	return snapshot.Build(s.hosts, statuses, time.Now())
}

// pingTimeout bounds each candidate's liveness check so one dead host in
// a long lexicographic scan can't stall submission by the full HTTP
// client timeout.
const pingTimeout = 3 * time.Second

// TopicURL returns the submission base URL for the first host (in
// lexicographic order) that both advertises topic and answers /ping,
// or false if none do. This mirrors the original get_base_url_for_topic:
// a candidate is only usable once its liveness is confirmed, not merely
// advertised by discovery.
func (s *State) TopicURL(ctx context.Context, topic string) (string, bool) {
	for _, name := range model.SortedHostnames(s.hosts) {
		h := s.hosts[name]
		if !h.HasTopic(topic) {
			continue
		}
		checker := health.NewHTTPChecker(fmt.Sprintf("http://%s/ping", h.BaseURL)).
			WithTimeout(pingTimeout).
			WithStatusRange(200, 299)
		if checker.Check(ctx).Healthy {
			return h.BaseURL, true
		}
	}
	return "", false
}

// NoHostForTopic returns the classified error callers (pkg/publisher)
// should surface when TopicURL reports no match for topic.
func NoHostForTopic(topic string) error {
	return nsqerr.New(nsqerr.KindDiscoveryFatal, fmt.Errorf("no host advertises topic %q", topic))
}
