package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
)

func newTestPoller() *Poller {
	return New(nsqhttp.New(time.Second), zerolog.Nop())
}

func TestPollOneModernEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"topics": [
				{
					"topic_name": "orders",
					"depth": 12,
					"message_count": 500,
					"channels": [
						{"channel_name": "worker", "depth": 3, "in_flight_count": 1, "message_count": 497}
					]
				}
			]
		}`))
	}))
	defer srv.Close()

	host := &model.Host{Hostname: "broker-1", BaseURL: srv.Listener.Addr().String()}
	status, err := newTestPoller().PollOne(context.Background(), host)
	if err != nil {
		t.Fatalf("PollOne returned error: %v", err)
	}
	if len(status.Topics) != 1 || status.Topics[0].TopicName != "orders" {
		t.Fatalf("unexpected topics: %+v", status.Topics)
	}
	if status.Topics[0].Depth != 12 {
		t.Errorf("Depth = %d, want 12", status.Topics[0].Depth)
	}
	if len(status.Topics[0].Channels) != 1 || status.Topics[0].Channels[0].ChannelName != "worker" {
		t.Fatalf("unexpected channels: %+v", status.Topics[0].Channels)
	}
}

func TestPollOneLegacyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status_code": 200,
			"data": {
				"topics": [
					{
						"topic_name": "events",
						"depth": 4,
						"message_count": 20,
						"channels": []
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	host := &model.Host{Hostname: "broker-2", BaseURL: srv.Listener.Addr().String()}
	status, err := newTestPoller().PollOne(context.Background(), host)
	if err != nil {
		t.Fatalf("PollOne returned error: %v", err)
	}
	if len(status.Topics) != 1 || status.Topics[0].TopicName != "events" {
		t.Fatalf("unexpected topics: %+v", status.Topics)
	}
}

func TestPollOneUnrecognizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	host := &model.Host{Hostname: "broker-3", BaseURL: srv.Listener.Addr().String()}
	status, err := newTestPoller().PollOne(context.Background(), host)
	if err != nil {
		t.Fatalf("PollOne should not error on unrecognized body, got %v", err)
	}
	if status.Hostname != "broker-3" {
		t.Errorf("Hostname = %q, want broker-3", status.Hostname)
	}
	if status.Topics != nil {
		t.Errorf("Topics = %+v, want nil", status.Topics)
	}
}

func TestPollOneTransportFailure(t *testing.T) {
	host := &model.Host{Hostname: "broker-4", BaseURL: "127.0.0.1:1"}
	p := New(nsqhttp.New(50*time.Millisecond), zerolog.Nop())
	_, err := p.PollOne(context.Background(), host)
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestPollAllDropsFailedHosts(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"topics": [{"topic_name": "orders", "depth": 1, "message_count": 1, "channels": []}]}`))
	}))
	defer up.Close()

	hosts := map[string]*model.Host{
		"up":   {Hostname: "up", BaseURL: up.Listener.Addr().String()},
		"down": {Hostname: "down", BaseURL: "127.0.0.1:1"},
	}
	p := New(nsqhttp.New(50*time.Millisecond), zerolog.Nop())
	results := PollAll(context.Background(), p, hosts)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Hostname != "up" {
		t.Errorf("Hostname = %q, want up", results[0].Hostname)
	}
}
