package cluster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
)

func TestNewDiscoveryFatal(t *testing.T) {
	_, err := New(context.Background(), "127.0.0.1:1", model.Filter{}, zerolog.Nop())
	if !nsqerr.Is(err, nsqerr.KindDiscoveryFatal) {
		t.Fatalf("expected KindDiscoveryFatal, got %v", err)
	}
}

func TestRefreshAndTopicURL(t *testing.T) {
	var statsHits int
	broker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats":
			statsHits++
			_, _ = w.Write([]byte(`{"topics":[{"topic_name":"orders","depth":7,"message_count":42,"channels":[]}]}`))
		case "/ping":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer broker.Close()

	brokerAddr := broker.Listener.Addr().String()
	host, port := splitHostPort(t, brokerAddr)

	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"producers":[{"hostname":"` + host + `","http_port":` + port + `,"topics":["orders"]}]}}`))
	}))
	defer lookup.Close()

	state, err := New(context.Background(), lookup.Listener.Addr().String(), model.Filter{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	url, ok := state.TopicURL(context.Background(), "orders")
	if !ok {
		t.Fatal("TopicURL(orders) not found")
	}
	if url != brokerAddr {
		t.Errorf("TopicURL = %q, want %q", url, brokerAddr)
	}

	if _, ok := state.TopicURL(context.Background(), "missing"); ok {
		t.Error("TopicURL(missing) should not be found")
	}

	snap := state.Refresh(context.Background())
	if snap.TopicDepth("orders") != 7 {
		t.Errorf("TopicDepth(orders) = %d, want 7", snap.TopicDepth("orders"))
	}
	if statsHits == 0 {
		t.Error("expected /stats to be polled")
	}
}

func TestTopicURLSkipsUnreachableHost(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	deadAddr := dead.Listener.Addr().String()
	dead.Close()

	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer live.Close()

	_, deadPort := splitHostPort(t, deadAddr)
	_, livePort := splitHostPort(t, live.Listener.Addr().String())

	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"producers":[
			{"hostname":"127.0.0.1","http_port":` + deadPort + `,"topics":["orders"]},
			{"hostname":"localhost","http_port":` + livePort + `,"topics":["orders"]}
		]}}`))
	}))
	defer lookup.Close()

	state, err := New(context.Background(), lookup.Listener.Addr().String(), model.Filter{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	wantURL := "localhost:" + livePort
	url, ok := state.TopicURL(context.Background(), "orders")
	if !ok {
		t.Fatal("TopicURL(orders) not found despite one live host")
	}
	if url != wantURL {
		t.Errorf("TopicURL = %q, want the live host %q", url, wantURL)
	}
}

func splitHostPort(t *testing.T, addr string) (string, string) {
	t.Helper()
	i := len(addr) - 1
	for i >= 0 && addr[i] != ':' {
		i--
	}
	if i < 0 {
		t.Fatalf("address %q has no port", addr)
	}
	return addr[:i], addr[i+1:]
}
