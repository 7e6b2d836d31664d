package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
)

func TestDiscoverBuildsHostMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {
				"producers": [
					{"hostname": "broker-1", "http_port": 4151, "topics": ["orders", "events"]},
					{"hostname": "broker-2", "http_port": 4151, "topics": ["events"]}
				]
			}
		}`))
	}))
	defer srv.Close()

	lookupAddr := srv.Listener.Addr().String()
	client := nsqhttp.New(time.Second)

	hosts, err := Discover(context.Background(), client, lookupAddr, model.Filter{})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("len(hosts) = %d, want 2", len(hosts))
	}
	b1, ok := hosts["broker-1"]
	if !ok {
		t.Fatal("broker-1 missing from result")
	}
	if b1.BaseURL != "broker-1:4151" {
		t.Errorf("BaseURL = %q, want broker-1:4151", b1.BaseURL)
	}
	if !b1.HasTopic("orders") || !b1.HasTopic("events") {
		t.Error("broker-1 missing expected topics")
	}
}

func TestDiscoverFatalOnLookupFailure(t *testing.T) {
	client := nsqhttp.New(50 * time.Millisecond)
	_, err := Discover(context.Background(), client, "127.0.0.1:1", model.Filter{})
	if !nsqerr.Is(err, nsqerr.KindDiscoveryFatal) {
		t.Fatalf("expected KindDiscoveryFatal, got %v", err)
	}
}

func hostSet(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func sampleHosts() map[string]*model.Host {
	return map[string]*model.Host{
		"broker-1": {Hostname: "broker-1", BaseURL: "broker-1:4151", Topics: hostSet("orders", "events")},
		"broker-2": {Hostname: "broker-2", BaseURL: "broker-2:4151", Topics: hostSet("events")},
		"broker-3": {Hostname: "broker-3", BaseURL: "broker-3:4151", Topics: hostSet("billing")},
	}
}

func TestApplyFilterNoFilter(t *testing.T) {
	out := ApplyFilter(sampleHosts(), model.Filter{})
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
}

func TestApplyFilterHostsOnly(t *testing.T) {
	f := model.Filter{Hosts: hostSet("broker-1", "broker-3")}
	out := ApplyFilter(sampleHosts(), f)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if _, ok := out["broker-2"]; ok {
		t.Error("broker-2 should have been dropped")
	}
}

func TestApplyFilterTopicsOnly(t *testing.T) {
	f := model.Filter{Topics: hostSet("events")}
	out := ApplyFilter(sampleHosts(), f)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if _, ok := out["broker-3"]; ok {
		t.Error("broker-3 should have been dropped (no events topic)")
	}
	if !out["broker-1"].HasTopic("events") {
		t.Error("broker-1 should retain events in its topic set")
	}
	if out["broker-1"].HasTopic("orders") {
		t.Error("broker-1's topic set should be trimmed to the intersection")
	}
}

func TestApplyFilterHostsAndTopics(t *testing.T) {
	f := model.Filter{Hosts: hostSet("broker-1", "broker-2"), Topics: hostSet("orders")}
	out := ApplyFilter(sampleHosts(), f)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if _, ok := out["broker-1"]; !ok {
		t.Error("broker-1 should survive host+topic filter")
	}
}
