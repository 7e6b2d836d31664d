package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cuemby/nsqops/pkg/model"
)

type fakeRefresher struct {
	calls int
	snaps []*model.Snapshot
}

func (f *fakeRefresher) Refresh(ctx context.Context) *model.Snapshot {
	snap := f.snaps[f.calls%len(f.snaps)]
	f.calls++
	return snap
}

func emptySnapshot(depth uint64) *model.Snapshot {
	ts := model.NewTopicSnapshot("orders")
	ts.Consumers["worker"] = channelSnapshot("worker", depth, 0, 0)
	return &model.Snapshot{
		PullFinished: time.Unix(0, 0),
		Topics:       map[string]*model.TopicSnapshot{"orders": ts},
		Producers:    map[string]*model.ProducerAggregate{},
	}
}

func TestRunStopsAfterCount(t *testing.T) {
	fr := &fakeRefresher{snaps: []*model.Snapshot{emptySnapshot(10), emptySnapshot(5)}}
	var buf bytes.Buffer

	opts := Options{Delay: time.Millisecond, Count: 2, IsTerminal: false}
	if err := Run(context.Background(), fr, opts, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if fr.calls != 2 {
		t.Errorf("Refresh called %d times, want 2", fr.calls)
	}
}

func TestRunNonTerminalSkipsEscapeCodes(t *testing.T) {
	fr := &fakeRefresher{snaps: []*model.Snapshot{emptySnapshot(10)}}
	var buf bytes.Buffer

	opts := Options{Delay: time.Millisecond, Count: 1, IsTerminal: false}
	if err := Run(context.Background(), fr, opts, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.Contains(buf.String(), enterAltScreen) {
		t.Error("non-terminal output should not contain alternate-screen escape codes")
	}
}

func TestRunTerminalEntersAndExitsAltScreen(t *testing.T) {
	fr := &fakeRefresher{snaps: []*model.Snapshot{emptySnapshot(10)}}
	var buf bytes.Buffer

	opts := Options{Delay: time.Millisecond, Count: 1, IsTerminal: true}
	if err := Run(context.Background(), fr, opts, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, enterAltScreen) || !strings.Contains(out, exitAltScreen) {
		t.Error("terminal output should enter and exit the alternate screen buffer")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	fr := &fakeRefresher{snaps: []*model.Snapshot{emptySnapshot(10)}}
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{Delay: time.Hour, Count: 0, IsTerminal: false}
	if err := Run(ctx, fr, opts, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
