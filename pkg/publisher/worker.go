package publisher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/metrics"
	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
)

const (
	workerCount   = 5
	queueCapacity = 20
)

// postWorkers starts workerCount goroutines draining queue and POSTing
// each line's bytes to url, until queue closes. Run closes queue once
// the main reader loop finishes; each worker keeps posting whatever is
// still queued and exits when the queue is empty.
func postWorkers(ctx context.Context, wg *sync.WaitGroup, queue <-chan string, url string, client *nsqhttp.Client, c *counters, log zerolog.Logger) {
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for line := range queue {
				err := client.PostJSON(ctx, "publish-target", url, strings.NewReader(line))
				if err != nil {
					c.errors.Add(1)
					metrics.PublishErrorsTotal.Inc()
					log.Error().Int("worker", id).Err(err).Msg("publish failed")
					continue
				}
				c.sent.Add(1)
				metrics.PublishSentTotal.Inc()
			}
		}(i)
	}
}

// depthMonitor refreshes state's snapshot every 200ms and publishes the
// target topic's producer-aggregate depth into c.observedDepth, until
// stop is closed.
func depthMonitor(ctx context.Context, state refresher, topic string, c *counters, stop <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := state.Refresh(ctx)
			depth := snap.TopicDepth(topic)
			c.observedDepth.Store(int64(depth))
			c.observedInFlt.Store(int64(snap.TopicInFlight(topic)))
			metrics.PublishObservedDepth.Set(float64(depth))
		}
	}
}

// refresher is the slice of pkg/cluster.State the publisher depends on,
// kept narrow so tests can substitute a fake.
type refresher interface {
	Refresh(ctx context.Context) *model.Snapshot
}
