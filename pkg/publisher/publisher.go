// Package publisher implements the rate-limited, depth-gated line
// publisher behind `nsq send`.
package publisher

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/nsqops/pkg/cluster"
	"github.com/cuemby/nsqops/pkg/nsqerr"
	"github.com/cuemby/nsqops/pkg/nsqhttp"
	"github.com/cuemby/nsqops/pkg/progress"
)

// Options configures one publish run.
type Options struct {
	InputPath string
	Topic     string
	Rate      float64 // posts/second, fractional >= 0
	Offset    int     // lines to skip but still count
	Limit     int     // 0 = unbounded (capped to file length)
	MaxDepth  int     // 0 = gate disabled; clamped to [1, 1000] otherwise

	// AssumeYes skips the interactive confirmation prompt.
	AssumeYes bool
	// IsTerminal gates both the confirmation prompt and the progress
	// bar; when false, output stays script-friendly (no escape codes).
	IsTerminal bool
}

// Run executes the full send pipeline against an already-discovered
// cluster state and returns the final sent/errors/offset-skipped report.
func Run(ctx context.Context, state *cluster.State, opts Options, log zerolog.Logger) (Report, error) {
	lineCount, err := countLines(opts.InputPath)
	if err != nil {
		return Report{}, err
	}

	baseURL, ok := state.TopicURL(ctx, opts.Topic)
	if !ok {
		return Report{}, cluster.NoHostForTopic(opts.Topic)
	}
	submitURL := fmt.Sprintf("http://%s/pub?topic=%s", baseURL, opts.Topic)

	maxDepth := clampMaxDepth(opts.MaxDepth)
	limit := clampLimit(opts.Limit, lineCount)

	if !opts.AssumeYes && opts.IsTerminal {
		proceed, err := confirmSend(opts.Topic, baseURL, lineCount, opts.Rate)
		if err != nil {
			return Report{}, nsqerr.New(nsqerr.KindConfig, fmt.Errorf("confirmation prompt: %w", err))
		}
		if !proceed {
			log.Info().Msg("send aborted by user")
			return Report{}, nil
		}
	}

	reader, err := openInput(opts.InputPath)
	if err != nil {
		return Report{}, err
	}
	defer reader.Close()

	var bar progress.Bar = progress.Noop{}
	if opts.IsTerminal {
		total := 0
		if lineCount > 0 {
			total = limit
		}
		bar = progress.New(total, os.Stdout)
	}

	client := nsqhttp.New(30 * time.Second)
	c := &counters{}

	queue := make(chan string, queueCapacity)
	var workers sync.WaitGroup
	postWorkers(ctx, &workers, queue, submitURL, client, c, log)

	stopDepth := make(chan struct{})
	var depthWG sync.WaitGroup
	if maxDepth > 0 {
		depthWG.Add(1)
		go func() {
			defer depthWG.Done()
			depthMonitor(ctx, state, opts.Topic, c, stopDepth)
		}()
	}

	limiter := NewLimiter(opts.Rate)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	index := 0
	for scanner.Scan() {
		for !admitted(int(c.observedDepth.Load()), maxDepth) {
			bar.SetMessage(progress.FormatStatus(int(c.observedInFlt.Load()), int(c.observedDepth.Load()), int(c.offsetSkipped.Load())))
			time.Sleep(100 * time.Millisecond)
		}

		if index >= limit {
			break
		}
		index++
		bar.Inc()

		if index <= opts.Offset {
			c.offsetSkipped.Add(1)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			break
		}

		select {
		case queue <- scanner.Text():
		case <-ctx.Done():
			c.errors.Add(1)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("input read error")
	}

	close(stopDepth)
	depthWG.Wait()

	time.Sleep(100 * time.Millisecond)
	close(queue)
	workers.Wait()

	bar.Finish()

	return c.snapshot(), nil
}
