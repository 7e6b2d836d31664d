package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cuemby/nsqops/pkg/model"
)

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	clearToEOL     = "\x1b[K"
	clearToEOS     = "\x1b[J"
)

// refresher is the narrow slice of *cluster.State the dashboard needs,
// mirroring the same cut publisher.refresher takes.
type refresher interface {
	Refresh(ctx context.Context) *model.Snapshot
}

// Options configures one `nsq stats` run.
type Options struct {
	Delay      time.Duration
	Count      int // 0 = run until ctx is cancelled
	Config     Config
	IsTerminal bool // gates alternate-screen/cursor escapes
}

// Run polls state on Delay and redraws the dashboard, count times (or
// forever when Count is 0) or until ctx is cancelled. When IsTerminal is
// false it falls back to appending each frame to out rather than
// repainting in place, so piped/logged output stays readable.
func Run(ctx context.Context, state refresher, opts Options, out io.Writer) error {
	if opts.IsTerminal {
		fmt.Fprint(out, enterAltScreen)
		defer fmt.Fprint(out, exitAltScreen)
	}

	tracker := newRateTracker()
	var prev *model.Snapshot
	prevLineCount := 0

	for i := 0; opts.Count == 0 || i < opts.Count; i++ {
		tickStart := time.Now()

		cur := state.Refresh(ctx)
		lines := render(prev, cur, opts.Config, tracker)

		if opts.IsTerminal {
			repaint(out, prevLineCount, lines)
		} else {
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
		}
		prevLineCount = renderedLineCount(lines)
		prev = cur

		if opts.Count != 0 && i == opts.Count-1 {
			break
		}

		remaining := opts.Delay - time.Since(tickStart)
		if remaining <= 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(remaining):
		}
	}

	return nil
}

// repaint moves the cursor back to the top of the previous frame,
// overwrites each line (clearing stale trailing characters), and clears
// anything left over below a frame that shrank.
func repaint(out io.Writer, prevLineCount int, lines []string) {
	if prevLineCount > 0 {
		fmt.Fprintf(out, "\x1b[%dA", prevLineCount)
	}
	for _, line := range lines {
		fmt.Fprintf(out, "%s%s\n", line, clearToEOL)
	}
	fmt.Fprint(out, clearToEOS)
}
