package dashboard

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/cuemby/nsqops/pkg/model"
)

// Config controls what the renderer shows.
type Config struct {
	HideHosts     bool
	HideZeroDepth bool
	// Colorize enables fatih/color output; disabled when stdout isn't a
	// terminal so piped/log output stays plain text.
	Colorize bool
}

var (
	boldHeader = color.New(color.Bold)
	dimLabel   = color.New(color.FgHiBlack)
)

// render builds this frame's lines from cur (and, after the first tick,
// prev) snapshots. It never touches the terminal — Run owns cursor
// movement and screen clearing — so it can be unit tested directly.
func render(prev, cur *model.Snapshot, cfg Config, tracker *rateTracker) []string {
	var lines []string
	deltaSeconds := 0.0
	if prev != nil {
		deltaSeconds = cur.PullFinished.Sub(prev.PullFinished).Seconds()
	}

	for _, topicName := range cur.SortedTopicNames() {
		topic := cur.Topics[topicName]
		lines = append(lines, sectionHeader(cfg, topicName))

		if !cfg.HideHosts {
			lines = append(lines, renderHostTable(prev, topic, deltaSeconds, tracker, cfg)...)
		}

		channelLines := renderChannelTable(prev, topic, deltaSeconds, tracker, cfg)
		if len(channelLines) > 0 {
			lines = append(lines, channelLines...)
		}

		lines = append(lines, "")
	}

	return lines
}

func sectionHeader(cfg Config, name string) string {
	if cfg.Colorize {
		return boldHeader.Sprintf("== %s ==", name)
	}
	return fmt.Sprintf("== %s ==", name)
}

func renderHostTable(prev *model.Snapshot, topic *model.TopicSnapshot, deltaSeconds float64, tracker *rateTracker, cfg Config) []string {
	var lines []string
	lines = append(lines, label(cfg, "Host | Depth | Message Count"))

	var totalDepth, totalMsg uint64
	for _, host := range topic.SortedProducerHosts() {
		p := topic.Producers[host]
		lines = append(lines, fmt.Sprintf("  %-20s | %8d | %12d", host, p.Depth, p.MessageCount))
		totalDepth += p.Depth
		totalMsg += p.MessageCount
	}
	lines = append(lines, fmt.Sprintf("  %-20s | %8d | %12d", "Total", totalDepth, totalMsg))

	if prev != nil {
		if prevTopic, ok := prev.Topics[topic.Name]; ok {
			prevTotal := prevTopic.ProducerTotal()
			change := int64(totalMsg) - int64(prevTotal.MessageCount)
			r := rate(prevTotal.MessageCount, totalMsg, deltaSeconds)
			smoothed := tracker.observe("topic:"+topic.Name, r)
			lines = append(lines, fmt.Sprintf("  Change: %+d", change))
			lines = append(lines, fmt.Sprintf("  Rate: %.2f m/s", smoothed))
		}
	}

	return lines
}

func renderChannelTable(prev *model.Snapshot, topic *model.TopicSnapshot, deltaSeconds float64, tracker *rateTracker, cfg Config) []string {
	names := topic.SortedChannelNames()
	if len(names) == 0 {
		return nil
	}

	anyNonZero := false
	for _, name := range names {
		if topic.Consumers[name].Depth > 0 {
			anyNonZero = true
			break
		}
	}
	if cfg.HideZeroDepth && !anyNonZero {
		return nil
	}

	var lines []string
	lines = append(lines, label(cfg, "Channel | Depth | Depth Change | In Flight | Total Messages"))

	var prevTopic *model.TopicSnapshot
	if prev != nil {
		prevTopic = prev.Topics[topic.Name]
	}

	for _, name := range names {
		c := topic.Consumers[name]
		if cfg.HideZeroDepth && c.Depth == 0 {
			continue
		}

		depthChange := "n/a"
		if prevTopic != nil {
			if prevChan, ok := prevTopic.Consumers[name]; ok {
				delta := int64(c.Depth) - int64(prevChan.Depth)
				// Depth rises and falls, unlike a monotonic counter, so this
				// rate is signed and skips rate()'s wrap-clamp -- a falling
				// depth is a legitimate negative number here, not a reset.
				instantaneous := float64(delta) / deltaSeconds
				smoothed := tracker.observe("channel:"+topic.Name+":"+name, instantaneous)
				depthChange = fmt.Sprintf("%+d (%.2f m/s)", delta, smoothed)
			}
		}

		lines = append(lines, fmt.Sprintf("  %-20s | %8d | %-20s | %9d | %14d",
			name, c.Depth, depthChange, c.InProgress, c.FinishCount))
	}

	return lines
}

func label(cfg Config, text string) string {
	if cfg.Colorize {
		return dimLabel.Sprint(text)
	}
	return text
}

// renderedLineCount is a tiny helper kept separate from render so Run
// can compute next-frame cursor math without re-rendering.
func renderedLineCount(lines []string) int { return len(lines) }
