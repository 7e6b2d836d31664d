package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cuemby/nsqops/pkg/cluster"
	"github.com/cuemby/nsqops/pkg/log"
	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/publisher"
)

var sendCmd = &cobra.Command{
	Use:   "send TOPIC INPUT",
	Short: "Publish a line-delimited file to a topic at a bounded rate",
	Long: `send reads INPUT (plain text, gzip-compressed, or "-" for
standard input) one line per message and posts each to TOPIC through a
pool of publisher workers, throttled by --rate and, if --max-depth is
set, paused whenever the topic's observed depth is at or above it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().Float64("rate", 200, "messages per second (fractional allowed)")
	sendCmd.Flags().Int("offset", 0, "number of leading lines to skip (still counted)")
	sendCmd.Flags().Int("limit", 0, "maximum number of lines to send (0 = all)")
	sendCmd.Flags().Int("max-depth", 0, "pause sending while observed topic depth is >= this value (0 = disabled, max 1000)")
	sendCmd.Flags().BoolP("yes", "y", false, "skip the interactive confirmation prompt")
}

func runSend(cmd *cobra.Command, args []string) error {
	topic, inputPath := args[0], args[1]
	rate, _ := cmd.Flags().GetFloat64("rate")
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	assumeYes, _ := cmd.Flags().GetBool("yes")

	runID := newRunID()
	runLog := log.WithRunID(runID).With().Str("topic", topic).Logger()

	shutdownMetrics := serveMetrics(cfg.MetricsAddr, runLog)
	defer shutdownMetrics(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := model.Filter{Topics: map[string]struct{}{topic: {}}}
	state, err := cluster.New(ctx, lookupAddr(), filter, runLog)
	if err != nil {
		return err
	}

	opts := publisher.Options{
		InputPath:  inputPath,
		Topic:      topic,
		Rate:       rate,
		Offset:     offset,
		Limit:      limit,
		MaxDepth:   maxDepth,
		AssumeYes:  assumeYes,
		IsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	}

	report, err := publisher.Run(ctx, state, opts, runLog)
	if err != nil {
		return err
	}

	runLog.Info().
		Int64("sent", report.Sent).
		Int64("errors", report.Errors).
		Int64("offset_skipped", report.OffsetSkipped).
		Msg("send complete")
	return nil
}
