package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cuemby/nsqops/pkg/cluster"
	"github.com/cuemby/nsqops/pkg/dashboard"
	"github.com/cuemby/nsqops/pkg/log"
	"github.com/cuemby/nsqops/pkg/model"
	"github.com/cuemby/nsqops/pkg/nsqerr"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a live topic/channel depth dashboard for the cluster",
	Long: `stats polls every broker behind the lookup node on a fixed interval
and redraws a per-topic table of producer depth and channel backlog. At
least one of --topic or --host must be given to scope the dashboard.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Float64("delay", 1, "seconds between polls (minimum 1)")
	statsCmd.Flags().Int("count", 0, "number of frames to render before exiting (0 = run until interrupted)")
	statsCmd.Flags().Bool("hide-hosts", false, "omit the per-host producer table")
	statsCmd.Flags().Bool("hide-zero-depth", false, "omit channels with zero depth")
	statsCmd.Flags().StringArray("topic", nil, "restrict the dashboard to this topic (repeatable)")
	statsCmd.Flags().StringArray("host", nil, "restrict the dashboard to this host (repeatable)")
}

func runStats(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetStringArray("topic")
	hosts, _ := cmd.Flags().GetStringArray("host")
	if len(topics) == 0 && len(hosts) == 0 {
		return nsqerr.New(nsqerr.KindConfig, fmt.Errorf("at least one --topic or --host filter is required"))
	}

	delay, _ := cmd.Flags().GetFloat64("delay")
	if delay < 1 {
		delay = 1
	}
	count, _ := cmd.Flags().GetInt("count")
	hideHosts, _ := cmd.Flags().GetBool("hide-hosts")
	hideZeroDepth, _ := cmd.Flags().GetBool("hide-zero-depth")
	if !cmd.Flags().Changed("hide-hosts") {
		hideHosts = cfg.DefaultHideHosts
	}
	if !cmd.Flags().Changed("hide-zero-depth") {
		hideZeroDepth = cfg.DefaultHideZeroDepth
	}

	runID := newRunID()
	runLog := log.WithRunID(runID)

	shutdownMetrics := serveMetrics(cfg.MetricsAddr, runLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := model.Filter{Hosts: toSet(hosts), Topics: toSet(topics)}
	state, err := cluster.New(ctx, lookupAddr(), filter, runLog)
	if err != nil {
		shutdownMetrics(context.Background())
		return err
	}

	isTerminal := isatty.IsTerminal(os.Stdout.Fd())
	opts := dashboard.Options{
		Delay: time.Duration(delay * float64(time.Second)),
		Count: count,
		Config: dashboard.Config{
			HideHosts:     hideHosts,
			HideZeroDepth: hideZeroDepth,
			Colorize:      isTerminal,
		},
		IsTerminal: isTerminal,
	}

	err = dashboard.Run(ctx, state, opts, os.Stdout)
	shutdownMetrics(context.Background())
	return err
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
