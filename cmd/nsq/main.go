package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/nsqops/pkg/config"
	"github.com/cuemby/nsqops/pkg/log"
	"github.com/cuemby/nsqops/pkg/nsqerr"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(nsqerr.ExitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "nsq",
	Short: "nsq - NSQ cluster operations toolkit",
	Long: `nsq discovers an NSQ cluster behind a lookup node and gives
operators two things: a live terminal dashboard of topic/channel depth
across every broker, and a rate-limited bulk publisher for replaying
messages onto a topic.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nsq version %s (%s)\n", Version, Commit))

	rootCmd.PersistentFlags().CountP("debug", "d", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolP("warn", "w", false, "log at warn level only")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "log at error level only")
	rootCmd.PersistentFlags().Bool("log-json", false, "output logs as JSON")
	rootCmd.PersistentFlags().String("lookup-host", "", "lookup node host (overrides config)")
	rootCmd.PersistentFlags().Int("lookup-port", 0, "lookup node HTTP port (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "path to config file (default ~/.config/nsq/config.yaml)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9191 (disabled if empty)")

	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sendCmd)
}

func initConfig() {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	loaded, err := config.Load(path, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(nsqerr.ExitCode(nsqerr.New(nsqerr.KindConfig, err)))
	}
	cfg = loaded

	if host, _ := rootCmd.PersistentFlags().GetString("lookup-host"); host != "" {
		cfg.LookupHost = host
	}
	if port, _ := rootCmd.PersistentFlags().GetInt("lookup-port"); port != 0 {
		cfg.LookupPort = port
	}
	if addr, _ := rootCmd.PersistentFlags().GetString("metrics-addr"); addr != "" {
		cfg.MetricsAddr = addr
	}
}

func initLogging() {
	debugCount, _ := rootCmd.PersistentFlags().GetCount("debug")
	warn, _ := rootCmd.PersistentFlags().GetBool("warn")
	quiet, _ := rootCmd.PersistentFlags().GetBool("quiet")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.LevelFromVerbosity(debugCount, warn, quiet),
		JSONOutput: logJSON,
	})
}

func lookupAddr() string {
	return fmt.Sprintf("%s:%d", cfg.LookupHost, cfg.LookupPort)
}
