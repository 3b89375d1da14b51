package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/config"
)

// skipConfig marks commands that run without a config file.
const skipConfig = "skip-config"

var (
	cfgFile     string
	logLevel    string
	jsonOutput  bool
	timeout     time.Duration
	metricsFile string

	cfg      *config.Config
	logger   = zerolog.Nop()
	registry *prometheus.Registry
	metrics  *client.Metrics

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arrcore",
	Short: "Normalized status views across Radarr, Sonarr, Seerr and download clients",
	Long: `arrcore talks to the *arr applications, Jellyseerr/Overseerr, qBittorrent
and NZBGet and reports every queue entry, library item and request with one
canonical status vocabulary.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: writeMetrics,
}

// SetVersion is called from main with values injected at build time.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "override logging.level")
	flags.BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")
	flags.DurationVar(&timeout, "timeout", 60*time.Second, "overall timeout for the command")
	flags.StringVar(&metricsFile, "metrics-file", "", "write request metrics in Prometheus text format to this file")

	rootCmd.AddCommand(normalizeCmd, queueCmd, libraryCmd, requestsCmd, commandCmd, systemCmd, versionCmd, updateCmd)
}

// initializeApp loads the configuration and sets up logging.
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		logger = setupLogger(config.LoggingConfig{Level: orDefault(logLevel, "warn"), Format: "console", Color: true})
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging)

	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		metrics = client.NewMetrics(registry)
	}
	return nil
}

func writeMetrics(cmd *cobra.Command, args []string) error {
	if registry == nil || metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger. Color is only used when
// stderr is a terminal.
func setupLogger(lc config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(lc.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if lc.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !lc.Color || !isTerminal(os.Stderr),
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
