package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/apresai/speak/internal/config"
	"github.com/apresai/speak/internal/observability"
	"github.com/apresai/speak/internal/synth"
)

var Version = "dev"

// skipConfig marks commands that must work without a readable config file.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "speak",
	Short: "Speak text or SSML with a cloud text-to-speech service",
	Long: `speak sends text or SSML to a speech synthesis service and writes the
audio to a file or plays it on the default output device.

Running speak without a subcommand is the same as "speak text".`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runText,
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "speak %s\n", Version)
	},
}

var (
	flagConfig    string
	flagEndpoint  string
	flagRegion    string
	flagKey       string
	flagProvider  string
	flagVerbose   int
	flagLogFormat string
)

// settings is the merged configuration for the running command.
var settings = config.Default()

var tracerProvider *sdktrace.TracerProvider

func init() {
	rootCmd.AddCommand(versionCmd)
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/speak/config.yaml)")
	pf.StringVar(&flagEndpoint, "endpoint", "", "Speech service endpoint host or URL (azure)")
	pf.StringVar(&flagRegion, "region", "", "Cloud region (polly, S3 and Secrets Manager)")
	pf.StringVar(&flagKey, "key", "", "Subscription key, or secretsmanager:<secret-id>")
	pf.StringVar(&flagProvider, "provider", "", "Synthesis provider: "+strings.Join(synth.Providers, ", "))
	pf.CountVar(&flagVerbose, "verbose", "Log more detail (repeat for debug)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}

func Execute() error {
	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)
	if tracerProvider != nil {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if serr := tracerProvider.Shutdown(sctx); serr != nil {
			slog.Warn("Failed to flush traces", "error", serr)
		}
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] != "" {
		initLogging(settings.Log)
		return nil
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	settings = cfg
	initLogging(cfg.Log)

	if observability.TracingEnabled() && tracerProvider == nil {
		tp, err := observability.InitTracer(cmd.Context(), "speak", Version)
		if err != nil {
			slog.Warn("Tracing disabled", "error", err)
		} else {
			tracerProvider = tp
		}
	}
	slog.Debug("Loaded configuration", "provider", cfg.Provider, "endpoint", cfg.Endpoint, "region", cfg.Region)
	return nil
}

func initLogging(lc config.LogConfig) {
	level, err := observability.ParseLevel(lc.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	logFormat := lc.Format
	if flagLogFormat != "" {
		logFormat = flagLogFormat
	}
	observability.InitLogger(observability.LogOptions{
		Level:  observability.VerbosityLevel(level, flagVerbose),
		Format: logFormat,
	})
}

// loadConfig layers command-line flags over the file and environment.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("endpoint") {
		cfg.Endpoint = flagEndpoint
	}
	if flags.Changed("region") {
		cfg.Region = flagRegion
	}
	if flags.Changed("key") {
		cfg.Key = flagKey
	}
	if flags.Changed("provider") {
		cfg.Provider = flagProvider
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
	return cfg, cfg.Validate()
}

// resolvedKey returns the configured key, fetching it first when it names
// a secret.
func resolvedKey(ctx context.Context) (string, error) {
	return config.ResolveKey(ctx, settings.Key, settings.Region, nil)
}
