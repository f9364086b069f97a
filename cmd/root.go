package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"f1calendar/calendar"
	"f1calendar/config"
	"f1calendar/pipeline"
	"f1calendar/season"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	seasonFlag string
)

// Root is the f1calendar command.
var Root = &cobra.Command{
	Use:           "f1calendar",
	Short:         "Turn the F1 race schedule into an iCalendar file",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
}

func setupLogging(level, format string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(err, "invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: l}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid --log-format %q, want text or json", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig reads the config file and applies flags that were set explicitly.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("season") {
		cfg.Season = seasonFlag
	}
	return cfg, nil
}

func newGenerator(cfg config.Config, output string) *pipeline.Generator {
	policy := calendar.PolicyStrict
	if cfg.SkipInvalidRaces {
		policy = calendar.PolicySkip
	}
	return &pipeline.Generator{
		Fetcher:      season.NewClient(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.Timeout),
		Output:       output,
		Season:       cfg.Season,
		CalendarName: cfg.CalendarName,
		Policy:       policy,
	}
}

func init() {
	flags := Root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVar(&seasonFlag, "season", "", "Season to fetch, defaults to the current UTC year")

	if len(commit) > 8 {
		version = fmt.Sprintf("%v, commit %v, built at %v", version, commit[0:8], date)
	}
	Root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of f1calendar",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	Root.AddCommand(Generate, Serve)
}
