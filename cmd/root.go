package cmd

import (
	"os"
	"time"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/pipeline"
	"github.com/theirongolddev/spotbill/internal/source"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagUsage     string
	flagPrices    string
	flagMargin    float64
	flagBasePrice float64
	flagQuiet     bool
	flagVerbose   bool
	flagSave      bool
)

// log writes progress and diagnostics to stderr; stdout is kept for tables.
var log = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "spotbill",
	Short: "Monthly electricity cost on a spot-priced contract",
	Long: "Compute the month's electricity cost from an hourly meter report and a spot\n" +
		"price chart, and draw daily usage and cost as a chart.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE:              runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	pf.StringVar(&flagUsage, "usage", "", "Hourly usage report (UTF-16LE CSV)")
	pf.StringVar(&flagPrices, "prices", "", "Hourly spot price chart (CSV)")
	pf.Float64Var(&flagMargin, "margin", 0, "Margin added to the spot price, c/kWh")
	pf.Float64Var(&flagBasePrice, "base-price", 0, "Monthly base price, cents")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every skipped report row")
	pf.BoolVar(&flagSave, "save", false, "Store this month in the history database")
}

func setupLogger(_ *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	switch {
	case flagQuiet:
		level = zerolog.Disabled
	case flagVerbose:
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("usage") {
		cfg.Files.UsageReport = flagUsage
	}
	if flags.Changed("prices") {
		cfg.Files.PriceChart = flagPrices
	}
	if flags.Changed("margin") {
		cfg.Contract.MarginCents = flagMargin
	}
	if flags.Changed("base-price") {
		cfg.Contract.BasePriceCents = flagBasePrice
	}
	if flags.Changed("save") {
		cfg.History.Enabled = flagSave
	}

	return cfg, cfg.Validate()
}

// buildReport is the shared load-and-price path used by all report commands.
func buildReport(cfg config.Config) (*pipeline.Report, error) {
	log.Debug().
		Str("usage", cfg.Files.UsageReport).
		Str("prices", cfg.Files.PriceChart).
		Msg("loading")

	lr, err := pipeline.Load(pipeline.Inputs{
		UsagePath:     cfg.Files.UsageReport,
		UsageEncoding: cfg.Files.UsageEncoding,
		PricePath:     cfg.Files.PriceChart,
		PriceEncoding: cfg.Files.PriceEncoding,
	})
	if err != nil {
		return nil, err
	}
	logSkipped(lr.Skipped)

	report, err := pipeline.Build(lr, cfg.Tariff())
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("hours", len(report.Readings)).
		Int("days", len(report.Days)).
		Int("skipped", len(lr.Skipped)).
		Msg("loaded usage and prices")
	return report, nil
}

// recordMonth stores the report in history once the command's output has
// been produced. A failed run never leaves a history row behind.
func recordMonth(cfg config.Config, report *pipeline.Report) error {
	if !cfg.History.Enabled {
		return nil
	}
	return saveHistory(cfg, report)
}

func logSkipped(skipped []source.RowResult) {
	counts := source.UsageResult{Skipped: skipped}.SkipCounts()
	for _, rr := range skipped {
		log.Debug().Int("line", rr.Line).Stringer("reason", rr.Status).Msg("skipped report row")
	}
	if n := counts[source.RowBadTimestamp]; n > 0 {
		log.Warn().Int("rows", n).Msg("report rows with usage but no readable hour were ignored")
	}
	for status, n := range counts {
		if status == source.RowBadTimestamp {
			continue
		}
		log.Debug().Int("rows", n).Stringer("reason", status).Msg("skipped rows")
	}
}
