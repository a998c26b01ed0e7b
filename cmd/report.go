package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/spotbill/internal/chart"
	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/pipeline"
	"github.com/theirongolddev/spotbill/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the usage and cost chart (default command)",
	RunE:  runReport,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, reportCmd} {
		c.Flags().StringVarP(&flagOut, "out", "o", "", "Chart image path (default from config)")
	}
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out") {
		cfg.Files.Chart = flagOut
	}

	report, err := buildReport(cfg)
	if err != nil {
		return err
	}

	title, err := cli.FormatTitle(cfg.Chart.Title, report.Summary)
	if err != nil {
		return err
	}

	if err := chart.Save(cfg.Files.Chart, report.Days, chartOptions(cfg, title)); err != nil {
		return fmt.Errorf("drawing chart: %w", err)
	}

	ev := log.Info().Str("path", cfg.Files.Chart)
	if fi, err := os.Stat(cfg.Files.Chart); err == nil {
		ev = ev.Str("size", humanize.Bytes(uint64(fi.Size())))
	}
	ev.Msg("chart written")

	if err := recordMonth(cfg, report); err != nil {
		return err
	}
	fmt.Println(title)
	return nil
}

func chartOptions(cfg config.Config, title string) chart.Options {
	c := cfg.Chart
	return chart.Options{
		WidthPx:     c.WidthPx,
		HeightPx:    c.HeightPx,
		DPI:         c.DPI,
		Title:       title,
		UsageLegend: c.UsageLegend,
		CostLegend:  c.CostLegend,
		XLabel:      c.XLabel,
		UsageLabel:  c.UsageLabel,
		CostLabel:   c.CostLabel,
	}
}

// saveHistory stores the month's summary and days in the history database.
func saveHistory(cfg config.Config, report *pipeline.Report) error {
	h, err := store.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	src, err := store.StatSource(cfg.Files.UsageReport)
	if err != nil {
		return fmt.Errorf("reading usage report info: %w", err)
	}
	month := report.Summary.Month
	rec := store.Record{
		Summary:        report.Summary,
		MarginCents:    cfg.Contract.MarginCents,
		BasePriceCents: cfg.Contract.BasePriceCents,
		Source:         src,
		GeneratedAt:    time.Now(),
	}
	same, err := h.Unchanged(rec)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if same {
		log.Debug().Str("month", month.Format("2006-01")).Msg("history already up to date")
		return nil
	}
	if err := h.Save(rec, report.Days); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	log.Info().
		Str("month", month.Format("2006-01")).
		Str("db", cfg.HistoryPath()).
		Msg("saved to history")
	return nil
}
