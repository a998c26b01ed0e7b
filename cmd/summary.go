package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly usage and cost summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg)
	if err != nil {
		return err
	}
	s := report.Summary

	title, err := cli.FormatTitle(cfg.Chart.Title, s)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ELECTRICITY  %s", s.Month.Format("January 2006"))))
	fmt.Println()

	rows := [][]string{
		{"Days", fmt.Sprintf("%d", s.Days)},
		{"Hours", cli.FormatNumber(int64(s.Hours))},
		{"Usage", cli.FormatKWh(s.TotalUsage)},
		{"---"},
		{"Energy cost", cli.FormatEuros(config.ToEuros(s.TotalEnergyCost))},
		{"Base fee", cli.FormatEuros(config.ToEuros(s.DailyBaseFee * float64(s.Days)))},
		{"Total cost", cli.FormatEuros(s.TotalCost)},
		{"---"},
		{"Average price", cli.FormatCents(s.AveragePrice)},
		{"Margin", cli.FormatCents(cfg.Contract.MarginCents)},
		{"Daily base fee", cli.FormatPrice(s.DailyBaseFee) + " c"},
		{"Peak day", fmt.Sprintf("%s (%s)", s.PeakDay, cli.FormatEuros(s.PeakDayCost))},
	}

	if prev, ok := previousMonth(cfg, s.Month); ok && prev > 0 {
		rows = append(rows, []string{"vs previous month", cli.FormatDelta(s.TotalCost, prev)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println(cli.RenderNote(title, false))
	fmt.Println()

	return recordMonth(cfg, report)
}

// previousMonth returns the stored total cost of the month before month,
// when history is enabled and has it.
func previousMonth(cfg config.Config, month time.Time) (float64, bool) {
	if !cfg.History.Enabled {
		return 0, false
	}
	h, err := store.Open(cfg.HistoryPath())
	if err != nil {
		log.Debug().Err(err).Msg("history unavailable")
		return 0, false
	}
	defer func() { _ = h.Close() }()

	rec, err := h.Get(month.AddDate(0, -1, 0))
	if err != nil {
		return 0, false
	}
	return rec.Summary.TotalCost, true
}
