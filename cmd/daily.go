package cmd

import (
	"fmt"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/model"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily usage and cost table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY COST  %s", report.Summary.Month.Format("January 2006"))))
	fmt.Println()
	printDays(report.Days, report.Summary)

	return recordMonth(cfg, report)
}

// printDays writes the daily table with its cost trend and partial-day warnings.
func printDays(days []model.DailyStats, s model.SummaryStats) {
	fmt.Print(cli.RenderTable(cli.DailyTable(days, s)))
	fmt.Println(cli.RenderCostTrend(days))
	for _, note := range cli.RenderPartialDays(days) {
		fmt.Println(note)
	}
	fmt.Println()
}
