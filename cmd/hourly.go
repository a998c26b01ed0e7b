package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/pipeline"

	"github.com/spf13/cobra"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Usage and price by hour of day",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg)
	if err != nil {
		return err
	}

	hours := pipeline.AggregateHourly(report.Readings, report.Prices, report.Costs)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("USAGE BY HOUR  %s", report.Summary.Month.Format("January 2006"))))
	fmt.Println()

	// Find max for bar scaling
	var maxUsage float64
	for _, h := range hours {
		if h.UsageKWh > maxUsage {
			maxUsage = h.UsageKWh
		}
	}

	maxBarWidth := 40
	for _, h := range hours {
		barLen := 0
		if maxUsage > 0 {
			barLen = int(h.UsageKWh / maxUsage * float64(maxBarWidth))
		}
		bar := strings.Repeat("█", barLen)

		fmt.Printf("  %02d:00 │ %7s kWh │ %6s c │ %7s € │ %s\n",
			h.Hour,
			cli.FormatPrice(h.UsageKWh),
			cli.FormatPrice(h.AveragePrice()),
			cli.FormatPrice(config.ToEuros(h.EnergyCost)),
			bar,
		)
	}

	// Find peak hour
	peakHour := 0
	for _, h := range hours {
		if h.UsageKWh > hours[peakHour].UsageKWh {
			peakHour = h.Hour
		}
	}
	fmt.Printf("\n  Peak: %02d:00 (%s kWh, average %s)\n\n",
		peakHour,
		cli.FormatPrice(hours[peakHour].UsageKWh),
		cli.FormatCents(hours[peakHour].AveragePrice()))

	return recordMonth(cfg, report)
}
