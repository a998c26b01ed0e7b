package cli

import (
	"fmt"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"
)

const dateLayout = "2006-01-02"

// DailyTable lays out one row per day followed by the month total.
func DailyTable(days []model.DailyStats, s model.SummaryStats) Table {
	rows := make([][]string, 0, len(days)+2)
	for _, d := range days {
		rows = append(rows, []string{
			d.Date.Format(dateLayout),
			FormatDayOfWeek(int(d.Date.Weekday())),
			fmt.Sprintf("%d", d.Hours),
			FormatPrice(d.UsageKWh),
			FormatPrice(config.ToEuros(d.EnergyCost)),
			FormatPrice(d.Cost),
		})
	}
	rows = append(rows, Separator, []string{
		"Total", "",
		fmt.Sprintf("%d", s.Hours),
		FormatPrice(s.TotalUsage),
		FormatPrice(config.ToEuros(s.TotalEnergyCost)),
		FormatPrice(s.TotalCost),
	})
	return Table{
		Headers: []string{"Date", "Day", "Hours", "kWh", "Energy €", "Total €"},
		Rows:    rows,
	}
}

// RenderCostTrend renders a sparkline of the daily costs with their range.
func RenderCostTrend(days []model.DailyStats) string {
	if len(days) == 0 {
		return ""
	}
	costs := make([]float64, len(days))
	lo, hi := days[0].Cost, days[0].Cost
	for i, d := range days {
		costs[i] = d.Cost
		lo, hi = min(lo, d.Cost), max(hi, d.Cost)
	}
	return RenderNote(fmt.Sprintf("cost  %s  %s to %s", sparkline(costs), FormatPrice(lo), FormatEuros(hi)), false)
}

// RenderPartialDays warns about every day with fewer than 24 readings.
func RenderPartialDays(days []model.DailyStats) []string {
	var notes []string
	for _, d := range days {
		if d.Hours < 24 {
			notes = append(notes, RenderNote(fmt.Sprintf("%s has %d of 24 hours", d.Date.Format(dateLayout), d.Hours), true))
		}
	}
	return notes
}
