// Package pipeline turns aligned hourly usage and prices into daily and monthly figures.
package pipeline

import (
	"strconv"
	"time"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"
)

// AggregateDays groups consecutive readings of the same calendar date.
//
// Readings are expected in chronological order; a date that reappears later
// starts a new group. dailyBaseFee (cents) is added once to each day's cost,
// and the result is converted to euros.
func AggregateDays(readings []model.HourlyReading, costs []float64, dailyBaseFee float64) []model.DailyStats {
	var days []model.DailyStats

	for i := 0; i < len(readings); {
		date := readings[i].Time
		day := model.DailyStats{
			Date:  truncateDay(date),
			Label: strconv.Itoa(date.Day()),
		}

		for i < len(readings) && sameDay(readings[i].Time, date) {
			day.Hours++
			day.UsageKWh += readings[i].KWh
			day.EnergyCost += costs[i]
			i++
		}

		day.Cost = config.ToEuros(day.EnergyCost + dailyBaseFee)
		days = append(days, day)
	}

	return days
}

// Summarize computes the monthly totals. costs are the hourly costs in cents
// that produced days.
func Summarize(days []model.DailyStats, costs []float64, dailyBaseFee float64) model.SummaryStats {
	stats := model.SummaryStats{
		Days:         len(days),
		Hours:        len(costs),
		DailyBaseFee: dailyBaseFee,
	}
	if len(days) > 0 {
		stats.Month = days[0].Date.AddDate(0, 0, 1-days[0].Date.Day())
	}

	for _, d := range days {
		stats.TotalUsage += d.UsageKWh
		stats.TotalCost += d.Cost
		if d.Cost > stats.PeakDayCost {
			stats.PeakDayCost = d.Cost
			stats.PeakDay = d.Label
		}
	}
	for _, c := range costs {
		stats.TotalEnergyCost += c
	}

	if stats.TotalUsage > 0 {
		stats.AveragePrice = stats.TotalEnergyCost / stats.TotalUsage
	}

	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AggregateHourly buckets readings by hour of day (0-23).
func AggregateHourly(readings []model.HourlyReading, prices []model.HourlyPrice, costs []float64) []model.HourOfDayStats {
	hours := make([]model.HourOfDayStats, 24)
	for i := range hours {
		hours[i].Hour = i
	}

	for i, r := range readings {
		h := &hours[r.Time.Hour()]
		h.Readings++
		h.UsageKWh += r.KWh
		if i < len(costs) {
			h.EnergyCost += costs[i]
		}
		if i < len(prices) {
			h.PriceSum += prices[i].Price
		}
	}

	return hours
}
