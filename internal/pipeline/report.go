package pipeline

import (
	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"
)

// Report is the full result of one run: hourly inputs, costs, and aggregates.
type Report struct {
	Readings []model.HourlyReading
	Prices   []model.HourlyPrice
	Costs    []float64
	Days     []model.DailyStats
	Summary  model.SummaryStats
}

// Build prices every hour of lr with tariff and aggregates the month.
// The base fee is pro-rated over the month of the first reading.
func Build(lr *LoadResult, tariff config.Tariff) (*Report, error) {
	if lr == nil || len(lr.Readings) == 0 {
		return nil, ErrNoUsage
	}

	costs, err := HourlyCosts(lr.Readings, lr.Prices, tariff)
	if err != nil {
		return nil, err
	}

	fee := tariff.DailyBaseFee(lr.Readings[0].Time)
	days := AggregateDays(lr.Readings, costs, fee)

	return &Report{
		Readings: lr.Readings,
		Prices:   lr.Prices,
		Costs:    costs,
		Days:     days,
		Summary:  Summarize(days, costs, fee),
	}, nil
}
