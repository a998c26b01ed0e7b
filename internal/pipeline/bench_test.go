package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"
	"github.com/theirongolddev/spotbill/internal/source"
)

// monthOfHours returns a full 31-day month of readings and prices.
func monthOfHours() ([]model.HourlyReading, []model.HourlyPrice) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]model.HourlyReading, 0, 31*24)
	prices := make([]model.HourlyPrice, 0, 31*24)
	for h := 0; h < 31*24; h++ {
		at := start.Add(time.Duration(h) * time.Hour)
		ts := at.Format(source.TimestampLayout)
		readings = append(readings, model.HourlyReading{Timestamp: ts, Time: at, KWh: 0.4 + float64(h%7)/10})
		prices = append(prices, model.HourlyPrice{Timestamp: ts, Price: float64(h%24) / 2})
	}
	return readings, prices
}

func BenchmarkHourlyCosts(b *testing.B) {
	readings, prices := monthOfHours()
	tariff := config.Tariff{MarginCents: 0.37, BasePriceCents: 350}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := HourlyCosts(readings, prices, tariff); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	readings, prices := monthOfHours()
	lr := &LoadResult{Readings: readings, Prices: prices}
	tariff := config.Tariff{MarginCents: 0.37, BasePriceCents: 350}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := Build(lr, tariff)
		if err != nil {
			b.Fatal(err)
		}
		if len(r.Days) != 31 {
			b.Fatalf("got %d days", len(r.Days))
		}
	}
}
