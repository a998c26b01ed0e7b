package model

import "time"

// HourlyReading is one accepted row of the meter report.
type HourlyReading struct {
	Timestamp string    // "2006-01-02 15:04", as matched against the price chart
	Time      time.Time // wall clock of Timestamp, located in UTC
	KWh       float64
}

// HourlyPrice is the spot price for the hour of the reading at the same index.
type HourlyPrice struct {
	Timestamp string
	Price     float64 // cents/kWh
}

// DailyStats holds metrics for a single calendar day.
type DailyStats struct {
	Date       time.Time
	Label      string // day of month, no leading zero
	Hours      int
	UsageKWh   float64
	EnergyCost float64 // cents, hourly costs only
	Cost       float64 // euros, daily base fee included
}

// SummaryStats holds the monthly totals across all days.
type SummaryStats struct {
	Month time.Time
	Hours int
	Days  int

	TotalUsage      float64 // kWh
	TotalCost       float64 // euros
	TotalEnergyCost float64 // cents, sum of hourly costs
	AveragePrice    float64 // cents/kWh
	DailyBaseFee    float64 // cents

	PeakDay     string
	PeakDayCost float64 // euros
}

// HourOfDayStats holds usage and cost for one hour of the day across the month.
type HourOfDayStats struct {
	Hour       int
	Readings   int
	UsageKWh   float64
	EnergyCost float64 // cents
	PriceSum   float64 // cents/kWh, sum of spot prices for averaging
}

// AveragePrice returns the mean spot price of the hour, or 0 without readings.
func (h HourOfDayStats) AveragePrice() float64 {
	if h.Readings == 0 {
		return 0
	}
	return h.PriceSum / float64(h.Readings)
}
