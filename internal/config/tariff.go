package config

import "time"

// CentsPerEuro converts the cent amounts of the price chart and the contract
// into euros. Every conversion goes through ToEuros.
const CentsPerEuro = 100.0

// Tariff holds the contract terms on top of the hourly spot price.
// All amounts are in cents: MarginCents per kWh, BasePriceCents per month.
type Tariff struct {
	MarginCents    float64
	BasePriceCents float64
}

// HourlyCost returns the cost in cents of kwh consumed at spot price priceCents.
func (t Tariff) HourlyCost(kwh, priceCents float64) float64 {
	return kwh * (priceCents + t.MarginCents)
}

// DailyBaseFee returns the base price pro-rated to one day of the month
// containing at.
func (t Tariff) DailyBaseFee(at time.Time) float64 {
	return t.BasePriceCents / float64(DaysInMonth(at))
}

// DaysInMonth returns the number of days in the calendar month containing at,
// measured as the span from its first day to the first day of the next month.
func DaysInMonth(at time.Time) int {
	first := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	return int(next.Sub(first).Hours() / 24)
}

// ToEuros converts a cent amount to euros.
func ToEuros(cents float64) float64 {
	return cents / CentsPerEuro
}
