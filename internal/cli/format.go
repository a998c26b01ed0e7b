// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/theirongolddev/spotbill/internal/model"

	"github.com/shopspring/decimal"
)

// FormatPrice rounds v to two decimals, half away from zero, and writes it
// with a decimal comma: 12.3 -> "12,30", 100.005 -> "100,01".
//
// Rounding works on the shortest decimal form of v, so values that print as
// an exact half are rounded up even when their binary form is slightly below.
func FormatPrice(v float64) string {
	return decimalComma(decimal.NewFromFloat(v).StringFixed(2))
}

// FormatUsage rounds v to a whole number, half away from zero: 12.6 -> "13".
func FormatUsage(v float64) string {
	return decimalComma(decimal.NewFromFloat(v).StringFixed(0))
}

// FormatEuros formats a euro amount, e.g. 12.3 -> "12,30 €".
func FormatEuros(v float64) string {
	return FormatPrice(v) + " €"
}

// FormatCents formats a per-kWh price in cents, e.g. 8.5 -> "8,50 c/kWh".
func FormatCents(v float64) string {
	return FormatPrice(v) + " c/kWh"
}

// FormatKWh formats an energy amount with two decimals.
func FormatKWh(v float64) string {
	return FormatPrice(v) + " kWh"
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}

// TitleData is the data passed to the title template.
type TitleData struct {
	Usage        string
	Cost         string
	AveragePrice string
	Month        string
	PeakDay      string
}

// FormatTitle renders the summary sentence from tmpl.
// Available fields: .Usage, .Cost, .AveragePrice, .Month, .PeakDay.
func FormatTitle(tmpl string, s model.SummaryStats) (string, error) {
	t, err := template.New("title").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing title template: %w", err)
	}

	data := TitleData{
		Usage:        FormatUsage(s.TotalUsage),
		Cost:         FormatPrice(s.TotalCost),
		AveragePrice: FormatPrice(s.AveragePrice),
		PeakDay:      s.PeakDay,
	}
	if !s.Month.IsZero() {
		data.Month = s.Month.Format("2006-01")
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering title: %w", err)
	}
	return b.String(), nil
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDelta formats a euro difference with its sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatEuros(delta)
	}
	return "-" + FormatEuros(-delta)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
