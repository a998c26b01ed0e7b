package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spotbill/internal/model"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.3, "12,30"},
		{5, "5,00"},
		{100.005, "100,01"},
		{0.3855, "0,39"},
		{2.344, "2,34"},
		{-1.005, "-1,01"},
		{0, "0,00"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUsage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.4, "12"},
		{12.6, "13"},
		{12.5, "13"},
		{15, "15"},
		{0.2, "0"},
	}
	for _, tt := range tests {
		if got := FormatUsage(tt.in); got != tt.want {
			t.Errorf("FormatUsage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTitle(t *testing.T) {
	s := model.SummaryStats{
		Month:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalUsage:   15,
		TotalCost:    0.3855,
		AveragePrice: 7.55 / 15,
		PeakDay:      "1",
	}

	got, err := FormatTitle("{{.Usage}} kWh, {{.Cost}} €, {{.AveragePrice}} c/kWh ({{.Month}}, peak {{.PeakDay}})", s)
	if err != nil {
		t.Fatalf("FormatTitle: %v", err)
	}
	want := "15 kWh, 0,39 €, 0,50 c/kWh (2024-01, peak 1)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTitleErrors(t *testing.T) {
	if _, err := FormatTitle("{{.Usage", model.SummaryStats{}); err == nil {
		t.Error("expected parse error")
	}
	if _, err := FormatTitle("{{.Nope}}", model.SummaryStats{}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(12.5, 10); got != "+2,50 €" {
		t.Errorf("got %q", got)
	}
	if got := FormatDelta(10, 12.5); got != "-2,50 €" {
		t.Errorf("got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Day", "Cost"},
		Rows: [][]string{
			{"1", "0,39 €"},
			{"---"},
			{"Total", "12,00 €"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "12,00 €") {
		t.Errorf("missing total row:\n%s", out)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
	}{
		{nil, ""},
		{[]float64{0, 1}, "▁█"},
		{[]float64{0, 0}, "▁▁"},
		{[]float64{-1, 2, 1}, "▁█▄"},
	}
	for _, tt := range tests {
		if got := sparkline(tt.values); got != tt.want {
			t.Errorf("sparkline(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}
