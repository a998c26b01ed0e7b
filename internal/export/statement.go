// Package export writes the monthly statement as PDF or XLSX.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Format is a statement file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "pdf" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want pdf or xlsx)", s)
}

// Statement is everything printed on a monthly statement.
type Statement struct {
	Title   string
	Tariff  config.Tariff
	Summary model.SummaryStats
	Days    []model.DailyStats
}

// Build renders st in format f.
func Build(f Format, st Statement) ([]byte, error) {
	switch f {
	case FormatPDF:
		return BuildPDF(st)
	case FormatXLSX:
		return BuildXLSX(st)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// Write renders st in format f and writes it to path.
func Write(path string, f Format, st Statement) (int, error) {
	data, err := Build(f, st)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // statements are not secret
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(data), nil
}

func monthLabel(s model.SummaryStats) string {
	if s.Month.IsZero() {
		return "-"
	}
	return s.Month.Format("2006-01")
}

// BuildPDF renders a one-page A4 statement with the daily table.
func BuildPDF(st Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Electricity Statement "+monthLabel(st.Summary)))
	pdf.Ln(10)
	if st.Title != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(st.Title), "", "L", false)
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		"Total usage: " + cli.FormatKWh(st.Summary.TotalUsage),
		"Total cost: " + cli.FormatEuros(st.Summary.TotalCost),
		"Energy cost: " + cli.FormatEuros(config.ToEuros(st.Summary.TotalEnergyCost)),
		"Average price: " + cli.FormatCents(st.Summary.AveragePrice),
		"Margin: " + cli.FormatCents(st.Tariff.MarginCents),
		"Base price: " + cli.FormatEuros(config.ToEuros(st.Tariff.BasePriceCents)) + " / month",
		fmt.Sprintf("Days: %d, hours: %d", st.Summary.Days, st.Summary.Hours),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, tr(l))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Usage (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, tr("Energy (€)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, tr("Total (€)"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, d := range st.Days {
		pdf.CellFormat(30, 6, d.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", d.Hours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, cli.FormatPrice(d.UsageKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, cli.FormatPrice(config.ToEuros(d.EnergyCost)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, cli.FormatPrice(d.Cost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders a workbook with a summary sheet and a daily sheet.
// Numbers are stored as numbers so the sheet can be summed.
func BuildXLSX(st Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "summary"
	daysSheet := "days"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(daysSheet); err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	s := st.Summary
	summary := [][2]any{
		{"Electricity Statement", monthLabel(s)},
		{"Title", st.Title},
		{"Total usage (kWh)", s.TotalUsage},
		{"Total cost (EUR)", s.TotalCost},
		{"Energy cost (EUR)", config.ToEuros(s.TotalEnergyCost)},
		{"Average price (c/kWh)", s.AveragePrice},
		{"Margin (c/kWh)", st.Tariff.MarginCents},
		{"Base price (c/month)", st.Tariff.BasePriceCents},
		{"Daily base fee (c)", s.DailyBaseFee},
		{"Days", s.Days},
		{"Hours", s.Hours},
		{"Peak day", s.PeakDay},
	}
	for i, row := range summary {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	headers := []string{"Day", "Hours", "Usage (kWh)", "Energy (EUR)", "Total (EUR)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(daysSheet, cell, h)
	}
	for i, d := range st.Days {
		row := i + 2
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("A%d", row), d.Date.Format("2006-01-02"))
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("B%d", row), d.Hours)
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("C%d", row), d.UsageKWh)
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("D%d", row), config.ToEuros(d.EnergyCost))
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("E%d", row), d.Cost)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("rendering xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
