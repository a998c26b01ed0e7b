package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"

	"github.com/xuri/excelize/v2"
)

func sampleStatement() Statement {
	month := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days := []model.DailyStats{
		{Date: month, Label: "1", Hours: 24, UsageKWh: 12.5, EnergyCost: 95, Cost: 1.0629},
		{Date: month.AddDate(0, 0, 1), Label: "2", Hours: 24, UsageKWh: 9.75, EnergyCost: 70, Cost: 0.8129},
	}
	return Statement{
		Title:  "Electricity usage and cost, month to date 22 kWh and 1,88 €",
		Tariff: config.Tariff{MarginCents: 0.37, BasePriceCents: 350},
		Summary: model.SummaryStats{
			Month:           month,
			Days:            2,
			Hours:           48,
			TotalUsage:      22.25,
			TotalCost:       1.8758,
			TotalEnergyCost: 165,
			AveragePrice:    165 / 22.25,
			DailyBaseFee:    350.0 / 31,
			PeakDay:         "1",
		},
		Days: days,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{" XLSX ", FormatXLSX, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestBuildPDF(t *testing.T) {
	data, err := BuildPDF(sampleStatement())
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestBuildXLSX(t *testing.T) {
	data, err := BuildXLSX(sampleStatement())
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	defer f.Close()

	month, err := f.GetCellValue("summary", "B1")
	if err != nil || month != "2024-01" {
		t.Errorf("summary B1 = %q, %v; want 2024-01", month, err)
	}

	rows, err := f.GetRows("days")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("days sheet has %d rows, want 3", len(rows))
	}
	if rows[1][0] != "2024-01-01" || rows[2][2] != "9.75" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	n, err := Write(path, FormatXLSX, sampleStatement())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if int64(n) != info.Size() {
		t.Errorf("reported %d bytes, file has %d", n, info.Size())
	}
}
