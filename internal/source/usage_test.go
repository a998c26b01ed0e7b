package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// writeReport creates a UTF-16LE meter report and returns its path.
func writeReport(t *testing.T, lines ...string) string {
	t.Helper()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	data, err := enc.String(strings.Join(lines, "\r\n") + "\r\n")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUsage_UTF16Report(t *testing.T) {
	path := writeReport(t,
		"\ufeffKäyttöpaikka;123456;",
		"Ajanjakso;01.01.2024 - 31.01.2024;",
		"",
		"Aika;Tyyppi;Kulutus (kWh)",
		"2024-01-01 00;Mitattu;1,25",
		"2024-01-01 01;Mitattu;0,75",
		"2024-01-01 02;Mitattu;0",
		"Yhteensä;;2,00",
	)

	result, err := LoadUsage(path, "UTF-16LE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Readings) != 2 {
		t.Fatalf("Readings = %d, want 2", len(result.Readings))
	}
	if got := result.SkipCounts()[RowBadTimestamp]; got != 1 {
		t.Errorf("RowBadTimestamp = %d, want 1 (totals line)", got)
	}
	first := result.Readings[0]
	if first.Timestamp != "2024-01-01 00:00" {
		t.Errorf("Timestamp = %q, want 2024-01-01 00:00", first.Timestamp)
	}
	if first.KWh != 1.25 {
		t.Errorf("KWh = %v, want 1.25", first.KWh)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !first.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", first.Time, want)
	}
	if result.Readings[1].Timestamp != "2024-01-01 01:00" {
		t.Errorf("second Timestamp = %q", result.Readings[1].Timestamp)
	}
}

func TestReadUsage_SkipReasons(t *testing.T) {
	input := strings.Join([]string{
		"Header only",
		"Aika;Tyyppi;Kulutus (kWh)",
		"2024-01-01 00;Mitattu;2,5",
		"2024-01-01 01;Mitattu;0",
		"2024-01-01 02;Mitattu;-1,0",
		"2024-01-01 03;Mitattu;",
		"2024-01-01 04;Mitattu;abc",
		"2024-01-01 05;Mitattu;1,5",
	}, "\n")

	result, err := ReadUsage(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Readings) != 2 {
		t.Fatalf("Readings = %d, want 2", len(result.Readings))
	}
	for _, r := range result.Readings {
		if r.Timestamp != "2024-01-01 00:00" && r.Timestamp != "2024-01-01 05:00" {
			t.Errorf("unexpected reading %q", r.Timestamp)
		}
	}

	counts := result.SkipCounts()
	if counts[RowTooShort] != 1 {
		t.Errorf("RowTooShort = %d, want 1", counts[RowTooShort])
	}
	if counts[RowUnparsable] != 3 { // header, empty usage, "abc"
		t.Errorf("RowUnparsable = %d, want 3", counts[RowUnparsable])
	}
	if counts[RowNonPositive] != 2 {
		t.Errorf("RowNonPositive = %d, want 2", counts[RowNonPositive])
	}
	if result.Skipped[0].Line != 1 {
		t.Errorf("first skipped line = %d, want 1", result.Skipped[0].Line)
	}
}

func TestReadUsage_KeepsDuplicatesInFileOrder(t *testing.T) {
	input := "2024-10-27 03;x;1,0\n2024-10-27 03;x;2,0\n2024-10-27 02;x;3,0\n"

	result, err := ReadUsage(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Readings) != 3 {
		t.Fatalf("Readings = %d, want 3", len(result.Readings))
	}
	want := []float64{1, 2, 3}
	for i, r := range result.Readings {
		if r.KWh != want[i] {
			t.Errorf("Readings[%d].KWh = %v, want %v", i, r.KWh, want[i])
		}
	}
}

func TestReadUsage_TotalsLineIsSkipped(t *testing.T) {
	input := "Aika;Tyyppi;Kulutus\n2024-01-01 00;Mitattu;1,0\nYhteensä;;1,0\n"

	result, err := ReadUsage(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Readings) != 1 {
		t.Fatalf("Readings = %d, want 1", len(result.Readings))
	}
	last := result.Skipped[len(result.Skipped)-1]
	if last.Status != RowBadTimestamp || last.Line != 3 {
		t.Errorf("last skipped = %+v, want RowBadTimestamp on line 3", last)
	}
}

func TestReadUsage_Empty(t *testing.T) {
	result, err := ReadUsage(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("unexpected error on empty report: %v", err)
	}
	if len(result.Readings) != 0 || len(result.Skipped) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestLoadUsage_UnknownEncoding(t *testing.T) {
	path := writeReport(t, "2024-01-01 00;x;1,0")
	if _, err := LoadUsage(path, "no-such-charset"); err == nil {
		t.Fatal("expected encoding error")
	}
}

func TestLoadUsage_MissingFile(t *testing.T) {
	_, err := LoadUsage(filepath.Join(t.TempDir(), "missing.csv"), "UTF-8")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestRowStatusString(t *testing.T) {
	if RowNonPositive.String() != "non-positive usage" {
		t.Errorf("String() = %q", RowNonPositive.String())
	}
	if RowStatus(42).String() != "RowStatus(42)" {
		t.Errorf("String() = %q", RowStatus(42).String())
	}
}
