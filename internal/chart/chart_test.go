package chart

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/theirongolddev/spotbill/internal/model"

	"gonum.org/v1/plot/vg"
)

func sampleDays(n int) []model.DailyStats {
	days := make([]model.DailyStats, n)
	for i := range days {
		days[i] = model.DailyStats{
			Date:     time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			Label:    strconv.Itoa(i + 1),
			Hours:    24,
			UsageKWh: 10 + float64(i%5)*3.5,
			Cost:     0.8 + float64(i%4)*0.35,
		}
	}
	return days
}

func TestUsageAxisMax(t *testing.T) {
	tests := []struct {
		usage []float64
		want  float64
	}{
		{[]float64{12.3, 4}, 15},
		{[]float64{15}, 15},
		{[]float64{15.01}, 20},
		{[]float64{0.5}, 5},
		{nil, 5},
	}
	for _, tt := range tests {
		days := make([]model.DailyStats, len(tt.usage))
		for i, u := range tt.usage {
			days[i].UsageKWh = u
		}
		if got := UsageAxisMax(days); got != tt.want {
			t.Errorf("UsageAxisMax(%v) = %v, want %v", tt.usage, got, tt.want)
		}
	}
}

func TestCostAxisMax(t *testing.T) {
	tests := []struct {
		cost []float64
		want float64
	}{
		{[]float64{0.3855}, 0.4},
		{[]float64{1.01, 0.2}, 1.2},
		{[]float64{2}, 2},
		{nil, 0.2},
	}
	for _, tt := range tests {
		days := make([]model.DailyStats, len(tt.cost))
		for i, c := range tt.cost {
			days[i].Cost = c
		}
		got := CostAxisMax(days)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("CostAxisMax(%v) = %v, want %v", tt.cost, got, tt.want)
		}
	}
}

func TestBarsStayInsideDataArea(t *testing.T) {
	const dataWidth = vg.Length(1000)
	for _, n := range []int{1, 2, 28, 31} {
		lo, hi := daySlots(n)
		w := dayBarWidth(dataWidth, n)
		slot := dataWidth / vg.Length(hi-lo)

		first := vg.Length(0-lo)*slot - w/2
		last := vg.Length(float64(n-1)-lo)*slot + w/2
		if first <= 0 || last >= dataWidth {
			t.Errorf("n=%d: bars span %v..%v, outside 0..%v", n, first, last, dataWidth)
		}
		if gap := slot - w; gap <= 0 {
			t.Errorf("n=%d: neighboring bars overlap (slot %v, bar %v)", n, slot, w)
		}
	}
}

func TestRenderSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Electricity usage and cost, month to date 512 kWh and 38,20 €"

	var buf bytes.Buffer
	if err := Render(&buf, sampleDays(31), opts); err != nil {
		t.Fatalf("Render: %v", err)
	}

	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("size = %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}
}

func TestRenderSingleDay(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleDays(1), Options{WidthPx: 640, HeightPx: 360, DPI: 50}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 360 {
		t.Errorf("size = %dx%d, want 640x360", cfg.Width, cfg.Height)
	}
}

func TestRenderNoDays(t *testing.T) {
	if err := Render(&bytes.Buffer{}, nil, DefaultOptions()); !errors.Is(err, ErrNoDays) {
		t.Errorf("err = %v, want ErrNoDays", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kulutus.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Save(path, sampleDays(3), DefaultOptions()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a png: %v", err)
	}
}

func TestSaveBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "kulutus.png")
	if err := Save(path, sampleDays(1), DefaultOptions()); err == nil {
		t.Error("expected error for missing directory")
	}
}
