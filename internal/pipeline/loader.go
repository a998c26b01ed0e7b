package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/spotbill/internal/model"
	"github.com/theirongolddev/spotbill/internal/source"
)

// ErrNoUsage means the usage report contained no billable hour.
var ErrNoUsage = errors.New("usage report has no hours with usage")

// Inputs names the two files of a report and their encodings.
type Inputs struct {
	UsagePath     string
	UsageEncoding string
	PricePath     string
	PriceEncoding string
}

// LoadResult holds the aligned hourly data of one report.
type LoadResult struct {
	Readings []model.HourlyReading
	Prices   []model.HourlyPrice
	Skipped  []source.RowResult
}

// Load reads the usage report, then the prices for exactly its hours.
func Load(in Inputs) (*LoadResult, error) {
	usage, err := source.LoadUsage(in.UsagePath, in.UsageEncoding)
	if err != nil {
		return nil, fmt.Errorf("loading usage %s: %w", in.UsagePath, err)
	}
	if len(usage.Readings) == 0 {
		return nil, fmt.Errorf("%s: %w", in.UsagePath, ErrNoUsage)
	}

	prices, err := source.LoadPrices(in.PricePath, in.PriceEncoding, usage.Readings)
	if err != nil {
		return nil, fmt.Errorf("loading prices %s: %w", in.PricePath, err)
	}

	return &LoadResult{
		Readings: usage.Readings,
		Prices:   prices,
		Skipped:  usage.Skipped,
	}, nil
}
