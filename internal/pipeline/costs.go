package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/spotbill/internal/config"
	"github.com/theirongolddev/spotbill/internal/model"
)

// ErrMisaligned means readings and prices do not describe the same hours.
var ErrMisaligned = errors.New("usage and price series are not aligned")

// HourlyCosts returns the cost in cents of every reading at its hour's price.
func HourlyCosts(readings []model.HourlyReading, prices []model.HourlyPrice, tariff config.Tariff) ([]float64, error) {
	if len(readings) != len(prices) {
		return nil, fmt.Errorf("%w: %d readings, %d prices", ErrMisaligned, len(readings), len(prices))
	}

	costs := make([]float64, len(readings))
	for i, r := range readings {
		if p := prices[i]; p.Timestamp != "" && p.Timestamp != r.Timestamp {
			return nil, fmt.Errorf("%w: reading %d is %s, price is %s", ErrMisaligned, i, r.Timestamp, p.Timestamp)
		}
		costs[i] = tariff.HourlyCost(r.KWh, prices[i].Price)
	}
	return costs, nil
}
