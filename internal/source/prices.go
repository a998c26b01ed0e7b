package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/spotbill/internal/model"

	"golang.org/x/text/encoding"
)

// LoadPrices opens the price chart at path and reads the prices for readings.
func LoadPrices(path, encodingName string, readings []model.HourlyReading) ([]model.HourlyPrice, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // user-supplied chart path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadPrices(f, enc, readings)
}

// ReadPrices reads a semicolon-delimited hourly price chart and returns one
// price per reading, in reading order.
//
// The first row is a header. Rows before the first reading's hour are
// skipped. From there on every row must carry a valid price and is matched
// against the next unpriced reading by timestamp; rows for hours missing
// from the usage report are passed over. Reading stops as soon as the last
// reading is priced.
func ReadPrices(r io.Reader, enc encoding.Encoding, readings []model.HourlyReading) ([]model.HourlyPrice, error) {
	if len(readings) == 0 {
		return nil, nil
	}

	cr := newReader(r, enc)
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (chart is empty)", ErrPriceWindowStart, readings[0].Timestamp)
		}
		return nil, fmt.Errorf("reading price chart header: %w", err)
	}

	prices := make([]model.HourlyPrice, 0, len(readings))
	next := 0
	for next < len(readings) {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			if next == 0 {
				return nil, fmt.Errorf("%w: %s", ErrPriceWindowStart, readings[0].Timestamp)
			}
			return nil, fmt.Errorf("%w: no price for %s", ErrPriceWindowEnd, readings[next].Timestamp)
		}
		if err != nil {
			return nil, fmt.Errorf("reading price chart: %w", err)
		}
		if next == 0 && (len(row) < 2 || cleanField(row[0]) != readings[0].Timestamp) {
			continue
		}

		ts := cleanField(row[0])
		if len(row) < 2 {
			line, _ := cr.FieldPos(0)
			return nil, &PriceError{Line: line, Timestamp: ts, Err: ErrMissingPrice}
		}
		price, err := parseDecimal(row[1])
		if err != nil {
			line, _ := cr.FieldPos(1)
			return nil, &PriceError{Line: line, Timestamp: ts, Value: row[1], Err: err}
		}
		if ts != readings[next].Timestamp {
			continue
		}
		prices = append(prices, model.HourlyPrice{Timestamp: ts, Price: price})
		next++
	}

	return prices, nil
}
