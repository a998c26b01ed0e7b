package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/spotbill/internal/model"

	"golang.org/x/text/encoding"
)

// usageColumn is the index of the kWh column in the meter report.
const usageColumn = 2

// LoadUsage opens the meter report at path and reads it with the named encoding.
func LoadUsage(path, encodingName string) (UsageResult, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return UsageResult{}, err
	}

	f, err := os.Open(path) //nolint:gosec // user-supplied report path
	if err != nil {
		return UsageResult{}, err
	}
	defer func() { _ = f.Close() }()

	return ReadUsage(f, enc)
}

// ReadUsage reads hourly readings from a semicolon-delimited meter report.
//
// The report carries a multi-line header, a totals footer, and hours the
// meter has not delivered yet. Such rows are classified and returned in
// Skipped; they never produce a reading. Read and decode failures are errors.
func ReadUsage(r io.Reader, enc encoding.Encoding) (UsageResult, error) {
	cr := newReader(r, enc)

	var result UsageResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("reading usage report: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rr := classifyUsageRow(line, row)
		if rr.Status != RowAccepted {
			result.Skipped = append(result.Skipped, rr)
			continue
		}
		result.Readings = append(result.Readings, rr.Reading)
	}

	return result, nil
}

// classifyUsageRow turns one CSV record into a RowResult.
func classifyUsageRow(line int, row []string) RowResult {
	rr := RowResult{Line: line}

	if len(row) <= usageColumn {
		rr.Status = RowTooShort
		return rr
	}

	kwh, err := parseDecimal(row[usageColumn])
	if err != nil {
		rr.Status = RowUnparsable
		return rr
	}
	if kwh <= 0 {
		rr.Status = RowNonPositive
		return rr
	}

	ts := cleanField(row[0]) + ":00"
	at, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		rr.Status = RowBadTimestamp
		return rr
	}

	rr.Status = RowAccepted
	rr.Reading = model.HourlyReading{
		Timestamp: ts,
		Time:      at,
		KWh:       kwh,
	}
	return rr
}
