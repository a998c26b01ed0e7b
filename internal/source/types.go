package source

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/spotbill/internal/model"
)

// RowStatus classifies one row of the usage report.
type RowStatus int

const (
	// RowAccepted rows carry a positive usage value.
	RowAccepted RowStatus = iota
	// RowTooShort rows have no usage column (report header and footer lines).
	RowTooShort
	// RowUnparsable rows have a usage column that is not a number.
	RowUnparsable
	// RowNonPositive rows are hours the meter has not reported yet (usage <= 0).
	RowNonPositive
	// RowBadTimestamp rows have a usage but no readable hour, such as a totals line.
	RowBadTimestamp
)

func (s RowStatus) String() string {
	switch s {
	case RowAccepted:
		return "accepted"
	case RowTooShort:
		return "too short"
	case RowUnparsable:
		return "unparsable usage"
	case RowNonPositive:
		return "non-positive usage"
	case RowBadTimestamp:
		return "unreadable timestamp"
	}
	return fmt.Sprintf("RowStatus(%d)", int(s))
}

// RowResult is the outcome of classifying a single usage report row.
type RowResult struct {
	Line    int
	Status  RowStatus
	Reading model.HourlyReading // set only when Status == RowAccepted
}

// UsageResult holds the output of reading a usage report.
type UsageResult struct {
	Readings []model.HourlyReading
	Skipped  []RowResult
}

// SkipCounts returns the number of skipped rows per status.
func (r UsageResult) SkipCounts() map[RowStatus]int {
	counts := make(map[RowStatus]int)
	for _, s := range r.Skipped {
		counts[s.Status]++
	}
	return counts
}

var (
	// ErrPriceWindowStart means the price chart has no row for the first usage hour.
	ErrPriceWindowStart = errors.New("price chart does not contain the first usage hour")
	// ErrPriceWindowEnd means the price chart ended before every usage hour was priced.
	ErrPriceWindowEnd = errors.New("price chart ends before the last usage hour")
	// ErrMissingPrice means a row inside the price window has no price column.
	ErrMissingPrice = errors.New("no price column")
)

// PriceError reports a price chart row inside the window whose price column
// is missing or not a number.
type PriceError struct {
	Line      int
	Timestamp string
	Value     string
	Err       error
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("price chart line %d (%s): invalid price %q: %v", e.Line, e.Timestamp, e.Value, e.Err)
}

func (e *PriceError) Unwrap() error { return e.Err }
