// Package source reads the meter usage report and the spot price chart.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// TimestampLayout is the hour format shared by both files after normalization.
const TimestampLayout = "2006-01-02 15:04"

var errNotFinite = errors.New("not a finite number")

// LookupEncoding resolves an IANA charset name such as "UTF-16LE".
// An empty name means the input is read as-is.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// newReader returns a semicolon-delimited CSV reader over r decoded with enc.
func newReader(r io.Reader, enc encoding.Encoding) *csv.Reader {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// parseDecimal parses a number written with a comma decimal separator.
func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// cleanField strips a byte order mark, surrounding quotes and whitespace.
func cleanField(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.Trim(strings.TrimSpace(s), `"`)
}
