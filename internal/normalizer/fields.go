package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrInvalidDate is returned when a date cell cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the canonical output layout for date columns.
const DateLayout = "2006-01-02"

// soldOut marks an out-of-stock price cell.
const soldOut = "sold out"

// Percentage converts "45%" to 0.45. Empty or non-numeric input yields
// ok == false.
func Percentage(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	f, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}

	return f / 100, true
}

// Price parses a price cell. Empty, "sold out" (any case) and
// non-numeric input yield ok == false.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, soldOut) {
		return 0, false
	}

	return parseDecimal(s)
}

// Date reformats any recognizable calendar date as YYYY-MM-DD. Ambiguous
// numeric forms are read month first.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return t.Format(DateLayout), nil
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// parseDecimal accepts plain decimal and exponent notation only.
func parseDecimal(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
