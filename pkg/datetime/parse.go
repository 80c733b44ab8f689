// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/rental-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected for purchase dates in config files.
	DateTimeLayout = constants.DateTimeLayout

	// LabelLayout is the format of the per-year row labels, e.g. Jun/2027.
	LabelLayout = "Jan/2006"
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParsePurchaseDate splits a YYYY-MM purchase date into its month and year.
func ParsePurchaseDate(date string) (month, year int, err error) {
	t, err := time.Parse(DateTimeLayout, date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid purchase date %q, expected YYYY-MM: %w", date, err)
	}
	return int(t.Month()), t.Year(), nil
}

// CalendarYear returns the calendar year in which the given analysis year
// ends, or 0 when no purchase year is known.
func CalendarYear(purchaseYear, analysisYear int) int {
	if purchaseYear <= 0 {
		return 0
	}
	return purchaseYear + analysisYear
}

// MonthYearLabel labels an analysis year with the purchase anniversary month,
// e.g. purchase month 6 of 2026 and analysis year 1 gives "Jun/2027". It
// returns "" when the purchase date is incomplete.
func MonthYearLabel(purchaseMonth, purchaseYear, analysisYear int) string {
	if purchaseMonth < 1 || purchaseMonth > 12 || purchaseYear <= 0 {
		return ""
	}
	anniversary := time.Date(CalendarYear(purchaseYear, analysisYear), time.Month(purchaseMonth), 1, 0, 0, 0, 0, time.UTC)
	return anniversary.Format(LabelLayout)
}
