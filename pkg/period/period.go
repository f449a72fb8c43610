// Package period provides the payroll period value object: an immutable
// month/year pair with an exact "MM/YYYY" string round-trip.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat indicates a period string that is not "MM/YYYY".
	ErrInvalidFormat = errors.New("invalid period format, expected MM/YYYY")
	// ErrOutOfRange indicates a month outside 1-12 or a year outside 1900-2100.
	ErrOutOfRange = errors.New("period out of range")
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Period is an immutable payroll period (one month of one year).
type Period struct {
	month int
	year  int
}

// New creates a Period, validating month 1-12 and year 1900-2100.
func New(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if year < 1900 || year > 2100 {
		return Period{}, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	return Period{month: month, year: year}, nil
}

// FromString parses "MM/YYYY" (also accepting "M/YYYY") into a Period.
func FromString(s string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return New(month, year)
}

// Month returns the month (1-12).
func (p Period) Month() int { return p.month }

// Year returns the year.
func (p Period) Year() int { return p.year }

// IsZero reports whether p is the zero value (never valid as a period).
func (p Period) IsZero() bool { return p.month == 0 && p.year == 0 }

// String returns the canonical "MM/YYYY" form, the exact inverse of
// FromString for valid periods.
func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.month, p.year)
}

// MonthName returns the English month name.
func (p Period) MonthName() string {
	if p.month < 1 || p.month > 12 {
		return ""
	}
	return monthNames[p.month-1]
}

// FullName returns a human-readable form like "September 2024".
func (p Period) FullName() string {
	return fmt.Sprintf("%s %d", p.MonthName(), p.year)
}

// Next returns the following period, rolling over December to January.
func (p Period) Next() Period {
	if p.month == 12 {
		return Period{month: 1, year: p.year + 1}
	}
	return Period{month: p.month + 1, year: p.year}
}

// Previous returns the preceding period, rolling over January to December.
func (p Period) Previous() Period {
	if p.month == 1 {
		return Period{month: 12, year: p.year - 1}
	}
	return Period{month: p.month - 1, year: p.year}
}
