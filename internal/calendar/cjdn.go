// Package calendar converts dates between the Gregorian, Julian and
// Revised Julian (Milanković) calendars and the Chronological Julian Day
// Number, and computes ISO 8601 weekdays.
//
// The Chronological Julian Day Number (CJDN) is a whole number of days.
// Each day begins at 00:00 local time and day 0 is 1 January 4713 BCE in the
// proleptic Julian calendar. Two dates in different calendars that name the
// same day have the same CJDN, so the CJDN is the interchange format between
// the three calendars.
//
// Every function in this package is pure and safe for concurrent use.
//
// Reference: http://aa.quae.nl/en/reken/juliaansedag.html
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// CJDN is a Chronological Julian Day Number.
type CJDN int

// MaxCJDN bounds the day counts the converters accept: about three
// trillion years either side of the epoch. Day counts and dates outside
// ±MaxCJDN fail with ErrOutOfRange.
const MaxCJDN = 1 << 50

// maxYear guards year inputs before any arithmetic. It lies beyond the
// years MaxCJDN reaches, so the result is checked against MaxCJDN as well.
const maxYear = 1 << 42

// AddDays returns the day count n days after c (or before, for negative n).
func (c CJDN) AddDays(n int) CJDN {
	return c + CJDN(n)
}

// Days returns the number of days from one day count to another.
func Days(from, to CJDN) int {
	return int(to - from)
}

// ParseCJDN parses a day count supplied as text.
// Anything other than a base-10 integer fails with ErrInvalidDayCount.
func ParseCJDN(s string) (CJDN, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayCount, s)
	}
	return CJDN(n), nil
}

func checkCJDN(c CJDN) error {
	if outside(int64(c), MaxCJDN) {
		return fmt.Errorf("%w: day count %d exceeds ±%d", ErrOutOfRange, c, int64(MaxCJDN))
	}
	return nil
}

// checkDate rejects dates a converter cannot take: years before the
// calendar's start, and parts too large to compute with.
func checkDate(s System, year, month, day int) error {
	if err := checkMinYear(s, year); err != nil {
		return err
	}
	if outside(int64(year), maxYear) || outside(int64(month), MaxCJDN) || outside(int64(day), MaxCJDN) {
		return fmt.Errorf("%w: %s date %d-%d-%d", ErrOutOfRange, s, year, month, day)
	}
	return nil
}

// boundedCJDN returns j as a day count if it is within ±MaxCJDN.
func boundedCJDN(j int) (CJDN, error) {
	c := CJDN(j)
	if err := checkCJDN(c); err != nil {
		return 0, err
	}
	return c, nil
}

func outside(n, bound int64) bool {
	return n > bound || n < -bound
}

// floorDiv divides rounding toward negative infinity.
// Go's / truncates toward zero, which is wrong for proleptic dates
// before the epoch.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv; it has the sign of b.
func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}
