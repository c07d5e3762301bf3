package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// System identifies one of the supported calendars.
type System int

const (
	Gregorian System = iota + 1
	RevisedJulian
	Julian
)

// Minimum supported years. Conversions of earlier dates to a day count are
// rejected.
const (
	// GregorianMinYear is the year the Gregorian calendar was promulgated.
	GregorianMinYear = 1582

	// MilankovicMinYear is the year the Revised Julian calendar was defined.
	MilankovicMinYear = 1923

	// JulianMinYear is the year of the Council of Nicaea, where the dating
	// of Easter was proclaimed.
	JulianMinYear = 325
)

// Errors returned by conversions. Callers match them with errors.Is.
var (
	// ErrBelowMinimumYear is returned when a date precedes the first year
	// its calendar supports.
	ErrBelowMinimumYear = errors.New("year below calendar minimum")

	// ErrInvalidDayCount is returned when a day count is not an integer.
	ErrInvalidDayCount = errors.New("day count is not an integer")

	// ErrUnknownCalendar is returned for an unrecognized calendar system.
	ErrUnknownCalendar = errors.New("unknown calendar")

	// ErrOutOfRange is returned for day counts beyond ±MaxCJDN and for
	// dates that would land there.
	ErrOutOfRange = errors.New("outside supported range")

	// ErrAmbiguousSelector is returned by StrictComponent when more than one
	// date component is requested.
	ErrAmbiguousSelector = errors.New("more than one date component selected")
)

// Systems returns all supported calendars.
func Systems() []System {
	return []System{Gregorian, RevisedJulian, Julian}
}

// String returns the canonical lowercase name of the calendar.
func (s System) String() string {
	switch s {
	case Gregorian:
		return "gregorian"
	case RevisedJulian:
		return "milankovic"
	case Julian:
		return "julian"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Valid reports whether s is a supported calendar.
func (s System) Valid() bool {
	return s >= Gregorian && s <= Julian
}

// MinYear returns the first year the calendar accepts for conversion to a
// day count.
func (s System) MinYear() int {
	switch s {
	case Gregorian:
		return GregorianMinYear
	case RevisedJulian:
		return MilankovicMinYear
	case Julian:
		return JulianMinYear
	default:
		return 0
	}
}

// ParseSystem looks up a calendar by name. Matching is case-insensitive.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gregorian":
		return Gregorian, nil
	case "milankovic", "revised-julian", "revised_julian", "revisedjulian":
		return RevisedJulian, nil
	case "julian":
		return Julian, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCalendar, name)
	}
}

// MarshalText encodes the calendar by name.
func (s System) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCalendar, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a calendar name accepted by ParseSystem.
func (s *System) UnmarshalText(text []byte) error {
	parsed, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsLeapYear reports whether year has a 29 February in the calendar.
func IsLeapYear(s System, year int) bool {
	if floorMod(year, 4) != 0 {
		return false
	}
	switch s {
	case Julian:
		return true
	case Gregorian:
		return floorMod(year, 100) != 0 || floorMod(year, 400) == 0
	case RevisedJulian:
		if floorMod(year, 100) != 0 {
			return true
		}
		r := floorMod(year, 900)
		return r == 200 || r == 600
	default:
		return false
	}
}

// DaysInMonth returns the length of the month, or 0 for an invalid month.
func DaysInMonth(s System, year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(s, year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func checkMinYear(s System, year int) error {
	if year < s.MinYear() {
		return fmt.Errorf("%w: %s calendar starts in %d, got %d",
			ErrBelowMinimumYear, s, s.MinYear(), year)
	}
	return nil
}
