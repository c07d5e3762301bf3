package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a civil date interpreted in exactly one calendar.
// Years use astronomical numbering, so year 0 is 1 BCE.
type Date struct {
	System System `json:"calendar"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
}

// String formats the date as YYYY-MM-DD. The year is padded to at least
// four digits and never truncated; negative years keep their sign in
// front of the padding.
func (d Date) String() string {
	year := d.Year
	sign := ""
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, year, d.Month, d.Day)
}

// Valid reports whether the month and day exist in the date's calendar.
// Conversions do not call Valid; it is for callers that want to reject
// dates such as 30 February before converting.
func (d Date) Valid() bool {
	if !d.System.Valid() || d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.System, d.Year, d.Month)
}

// CJDN converts the date to its day count.
func (d Date) CJDN() (CJDN, error) {
	return ToCJDN(d.System, d.Year, d.Month, d.Day)
}

// ToCJDN converts a date in the given calendar to its day count.
func ToCJDN(s System, year, month, day int) (CJDN, error) {
	switch s {
	case Gregorian:
		return GregorianToCJDN(year, month, day)
	case RevisedJulian:
		return MilankovicToCJDN(year, month, day)
	case Julian:
		return JulianToCJDN(year, month, day)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownCalendar, s)
	}
}

// FromCJDN converts a day count to a date in the given calendar.
func FromCJDN(s System, c CJDN) (Date, error) {
	switch s {
	case Gregorian:
		return CJDNToGregorian(c)
	case RevisedJulian:
		return CJDNToMilankovic(c)
	case Julian:
		return CJDNToJulian(c)
	default:
		return Date{}, fmt.Errorf("%w: %s", ErrUnknownCalendar, s)
	}
}

// Convert re-expresses a date in another calendar. The source date must
// satisfy its own calendar's minimum year.
func Convert(d Date, to System) (Date, error) {
	c, err := d.CJDN()
	if err != nil {
		return Date{}, err
	}
	return FromCJDN(to, c)
}

// ParseToCJDN converts a date given as numeric strings, the form in which
// dates usually arrive from query strings and forms.
func ParseToCJDN(s System, year, month, day string) (CJDN, error) {
	y, m, d, err := parseParts(year, month, day)
	if err != nil {
		return 0, err
	}
	return ToCJDN(s, y, m, d)
}

// ParseDate parses a YYYY-MM-DD string in the given calendar. A leading
// minus sign and years of any length are accepted.
func ParseDate(s System, text string) (Date, error) {
	body := strings.TrimSpace(text)
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign = "-"
		body = body[1:]
	}

	parts := strings.Split(body, "-")
	if len(parts) != 3 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", text)
	}

	y, m, d, err := parseParts(sign+parts[0], parts[1], parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", text, err)
	}
	return Date{System: s, Year: y, Month: m, Day: d}, nil
}

func parseParts(year, month, day string) (int, int, int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("year %q is not an integer", year)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("month %q is not an integer", month)
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("day %q is not an integer", day)
	}
	return y, m, d, nil
}
