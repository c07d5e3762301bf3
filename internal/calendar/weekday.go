package calendar

import "fmt"

// Weekday is an ISO 8601 day of the week, Monday = 1 through Sunday = 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String returns the English day name (Monday, Tuesday, etc.)
func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w-1]
}

// DayOfWeek returns the weekday of a day count. The day count already
// fixes the day, so the result does not depend on any calendar.
func DayOfWeek(c CJDN) Weekday {
	d := floorMod(floorMod(int(c), 7)+1, 7)
	if d == 0 {
		return Sunday
	}
	return Weekday(d)
}

// ParseDayOfWeek is DayOfWeek for a day count given as text.
func ParseDayOfWeek(text string) (Weekday, error) {
	c, err := ParseCJDN(text)
	if err != nil {
		return 0, err
	}
	return DayOfWeek(c), nil
}
