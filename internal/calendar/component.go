package calendar

import (
	"fmt"
	"strconv"
)

// Kind names which part of a date a Part holds.
type Kind int

const (
	// KindDate is the whole date in YYYY-MM-DD form.
	KindDate Kind = iota
	KindYear
	KindMonth
	KindDay
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindYear:
		return "year"
	case KindMonth:
		return "month"
	case KindDay:
		return "day"
	default:
		return "date"
	}
}

// Selector picks a single component of a converted date.
//
// If more than one flag is set, Year wins over Month and Month wins over
// Day; the other flags are ignored. Use StrictComponent to reject such
// selections instead.
type Selector struct {
	Year  bool
	Month bool
	Day   bool
}

// Kind resolves the selector to the component that will be returned.
func (sel Selector) Kind() Kind {
	switch {
	case sel.Year:
		return KindYear
	case sel.Month:
		return KindMonth
	case sel.Day:
		return KindDay
	default:
		return KindDate
	}
}

func (sel Selector) count() int {
	n := 0
	for _, b := range []bool{sel.Year, sel.Month, sel.Day} {
		if b {
			n++
		}
	}
	return n
}

// Part is the result of Component: one integer field of a date, or the
// formatted date itself.
type Part struct {
	Kind Kind
	Date Date
}

// Int returns the selected field. For KindDate it returns 0 and false.
func (p Part) Int() (int, bool) {
	switch p.Kind {
	case KindYear:
		return p.Date.Year, true
	case KindMonth:
		return p.Date.Month, true
	case KindDay:
		return p.Date.Day, true
	default:
		return 0, false
	}
}

// String returns the selected field in decimal, or the YYYY-MM-DD date.
func (p Part) String() string {
	if n, ok := p.Int(); ok {
		return strconv.Itoa(n)
	}
	return p.Date.String()
}

// Component converts a day count in the given calendar and returns the
// part chosen by sel.
func Component(s System, c CJDN, sel Selector) (Part, error) {
	d, err := FromCJDN(s, c)
	if err != nil {
		return Part{}, err
	}
	return Part{Kind: sel.Kind(), Date: d}, nil
}

// StrictComponent is Component but fails with ErrAmbiguousSelector when
// more than one flag is set.
func StrictComponent(s System, c CJDN, sel Selector) (Part, error) {
	if n := sel.count(); n > 1 {
		return Part{}, fmt.Errorf("%w: %d flags set", ErrAmbiguousSelector, n)
	}
	return Component(s, c, sel)
}

// ParseComponent is Component for a day count given as text.
func ParseComponent(s System, text string, sel Selector) (Part, error) {
	c, err := ParseCJDN(text)
	if err != nil {
		return Part{}, err
	}
	return Component(s, c, sel)
}
