package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const millennium CJDN = 2451545 // 2000-01-01 Gregorian

func TestComponent(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selector
		wantKind Kind
		want     string
	}{
		{"full date", Selector{}, KindDate, "2000-01-01"},
		{"year", Selector{Year: true}, KindYear, "2000"},
		{"month", Selector{Month: true}, KindMonth, "1"},
		{"day", Selector{Day: true}, KindDay, "1"},

		// Extra flags are ignored rather than rejected.
		{"quirk: year beats day", Selector{Year: true, Day: true}, KindYear, "2000"},
		{"quirk: year beats month", Selector{Year: true, Month: true}, KindYear, "2000"},
		{"quirk: month beats day", Selector{Month: true, Day: true}, KindMonth, "1"},
		{"quirk: all flags", Selector{Year: true, Month: true, Day: true}, KindYear, "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Component(Gregorian, millennium, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestComponent_Int(t *testing.T) {
	p, err := Component(Julian, millennium, Selector{Day: true})
	require.NoError(t, err)
	n, ok := p.Int()
	require.True(t, ok)
	assert.Equal(t, 19, n) // 2000-01-01 Gregorian is 1999-12-19 Julian

	p, err = Component(Julian, millennium, Selector{})
	require.NoError(t, err)
	_, ok = p.Int()
	assert.False(t, ok)
	assert.Equal(t, "1999-12-19", p.String())
}

func TestStrictComponent(t *testing.T) {
	_, err := StrictComponent(Gregorian, millennium, Selector{Year: true, Day: true})
	assert.ErrorIs(t, err, ErrAmbiguousSelector)

	p, err := StrictComponent(Gregorian, millennium, Selector{Month: true})
	require.NoError(t, err)
	assert.Equal(t, "1", p.String())

	p, err = StrictComponent(Gregorian, millennium, Selector{})
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", p.String())
}

func TestParseComponent(t *testing.T) {
	p, err := ParseComponent(RevisedJulian, "2451545", Selector{Year: true})
	require.NoError(t, err)
	assert.Equal(t, "2000", p.String())

	_, err = ParseComponent(RevisedJulian, "2451545.0", Selector{})
	assert.ErrorIs(t, err, ErrInvalidDayCount)

	_, err = ParseComponent(System(7), "2451545", Selector{})
	assert.ErrorIs(t, err, ErrUnknownCalendar)
}

func TestDateString_Padding(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{Gregorian, 45, 3, 7}, "0045-03-07"},
		{Date{Gregorian, 10345, 11, 30}, "10345-11-30"},
		{Date{Gregorian, 0, 1, 1}, "0000-01-01"},
		{Date{Julian, -45, 12, 31}, "-0045-12-31"},
		{Date{Julian, -12345, 1, 1}, "-12345-01-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.date.String())
	}
}

func TestComponent_PaddingThroughConversion(t *testing.T) {
	// Year 45 is below the Gregorian minimum, so the day count is built
	// without the check.
	p, err := Component(Gregorian, gregorianCJDNUnchecked(45, 6, 1), Selector{})
	require.NoError(t, err)
	assert.Equal(t, "0045-06-01", p.String())

	p, err = Component(Gregorian, gregorianCJDNUnchecked(10345, 6, 1), Selector{})
	require.NoError(t, err)
	assert.Equal(t, "10345-06-01", p.String())
}

// gregorianCJDNUnchecked repeats GregorianToCJDN without the minimum-year
// check.
func gregorianCJDNUnchecked(year, month, day int) CJDN {
	x3, x2, x1 := marchYear(year, month)
	return CJDN(floorDiv(gregorianDaysPer400Years*x3, gregorianCenturyDivisor) +
		yearMonthDays(x2, x1) + day + centuryEpoch)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "date", KindDate.String())
	assert.Equal(t, "year", KindYear.String())
	assert.Equal(t, "month", KindMonth.String())
	assert.Equal(t, "day", KindDay.String())
}
