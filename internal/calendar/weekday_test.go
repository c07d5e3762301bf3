package calendar

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeek_KnownDates(t *testing.T) {
	tests := []struct {
		system System
		date   Date
		want   Weekday
	}{
		{Gregorian, Date{Gregorian, 2000, 1, 1}, Saturday},
		{Gregorian, Date{Gregorian, 1582, 10, 15}, Friday},
		{Julian, Date{Julian, 1582, 10, 4}, Thursday},
		{Gregorian, Date{Gregorian, 1969, 7, 20}, Sunday},
		{Gregorian, Date{Gregorian, 2024, 2, 29}, Thursday},
		{RevisedJulian, Date{RevisedJulian, 1923, 10, 14}, Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			c, err := tt.date.CJDN()
			require.NoError(t, err)
			assert.Equal(t, tt.want, DayOfWeek(c))
		})
	}
}

func TestDayOfWeek_ISONumbering(t *testing.T) {
	c, err := GregorianToCJDN(2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, int(DayOfWeek(c)))
	assert.Equal(t, 7, int(DayOfWeek(c+1)))
	assert.Equal(t, 1, int(DayOfWeek(c+2)))
}

func TestDayOfWeek_NegativeDayCount(t *testing.T) {
	// CJDN 0 was a Monday; the cycle continues backwards without a gap.
	assert.Equal(t, Monday, DayOfWeek(0))
	assert.Equal(t, Sunday, DayOfWeek(-1))
	assert.Equal(t, Monday, DayOfWeek(-7))
	assert.Equal(t, Saturday, DayOfWeek(-2))
}

func TestDayOfWeek_IntLimits(t *testing.T) {
	assert.Equal(t, Monday, DayOfWeek(math.MaxInt))
	assert.Equal(t, Sunday, DayOfWeek(math.MinInt))
	assert.Equal(t, Friday, DayOfWeek(MaxCJDN))
	assert.Equal(t, Thursday, DayOfWeek(-MaxCJDN))
}

func TestParseDayOfWeek(t *testing.T) {
	w, err := ParseDayOfWeek("2451545")
	require.NoError(t, err)
	assert.Equal(t, Saturday, w)

	_, err = ParseDayOfWeek("Saturday")
	assert.ErrorIs(t, err, ErrInvalidDayCount)
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Weekday(0)", Weekday(0).String())
}

// congruenceWeekday derives the weekday from the calendar date itself with
// the per-calendar congruences. It is kept as an independent oracle for
// DayOfWeek.
func congruenceWeekday(d Date) Weekday {
	a := floorDiv(14-d.Month, 12)
	y := d.Year - a
	m := d.Month + 12*a - 2

	var n int
	switch d.System {
	case Julian:
		n = 5 + d.Day + y + floorDiv(y, 4) + floorDiv(31*m, 12)
	case RevisedJulian:
		n = d.Day + y + floorDiv(y, 4) - floorDiv(y, 100) +
			floorDiv(y+300, 900) + floorDiv(y+700, 900) + floorDiv(31*m, 12)
	default:
		n = d.Day + y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + floorDiv(31*m, 12)
	}

	if w := floorMod(n, 7); w != 0 {
		return Weekday(w)
	}
	return Sunday
}

func TestDayOfWeek_MatchesCongruence(t *testing.T) {
	reform, err := GregorianToCJDN(1582, 10, 15)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1582, 1923))
	const samples = 10000
	const span = 1_000_000

	for i := 0; i < samples; i++ {
		c := reform.AddDays(rng.IntN(span))
		want := DayOfWeek(c)

		for _, s := range Systems() {
			d, err := FromCJDN(s, c)
			require.NoError(t, err)
			if got := congruenceWeekday(d); got != want {
				t.Fatalf("CJDN %d (%s %v): congruence = %v, DayOfWeek = %v", c, s, d, got, want)
			}
		}
	}
}
