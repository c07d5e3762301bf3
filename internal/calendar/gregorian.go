package calendar

// Coefficients shared by the century-based calendars (Gregorian and
// Revised Julian). The computational year starts on 1 March so that the
// leap day falls at the end of the year.
const (
	// centuryEpoch is the CJDN offset added when converting a date.
	centuryEpoch = 1721119

	// centuryEpochInverse is the CJDN of the computational year 0 start used
	// when converting back.
	centuryEpochInverse = 1721120

	// daysPer100Years scaled by 100: 365.25 days per year inside a century.
	daysPer100Years = 36525

	// daysPer5Months: 153 days in each run of five months from March.
	daysPer5Months = 153
)

// Gregorian constants: 146097 days in every 400 years.
const (
	gregorianDaysPer400Years = 146097
	gregorianCenturyDivisor  = 4
)

// GregorianToCJDN converts a Gregorian date to its day count.
// The day of month is not range checked.
func GregorianToCJDN(year, month, day int) (CJDN, error) {
	if err := checkDate(Gregorian, year, month, day); err != nil {
		return 0, err
	}
	x3, x2, x1 := marchYear(year, month)
	j := floorDiv(gregorianDaysPer400Years*x3, gregorianCenturyDivisor) +
		yearMonthDays(x2, x1) + day + centuryEpoch
	return boundedCJDN(j)
}

// CJDNToGregorian converts a day count to a Gregorian date.
func CJDNToGregorian(c CJDN) (Date, error) {
	if err := checkCJDN(c); err != nil {
		return Date{}, err
	}
	k3 := gregorianCenturyDivisor*(int(c)-centuryEpochInverse) + 3
	x3 := floorDiv(k3, gregorianDaysPer400Years)
	k2 := 100*floorDiv(floorMod(k3, gregorianDaysPer400Years), gregorianCenturyDivisor) + 99
	return centuryDate(Gregorian, x3, k2), nil
}

// marchYear splits a civil date into century, year of century and month
// counted from March. January and February are months 10 and 11 of the
// previous computational year.
func marchYear(year, month int) (x3, x2, x1 int) {
	c0 := floorDiv(month-3, 12)
	x4 := year + c0
	x3 = floorDiv(x4, 100)
	x2 = floorMod(x4, 100)
	x1 = month - 12*c0 - 3
	return x3, x2, x1
}

// yearMonthDays is the day count contributed by the year of century and the
// computational month.
func yearMonthDays(x2, x1 int) int {
	return floorDiv(daysPer100Years*x2, 100) + floorDiv(daysPer5Months*x1+2, 5)
}

// centuryDate finishes the inverse conversion once the century x3 and the
// scaled remainder k2 are known.
func centuryDate(s System, x3, k2 int) Date {
	x2 := floorDiv(k2, daysPer100Years)
	k1 := 5*floorDiv(floorMod(k2, daysPer100Years), 100) + 2
	x1 := floorDiv(k1, daysPer5Months)
	c0 := floorDiv(x1+2, 12)
	return Date{
		System: s,
		Year:   100*x3 + x2 + c0,
		Month:  x1 - 12*c0 + 3,
		Day:    floorDiv(floorMod(k1, daysPer5Months), 5) + 1,
	}
}
