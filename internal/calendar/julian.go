package calendar

// Julian constants: 1461 days in every 4 years.
const (
	julianEpoch        = 1721117
	julianEpochInverse = 1721118
	julianDaysPer4Yrs  = 1461
	julianMonthOffset  = 457
)

// JulianToCJDN converts a Julian date to its day count.
// The day of month is not range checked.
func JulianToCJDN(year, month, day int) (CJDN, error) {
	if err := checkDate(Julian, year, month, day); err != nil {
		return 0, err
	}
	c0 := floorDiv(month-3, 12)
	j1 := floorDiv((c0+year)*julianDaysPer4Yrs, 4)
	j2 := floorDiv(daysPer5Months*month-12*daysPer5Months*c0-julianMonthOffset, 5)
	return boundedCJDN(j1 + j2 + day + julianEpoch)
}

// CJDNToJulian converts a day count to a Julian date.
func CJDNToJulian(c CJDN) (Date, error) {
	if err := checkCJDN(c); err != nil {
		return Date{}, err
	}
	k2 := 4*(int(c)-julianEpochInverse) + 3
	k1 := 5*floorDiv(floorMod(k2, julianDaysPer4Yrs), 4) + 2
	x1 := floorDiv(k1, daysPer5Months)
	c0 := floorDiv(x1+2, 12)
	return Date{
		System: Julian,
		Year:   floorDiv(k2, julianDaysPer4Yrs) + c0,
		Month:  x1 - 12*c0 + 3,
		Day:    floorDiv(floorMod(k1, daysPer5Months), 5) + 1,
	}, nil
}
