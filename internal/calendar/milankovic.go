package calendar

// Revised Julian constants: 328718 days in every 900 years.
const (
	milankovicDaysPer900Years = 328718
	milankovicCenturyDivisor  = 9
	milankovicCenturyOffset   = 6
	milankovicInverseOffset   = 2
)

// MilankovicToCJDN converts a Revised Julian (Milanković) date to its day
// count. The day of month is not range checked.
func MilankovicToCJDN(year, month, day int) (CJDN, error) {
	if err := checkDate(RevisedJulian, year, month, day); err != nil {
		return 0, err
	}
	x3, x2, x1 := marchYear(year, month)
	j := floorDiv(milankovicDaysPer900Years*x3+milankovicCenturyOffset, milankovicCenturyDivisor) +
		yearMonthDays(x2, x1) + day + centuryEpoch
	return boundedCJDN(j)
}

// CJDNToMilankovic converts a day count to a Revised Julian date.
func CJDNToMilankovic(c CJDN) (Date, error) {
	if err := checkCJDN(c); err != nil {
		return Date{}, err
	}
	k3 := milankovicCenturyDivisor*(int(c)-centuryEpochInverse) + milankovicInverseOffset
	x3 := floorDiv(k3, milankovicDaysPer900Years)
	k2 := 100*floorDiv(floorMod(k3, milankovicDaysPer900Years), milankovicCenturyDivisor) + 99
	return centuryDate(RevisedJulian, x3, k2), nil
}
