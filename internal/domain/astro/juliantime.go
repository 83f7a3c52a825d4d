package astro

import "math"

// j2000 is the Julian Day of the 2000-01-01 12:00 UTC epoch.
const j2000 = 2451545.0

// CivilTime is a UTC calendar moment with a decimal hour.
type CivilTime struct {
	Year  int
	Month int
	Day   int
	Hour  float64
}

// JulianDay converts a Gregorian calendar date plus a decimal UTC hour into
// a Julian Day Number. JulianDay(2000, 1, 1, 12.0) == 2451545.0.
func JulianDay(year, month, day int, utcHour float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(float64(y)+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5 + utcHour/24
}

// JulianCenturies returns centuries elapsed since J2000 for a Julian Day.
func JulianCenturies(jd float64) float64 {
	return (jd - j2000) / 36525
}

// ToUTC converts a local civil time to UTC using the longitude-derived
// timezone approximation offsetHours = longitude / 15. This deliberately
// ignores political timezones and DST. The calendar date rolls backward or
// forward by one day when the corrected hour leaves [0, 24).
func ToUTC(year, month, day, hour, minute int, longitude float64) CivilTime {
	utcHour := float64(hour) + float64(minute)/60 - longitude/15

	for utcHour < 0 {
		utcHour += 24
		year, month, day = previousDay(year, month, day)
	}
	for utcHour >= 24 {
		utcHour -= 24
		year, month, day = nextDay(year, month, day)
	}
	return CivilTime{Year: year, Month: month, Day: day, Hour: utcHour}
}

// IsLeapYear reports whether a Gregorian year has a February 29th.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in a Gregorian month.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

func previousDay(year, month, day int) (int, int, int) {
	day--
	if day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day = DaysInMonth(year, month)
	}
	return year, month, day
}

func nextDay(year, month, day int) (int, int, int) {
	day++
	if day > DaysInMonth(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month, day
}
