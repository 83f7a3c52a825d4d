package astro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJulianDayEpoch(t *testing.T) {
	require.InDelta(t, 2451545.0, JulianDay(2000, 1, 1, 12.0), 1e-6)
}

func TestJulianDayKnownDates(t *testing.T) {
	// January date exercises the month <= 2 year shift.
	require.InDelta(t, 2446822.5, JulianDay(1987, 1, 27, 0.0), 1e-6)
	require.InDelta(t, 2436116.31, JulianDay(1957, 10, 4, 19.44), 1e-6)
}

func TestJulianCenturies(t *testing.T) {
	require.InDelta(t, 0.0, JulianCenturies(2451545.0), 1e-12)
	require.InDelta(t, 1.0, JulianCenturies(2451545.0+36525), 1e-12)
}

func TestToUTCNoRoll(t *testing.T) {
	got := ToUTC(1990, 6, 15, 14, 30, 15) // offset +1h
	require.Equal(t, CivilTime{Year: 1990, Month: 6, Day: 15, Hour: 13.5}, got)
}

func TestToUTCRollsForward(t *testing.T) {
	// 23:30 local at 150 degrees west: UTC is 10h into the next day.
	got := ToUTC(1990, 6, 15, 23, 30, -150)
	require.Equal(t, CivilTime{Year: 1990, Month: 6, Day: 16, Hour: 9.5}, got)
}

func TestToUTCRollsBackwardAcrossYear(t *testing.T) {
	// 00:30 local at 120 degrees east: UTC falls on the last day of the
	// previous year.
	got := ToUTC(2000, 1, 1, 0, 30, 120)
	require.Equal(t, CivilTime{Year: 1999, Month: 12, Day: 31, Hour: 16.5}, got)
}

func TestToUTCRollsBackwardIntoFebruary(t *testing.T) {
	leap := ToUTC(2020, 3, 1, 0, 0, 15)
	require.Equal(t, CivilTime{Year: 2020, Month: 2, Day: 29, Hour: 23}, leap)

	common := ToUTC(2019, 3, 1, 0, 0, 15)
	require.Equal(t, CivilTime{Year: 2019, Month: 2, Day: 28, Hour: 23}, common)
}

func TestDaysInMonth(t *testing.T) {
	require.Equal(t, 29, DaysInMonth(2000, 2))
	require.Equal(t, 28, DaysInMonth(1900, 2))
	require.Equal(t, 29, DaysInMonth(2024, 2))
	require.Equal(t, 28, DaysInMonth(2023, 2))
	require.Equal(t, 30, DaysInMonth(2023, 4))
	require.Equal(t, 31, DaysInMonth(2023, 12))
}

func TestIsLeapYear(t *testing.T) {
	require.True(t, IsLeapYear(2000))
	require.True(t, IsLeapYear(2024))
	require.False(t, IsLeapYear(1900))
	require.False(t, IsLeapYear(2023))
}
