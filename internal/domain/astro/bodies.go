package astro

import (
	"fmt"
	"math"
)

// Body identifies a tracked chart point.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Ascendant Body = "Ascendant"
)

// Planets lists the bodies computed from the Julian Day alone, in the order
// they appear in a chart. The Ascendant additionally needs coordinates.
var Planets = []Body{Sun, Moon, Mercury, Venus, Mars}

// PositionProvider computes raw ecliptic longitudes. Returned angles are
// un-normalized; callers reduce them with Normalize before decomposing into
// sign and degree. Implementations are constructed explicitly and injected;
// none hold package-level state.
type PositionProvider interface {
	// Longitude returns the ecliptic longitude of a planet at jd.
	Longitude(body Body, jd float64) (float64, error)
	// AscendantLongitude returns the rising ecliptic point for an observer
	// at the given geographic latitude/longitude (degrees) at jd.
	AscendantLongitude(jd, latitude, longitude float64) float64
}

// AnalyticProvider implements PositionProvider with low-order mean-element
// series: degree-level accuracy for the Sun, roughly 0.2 degrees for the
// Moon, coarser for the inner planets. Adequate for sign-level astrology,
// not for scientific use.
type AnalyticProvider struct{}

// NewAnalyticProvider constructs the fast approximate backend.
func NewAnalyticProvider() *AnalyticProvider {
	return &AnalyticProvider{}
}

// Longitude implements PositionProvider.
func (p *AnalyticProvider) Longitude(body Body, jd float64) (float64, error) {
	switch body {
	case Sun:
		return sunLongitude(jd), nil
	case Moon:
		return moonLongitude(jd), nil
	case Mercury:
		return meanLongitude(jd, 252.250906, 149472.6746358), nil
	case Venus:
		return meanLongitude(jd, 181.979801, 58517.8156760), nil
	case Mars:
		return meanLongitude(jd, 355.433000, 19140.2993039), nil
	default:
		return 0, fmt.Errorf("no longitude model for body %q", body)
	}
}

// AscendantLongitude implements PositionProvider. Sidereal time follows the
// usual polynomial in T; the horizon intersection uses the standard atan2
// form with mean obliquity.
func (p *AnalyticProvider) AscendantLongitude(jd, latitude, longitude float64) float64 {
	t := JulianCenturies(jd)
	lmst := Normalize(greenwichSiderealTime(jd) + longitude)

	obliquity := radians(23.4392911 - 0.0130042*t)
	ramc := radians(lmst)
	lat := radians(latitude)

	asc := math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(obliquity) + math.Tan(lat)*math.Sin(obliquity)))
	return degrees(asc)
}

// sunLongitude is the solar mean longitude corrected by a three-harmonic
// equation of center on the mean anomaly.
func sunLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	meanLon := 280.46646 + 36000.76983*t + 0.0003032*t*t
	meanAnomaly := radians(357.52911 + 35999.05029*t - 0.0001537*t*t)

	center := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(meanAnomaly) +
		(0.019993-0.000101*t)*math.Sin(2*meanAnomaly) +
		0.000289*math.Sin(3*meanAnomaly)

	return meanLon + center
}

// moonLongitude is a four-term truncation of the lunar theory: the mean
// longitude plus the largest anomaly, evection and variation terms.
func moonLongitude(jd float64) float64 {
	t := JulianCenturies(jd)

	meanLon := 218.3164477 + 481267.88123421*t
	elongation := radians(297.8501921 + 445267.1114034*t)
	moonAnomaly := radians(134.9633964 + 477198.8675055*t)

	correction := 6.288774*math.Sin(moonAnomaly) +
		1.274027*math.Sin(2*elongation-moonAnomaly) +
		0.658314*math.Sin(2*elongation) +
		0.213618*math.Sin(2*moonAnomaly)

	return meanLon + correction
}

// meanLongitude is the linear model used for the inner planets: no
// eccentricity or perturbation correction.
func meanLongitude(jd, atEpoch, ratePerCentury float64) float64 {
	return atEpoch + ratePerCentury*JulianCenturies(jd)
}

// greenwichSiderealTime returns GMST in degrees.
func greenwichSiderealTime(jd float64) float64 {
	t := JulianCenturies(jd)
	return 280.46061837 + 360.98564736629*(jd-j2000) +
		0.000387933*t*t - t*t*t/38710000
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
