package astro

import "math"

// Normalize reduces any angle in degrees to the canonical [0, 360) range.
// Negative inputs and inputs beyond a full circle are handled: -15 -> 345,
// 375 -> 15, 720 -> 0.
func Normalize(degrees float64) float64 {
	reduced := math.Mod(degrees, 360)
	return math.Mod(reduced+360, 360)
}

// SignOf maps an ecliptic longitude to its zodiac sign. The angle is
// normalized first, so any finite input is valid.
func SignOf(degrees float64) Sign {
	index := int(math.Floor(Normalize(degrees) / 30))
	// Float spill at exactly 360 lands on index 12.
	if index > 11 {
		index = 11
	}
	return Sign(index)
}

// DegreeInSign returns the position within the sign, in [0, 30).
func DegreeInSign(degrees float64) float64 {
	return math.Mod(Normalize(degrees), 30)
}
