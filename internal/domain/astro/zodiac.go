package astro

// Sign is one of the twelve zodiac signs in ecliptic order starting at Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signElements = [12]Element{
	Fire, Earth, Air, Water, Fire, Earth,
	Air, Water, Fire, Earth, Air, Water,
}

// signRulers maps each sign to its modern ruling body.
var signRulers = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Pluto", "Jupiter", "Saturn", "Uranus", "Neptune",
}

// elementOrder fixes the tie-break order used by DominantElement.
var elementOrder = [4]Element{Fire, Earth, Air, Water}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return "Unknown"
	}
	return signNames[s]
}

// Element returns the classical element associated with the sign.
func (s Sign) Element() Element {
	return signElements[s]
}

// Ruler returns the name of the body that rules the sign.
func (s Sign) Ruler() string {
	return signRulers[s]
}

// Signs returns the twelve signs in ecliptic order.
func Signs() []Sign {
	out := make([]Sign, 12)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// DominantElement tallies the element of every sign and returns the most
// frequent one. Ties resolve in Fire, Earth, Air, Water order, so the
// result is deterministic for any input.
func DominantElement(signs []Sign) Element {
	counts := make(map[Element]int, 4)
	for _, s := range signs {
		counts[s.Element()]++
	}
	best := Fire
	bestCount := -1
	for _, el := range elementOrder {
		if counts[el] > bestCount {
			best = el
			bestCount = counts[el]
		}
	}
	return best
}
