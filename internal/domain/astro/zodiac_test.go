package astro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDominantElementMajority(t *testing.T) {
	require.Equal(t, Water, DominantElement([]Sign{Cancer, Scorpio, Aries}))
	require.Equal(t, Fire, DominantElement([]Sign{Aries, Leo, Taurus, Gemini}))
}

func TestDominantElementTieBreak(t *testing.T) {
	// Three distinct elements at one count each: Fire wins by order.
	require.Equal(t, Fire, DominantElement([]Sign{Aries, Taurus, Gemini}))
	// Earth and Air tied at two: Earth precedes Air.
	require.Equal(t, Earth, DominantElement([]Sign{Taurus, Virgo, Gemini, Libra}))
	// Air and Water tied, no Fire or Earth present: Air precedes Water.
	require.Equal(t, Air, DominantElement([]Sign{Gemini, Aquarius, Cancer, Pisces}))
}

func TestSignTables(t *testing.T) {
	require.Len(t, Signs(), 12)
	require.Equal(t, "Aries", Aries.String())
	require.Equal(t, "Pisces", Pisces.String())
	require.Equal(t, Fire, Sagittarius.Element())
	require.Equal(t, Water, Scorpio.Element())
	require.Equal(t, "Mars", Aries.Ruler())
	require.Equal(t, "Sun", Leo.Ruler())
	require.Equal(t, "Moon", Cancer.Ruler())
	require.Equal(t, "Neptune", Pisces.Ruler())
}
