package natal

import "time"

// Request captures the payload accepted by the chart service.
type Request struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birthDate"`
	BirthTime  string `json:"birthTime,omitempty"`
	BirthPlace string `json:"birthPlace"`
}

// BodyPosition is one computed chart point. Sign and DegreeInSign are pure
// functions of EclipticLongitude and are never set independently.
type BodyPosition struct {
	Body              string  `json:"body"`
	EclipticLongitude float64 `json:"eclipticLongitude"`
	Sign              string  `json:"sign"`
	DegreeInSign      float64 `json:"degreeInSign"`
}

// Response is the natal chart serialized back to API consumers. It is
// immutable once assembled; identical birth input yields an identical
// response byte for byte.
type Response struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	BirthDate       string       `json:"birthDate"`
	BirthTime       string       `json:"birthTime"`
	BirthPlace      string       `json:"birthPlace"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	JulianDay       float64      `json:"julianDay"`
	Sun             BodyPosition `json:"sun"`
	Moon            BodyPosition `json:"moon"`
	Mercury         BodyPosition `json:"mercury"`
	Venus           BodyPosition `json:"venus"`
	Mars            BodyPosition `json:"mars"`
	Ascendant       BodyPosition `json:"ascendant"`
	DominantElement string       `json:"dominantElement"`
	RulingBody      string       `json:"rulingBody"`
	Summary         string       `json:"summary"`
}

// Coordinates is the geocoding collaborator's answer for a place name.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// ChartRecord is the persisted form of a computed chart.
type ChartRecord struct {
	ID         string
	Name       string
	BirthDate  string
	BirthTime  string
	BirthPlace string
	Latitude   float64
	Longitude  float64
	Chart      Response
	CreatedAt  time.Time
}

// SignInfo is one row of the static zodiac reference table.
type SignInfo struct {
	Sign    string `json:"sign"`
	Element string `json:"element"`
	Ruler   string `json:"ruler"`
}

// Config wires runtime dependencies for the chart domain.
type Config struct {
	CacheTTL time.Duration
}
