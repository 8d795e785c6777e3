package geo

// Point represents a geographic coordinate in degrees
type Point struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lng" yaml:"lng"`
}

// Equal reports whether both coordinates match exactly
func (p Point) Equal(other Point) bool {
	return p.Latitude == other.Latitude && p.Longitude == other.Longitude
}

// Polyline represents an encoded polyline with optional decoded points
type Polyline struct {
	EncodedPolyline string  `json:"encoded_polyline"`
	Points          []Point `json:"points"`
}

// UnitSpec describes how a length or angle is scaled and displayed.
//
// For a length unit Factor rescales the mean Earth radius given in kilometres
// (0.621371 yields miles). For the angle unit Factor is the span of a full
// circle (6400 for NATO mils, 400 for gradians). A zero Factor means unset.
type UnitSpec struct {
	Display  string  `json:"display" yaml:"display" koanf:"display"`
	Decimals int     `json:"decimals" yaml:"decimals" koanf:"decimals"`
	Factor   float64 `json:"factor,omitempty" yaml:"factor,omitempty" koanf:"factor"`
}

// Measurement is the bearing and per-unit distance between two points
type Measurement struct {
	Bearing   float64   `json:"bearing"`
	Distances []float64 `json:"distances"` // one per length unit, in configured order
}

// Clone returns a deep copy
func (m Measurement) Clone() Measurement {
	distances := make([]float64, len(m.Distances))
	copy(distances, m.Distances)
	return Measurement{Bearing: m.Bearing, Distances: distances}
}
