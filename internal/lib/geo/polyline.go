package geo

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"
)

// EncodePolyline encodes a point sequence as a Google polyline string
func EncodePolyline(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline decodes a Google polyline string to a point sequence
func DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{Latitude: coord[0], Longitude: coord[1]}
	}
	return points, nil
}

// NewPolyline builds a Polyline carrying both the points and their encoding
func NewPolyline(points []Point) Polyline {
	copied := make([]Point, len(points))
	copy(copied, points)
	return Polyline{
		EncodedPolyline: EncodePolyline(copied),
		Points:          copied,
	}
}
