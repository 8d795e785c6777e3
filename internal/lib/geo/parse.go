package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoints parses "lat,lng;lat,lng;..." into points
func ParsePoints(s string) ([]Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty coordinate string")
	}

	pairs := strings.Split(s, ";")
	points := make([]Point, 0, len(pairs))

	for _, pair := range pairs {
		coords := strings.Split(strings.TrimSpace(pair), ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair: %q", pair)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", coords[0], err)
		}

		lng, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", coords[1], err)
		}

		points = append(points, Point{Latitude: lat, Longitude: lng})
	}

	return points, nil
}
