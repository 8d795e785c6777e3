package geo

import "math"

// EarthRadiusKm is the mean Earth radius that length unit factors rescale
const EarthRadiusKm = 6371.0

// FullCircleDegrees is the angle span used when the angle unit has no factor
const FullCircleDegrees = 360.0

const toRadians = math.Pi / 180

// RadiusOf returns the sphere radius expressed in the given length unit
func RadiusOf(unit UnitSpec) float64 {
	if unit.Factor != 0 {
		return EarthRadiusKm * unit.Factor
	}
	return EarthRadiusKm
}

// SpanOf returns the full circle expressed in the given angle unit
func SpanOf(unit UnitSpec) float64 {
	if unit.Factor != 0 {
		return unit.Factor
	}
	return FullCircleDegrees
}

// Compute calculates the initial great-circle bearing from one point to another
// and the haversine distance between them in every configured length unit.
//
// No validation is performed. Degenerate input yields a determinate bearing
// (0 for identical points) and NaN input propagates NaN.
func Compute(from, to Point, lengthUnits []UnitSpec, angleUnit UnitSpec) Measurement {
	lat1 := from.Latitude * toRadians
	lat2 := to.Latitude * toRadians
	dlat := (to.Latitude - from.Latitude) * toRadians
	dlon := (to.Longitude - from.Longitude) * toRadians

	return Measurement{
		Bearing:   initialBearing(lat1, lat2, dlon, SpanOf(angleUnit)),
		Distances: distances(centralAngle(lat1, lat2, dlat, dlon), lengthUnits),
	}
}

// initialBearing returns the bearing in [0, span)
func initialBearing(lat1, lat2, dlon, span float64) float64 {
	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)

	bearing := math.Atan2(y, x) * (span / 2) / math.Pi
	if bearing < 0 {
		bearing += span
	}
	// A tiny negative raw value can round up to exactly span after the wrap
	if bearing >= span {
		bearing = 0
	}
	return bearing
}

// centralAngle is the haversine angular distance in radians
func centralAngle(lat1, lat2, dlat, dlon float64) float64 {
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func distances(c float64, units []UnitSpec) []float64 {
	out := make([]float64, len(units))
	for i, unit := range units {
		out[i] = RadiusOf(unit) * c
	}
	return out
}

// PathLength sums the segment distances of a path in every length unit.
// Paths with fewer than two points have zero length.
func PathLength(points []Point, lengthUnits []UnitSpec) []float64 {
	total := make([]float64, len(lengthUnits))
	for i := 1; i < len(points); i++ {
		segment := Compute(points[i-1], points[i], lengthUnits, UnitSpec{})
		for j, d := range segment.Distances {
			total[j] += d
		}
	}
	return total
}
