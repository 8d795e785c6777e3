package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kilometres = UnitSpec{Display: "km", Decimals: 2}
	miles      = UnitSpec{Display: "mi", Decimals: 2, Factor: 0.621371}
	degrees    = UnitSpec{Display: "°", Decimals: 2}
	mils       = UnitSpec{Display: "mil", Decimals: 0, Factor: 6400}
	gradians   = UnitSpec{Display: "gon", Decimals: 1, Factor: 400}

	// Highway 4 reference points
	angelsCamp = Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys    = Point{Latitude: 38.1391, Longitude: -120.4561}
)

func TestCompute_OneDegreeEastAtEquator(t *testing.T) {
	m := Compute(Point{0, 0}, Point{0, 1}, []UnitSpec{kilometres}, degrees)

	assert.InDelta(t, 90.0, m.Bearing, 1e-9)
	require.Len(t, m.Distances, 1)
	assert.InDelta(t, 111.19, m.Distances[0], 0.01)
}

func TestCompute_CompassBearings(t *testing.T) {
	origin := Point{0, 0}
	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"north", Point{1, 0}, 0},
		{"north east", Point{1, 1}, 45},
		{"east", Point{0, 1}, 90},
		{"south east", Point{-1, 1}, 135},
		{"south", Point{-1, 0}, 180},
		{"south west", Point{-1, -1}, 225},
		{"west", Point{0, -1}, 270},
		{"north west", Point{1, -1}, 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(origin, tt.to, []UnitSpec{kilometres}, degrees)
			assert.InDelta(t, tt.want, m.Bearing, 0.01)
		})
	}
}

func TestCompute_AngleUnitSpan(t *testing.T) {
	west := Point{0, -1}

	m := Compute(Point{0, 0}, west, []UnitSpec{kilometres}, mils)
	assert.InDelta(t, 4800, m.Bearing, 1e-6, "west is three quarters of 6400 mils")

	m = Compute(Point{0, 0}, west, []UnitSpec{kilometres}, gradians)
	assert.InDelta(t, 300, m.Bearing, 1e-6, "west is three quarters of 400 gradians")

	m = Compute(Point{0, 0}, Point{-1, 0}, []UnitSpec{kilometres}, mils)
	assert.InDelta(t, 3200, m.Bearing, 1e-6)
}

func TestCompute_BearingAlwaysInHalfOpenRange(t *testing.T) {
	points := []Point{
		{0, 0}, {0, 180}, {0, -180}, {89.9, 10}, {-89.9, -10},
		{45, 45}, {-45, 135}, {10, -179.9}, {10, 179.9}, {0, 1e-12}, {-1e-12, 0},
		angelsCamp, murphys,
	}

	for _, unit := range []UnitSpec{degrees, mils, gradians} {
		span := SpanOf(unit)
		for _, from := range points {
			for _, to := range points {
				m := Compute(from, to, []UnitSpec{kilometres}, unit)
				assert.GreaterOrEqual(t, m.Bearing, 0.0, "%v -> %v", from, to)
				assert.Less(t, m.Bearing, span, "%v -> %v", from, to)
			}
		}
	}
}

func TestCompute_SamePointIsZero(t *testing.T) {
	for _, p := range []Point{{0, 0}, angelsCamp, {-33.9399, 151.1753}, {90, 0}} {
		m := Compute(p, p, []UnitSpec{kilometres, miles}, degrees)
		for i, d := range m.Distances {
			assert.Equal(t, 0.0, d, "unit %d", i)
		}
	}
}

func TestCompute_DistanceScalesWithFactor(t *testing.T) {
	half := UnitSpec{Display: "half", Factor: 0.5}
	triple := UnitSpec{Display: "triple", Factor: 3}

	m := Compute(angelsCamp, murphys, []UnitSpec{kilometres, miles, half, triple}, degrees)
	require.Len(t, m.Distances, 4)

	assert.InDelta(t, 11.05, m.Distances[0], 0.1, "Angels Camp to Murphys is about 11 km")
	assert.InDelta(t, m.Distances[0]*0.621371, m.Distances[1], 1e-9)
	assert.InDelta(t, m.Distances[1]*(3/0.621371), m.Distances[3], 1e-9)
	assert.InDelta(t, m.Distances[3]*(0.5/3), m.Distances[2], 1e-9)
}

func TestCompute_NaNPropagates(t *testing.T) {
	m := Compute(Point{math.NaN(), 0}, Point{1, 1}, []UnitSpec{kilometres}, degrees)
	assert.True(t, math.IsNaN(m.Distances[0]))
	assert.True(t, math.IsNaN(m.Bearing))
}

func TestCompute_MatchesOrb(t *testing.T) {
	pairs := [][2]Point{
		{angelsCamp, murphys},
		{{40.6413, -73.7781}, {33.9425, -118.4081}}, // JFK to LAX
		{{51.4700, -0.4543}, {-33.9399, 151.1753}},  // LHR to SYD
		{{25.2532, 55.3657}, {51.4700, -0.4543}},    // DXB to LHR
	}

	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		m := Compute(from, to, []UnitSpec{kilometres}, degrees)

		a := orb.Point{from.Longitude, from.Latitude}
		b := orb.Point{to.Longitude, to.Latitude}

		// orb uses a different radius, so compare central angles
		wantAngle := orbgeo.DistanceHaversine(a, b) / orb.EarthRadius
		assert.InDelta(t, wantAngle, m.Distances[0]/EarthRadiusKm, 1e-9)

		wantBearing := orbgeo.Bearing(a, b)
		if wantBearing < 0 {
			wantBearing += 360
		}
		assert.InDelta(t, wantBearing, m.Bearing, 1e-6)
	}
}

func TestPathLength(t *testing.T) {
	units := []UnitSpec{kilometres, miles}

	assert.Equal(t, []float64{0, 0}, PathLength(nil, units))
	assert.Equal(t, []float64{0, 0}, PathLength([]Point{angelsCamp}, units))

	path := []Point{{0, 0}, {0, 1}, {0, 2}}
	total := PathLength(path, units)
	one := Compute(Point{0, 0}, Point{0, 1}, units, degrees)
	assert.InDelta(t, 2*one.Distances[0], total[0], 1e-9)
	assert.InDelta(t, 2*one.Distances[1], total[1], 1e-9)
}

func TestRadiusAndSpanDefaults(t *testing.T) {
	assert.Equal(t, EarthRadiusKm, RadiusOf(kilometres))
	assert.InDelta(t, 3958.76, RadiusOf(miles), 0.01)
	assert.Equal(t, FullCircleDegrees, SpanOf(degrees))
	assert.Equal(t, 6400.0, SpanOf(mils))
}

func TestMeasurement_Clone(t *testing.T) {
	m := Measurement{Bearing: 12, Distances: []float64{1, 2}}
	c := m.Clone()
	c.Distances[0] = 99
	assert.Equal(t, 1.0, m.Distances[0])
}
