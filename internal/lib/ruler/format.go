package ruler

import (
	"strconv"
	"strings"

	"github.com/dpup/mapruler/internal/lib/geo"
)

// DistanceSeparator joins distances in different units
const DistanceSeparator = " / "

// formatter renders tooltip text for the configured units
type formatter struct {
	lengthUnits []geo.UnitSpec
	angleUnit   geo.UnitSpec
}

func formatValue(v float64, unit geo.UnitSpec) string {
	s := strconv.FormatFloat(v, 'f', unit.Decimals, 64)
	if unit.Display == "" {
		return s
	}
	return s + " " + unit.Display
}

// Distances renders one value per length unit, e.g. "1.20 km / 0.75 mi"
func (f formatter) Distances(distances []float64) string {
	parts := make([]string, 0, len(distances))
	for i, d := range distances {
		if i >= len(f.lengthUnits) {
			break
		}
		parts = append(parts, formatValue(d, f.lengthUnits[i]))
	}
	return strings.Join(parts, DistanceSeparator)
}

// Summary renders the bearing and distance lines
func (f formatter) Summary(bearing float64, distances []float64) string {
	return "Bearing: " + formatValue(bearing, f.angleUnit) + "\n" +
		"Distance: " + f.Distances(distances)
}

// Preview renders a live tooltip; increment is appended when set
func (f formatter) Preview(bearing float64, total, increment []float64) string {
	text := f.Summary(bearing, total)
	if increment != nil {
		text += "\n(+" + f.Distances(increment) + ")"
	}
	return text
}
