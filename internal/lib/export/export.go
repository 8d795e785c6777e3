package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-kml/v2"

	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
)

// Format identifies an export encoding
type Format string

const (
	FormatKML      Format = "kml"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

// ErrEmptyPath is returned when there is nothing to export
var ErrEmptyPath = errors.New("path has no points")

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatKML, FormatGeoJSON, FormatPolyline:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want kml, geojson or polyline)", s)
	}
}

// Write encodes path in the given format
func Write(w io.Writer, format Format, path ruler.Path, name string) error {
	switch format {
	case FormatKML:
		return KML(w, path, name)
	case FormatGeoJSON:
		return GeoJSON(w, path, name)
	case FormatPolyline:
		encoded, err := Polyline(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, encoded)
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// KML writes a document with the path as a LineString and one Point
// placemark per vertex carrying the running totals.
func KML(w io.Writer, path ruler.Path, name string) error {
	if path.Empty() {
		return ErrEmptyPath
	}

	coords := make([]kml.Coordinate, len(path.Points))
	for i, p := range path.Points {
		coords[i] = kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
	}

	children := []kml.Element{
		kml.Name(name),
		kml.Description(describeTotals(path, path.Totals)),
	}
	if len(path.Points) > 1 {
		children = append(children, kml.Placemark(
			kml.Name(name),
			kml.Description(describeTotals(path, path.Totals)),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coords...),
			),
		))
	}
	for i, c := range coords {
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("Point %d", i+1)),
			kml.Description(describeVertex(path, i)),
			kml.Point(kml.Coordinates(c)),
		))
	}

	if err := kml.KML(kml.Document(children...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write KML: %w", err)
	}
	return nil
}

// GeoJSON writes a FeatureCollection with the path LineString followed by
// one Point feature per vertex.
func GeoJSON(w io.Writer, path ruler.Path, name string) error {
	if path.Empty() {
		return ErrEmptyPath
	}

	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, len(path.Points))
	for i, p := range path.Points {
		line[i] = orb.Point{p.Longitude, p.Latitude}
	}
	if len(line) > 1 {
		f := geojson.NewFeature(line)
		f.Properties["name"] = name
		f.Properties["totals"] = unitValues(path.LengthUnits, path.Totals)
		fc.Append(f)
	}

	for i, pt := range line {
		f := geojson.NewFeature(pt)
		f.Properties["index"] = i
		f.Properties["distance"] = unitValues(path.LengthUnits, path.Cumulative(i))
		if i > 0 && i-1 < len(path.Segments) {
			f.Properties["bearing"] = path.Segments[i-1].Bearing
			f.Properties["bearing_unit"] = path.AngleUnit.Display
		}
		fc.Append(f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}

// Polyline encodes the path vertices as a Google polyline string
func Polyline(path ruler.Path) (string, error) {
	if path.Empty() {
		return "", ErrEmptyPath
	}
	return geo.NewPolyline(path.Points).EncodedPolyline, nil
}

func unitValues(units []geo.UnitSpec, values []float64) map[string]float64 {
	out := make(map[string]float64, len(units))
	for i, u := range units {
		if i < len(values) {
			out[u.Display] = values[i]
		}
	}
	return out
}

func describeTotals(path ruler.Path, totals []float64) string {
	parts := make([]string, 0, len(path.LengthUnits))
	for i, u := range path.LengthUnits {
		if i < len(totals) {
			parts = append(parts, fmt.Sprintf("%.*f %s", u.Decimals, totals[i], u.Display))
		}
	}
	return "Distance: " + strings.Join(parts, ruler.DistanceSeparator)
}

func describeVertex(path ruler.Path, i int) string {
	text := describeTotals(path, path.Cumulative(i))
	if i > 0 && i-1 < len(path.Segments) {
		u := path.AngleUnit
		text = fmt.Sprintf("Bearing: %.*f %s\n%s", u.Decimals, path.Segments[i-1].Bearing, u.Display, text)
	}
	return text
}
