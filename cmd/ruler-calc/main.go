package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dpup/mapruler/internal/config"
	"github.com/dpup/mapruler/internal/lib/geo"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "measure":
		handleMeasure()
	case "path-length":
		handlePathLength()
	case "encode-polyline":
		handleEncodePolyline()
	case "decode-polyline":
		handleDecodePolyline()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// unitFlags registers the shared --units and --angle flags
func unitFlags(fs *flag.FlagSet) (*string, *string) {
	units := fs.String("units", "km", "Comma separated length presets (km, m, mi, nmi, ft)")
	angle := fs.String("angle", "deg", "Angle preset (deg, mil, grad)")
	return units, angle
}

func resolveUnits(units, angle string) ([]geo.UnitSpec, geo.UnitSpec) {
	cfg := config.DefaultConfig()
	cfg.Ruler.LengthPresets = strings.Split(units, ",")
	cfg.Ruler.AnglePreset = angle

	lengthUnits, angleUnit, err := cfg.Units()
	if err != nil {
		log.Fatalf("Invalid units: %v", err)
	}
	return lengthUnits, angleUnit
}

func handleMeasure() {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	lat1 := fs.Float64("lat1", 0, "Latitude of first point")
	lng1 := fs.Float64("lng1", 0, "Longitude of first point")
	lat2 := fs.Float64("lat2", 0, "Latitude of second point")
	lng2 := fs.Float64("lng2", 0, "Longitude of second point")
	units, angle := unitFlags(fs)

	fs.Parse(os.Args[2:])

	if *lat1 == 0 && *lng1 == 0 && *lat2 == 0 && *lng2 == 0 {
		fmt.Println("Example usage:")
		fmt.Println("  ruler-calc measure --lat1 38.0675 --lng1 -120.5436 --lat2 38.1391 --lng2 -120.4561 --units km,mi")
		fmt.Println("  (Bearing and distance from Angels Camp to Murphys)")
		os.Exit(1)
	}

	lengthUnits, angleUnit := resolveUnits(*units, *angle)
	p1 := geo.Point{Latitude: *lat1, Longitude: *lng1}
	p2 := geo.Point{Latitude: *lat2, Longitude: *lng2}

	m := geo.Compute(p1, p2, lengthUnits, angleUnit)

	fmt.Printf("Measurement:\n")
	fmt.Printf("  From: (%.6f, %.6f)\n", p1.Latitude, p1.Longitude)
	fmt.Printf("  To: (%.6f, %.6f)\n", p2.Latitude, p2.Longitude)
	fmt.Printf("  Bearing: %.*f %s\n", angleUnit.Decimals, m.Bearing, angleUnit.Display)
	for i, u := range lengthUnits {
		fmt.Printf("  Distance: %.*f %s\n", u.Decimals, m.Distances[i], u.Display)
	}
}

func handlePathLength() {
	fs := flag.NewFlagSet("path-length", flag.ExitOnError)
	points := fs.String("points", "", "Semicolon separated lat,lng pairs")
	encoded := fs.String("polyline", "", "Encoded polyline string (instead of --points)")
	units, angle := unitFlags(fs)

	fs.Parse(os.Args[2:])

	var path []geo.Point
	var err error
	switch {
	case *encoded != "":
		path, err = geo.DecodePolyline(*encoded)
	case *points != "":
		path, err = geo.ParsePoints(*points)
	default:
		fmt.Println("Example usage:")
		fmt.Println(`  ruler-calc path-length --points "38.0675,-120.5436;38.1391,-120.4561;38.2458,-120.3486"`)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error reading path: %v", err)
	}

	lengthUnits, angleUnit := resolveUnits(*units, *angle)

	fmt.Printf("Path with %d points:\n", len(path))
	for i := 1; i < len(path); i++ {
		m := geo.Compute(path[i-1], path[i], lengthUnits, angleUnit)
		fmt.Printf("  Segment %d: bearing %.*f %s, %.*f %s\n", i,
			angleUnit.Decimals, m.Bearing, angleUnit.Display,
			lengthUnits[0].Decimals, m.Distances[0], lengthUnits[0].Display)
	}
	total := geo.PathLength(path, lengthUnits)
	for i, u := range lengthUnits {
		fmt.Printf("  Total: %.*f %s\n", u.Decimals, total[i], u.Display)
	}
}

func handleEncodePolyline() {
	fs := flag.NewFlagSet("encode-polyline", flag.ExitOnError)
	points := fs.String("points", "", "Semicolon separated lat,lng pairs")

	fs.Parse(os.Args[2:])

	path, err := geo.ParsePoints(*points)
	if err != nil {
		log.Fatalf("Error parsing points: %v", err)
	}
	fmt.Println(geo.EncodePolyline(path))
}

func handleDecodePolyline() {
	fs := flag.NewFlagSet("decode-polyline", flag.ExitOnError)
	polylineStr := fs.String("polyline", "", "Encoded polyline string")
	verbose := fs.Bool("verbose", false, "Show all decoded points")

	fs.Parse(os.Args[2:])

	if *polylineStr == "" {
		fmt.Println("Example usage:")
		fmt.Println("  ruler-calc decode-polyline --polyline \"_p~iF~ps|U_ulLnnqC_mqNvxq`@\" --verbose")
		os.Exit(1)
	}

	points, err := geo.DecodePolyline(*polylineStr)
	if err != nil {
		log.Fatalf("Error decoding polyline: %v", err)
	}

	fmt.Printf("Polyline decoded successfully:\n")
	fmt.Printf("  Points: %d\n", len(points))
	if len(points) > 0 {
		fmt.Printf("  Start: (%.6f, %.6f)\n", points[0].Latitude, points[0].Longitude)
		if len(points) > 1 {
			fmt.Printf("  End: (%.6f, %.6f)\n", points[len(points)-1].Latitude, points[len(points)-1].Longitude)
		}
	}

	if *verbose {
		for i, point := range points {
			fmt.Printf("    %d: (%.6f, %.6f)\n", i+1, point.Latitude, point.Longitude)
		}
	}
}

func printUsage() {
	fmt.Printf(`ruler-calc - Bearing and distance calculator

USAGE:
    ruler-calc <command> [options]

COMMANDS:
    measure            Bearing and great-circle distance between two points
    path-length        Per-segment and total length of a path
    encode-polyline    Encode lat,lng pairs as a Google polyline string
    decode-polyline    Decode Google polyline string to coordinates
    help               Show this help message

EXAMPLES:
    # Angels Camp to Murphys in kilometres and miles
    ruler-calc measure --lat1 38.0675 --lng1 -120.5436 --lat2 38.1391 --lng2 -120.4561 --units km,mi

    # Same bearing in mils
    ruler-calc measure --lat1 38.0675 --lng1 -120.5436 --lat2 38.1391 --lng2 -120.4561 --angle mil

    # Length of a three point path in nautical miles
    ruler-calc path-length --points "38.0675,-120.5436;38.1391,-120.4561;38.2458,-120.3486" --units nmi
`)
}
