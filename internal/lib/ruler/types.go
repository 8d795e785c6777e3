package ruler

import (
	"go.uber.org/zap"

	"github.com/dpup/mapruler/internal/lib/geo"
)

// Layer names a group of drawn primitives on the host surface
type Layer string

const (
	LayerPoints  Layer = "points"  // permanent vertex markers
	LayerLines   Layer = "lines"   // permanent segment lines
	LayerPreview Layer = "preview" // live cursor line and marker, replaced on every move
)

// EventKind names a host event the controller can receive
type EventKind string

const (
	EventToggle      EventKind = "toggle"
	EventClick       EventKind = "click"
	EventMove        EventKind = "mousemove"
	EventDoubleClick EventKind = "dblclick"
	EventKeyDown     EventKind = "keydown"
)

// measureEvents are subscribed while a session is active
var measureEvents = []EventKind{EventClick, EventMove, EventDoubleClick, EventKeyDown}

// EscapeKeyCode is the key code that closes a path
const EscapeKeyCode = 27

// Event is a raw host event
type Event struct {
	Kind    EventKind `json:"kind"`
	Point   geo.Point `json:"point"`
	Key     string    `json:"key,omitempty"`
	KeyCode int       `json:"key_code,omitempty"`
}

// IsEscape reports whether a keyboard event is the escape key
func (e Event) IsEscape() bool {
	return e.KeyCode == EscapeKeyCode || e.Key == "Escape" || e.Key == "Esc"
}

// MarkerStyle controls how point markers are drawn
type MarkerStyle struct {
	Color  string  `json:"color" yaml:"color"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// LineStyle controls how segment lines are drawn
type LineStyle struct {
	Color     string  `json:"color" yaml:"color"`
	DashArray string  `json:"dash_array,omitempty" yaml:"dash_array"`
	Weight    float64 `json:"weight,omitempty" yaml:"weight"`
}

// Options configures a Session
type Options struct {
	LengthUnits []geo.UnitSpec
	AngleUnit   geo.UnitSpec
	Marker      MarkerStyle
	Line        LineStyle

	// OnToggle observes every activation change
	OnToggle func(active bool)

	Logger *zap.Logger
}

// DefaultOptions mirrors the stock control: kilometres and degrees with two
// decimals, small red markers and dotted red lines.
func DefaultOptions() Options {
	return Options{
		LengthUnits: []geo.UnitSpec{{Display: "km", Decimals: 2}},
		AngleUnit:   geo.UnitSpec{Display: "°", Decimals: 2},
		Marker:      MarkerStyle{Color: "red", Radius: 2},
		Line:        LineStyle{Color: "red", DashArray: "1,6"},
	}
}

// Path is a snapshot of a measured path
type Path struct {
	Points      []geo.Point       `json:"points"`
	Segments    []geo.Measurement `json:"segments"` // Segments[i] spans Points[i] to Points[i+1]
	Totals      []float64         `json:"totals"`
	LengthUnits []geo.UnitSpec    `json:"length_units"`
	AngleUnit   geo.UnitSpec      `json:"angle_unit"`
}

// Cumulative returns the running distance totals at vertex i
func (p Path) Cumulative(i int) []float64 {
	totals := make([]float64, len(p.LengthUnits))
	for s := 0; s < i && s < len(p.Segments); s++ {
		for u, d := range p.Segments[s].Distances {
			totals[u] += d
		}
	}
	return totals
}

// Empty reports whether the path has no committed points
func (p Path) Empty() bool {
	return len(p.Points) == 0
}
