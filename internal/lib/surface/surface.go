package surface

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
)

// DefaultCursor is the map cursor before anything changes it
const DefaultCursor = "grab"

// Marker is a drawn point marker
type Marker struct {
	At      geo.Point         `json:"at"`
	Style   ruler.MarkerStyle `json:"style"`
	Tooltip *ruler.Tooltip    `json:"tooltip,omitempty"`
}

// Line is a drawn two-point polyline
type Line struct {
	From  geo.Point       `json:"from"`
	To    geo.Point       `json:"to"`
	Style ruler.LineStyle `json:"style"`
}

// Layer holds the primitives drawn into one named group
type Layer struct {
	Markers []Marker `json:"markers"`
	Lines   []Line   `json:"lines"`
}

func (l *Layer) clone() Layer {
	return Layer{
		Markers: append([]Marker(nil), l.Markers...),
		Lines:   append([]Line(nil), l.Lines...),
	}
}

// Surface is an in-memory map drawing surface. It applies session commands
// and can be read concurrently from other goroutines.
type Surface struct {
	layers          map[ruler.Layer]*Layer
	cursor          string
	savedCursors    []string
	doubleClickZoom bool
	subscriptions   map[ruler.EventKind]bool
	applied         int
	mutex           sync.RWMutex
	logger          *zap.Logger
}

// New creates an empty surface with double click zoom enabled
func New(logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{
		layers:          make(map[ruler.Layer]*Layer),
		cursor:          DefaultCursor,
		doubleClickZoom: true,
		subscriptions:   make(map[ruler.EventKind]bool),
		logger:          logger.Named("surface"),
	}
}

// Apply executes a single command
func (s *Surface) Apply(cmd ruler.Command) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.applied++
	switch cmd.Kind {
	case ruler.CmdAddMarker:
		if len(cmd.Points) != 1 {
			s.logger.Warn("marker needs exactly one point", zap.Int("points", len(cmd.Points)))
			return
		}
		m := Marker{At: cmd.Points[0], Tooltip: cmd.Tooltip}
		if cmd.Marker != nil {
			m.Style = *cmd.Marker
		}
		layer := s.layer(cmd.Layer)
		layer.Markers = append(layer.Markers, m)

	case ruler.CmdAddLine:
		if len(cmd.Points) != 2 {
			s.logger.Warn("line needs exactly two points", zap.Int("points", len(cmd.Points)))
			return
		}
		l := Line{From: cmd.Points[0], To: cmd.Points[1]}
		if cmd.Line != nil {
			l.Style = *cmd.Line
		}
		layer := s.layer(cmd.Layer)
		layer.Lines = append(layer.Lines, l)

	case ruler.CmdClearLayer:
		delete(s.layers, cmd.Layer)

	case ruler.CmdSaveCursor:
		s.savedCursors = append(s.savedCursors, s.cursor)

	case ruler.CmdSetCursor:
		s.cursor = cmd.Cursor

	case ruler.CmdRestoreCursor:
		if n := len(s.savedCursors); n > 0 {
			s.cursor = s.savedCursors[n-1]
			s.savedCursors = s.savedCursors[:n-1]
		} else {
			s.cursor = DefaultCursor
		}

	case ruler.CmdSetDoubleClickZoom:
		s.doubleClickZoom = cmd.Enabled

	case ruler.CmdSubscribe:
		for _, ev := range cmd.Events {
			s.subscriptions[ev] = true
		}

	case ruler.CmdUnsubscribe:
		for _, ev := range cmd.Events {
			delete(s.subscriptions, ev)
		}

	default:
		s.logger.Warn("unknown command", zap.String("kind", string(cmd.Kind)))
	}
}

// layer returns the named layer, creating it on first use. Callers hold the lock.
func (s *Surface) layer(name ruler.Layer) *Layer {
	l, ok := s.layers[name]
	if !ok {
		l = &Layer{}
		s.layers[name] = l
	}
	return l
}

// Layer returns a copy of the named layer
func (s *Surface) Layer(name ruler.Layer) Layer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	l, ok := s.layers[name]
	if !ok {
		return Layer{}
	}
	return l.clone()
}

// Cursor returns the current cursor style
func (s *Surface) Cursor() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.cursor
}

// DoubleClickZoom reports whether double click zoom is enabled
func (s *Surface) DoubleClickZoom() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.doubleClickZoom
}

// Subscriptions returns the subscribed event kinds, sorted
func (s *Surface) Subscriptions() []ruler.EventKind {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := make([]ruler.EventKind, 0, len(s.subscriptions))
	for ev := range s.subscriptions {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// Stats summarizes what is drawn
type Stats struct {
	Layers   int
	Markers  int
	Lines    int
	Tooltips int
	Applied  int // commands applied since creation
}

// Stats returns counts across all layers
func (s *Surface) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := Stats{Layers: len(s.layers), Applied: s.applied}
	for _, l := range s.layers {
		stats.Markers += len(l.Markers)
		stats.Lines += len(l.Lines)
		for _, m := range l.Markers {
			if m.Tooltip != nil {
				stats.Tooltips++
			}
		}
	}
	return stats
}
