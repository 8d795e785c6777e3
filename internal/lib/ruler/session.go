package ruler

import (
	"go.uber.org/zap"

	"github.com/dpup/mapruler/internal/lib/geo"
)

// State is the activation state of a Session
type State int

const (
	Inactive      State = iota
	ActiveEmpty         // active, nothing committed yet
	ActiveDrawing       // active with at least one committed point
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ActiveEmpty:
		return "active_empty"
	case ActiveDrawing:
		return "active_drawing"
	default:
		return "unknown"
	}
}

// Session is the measurement state machine. Every operation returns the
// commands the host must apply, in order. A Session is not safe for
// concurrent use; hosts dispatch events from a single loop.
type Session struct {
	opts   Options
	format formatter
	logger *zap.Logger

	state  State
	points []geo.Point
	// segments[i] spans points[i] to points[i+1]
	segments []geo.Measurement
	totals   []float64
	last     *geo.Measurement
	cursor   *geo.Point
	clicks   int

	// previewing is set by the first live move and blocks toggling until
	// the session is deactivated
	previewing bool

	// pathShown is set when a closed path is left on the surface
	pathShown bool
	closed    *Path
}

// NewSession creates an inactive session
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		opts:   opts,
		format: formatter{lengthUnits: opts.LengthUnits, angleUnit: opts.AngleUnit},
		logger: logger.Named("ruler"),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.points = nil
	s.segments = nil
	s.totals = make([]float64, len(s.opts.LengthUnits))
	s.last = nil
	s.cursor = nil
	s.clicks = 0
	s.previewing = false
}

// Toggle activates an inactive session or deactivates an active one.
// Requests are ignored while a live preview is being drawn; the path must
// then be closed with a double click or escape.
func (s *Session) Toggle() []Command {
	if s.state == Inactive {
		return s.activate()
	}
	if s.previewing {
		s.logger.Debug("toggle ignored while previewing", zap.Int("points", len(s.points)))
		return nil
	}
	return s.deactivate(false)
}

// Click commits a point. Clicking the last committed point again commits
// nothing.
func (s *Session) Click(p geo.Point) []Command {
	switch s.state {
	case Inactive:
		return nil
	case ActiveEmpty:
		s.clicks++
		s.points = append(s.points, p)
		s.state = ActiveDrawing
		s.logger.Debug("first point committed", zap.Float64("lat", p.Latitude), zap.Float64("lng", p.Longitude))
		return []Command{addMarker(LayerPoints, p, s.opts.Marker, nil)}
	}

	s.clicks++
	prev := s.points[len(s.points)-1]
	if prev.Equal(p) {
		s.logger.Debug("duplicate click ignored", zap.Int("clicks", s.clicks))
		return nil
	}

	m := geo.Compute(prev, p, s.opts.LengthUnits, s.opts.AngleUnit)
	for i, d := range m.Distances {
		s.totals[i] += d
	}
	s.points = append(s.points, p)
	s.segments = append(s.segments, m)
	s.last = &m

	s.logger.Debug("segment committed",
		zap.Int("points", len(s.points)),
		zap.Float64("bearing", m.Bearing),
		zap.Float64s("totals", s.totals))

	tooltip := &Tooltip{Text: s.format.Summary(m.Bearing, s.totals), Permanent: true}
	return []Command{
		addLine(LayerLines, prev, p, s.opts.Line),
		addMarker(LayerPoints, p, s.opts.Marker, tooltip),
	}
}

// Move replaces the live preview from the last committed point to p
func (s *Session) Move(p geo.Point) []Command {
	if s.state != ActiveDrawing {
		return nil
	}

	prev := s.points[len(s.points)-1]
	m := geo.Compute(prev, p, s.opts.LengthUnits, s.opts.AngleUnit)
	s.last = &m
	s.cursor = &p
	s.previewing = true

	total := make([]float64, len(s.totals))
	for i := range total {
		total[i] = s.totals[i] + m.Distances[i]
	}
	var increment []float64
	if len(s.points) > 1 {
		increment = m.Distances
	}

	tooltip := &Tooltip{Text: s.format.Preview(m.Bearing, total, increment)}
	return []Command{
		clearLayer(LayerPreview),
		addLine(LayerPreview, prev, p, s.opts.Line),
		addMarker(LayerPreview, p, s.opts.Marker, tooltip),
	}
}

// Escape closes the path when points are committed and otherwise
// deactivates the session.
func (s *Session) Escape() []Command {
	switch {
	case s.state == Inactive:
		return nil
	case len(s.points) > 0:
		return s.ClosePath()
	default:
		return s.deactivate(false)
	}
}

// ClosePath drops the live preview and deactivates the session, leaving the
// committed markers and lines on the surface until the next activation.
// It is a no-op on an inactive session.
func (s *Session) ClosePath() []Command {
	if s.state == Inactive {
		return nil
	}
	if len(s.points) > 0 {
		path := s.Snapshot()
		s.closed = &path
	}
	return s.deactivate(true)
}

func (s *Session) activate() []Command {
	var cmds []Command
	if s.pathShown {
		cmds = append(cmds, clearLayer(LayerPoints), clearLayer(LayerLines))
		s.pathShown = false
	}

	s.reset()
	s.closed = nil
	s.state = ActiveEmpty
	s.logger.Debug("session activated", zap.Int("units", len(s.opts.LengthUnits)))

	cmds = append(cmds,
		Command{Kind: CmdSaveCursor},
		setCursor(CrosshairCursor),
		setDoubleClickZoom(false),
		subscribe(measureEvents),
	)
	s.notify(true)
	return cmds
}

func (s *Session) deactivate(keepPath bool) []Command {
	cmds := []Command{
		clearLayer(LayerPreview),
		unsubscribe(measureEvents),
	}
	if keepPath && len(s.points) > 0 {
		s.pathShown = true
	} else {
		cmds = append(cmds, clearLayer(LayerPoints), clearLayer(LayerLines))
		s.pathShown = false
	}
	cmds = append(cmds,
		setDoubleClickZoom(true),
		Command{Kind: CmdRestoreCursor},
	)

	s.logger.Debug("session deactivated",
		zap.Int("points", len(s.points)),
		zap.Int("clicks", s.clicks),
		zap.Bool("path_kept", s.pathShown))

	s.reset()
	s.state = Inactive
	s.notify(false)
	return cmds
}

func (s *Session) notify(active bool) {
	if s.opts.OnToggle != nil {
		s.opts.OnToggle(active)
	}
}

// State returns the current state
func (s *Session) State() State { return s.state }

// Active reports whether the session accepts points
func (s *Session) Active() bool { return s.state != Inactive }

// Previewing reports whether a live preview is drawn
func (s *Session) Previewing() bool { return s.previewing }

// Clicks returns the number of clicks received while drawing, duplicates included
func (s *Session) Clicks() int { return s.clicks }

// Points returns a copy of the committed points
func (s *Session) Points() []geo.Point {
	return append([]geo.Point(nil), s.points...)
}

// Totals returns a copy of the cumulative distances, one per length unit
func (s *Session) Totals() []float64 {
	return append([]float64(nil), s.totals...)
}

// Last returns the most recent measurement, or nil
func (s *Session) Last() *geo.Measurement {
	if s.last == nil {
		return nil
	}
	m := s.last.Clone()
	return &m
}

// Cursor returns the last previewed cursor position, or nil
func (s *Session) Cursor() *geo.Point {
	if s.cursor == nil {
		return nil
	}
	p := *s.cursor
	return &p
}

// Snapshot returns the path committed so far
func (s *Session) Snapshot() Path {
	segments := make([]geo.Measurement, len(s.segments))
	for i, m := range s.segments {
		segments[i] = m.Clone()
	}
	return Path{
		Points:      s.Points(),
		Segments:    segments,
		Totals:      s.Totals(),
		LengthUnits: append([]geo.UnitSpec(nil), s.opts.LengthUnits...),
		AngleUnit:   s.opts.AngleUnit,
	}
}

// ClosedPath returns the path finalized by the last ClosePath, if it is
// still shown on the surface.
func (s *Session) ClosedPath() (Path, bool) {
	if s.closed == nil {
		return Path{}, false
	}
	return *s.closed, true
}
