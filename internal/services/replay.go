package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dpup/mapruler/internal/config"
	"github.com/dpup/mapruler/internal/lib/ruler"
	"github.com/dpup/mapruler/internal/lib/surface"
)

// ReplayService drives a measurement session from recorded host events and
// renders it onto an in-memory surface
type ReplayService struct {
	session    *ruler.Session
	surface    *surface.Surface
	controller *ruler.Controller
	toggles    []bool
	logger     *zap.Logger
}

// Report summarizes a replay
type Report struct {
	Events   int
	Commands int
	Toggles  []bool
	State    ruler.State
	Stats    surface.Stats
	// Path is the closed path, or the in-progress one if the script never closed it
	Path   ruler.Path
	Closed bool
}

// NewReplayService wires a session, controller and surface from configuration
func NewReplayService(cfg *config.Config, logger *zap.Logger) (*ReplayService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := cfg.RulerOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid ruler configuration: %w", err)
	}

	svc := &ReplayService{logger: logger}
	opts.Logger = logger
	opts.OnToggle = func(active bool) {
		svc.toggles = append(svc.toggles, active)
		logger.Info("Ruler toggled", zap.Bool("active", active))
	}

	svc.session = ruler.NewSession(opts)
	svc.surface = surface.New(logger)
	svc.controller = ruler.NewController(svc.session, svc.surface, logger)
	return svc, nil
}

// Run dispatches events in order
func (s *ReplayService) Run(events []ruler.Event) Report {
	commands := 0
	for _, ev := range events {
		commands += len(s.controller.HandleEvent(ev))
	}

	report := Report{
		Events:   len(events),
		Commands: commands,
		Toggles:  append([]bool(nil), s.toggles...),
		State:    s.session.State(),
		Stats:    s.surface.Stats(),
	}
	if path, ok := s.session.ClosedPath(); ok {
		report.Path = path
		report.Closed = true
	} else {
		report.Path = s.session.Snapshot()
	}

	s.logger.Info("Replay finished",
		zap.Int("events", report.Events),
		zap.Int("commands", report.Commands),
		zap.String("state", report.State.String()),
		zap.Int("points", len(report.Path.Points)),
		zap.Bool("closed", report.Closed))
	return report
}

// Surface exposes the rendered surface
func (s *ReplayService) Surface() *surface.Surface {
	return s.surface
}
