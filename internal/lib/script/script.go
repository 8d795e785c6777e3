package script

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
)

// Script is a recorded sequence of host events
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"events"`
}

// Step is a single event as written in a script file
type Step struct {
	Type    string  `yaml:"type"`
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Key     string  `yaml:"key,omitempty"`
	KeyCode int     `yaml:"key_code,omitempty"`
}

var stepKinds = map[string]ruler.EventKind{
	"toggle":    ruler.EventToggle,
	"click":     ruler.EventClick,
	"move":      ruler.EventMove,
	"mousemove": ruler.EventMove,
	"dblclick":  ruler.EventDoubleClick,
	"keydown":   ruler.EventKeyDown,
	"escape":    ruler.EventKeyDown,
}

// Decode reads a YAML script
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// Events converts the steps to controller events
func (s *Script) Events() ([]ruler.Event, error) {
	events := make([]ruler.Event, 0, len(s.Steps))
	for i, step := range s.Steps {
		kind, ok := stepKinds[step.Type]
		if !ok {
			return nil, fmt.Errorf("step %d: unknown event type %q", i+1, step.Type)
		}

		ev := ruler.Event{
			Kind:    kind,
			Point:   geo.Point{Latitude: step.Lat, Longitude: step.Lng},
			Key:     step.Key,
			KeyCode: step.KeyCode,
		}
		if step.Type == "escape" {
			ev.KeyCode = ruler.EscapeKeyCode
		}
		events = append(events, ev)
	}
	return events, nil
}
