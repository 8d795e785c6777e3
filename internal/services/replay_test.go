package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/mapruler/internal/config"
	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
	"github.com/dpup/mapruler/internal/lib/script"
)

const hwy4Script = `
name: Hwy 4
events:
  - {type: toggle}
  - {type: click, lat: 38.0675, lng: -120.5436}
  - {type: move, lat: 38.1000, lng: -120.5000}
  - {type: move, lat: 38.1391, lng: -120.4561}
  - {type: click, lat: 38.1391, lng: -120.4561}
  - {type: move, lat: 38.2458, lng: -120.3486}
  - {type: click, lat: 38.2458, lng: -120.3486}
  - {type: click, lat: 38.2458, lng: -120.3486}
  - {type: dblclick, lat: 38.2458, lng: -120.3486}
  - {type: click, lat: 40, lng: -120}
`

func replay(t *testing.T, cfg *config.Config, src string) (*ReplayService, Report) {
	t.Helper()
	s, err := script.Decode(strings.NewReader(src))
	require.NoError(t, err)
	events, err := s.Events()
	require.NoError(t, err)

	svc, err := NewReplayService(cfg, nil)
	require.NoError(t, err)
	return svc, svc.Run(events)
}

func TestReplayService_ClosedPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ruler.LengthPresets = []string{"km", "mi"}

	svc, report := replay(t, cfg, hwy4Script)

	assert.Equal(t, 10, report.Events)
	assert.Equal(t, ruler.Inactive, report.State)
	assert.Equal(t, []bool{true, false}, report.Toggles)
	require.True(t, report.Closed)
	require.Len(t, report.Path.Points, 3, "the duplicate click and the click after closing are ignored")

	want := geo.PathLength(report.Path.Points, report.Path.LengthUnits)
	assert.InDelta(t, want[0], report.Path.Totals[0], 1e-9)
	assert.InDelta(t, want[1], report.Path.Totals[1], 1e-9)
	assert.Equal(t, 3, report.Stats.Markers)
	assert.Equal(t, 2, report.Stats.Lines)

	drawn := svc.Surface()
	points := drawn.Layer(ruler.LayerPoints)
	require.Len(t, points.Markers, 3, "closed path stays visible")
	assert.Equal(t, report.Path.Points[2], points.Markers[2].At)
	require.NotNil(t, points.Markers[2].Tooltip)
	assert.True(t, points.Markers[2].Tooltip.Permanent)
	assert.Len(t, drawn.Layer(ruler.LayerLines).Lines, 2)
	assert.Empty(t, drawn.Layer(ruler.LayerPreview).Markers)
	assert.Empty(t, drawn.Subscriptions())
	assert.True(t, drawn.DoubleClickZoom())
}

func TestReplayService_OpenPath(t *testing.T) {
	_, report := replay(t, config.DefaultConfig(), `
events:
  - {type: toggle}
  - {type: click, lat: 0, lng: 0}
  - {type: click, lat: 0, lng: 1}
`)

	assert.False(t, report.Closed)
	assert.Equal(t, ruler.ActiveDrawing, report.State)
	assert.Len(t, report.Path.Points, 2)
	assert.InDelta(t, 111.19, report.Path.Totals[0], 0.01)
}

func TestReplayService_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ruler.AnglePreset = "turns"

	_, err := NewReplayService(cfg, nil)
	assert.Error(t, err)
}
