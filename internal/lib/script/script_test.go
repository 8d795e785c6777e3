package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
)

const hwy4 = `
name: Hwy 4
events:
  - type: toggle
  - type: click
    lat: 38.0675
    lng: -120.5436
  - type: move
    lat: 38.1391
    lng: -120.4561
  - type: keydown
    key: Escape
  - type: escape
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(hwy4))
	require.NoError(t, err)
	assert.Equal(t, "Hwy 4", s.Name)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, Step{Type: "keydown", Key: "Escape"}, s.Steps[3])

	events, err := s.Events()
	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, ruler.EventToggle, events[0].Kind)
	assert.Equal(t, ruler.EventClick, events[1].Kind)
	assert.Equal(t, geo.Point{Latitude: 38.0675, Longitude: -120.5436}, events[1].Point)
	assert.Equal(t, ruler.EventMove, events[2].Kind)
	assert.True(t, events[3].IsEscape())
	assert.Equal(t, ruler.EventKeyDown, events[4].Kind)
	assert.Equal(t, ruler.EscapeKeyCode, events[4].KeyCode)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("events: [{type: click, latitude: 1}]"))
	assert.Error(t, err, "unknown fields are rejected")

	s, err := Decode(strings.NewReader("events: [{type: wheel}]"))
	require.NoError(t, err)
	_, err = s.Events()
	assert.ErrorContains(t, err, "wheel")
}
