package ruler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/mapruler/internal/lib/geo"
)

type recordingRenderer struct {
	applied []Command
}

func (r *recordingRenderer) Apply(cmd Command) {
	r.applied = append(r.applied, cmd)
}

func newTestController(t *testing.T) (*Controller, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	return NewController(newTestSession(t, nil), r, nil), r
}

func click(p geo.Point) Event { return Event{Kind: EventClick, Point: p} }
func move(p geo.Point) Event  { return Event{Kind: EventMove, Point: p} }

func TestController_DropsEventsUntilSubscribed(t *testing.T) {
	c, r := newTestController(t)

	assert.Nil(t, c.HandleEvent(click(p1)))
	assert.Nil(t, c.HandleEvent(Event{Kind: EventKeyDown, KeyCode: EscapeKeyCode}))
	assert.Empty(t, r.applied)
	assert.False(t, c.Subscribed(EventClick))
	assert.True(t, c.Subscribed(EventToggle))

	c.HandleEvent(Event{Kind: EventToggle})
	assert.True(t, c.Subscribed(EventClick))

	cmds := c.HandleEvent(click(p1))
	require.Len(t, cmds, 1)
	assert.Equal(t, []geo.Point{p1}, c.Session().Points())
}

func TestController_ForwardsEveryCommand(t *testing.T) {
	c, r := newTestController(t)

	var emitted []Command
	for _, ev := range []Event{{Kind: EventToggle}, click(p1), move(p2), click(p2)} {
		emitted = append(emitted, c.HandleEvent(ev)...)
	}

	assert.Equal(t, emitted, r.applied)
}

func TestController_DoubleClickClosesPath(t *testing.T) {
	c, _ := newTestController(t)
	c.HandleEvent(Event{Kind: EventToggle})
	c.HandleEvent(click(p1))
	c.HandleEvent(click(p2))
	c.HandleEvent(click(p2)) // the browser reports both clicks of a double click
	c.HandleEvent(Event{Kind: EventDoubleClick, Point: p2})

	assert.False(t, c.Session().Active())
	path, ok := c.Session().ClosedPath()
	require.True(t, ok)
	assert.Equal(t, []geo.Point{p1, p2}, path.Points)

	// queued events after the close are not handled
	assert.Nil(t, c.HandleEvent(move(p3)))
	assert.Nil(t, c.HandleEvent(click(p3)))
	assert.False(t, c.Subscribed(EventMove))
}

func TestController_EscapeKey(t *testing.T) {
	tests := []struct {
		name   string
		ev     Event
		closes bool
	}{
		{"key code", Event{Kind: EventKeyDown, KeyCode: 27}, true},
		{"key name", Event{Kind: EventKeyDown, Key: "Escape"}, true},
		{"other key", Event{Kind: EventKeyDown, Key: "Enter", KeyCode: 13}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			c.HandleEvent(Event{Kind: EventToggle})
			c.HandleEvent(click(p1))

			c.HandleEvent(tt.ev)

			assert.Equal(t, !tt.closes, c.Session().Active())
		})
	}
}

func TestController_ToggleIgnoredWhilePreviewing(t *testing.T) {
	c, _ := newTestController(t)
	c.HandleEvent(Event{Kind: EventToggle})
	c.HandleEvent(click(p1))
	c.HandleEvent(move(p2))

	assert.Nil(t, c.HandleEvent(Event{Kind: EventToggle}))
	assert.True(t, c.Session().Active())
	assert.True(t, c.Subscribed(EventClick))
}

func TestController_UnknownEvent(t *testing.T) {
	c, r := newTestController(t)
	c.HandleEvent(Event{Kind: EventToggle})
	before := len(r.applied)

	assert.Nil(t, c.HandleEvent(Event{Kind: "wheel"}))
	assert.Len(t, r.applied, before)
}
