package ruler

import (
	"go.uber.org/zap"
)

// Renderer applies session commands to a drawing surface
type Renderer interface {
	Apply(cmd Command)
}

// Controller adapts raw host events to a Session and forwards the resulting
// commands to a Renderer. Measurement events only reach the session while
// the controller holds a subscription for them.
type Controller struct {
	session    *Session
	renderer   Renderer
	subscribed map[EventKind]bool
	logger     *zap.Logger
}

// NewController wires a session to a renderer
func NewController(session *Session, renderer Renderer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		session:    session,
		renderer:   renderer,
		subscribed: make(map[EventKind]bool),
		logger:     logger.Named("controller"),
	}
}

// HandleEvent dispatches one host event and returns the commands it produced
func (c *Controller) HandleEvent(ev Event) []Command {
	if ev.Kind != EventToggle && !c.subscribed[ev.Kind] {
		c.logger.Debug("event dropped, not subscribed", zap.String("kind", string(ev.Kind)))
		return nil
	}

	var cmds []Command
	switch ev.Kind {
	case EventToggle:
		cmds = c.session.Toggle()
	case EventClick:
		cmds = c.session.Click(ev.Point)
	case EventMove:
		cmds = c.session.Move(ev.Point)
	case EventDoubleClick:
		cmds = c.session.ClosePath()
	case EventKeyDown:
		if !ev.IsEscape() {
			return nil
		}
		cmds = c.session.Escape()
	default:
		c.logger.Warn("unknown event kind", zap.String("kind", string(ev.Kind)))
		return nil
	}

	for _, cmd := range cmds {
		c.track(cmd)
		if c.renderer != nil {
			c.renderer.Apply(cmd)
		}
	}
	return cmds
}

func (c *Controller) track(cmd Command) {
	switch cmd.Kind {
	case CmdSubscribe:
		for _, ev := range cmd.Events {
			c.subscribed[ev] = true
		}
	case CmdUnsubscribe:
		for _, ev := range cmd.Events {
			delete(c.subscribed, ev)
		}
	}
}

// Subscribed reports whether the controller currently accepts an event kind
func (c *Controller) Subscribed(kind EventKind) bool {
	return kind == EventToggle || c.subscribed[kind]
}

// Session returns the controlled session
func (c *Controller) Session() *Session {
	return c.session
}
