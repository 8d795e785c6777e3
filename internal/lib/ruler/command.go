package ruler

import "github.com/dpup/mapruler/internal/lib/geo"

// CommandKind identifies an instruction for the host surface
type CommandKind string

const (
	CmdAddMarker          CommandKind = "add_marker"
	CmdAddLine            CommandKind = "add_line"
	CmdClearLayer         CommandKind = "clear_layer"
	CmdSaveCursor         CommandKind = "save_cursor"
	CmdSetCursor          CommandKind = "set_cursor"
	CmdRestoreCursor      CommandKind = "restore_cursor"
	CmdSetDoubleClickZoom CommandKind = "set_double_click_zoom"
	CmdSubscribe          CommandKind = "subscribe"
	CmdUnsubscribe        CommandKind = "unsubscribe"
)

// CrosshairCursor is shown while measuring
const CrosshairCursor = "crosshair"

// Tooltip is text bound to a marker
type Tooltip struct {
	Text string `json:"text"`
	// Permanent tooltips stay open; the others follow the cursor
	Permanent bool `json:"permanent"`
}

// Command is a single instruction emitted by a Session.
// Only the fields relevant to Kind are set.
type Command struct {
	Kind    CommandKind  `json:"kind"`
	Layer   Layer        `json:"layer,omitempty"`
	Points  []geo.Point  `json:"points,omitempty"` // one for markers, two for lines
	Tooltip *Tooltip     `json:"tooltip,omitempty"`
	Marker  *MarkerStyle `json:"marker,omitempty"`
	Line    *LineStyle   `json:"line,omitempty"`
	Cursor  string       `json:"cursor,omitempty"`
	Enabled bool         `json:"enabled,omitempty"`
	Events  []EventKind  `json:"events,omitempty"`
}

func addMarker(layer Layer, at geo.Point, style MarkerStyle, tooltip *Tooltip) Command {
	return Command{Kind: CmdAddMarker, Layer: layer, Points: []geo.Point{at}, Marker: &style, Tooltip: tooltip}
}

func addLine(layer Layer, from, to geo.Point, style LineStyle) Command {
	return Command{Kind: CmdAddLine, Layer: layer, Points: []geo.Point{from, to}, Line: &style}
}

func clearLayer(layer Layer) Command {
	return Command{Kind: CmdClearLayer, Layer: layer}
}

func setCursor(cursor string) Command {
	return Command{Kind: CmdSetCursor, Cursor: cursor}
}

func setDoubleClickZoom(enabled bool) Command {
	return Command{Kind: CmdSetDoubleClickZoom, Enabled: enabled}
}

func subscribe(events []EventKind) Command {
	return Command{Kind: CmdSubscribe, Events: append([]EventKind(nil), events...)}
}

func unsubscribe(events []EventKind) Command {
	return Command{Kind: CmdUnsubscribe, Events: append([]EventKind(nil), events...)}
}
