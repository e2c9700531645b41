package lobby

import "time"

// Events emitted by the lobby (server → client).
const (
	EventNames        = "names"
	EventReady        = "ready"
	EventOpponentLeft = "opponent_left"
	EventMatchFound   = "match_found"
)

// Gameplay events passed through the relay (client → client). The server
// never interprets their payloads.
const (
	EventStart     = "start"
	EventMove      = "move"
	EventSurrender = "surrender"
	EventRestart   = "restart"
)

// Sender delivers an event to a single connection. Implementations must not
// block; the lobby calls Send while holding its state lock.
type Sender interface {
	Send(conn, event string, data any)
}

// NamesPayload carries a room's current display-name map.
type NamesPayload struct {
	Code  string            `json:"code"`
	Names map[string]string `json:"names"`
}

// ReadyPayload announces that a room is full. Players is sorted lexically so
// both ends independently derive the same role assignment.
type ReadyPayload struct {
	Code    string            `json:"code"`
	Players []string          `json:"players"`
	Names   map[string]string `json:"names"`
}

// MatchFoundPayload tells a queued connection which room pairing produced.
type MatchFoundPayload struct {
	Code string `json:"code"`
}

// OpponentLeftPayload notifies the remaining participant of a departure.
type OpponentLeftPayload struct {
	Code string `json:"code"`
}

// Stats is a point-in-time snapshot of lobby state for the REST and MCP
// inspection surfaces.
type Stats struct {
	Connections int `json:"connections"`
	Rooms       int `json:"rooms"`
	Matchmade   int `json:"matchmade_rooms"`
	Queued      int `json:"queued"`
}

// RoomInfo is a read-only view of an active room.
type RoomInfo struct {
	Code         string            `json:"code"`
	Participants []string          `json:"participants"`
	Names        map[string]string `json:"names"`
	Matchmade    bool              `json:"matchmade"`
	CreatedAt    time.Time         `json:"created_at"`
}
