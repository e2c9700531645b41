package lobby

import "encoding/json"

// Relay forwards a gameplay payload to the appropriate audience of the
// resolved room. The payload is opaque: beyond the optional room code pulled
// out by the transport, the server never inspects it.
//
// restart is a room-wide synchronization signal and reaches every
// participant including the sender; start, move and surrender go to the
// opponent only. A message with no resolvable room is dropped silently.
func (l *Lobby) Relay(conn, event, code string, payload json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := l.resolveLocked(conn, code)
	if r == nil {
		return
	}

	targets := r.Others(conn)
	if event == EventRestart {
		targets = r.Participants
	}
	for _, p := range targets {
		l.sender.Send(p, event, payload)
	}
}
