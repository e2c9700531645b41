// Package lobby provides the state-owning core of the Squared backend.
//
// The lobby package implements:
//   - The connection registry (display names)
//   - Room lifecycle orchestration over the room store
//   - The FIFO matchmaking queue and pairing
//   - The gameplay event relay
//   - Disconnect cascades
//
// Architecture:
//
// A single Lobby owns the name registry, the room store and the matchmaking
// queue behind one mutex. Every inbound command mutates shared state and runs
// to completion before the next one is admitted, so a pairing round and a
// concurrent room join can never observe a half-applied intermediate state.
// This serialization is a correctness guarantee, not an optimization target.
//
// Broadcasting:
//
// The lobby never talks to sockets directly. It emits events through the
// Sender interface, implemented by the websocket hub, and sends are
// fire-and-forget: no acknowledgment, no backpressure, best-effort delivery.
//
// Relay:
//
// Gameplay payloads pass through untouched. The lobby resolves the target
// room (explicit code first, then sender membership), picks the audience by
// event kind — restart goes to the whole room including the sender, start,
// move and surrender go to the opponent only — and forwards the raw bytes.
// Messages with no resolvable room are dropped without an error.
//
// Usage:
//
//	l := lobby.New(hub)
//	l.Connect(connID)
//	code := l.CreateRoom(connID)
//	err := l.JoinRoom(otherID, code)
package lobby
