// Package websocket provides the WebSocket transport for the Squared backend.
//
// The websocket package implements:
//   - Connection upgrade and identity assignment
//   - A hub tracking every live connection by ID
//   - JSON frame decoding and command dispatch into the lobby
//   - Fire-and-forget delivery of lobby broadcasts
//
// Architecture:
//
// The package uses a hub-and-spoke model. The Hub owns the connection table;
// each client gets a read pump and a write pump goroutine. Inbound frames are
// decoded and dispatched as lobby commands; the lobby serializes them
// internally, so the transport applies no ordering of its own beyond the
// per-connection FIFO the socket already gives us.
//
// Message Protocol:
//
// Frames are JSON objects {"event": string, "data": object} in both
// directions. On upgrade the server assigns a connection ID and sends it in a
// "connected" frame; clients use it to find themselves in the ready event's
// participant ordering.
//
// Client commands: set_name, announce_name, create_room, join_room,
// leave_room, join_queue, leave_queue, and the gameplay events start, move,
// surrender, restart (relayed, never interpreted).
//
// Server frames: connected, created, joined, names, ready, opponent_left,
// match_found, plus relayed gameplay frames.
//
// Delivery:
//
// Sends are best-effort. A slow consumer whose buffer is full loses frames
// rather than blocking the lobby; there is no acknowledgment or redelivery.
//
// Usage:
//
//	hub := websocket.NewHub()
//	l := lobby.New(hub)
//	hub.Bind(l)
//	go hub.Run()
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
