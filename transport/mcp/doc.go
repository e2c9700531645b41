// Package mcp provides a Model Context Protocol surface over the lobby's
// REST inspection API.
//
// The mcp package implements:
//   - A thin MCP client that proxies tool calls to the REST API
//   - Read-only tool definitions over live lobby state
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - server_stats: Connection, room and queue counters
//   - list_rooms: List all active rooms, oldest first
//   - get_room: Details of one room by its 5-character code
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint mounted next to the REST API
//
// All tools are read-only. Gameplay traffic flows over the WebSocket
// protocol; the MCP surface never mutates lobby state.
package mcp
