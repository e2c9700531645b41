// Package api provides the HTTP surface for the Squared backend.
//
// The api package implements:
//   - The WebSocket upgrade endpoint
//   - Read-only inspection endpoints over lobby state
//   - A health check
//   - Open cross-origin policy for read and write methods
//
// Endpoints:
//
// Gameplay:
//   - GET /ws - Upgrade to the WebSocket event protocol
//
// Inspection:
//   - GET /healthz - Liveness check
//   - GET /api/stats - Connection, room and queue counters
//   - GET /api/rooms - List active rooms
//   - GET /api/rooms/{code} - Details of one active room
//
// All gameplay traffic flows over the socket; the REST endpoints never
// mutate lobby state.
//
// Request/Response Format:
//
// All endpoints return JSON. Errors are returned as JSON with appropriate
// HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
