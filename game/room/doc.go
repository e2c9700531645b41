// Package room provides the room model and store for the Squared backend.
//
// The room package implements:
//   - Capacity-2 rooms identified by short shareable codes
//   - The authoritative store of active rooms
//   - A connection-to-room index for O(1) membership lookup
//   - Join-code generation from a restricted alphabet
//
// Core Types:
//
// Room represents a single two-participant session: the join code, the
// participants in join order, the participant display names, and whether the
// room was produced by matchmaking.
//
// Store is the authoritative table of active rooms. It maintains a code→room
// map and a connection→code index side by side, so every mutation keeps both
// consistent.
//
// Join Codes:
//
// Codes are 5 characters drawn from an alphabet that excludes the visually
// ambiguous characters 0, O, 1 and I. Generation retries until the sampled
// code is unused among active rooms.
//
// Concurrency:
//
// Neither Room nor Store carries its own lock. All access is serialized by
// the owning lobby, which guards the store, the name registry and the
// matchmaking queue as one unit.
package room
