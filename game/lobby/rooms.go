package lobby

import (
	"log"

	"github.com/NovadaGames/squared-socketio/game/room"
)

// CreateRoom makes a new room with conn as its sole participant and returns
// the join code. A connection occupies at most one room, so any current
// membership is released first.
func (l *Lobby) CreateRoom(conn string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.leaveLocked(conn)
	r := l.rooms.Create(conn, l.displayName(conn), false)
	l.broadcastNames(r)
	log.Printf("[ROOM] created code=%s conn=%s", r.Code, conn)
	return r.Code
}

// JoinRoom adds conn to the room identified by code. It returns
// room.ErrNoSuchRoom or room.ErrRoomFull; on error no state changes. On
// success the updated name map is broadcast, followed by the ready event
// carrying the deterministic participant ordering.
func (l *Lobby) JoinRoom(conn, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.rooms.ByCode(code)
	if !ok {
		return room.ErrNoSuchRoom
	}
	if target.Has(conn) {
		// Re-joining the occupied room is a no-op
		return nil
	}
	if target.Full() {
		return room.ErrRoomFull
	}

	// Checks passed: releasing any previous membership cannot partially
	// apply a failed join.
	l.leaveLocked(conn)

	r, err := l.rooms.Join(code, conn, l.displayName(conn))
	if err != nil {
		return err
	}

	l.broadcastNames(r)
	l.broadcastReady(r)
	log.Printf("[ROOM] joined code=%s conn=%s participants=%d", code, conn, len(r.Participants))
	return nil
}

// LeaveRoom removes conn from its room, destroying the room when it empties
// and notifying the remaining participant otherwise.
func (l *Lobby) LeaveRoom(conn string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.leaveLocked(conn)
}

// leaveLocked performs the departure under the lobby lock. Empty rooms are
// destroyed the instant the last participant leaves; otherwise the remaining
// participant receives the updated name map and an opponent-left
// notification.
func (l *Lobby) leaveLocked(conn string) {
	r, ok := l.rooms.Leave(conn)
	if !ok {
		return
	}
	if len(r.Participants) == 0 {
		log.Printf("[ROOM] destroyed code=%s", r.Code)
		return
	}

	l.broadcastNames(r)
	for _, p := range r.Participants {
		l.sender.Send(p, EventOpponentLeft, OpponentLeftPayload{Code: r.Code})
	}
	log.Printf("[ROOM] left code=%s conn=%s remaining=%d", r.Code, conn, len(r.Participants))
}
