package lobby

import "log"

// Matchmaking placeholders, used only for connections that never set a name
// before being paired.
const (
	placeholderA = "Player A"
	placeholderB = "Player B"
)

// JoinQueue appends conn to the matchmaking queue and runs a pairing round.
// Enqueueing is idempotent; a connection holds at most one queue slot.
func (l *Lobby) JoinQueue(conn string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, queued := range l.queue {
		if queued == conn {
			return
		}
	}
	l.queue = append(l.queue, conn)
	log.Printf("[QUEUE] enqueued conn=%s waiting=%d", conn, len(l.queue))
	l.pairLocked()
}

// LeaveQueue removes conn from the queue. Removal is idempotent, and a
// removed connection is never eligible for a later pairing off its stale
// position.
func (l *Lobby) LeaveQueue(conn string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dequeueLocked(conn)
}

func (l *Lobby) dequeueLocked(conn string) {
	for i, queued := range l.queue {
		if queued == conn {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			log.Printf("[QUEUE] dequeued conn=%s waiting=%d", conn, len(l.queue))
			return
		}
	}
}

// pairLocked pops the two oldest entries while at least two connections
// wait, materializes a matchmade room for each pair, and broadcasts
// match_found, the name map, then the ready event to both participants.
// Running under the lobby lock makes the round atomic with the enqueue that
// triggered it.
func (l *Lobby) pairLocked() {
	for len(l.queue) >= 2 {
		a, b := l.queue[0], l.queue[1]
		l.queue = l.queue[2:]

		// A paired connection leaves any room it still occupies
		l.leaveLocked(a)
		l.leaveLocked(b)

		r := l.rooms.Pair(a, b, l.matchName(a, placeholderA), l.matchName(b, placeholderB))

		for _, p := range r.Participants {
			l.sender.Send(p, EventMatchFound, MatchFoundPayload{Code: r.Code})
		}
		l.broadcastNames(r)
		l.broadcastReady(r)

		log.Printf("[MATCH] paired a=%s b=%s code=%s waiting=%d", a, b, r.Code, len(l.queue))
	}
}

// matchName returns conn's registry name, or the given placeholder when the
// connection never set one.
func (l *Lobby) matchName(conn, placeholder string) string {
	if e, ok := l.registry[conn]; ok && e.set {
		return e.name
	}
	return placeholder
}
