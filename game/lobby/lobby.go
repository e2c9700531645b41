package lobby

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/NovadaGames/squared-socketio/game/room"
)

const (
	// DefaultName is used for connections that never set a display name.
	DefaultName = "Player"

	// MaxNameLength bounds display names in runes.
	MaxNameLength = 24
)

// entry is a connection's registry record. set distinguishes an explicit
// name from the default, which matters for matchmaking placeholders.
type entry struct {
	name string
	set  bool
}

// Lobby owns all mutable shared state: the connection registry, the room
// store and the matchmaking queue, guarded as one unit by a single mutex.
type Lobby struct {
	mu       sync.Mutex
	sender   Sender
	rooms    *room.Store
	registry map[string]*entry
	queue    []string
}

// New creates a lobby that broadcasts through sender.
func New(sender Sender) *Lobby {
	return &Lobby{
		sender:   sender,
		rooms:    room.NewStore(),
		registry: make(map[string]*entry),
	}
}

// Connect registers a new connection with the default name.
func (l *Lobby) Connect(conn string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.registry[conn] = &entry{}
	log.Printf("[CONN] connected conn=%s total=%d", conn, len(l.registry))
}

// Disconnect runs the full cleanup cascade: queue removal, room departure
// with opponent notification, and registry destruction. It is the only place
// disconnect cleanup occurs.
func (l *Lobby) Disconnect(conn string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dequeueLocked(conn)
	l.leaveLocked(conn)
	delete(l.registry, conn)
	log.Printf("[CONN] disconnected conn=%s total=%d", conn, len(l.registry))
}

// SetName normalizes and stores conn's display name. When conn occupies a
// room, the room's name map is updated and rebroadcast to its participants.
func (l *Lobby) SetName(conn, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	normalized := NormalizeName(name)
	e, ok := l.registry[conn]
	if !ok {
		e = &entry{}
		l.registry[conn] = e
	}
	e.name = normalized
	e.set = true

	if r, ok := l.rooms.SetName(conn, normalized); ok {
		l.broadcastNames(r)
	}
}

// AnnounceName updates a room's name map with a name the client pushes
// proactively. The room is resolved by explicit code, falling back to conn's
// membership; when neither resolves the announcement is dropped. The update
// goes to every participant of the room, the sender included — clients
// filter their own echo.
func (l *Lobby) AnnounceName(conn, code, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := l.resolveLocked(conn, code)
	if r == nil {
		return
	}
	r.Names[conn] = NormalizeName(name)
	l.broadcastNames(r)
}

// Stats returns a snapshot of lobby counters.
func (l *Lobby) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	matchmade := 0
	for _, r := range l.rooms.List() {
		if r.Matchmade {
			matchmade++
		}
	}
	return Stats{
		Connections: len(l.registry),
		Rooms:       l.rooms.Count(),
		Matchmade:   matchmade,
		Queued:      len(l.queue),
	}
}

// Rooms returns read-only views of all active rooms, oldest first.
func (l *Lobby) Rooms() []RoomInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	rooms := l.rooms.List()
	infos := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		infos = append(infos, roomInfo(r))
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].Code < infos[j].Code
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Room returns a read-only view of one active room.
func (l *Lobby) Room(code string) (RoomInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.rooms.ByCode(code)
	if !ok {
		return RoomInfo{}, false
	}
	return roomInfo(r), true
}

// NormalizeName trims and truncates a display name, substituting the default
// when nothing is left.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultName
	}
	runes := []rune(trimmed)
	if len(runes) > MaxNameLength {
		return string(runes[:MaxNameLength])
	}
	return trimmed
}

// displayName returns conn's registry name, or the default when none was set.
func (l *Lobby) displayName(conn string) string {
	if e, ok := l.registry[conn]; ok && e.set {
		return e.name
	}
	return DefaultName
}

// resolveLocked finds the room a message targets: explicit code first, then
// conn's current membership.
func (l *Lobby) resolveLocked(conn, code string) *room.Room {
	if code != "" {
		if r, ok := l.rooms.ByCode(code); ok {
			return r
		}
	}
	if r, ok := l.rooms.ByConn(conn); ok {
		return r
	}
	return nil
}

// broadcastNames sends the room's current name map to all its participants.
func (l *Lobby) broadcastNames(r *room.Room) {
	payload := NamesPayload{Code: r.Code, Names: copyNames(r.Names)}
	for _, p := range r.Participants {
		l.sender.Send(p, EventNames, payload)
	}
}

// broadcastReady announces the deterministic participant ordering to the
// whole room.
func (l *Lobby) broadcastReady(r *room.Room) {
	payload := ReadyPayload{
		Code:    r.Code,
		Players: r.Sorted(),
		Names:   copyNames(r.Names),
	}
	for _, p := range r.Participants {
		l.sender.Send(p, EventReady, payload)
	}
}

// copyNames snapshots a name map so later mutations do not leak into
// payloads queued for delivery.
func copyNames(names map[string]string) map[string]string {
	out := make(map[string]string, len(names))
	for k, v := range names {
		out[k] = v
	}
	return out
}

// roomInfo builds the read-only view of a room.
func roomInfo(r *room.Room) RoomInfo {
	return RoomInfo{
		Code:         r.Code,
		Participants: r.Sorted(),
		Names:        copyNames(r.Names),
		Matchmade:    r.Matchmade,
		CreatedAt:    r.CreatedAt,
	}
}
