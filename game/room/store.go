package room

import (
	"errors"
	"time"
)

var (
	ErrNoSuchRoom = errors.New("no such room")
	ErrRoomFull   = errors.New("room full")
)

// Store is the authoritative table of active rooms. The byConn index is
// maintained alongside every mutation so membership lookup never scans.
type Store struct {
	rooms  map[string]*Room  // code -> room
	byConn map[string]string // connection ID -> code
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rooms:  make(map[string]*Room),
		byConn: make(map[string]string),
	}
}

// Create makes a new room containing only conn and registers it.
func (s *Store) Create(conn, name string, matchmade bool) *Room {
	r := &Room{
		Code:         s.generateCode(),
		Participants: []string{conn},
		Names:        map[string]string{conn: name},
		CreatedAt:    time.Now(),
		Matchmade:    matchmade,
	}
	s.rooms[r.Code] = r
	s.byConn[conn] = r.Code
	return r
}

// Pair makes a new matchmade room containing a and b in that order.
func (s *Store) Pair(a, b, nameA, nameB string) *Room {
	r := &Room{
		Code:         s.generateCode(),
		Participants: []string{a, b},
		Names:        map[string]string{a: nameA, b: nameB},
		CreatedAt:    time.Now(),
		Matchmade:    true,
	}
	s.rooms[r.Code] = r
	s.byConn[a] = r.Code
	s.byConn[b] = r.Code
	return r
}

// Join appends conn to the room identified by code. It returns
// ErrNoSuchRoom for unknown codes and ErrRoomFull when the room already
// holds two participants; in both cases the store is left untouched.
func (s *Store) Join(code, conn, name string) (*Room, error) {
	r, ok := s.rooms[code]
	if !ok {
		return nil, ErrNoSuchRoom
	}
	if r.Full() {
		return nil, ErrRoomFull
	}
	r.Participants = append(r.Participants, conn)
	r.Names[conn] = name
	s.byConn[conn] = code
	return r, nil
}

// Leave removes conn from its room, if any. When the room becomes empty it
// is destroyed on the spot. The returned room reflects the state after
// removal; callers check len(Participants) to tell the two outcomes apart.
func (s *Store) Leave(conn string) (*Room, bool) {
	code, ok := s.byConn[conn]
	if !ok {
		return nil, false
	}
	delete(s.byConn, conn)

	r := s.rooms[code]
	r.remove(conn)
	if len(r.Participants) == 0 {
		delete(s.rooms, code)
	}
	return r, true
}

// SetName updates conn's display name in its room's name map. It returns
// the room, or false when conn occupies no room.
func (s *Store) SetName(conn, name string) (*Room, bool) {
	r, ok := s.ByConn(conn)
	if !ok {
		return nil, false
	}
	r.Names[conn] = name
	return r, true
}

// ByCode returns the active room with the given code.
func (s *Store) ByCode(code string) (*Room, bool) {
	r, ok := s.rooms[code]
	return r, ok
}

// ByConn returns the room conn currently occupies.
func (s *Store) ByConn(conn string) (*Room, bool) {
	code, ok := s.byConn[conn]
	if !ok {
		return nil, false
	}
	r, ok := s.rooms[code]
	return r, ok
}

// List returns all active rooms.
func (s *Store) List() []*Room {
	result := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		result = append(result, r)
	}
	return result
}

// Count returns the number of active rooms.
func (s *Store) Count() int {
	return len(s.rooms)
}
