package room

import (
	"sort"
	"time"
)

// Capacity is the fixed number of participants a room can hold.
const Capacity = 2

// Room is a single two-participant session.
type Room struct {
	Code         string
	Participants []string // connection IDs in join order
	Names        map[string]string
	CreatedAt    time.Time
	Matchmade    bool
}

// Has reports whether conn currently occupies the room.
func (r *Room) Has(conn string) bool {
	for _, p := range r.Participants {
		if p == conn {
			return true
		}
	}
	return false
}

// Full reports whether the room has reached capacity.
func (r *Room) Full() bool {
	return len(r.Participants) >= Capacity
}

// Others returns the participants other than conn, in join order.
func (r *Room) Others(conn string) []string {
	others := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		if p != conn {
			others = append(others, p)
		}
	}
	return others
}

// Sorted returns the participants in lexical order. Both ends of a room
// derive role and turn assignment from this ordering, so it must come out
// identical regardless of join order.
func (r *Room) Sorted() []string {
	sorted := make([]string, len(r.Participants))
	copy(sorted, r.Participants)
	sort.Strings(sorted)
	return sorted
}

// remove drops conn and its name entry. It reports whether conn was present.
func (r *Room) remove(conn string) bool {
	for i, p := range r.Participants {
		if p == conn {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			delete(r.Names, conn)
			return true
		}
	}
	return false
}
