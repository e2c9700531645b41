package lobby

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovadaGames/squared-socketio/game/room"
)

// recorder captures everything the lobby broadcasts.
type recorder struct {
	mu    sync.Mutex
	sends []sent
}

type sent struct {
	conn  string
	event string
	data  any
}

func (r *recorder) Send(conn, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, sent{conn: conn, event: event, data: data})
}

func (r *recorder) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sent, len(r.sends))
	copy(out, r.sends)
	return out
}

func (r *recorder) byEvent(event string) []sent {
	var out []sent
	for _, s := range r.all() {
		if s.event == event {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) forConn(conn string) []sent {
	var out []sent
	for _, s := range r.all() {
		if s.conn == conn {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = nil
}

func newTestLobby() (*Lobby, *recorder) {
	rec := &recorder{}
	return New(rec), rec
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Alice", "Alice"},
		{"trimmed", "  Bob  ", "Bob"},
		{"empty", "", DefaultName},
		{"whitespace only", "   ", DefaultName},
		{"truncated", strings.Repeat("x", 40), strings.Repeat("x", MaxNameLength)},
		{"exactly max", strings.Repeat("y", MaxNameLength), strings.Repeat("y", MaxNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestCreateRoomBroadcastsNamesToCreator(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.SetName("conn-a", "Alice")
	rec.reset()

	code := l.CreateRoom("conn-a")

	require.Len(t, code, room.CodeLength)
	names := rec.byEvent(EventNames)
	require.Len(t, names, 1)
	assert.Equal(t, "conn-a", names[0].conn)
	payload := names[0].data.(NamesPayload)
	assert.Equal(t, code, payload.Code)
	assert.Equal(t, map[string]string{"conn-a": "Alice"}, payload.Names)
}

func TestJoinRoomAckAndReady(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	code := l.CreateRoom("conn-a")
	rec.reset()

	err := l.JoinRoom("conn-b", code)

	require.NoError(t, err)

	// Name map first, then ready, both to each participant
	names := rec.byEvent(EventNames)
	require.Len(t, names, 2)
	readies := rec.byEvent(EventReady)
	require.Len(t, readies, 2)

	for _, s := range readies {
		payload := s.data.(ReadyPayload)
		assert.Equal(t, code, payload.Code)
		assert.Equal(t, []string{"conn-a", "conn-b"}, payload.Players)
		assert.Equal(t, DefaultName, payload.Names["conn-a"])
		assert.Equal(t, DefaultName, payload.Names["conn-b"])
	}
}

func TestReadyOrderingIndependentOfJoinOrder(t *testing.T) {
	// Join in one order, then the reverse; the ready ordering must match.
	var orderings [][]string
	for _, pair := range [][2]string{{"conn-a", "conn-b"}, {"conn-b", "conn-a"}} {
		l, rec := newTestLobby()
		l.Connect(pair[0])
		l.Connect(pair[1])
		code := l.CreateRoom(pair[0])
		require.NoError(t, l.JoinRoom(pair[1], code))

		readies := rec.byEvent(EventReady)
		require.NotEmpty(t, readies)
		orderings = append(orderings, readies[0].data.(ReadyPayload).Players)
	}

	assert.Equal(t, orderings[0], orderings[1])
}

func TestJoinUnknownRoom(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")

	err := l.JoinRoom("conn-a", "ZZZZZ")

	assert.ErrorIs(t, err, room.ErrNoSuchRoom)
	assert.Empty(t, rec.all())
}

func TestJoinFullRoom(t *testing.T) {
	l, rec := newTestLobby()
	for _, conn := range []string{"conn-a", "conn-b", "conn-c"} {
		l.Connect(conn)
	}
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	rec.reset()

	err := l.JoinRoom("conn-c", code)

	assert.ErrorIs(t, err, room.ErrRoomFull)
	assert.Empty(t, rec.all(), "failed join must not broadcast")

	info, ok := l.Room(code)
	require.True(t, ok)
	assert.Equal(t, []string{"conn-a", "conn-b"}, info.Participants)
}

func TestSetNameUpdatesOccupiedRoom(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	rec.reset()

	l.SetName("conn-a", "Alice")

	names := rec.byEvent(EventNames)
	require.Len(t, names, 2, "both participants receive the update")
	payload := names[0].data.(NamesPayload)
	assert.Equal(t, "Alice", payload.Names["conn-a"])
	assert.Equal(t, DefaultName, payload.Names["conn-b"])
}

func TestSetNameOutsideRoomIsSilent(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")

	l.SetName("conn-a", "Alice")

	assert.Empty(t, rec.all())
}

func TestAnnounceNameReachesWholeRoomIncludingSender(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	rec.reset()

	l.AnnounceName("conn-a", code, "Alice")

	names := rec.byEvent(EventNames)
	require.Len(t, names, 2)
	conns := []string{names[0].conn, names[1].conn}
	assert.Contains(t, conns, "conn-a", "sender receives its own echo")
	assert.Contains(t, conns, "conn-b")
	assert.Equal(t, "Alice", names[0].data.(NamesPayload).Names["conn-a"])
}

func TestAnnounceNameFallsBackToMembership(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.CreateRoom("conn-a")
	rec.reset()

	l.AnnounceName("conn-a", "", "Alice")

	require.NotEmpty(t, rec.byEvent(EventNames))
}

func TestAnnounceNameUnresolvableIsDropped(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")

	l.AnnounceName("conn-a", "ZZZZZ", "Alice")

	assert.Empty(t, rec.all())
}

func TestLeaveRoomNotifiesRemainingParticipant(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	rec.reset()

	l.LeaveRoom("conn-a")

	left := rec.byEvent(EventOpponentLeft)
	require.Len(t, left, 1, "exactly one opponent-left notification")
	assert.Equal(t, "conn-b", left[0].conn)
	assert.Equal(t, code, left[0].data.(OpponentLeftPayload).Code)

	names := rec.byEvent(EventNames)
	require.Len(t, names, 1)
	assert.NotContains(t, names[0].data.(NamesPayload).Names, "conn-a")

	// Room survives with one participant
	info, ok := l.Room(code)
	require.True(t, ok)
	assert.Equal(t, []string{"conn-b"}, info.Participants)
}

func TestLeaveRoomDestroysEmptyRoom(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	code := l.CreateRoom("conn-a")
	rec.reset()

	l.LeaveRoom("conn-a")

	assert.Empty(t, rec.all(), "no broadcast for a destroyed room")
	_, ok := l.Room(code)
	assert.False(t, ok)

	// The code is gone for good
	l.Connect("conn-b")
	assert.ErrorIs(t, l.JoinRoom("conn-b", code), room.ErrNoSuchRoom)
}

func TestDisconnectCascade(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	l.Connect("conn-c")
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	l.JoinQueue("conn-c")
	rec.reset()

	l.Disconnect("conn-c")

	assert.Zero(t, l.Stats().Queued, "disconnect purges the queue slot")

	l.Disconnect("conn-a")

	left := rec.byEvent(EventOpponentLeft)
	require.Len(t, left, 1)
	assert.Equal(t, "conn-b", left[0].conn)

	stats := l.Stats()
	assert.Equal(t, 1, stats.Connections)
	assert.Equal(t, 1, stats.Rooms)

	l.Disconnect("conn-b")

	_, ok := l.Room(code)
	assert.False(t, ok, "last disconnect destroys the room")
	assert.Zero(t, l.Stats().Connections)
}

func TestCreateRoomReleasesPreviousRoom(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	first := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", first))
	rec.reset()

	second := l.CreateRoom("conn-a")

	require.NotEqual(t, first, second)
	left := rec.byEvent(EventOpponentLeft)
	require.Len(t, left, 1)
	assert.Equal(t, "conn-b", left[0].conn)

	stats := l.Stats()
	assert.Equal(t, 2, stats.Rooms)
}

func TestRejoinOwnRoomIsNoOp(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")
	code := l.CreateRoom("conn-a")
	rec.reset()

	require.NoError(t, l.JoinRoom("conn-a", code))

	assert.Empty(t, rec.all())
	info, _ := l.Room(code)
	assert.Equal(t, []string{"conn-a"}, info.Participants)
}

func TestStatsAndRoomViews(t *testing.T) {
	l, _ := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	l.Connect("conn-c")
	code := l.CreateRoom("conn-a")
	l.JoinQueue("conn-c")

	stats := l.Stats()
	assert.Equal(t, 3, stats.Connections)
	assert.Equal(t, 1, stats.Rooms)
	assert.Equal(t, 0, stats.Matchmade)
	assert.Equal(t, 1, stats.Queued)

	rooms := l.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, code, rooms[0].Code)
	assert.False(t, rooms[0].Matchmade)
}
