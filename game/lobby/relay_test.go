package lobby

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairedLobby(t *testing.T) (*Lobby, *recorder, string) {
	t.Helper()
	l, rec := newTestLobby()
	l.Connect("conn-a")
	l.Connect("conn-b")
	code := l.CreateRoom("conn-a")
	require.NoError(t, l.JoinRoom("conn-b", code))
	rec.reset()
	return l, rec, code
}

func TestRelayMoveExcludesSender(t *testing.T) {
	l, rec, _ := pairedLobby(t)
	payload := json.RawMessage(`{"cell":4}`)

	l.Relay("conn-a", EventMove, "", payload)

	sends := rec.all()
	require.Len(t, sends, 1)
	assert.Equal(t, "conn-b", sends[0].conn)
	assert.Equal(t, EventMove, sends[0].event)
	assert.Equal(t, payload, sends[0].data, "payload forwarded unmodified")
}

func TestRelayStartAndSurrenderExcludeSender(t *testing.T) {
	for _, event := range []string{EventStart, EventSurrender} {
		t.Run(event, func(t *testing.T) {
			l, rec, _ := pairedLobby(t)

			l.Relay("conn-b", event, "", json.RawMessage(`{}`))

			sends := rec.all()
			require.Len(t, sends, 1)
			assert.Equal(t, "conn-a", sends[0].conn)
		})
	}
}

func TestRelayRestartIncludesSender(t *testing.T) {
	l, rec, _ := pairedLobby(t)

	l.Relay("conn-a", EventRestart, "", json.RawMessage(`{}`))

	restarts := rec.byEvent(EventRestart)
	require.Len(t, restarts, 2)
	conns := []string{restarts[0].conn, restarts[1].conn}
	assert.Contains(t, conns, "conn-a", "restart echoes back to the sender")
	assert.Contains(t, conns, "conn-b")
}

func TestRelayResolvesExplicitCode(t *testing.T) {
	l, rec, code := pairedLobby(t)

	// conn-c is outside the room but names it explicitly
	l.Connect("conn-c")
	l.Relay("conn-c", EventMove, code, json.RawMessage(`{"cell":0}`))

	sends := rec.all()
	require.Len(t, sends, 2, "both room participants are 'others' to an outsider")
}

func TestRelayUnresolvableIsDropped(t *testing.T) {
	l, rec := newTestLobby()
	l.Connect("conn-a")

	l.Relay("conn-a", EventMove, "", json.RawMessage(`{}`))
	l.Relay("conn-a", EventMove, "ZZZZZ", json.RawMessage(`{}`))

	assert.Empty(t, rec.all())
}

func TestRelayOpaquePayload(t *testing.T) {
	l, rec, _ := pairedLobby(t)
	// Nothing the server would recognize; it must pass through byte for byte
	payload := json.RawMessage(`{"board":[[1,0],[0,2]],"nested":{"weird":true}}`)

	l.Relay("conn-a", EventMove, "", payload)

	sends := rec.all()
	require.Len(t, sends, 1)
	assert.Equal(t, payload, sends[0].data)
}
