package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NovadaGames/squared-socketio/game/lobby"
	"github.com/NovadaGames/squared-socketio/game/room"
)

// Client commands (client → server).
const (
	cmdSetName      = "set_name"
	cmdAnnounceName = "announce_name"
	cmdCreateRoom   = "create_room"
	cmdJoinRoom     = "join_room"
	cmdLeaveRoom    = "leave_room"
	cmdJoinQueue    = "join_queue"
	cmdLeaveQueue   = "leave_queue"
)

// Transport-level server frames. Lobby broadcasts carry their own event
// names.
const (
	eventConnected = "connected"
	eventCreated   = "created"
	eventJoined    = "joined"
)

// Synchronous failure codes surfaced in join acks.
const (
	codeNoSuchRoom = "NO_SUCH_ROOM"
	codeRoomFull   = "ROOM_FULL"
)

type connectedPayload struct {
	ID string `json:"id"`
}

// Ack answers create_room and join_room.
type Ack struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client represents one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// readPump pumps frames from the connection into the lobby.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error id=%s: %v", c.id, err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			// Malformed frames are dropped, not answered
			continue
		}
		c.dispatch(frame)
	}
}

// dispatch routes one inbound frame to the lobby. Unknown events are
// dropped silently.
func (c *Client) dispatch(frame Frame) {
	l := c.hub.lobby

	switch frame.Event {
	case cmdSetName:
		var req struct {
			Name string `json:"name"`
		}
		json.Unmarshal(frame.Data, &req)
		l.SetName(c.id, req.Name)

	case cmdAnnounceName:
		var req struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		json.Unmarshal(frame.Data, &req)
		l.AnnounceName(c.id, req.Code, req.Name)

	case cmdCreateRoom:
		code := l.CreateRoom(c.id)
		c.hub.Send(c.id, eventCreated, Ack{OK: true, Code: code})

	case cmdJoinRoom:
		var req struct {
			Code string `json:"code"`
		}
		json.Unmarshal(frame.Data, &req)
		if err := l.JoinRoom(c.id, req.Code); err != nil {
			c.hub.Send(c.id, eventJoined, Ack{OK: false, Error: errorCode(err)})
			return
		}
		c.hub.Send(c.id, eventJoined, Ack{OK: true, Code: req.Code})

	case cmdLeaveRoom:
		l.LeaveRoom(c.id)

	case cmdJoinQueue:
		l.JoinQueue(c.id)

	case cmdLeaveQueue:
		l.LeaveQueue(c.id)

	case lobby.EventStart, lobby.EventMove, lobby.EventSurrender, lobby.EventRestart:
		// Only the optional room code is pulled out; the payload stays opaque
		var ref struct {
			Code string `json:"code"`
		}
		if len(frame.Data) > 0 {
			json.Unmarshal(frame.Data, &ref)
		}
		l.Relay(c.id, frame.Event, ref.Code, frame.Data)
	}
}

// errorCode maps store errors to the wire taxonomy.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrNoSuchRoom):
		return codeNoSuchRoom
	case errors.Is(err, room.ErrRoomFull):
		return codeRoomFull
	default:
		return "INTERNAL"
	}
}

// writePump pumps frames from the hub to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
