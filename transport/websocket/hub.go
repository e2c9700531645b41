package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/NovadaGames/squared-socketio/game/lobby"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Gameplay clients are served from arbitrary origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame is the wire format in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub maintains the set of live connections and delivers lobby broadcasts.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // connection ID -> client
	lobby   *lobby.Lobby

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client
}

// NewHub creates a hub with no lobby bound yet.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Bind attaches the lobby the hub dispatches into. Must be called before
// Run; the hub and lobby reference each other, so neither constructor can
// take the other.
func (h *Hub) Bind(l *lobby.Lobby) {
	h.lobby = l
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS upgrades the request, assigns a connection identity, and starts
// the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Send delivers one event to one connection. It never blocks: the lobby
// calls it while holding its state lock, so a slow consumer loses the frame
// instead of stalling every other connection.
func (h *Hub) Send(conn, event string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WS] marshal %s failed: %v", event, err)
		return
	}
	frame, err := json.Marshal(Frame{Event: event, Data: raw})
	if err != nil {
		log.Printf("[WS] marshal frame %s failed: %v", event, err)
		return
	}

	h.mu.RLock()
	client, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- frame:
	default:
		// Send buffer full; fire-and-forget means the frame is lost
	}
}

// registerClient adds the connection, creates its registry entry, and tells
// the client its identity.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.lobby.Connect(client.id)
	h.Send(client.id, eventConnected, connectedPayload{ID: client.id})

	log.Printf("[WS] client registered id=%s total=%d", client.id, total)
}

// unregisterClient removes the connection and runs the disconnect cascade.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.id]
	if ok {
		delete(h.clients, client.id)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	h.lobby.Disconnect(client.id)
	log.Printf("[WS] client unregistered id=%s total=%d", client.id, total)
}
