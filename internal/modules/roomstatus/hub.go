package roomstatus

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"hotelops/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// WSEvent is what dashboard clients receive.
type WSEvent struct {
	Type    string           `json:"type"`
	Payload domain.RoomEvent `json:"payload"`
}

const EventRoomStatus = "room_status"

type clientMessage struct {
	Type   string `json:"type"`
	RoomID int64  `json:"room_id"`
}

// connection is one dashboard client. An empty rooms set means the client
// follows every room.
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[int64]bool
}

type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Publish implements Publisher.
func (h *Hub) Publish(ev domain.RoomEvent) {
	data, err := json.Marshal(WSEvent{Type: EventRoomStatus, Payload: ev})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal room event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if len(c.rooms) > 0 && !c.rooms[ev.RoomID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn().Int64("user_id", c.userID).Msg("room feed client too slow, event dropped")
		}
	}
}

func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

// ServeWS registers conn and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, rooms []int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[int64]bool, len(rooms)),
	}
	for _, id := range rooms {
		c.rooms[id] = true
	}

	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Int64("user_id", c.userID).Msg("room feed read")
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.RoomID <= 0 {
			continue
		}

		h.mu.Lock()
		switch msg.Type {
		case "subscribe":
			c.rooms[msg.RoomID] = true
		case "unsubscribe":
			delete(c.rooms, msg.RoomID)
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
