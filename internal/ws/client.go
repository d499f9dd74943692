package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 512
)

// Client represents a single WebSocket connection. A client drives at most
// one game session; the session owns the mapping, not the client.
type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// NewClient creates a new Client with a random ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
	}
}

// ReadPump forwards control frames (lobby requests, key presses, actions) to
// the hub until the connection drops or the hub stops. The hub then detaches
// the client from its session.
func (c *Client) ReadPump() {
	defer c.detach()

	c.Conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.Conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read error", "client", c.ID, "error", err)
			}
			return
		}
		if !c.forward(frame) {
			return
		}
	}
}

func (c *Client) forward(frame []byte) bool {
	select {
	case c.Hub.Incoming <- &ClientMessage{Client: c, Data: frame}:
		return true
	case <-c.Hub.Done():
		return false
	}
}

func (c *Client) detach() {
	select {
	case c.Hub.Unregister <- c:
	case <-c.Hub.Done():
	}
	c.Conn.Close()
}

func (c *Client) extendReadDeadline() {
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
}

// WritePump delivers session updates (world events, game_state ticks,
// game_over) to the connection and keeps it alive with pings. It exits once
// the hub closes Send or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		var err error
		select {
		case frame, ok := <-c.Send:
			if !ok {
				c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			err = c.write(websocket.TextMessage, frame)
		case <-ticker.C:
			err = c.write(websocket.PingMessage, nil)
		}
		if err != nil {
			slog.Debug("websocket write failed", "client", c.ID, "error", err)
			return
		}
	}
}

func (c *Client) write(kind int, frame []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(kind, frame)
}

// SendMessage sends a Message to this client. Messages are dropped when the
// send buffer is full; game_state is resent every tick anyway.
func (c *Client) SendMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal message", "error", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ID)
	}
}

// ClientMessage wraps a raw message with its source client.
type ClientMessage struct {
	Client *Client
	Data   []byte
}
