package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// RoleCaptain marks connections allowed to publish location updates.
const RoleCaptain = "captain"

// Client is one live authenticated connection. ActorID and Role come from
// the verified handshake credential, never from the client's own claims.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// send is closed exactly once, through closeSend. All writes to the
	// channel pass through trySend, which holds mu, so an evicted client
	// can never be written to after the close.
	mu     sync.Mutex
	send   chan []byte
	closed bool

	ActorID string
	Role    string
}

// NewClient wraps an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, actorID, role string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		ActorID: actorID,
		Role:    role,
	}
}

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
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("websocket read error")
			}
			return
		}

		if !c.handleMessage(message) {
			return
		}
	}
}

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

// handleMessage processes one inbound event. Returns false to drop the
// connection.
func (c *Client) handleMessage(message []byte) bool {
	var event Event
	if err := json.Unmarshal(message, &event); err != nil {
		c.sendError("malformed event")
		return true
	}

	switch event.Type {
	case EventJoin:
		// The connection was registered at handshake; join only re-asserts
		// identity. A claim that differs from the authenticated identity is
		// a protocol violation.
		if claimed, ok := event.Data["actor_id"].(string); ok && claimed != c.ActorID {
			c.sendError("actor id does not match credential")
			return false
		}

	case EventUpdateLocationCaptain:
		if c.Role != RoleCaptain {
			c.sendError("only captains publish locations")
			return true
		}
		lat, latOK := event.Data["lat"].(float64)
		lng, lngOK := event.Data["lng"].(float64)
		if !latOK || !lngOK {
			c.sendError("malformed location")
			return true
		}

		if c.hub.locations != nil {
			if err := c.hub.locations.SaveCaptainLocation(context.Background(), c.ActorID, lat, lng); err != nil {
				c.hub.log.WithError(err).WithField("captain", c.ActorID).Warn("location persist failed")
			}
		}
		c.hub.BroadcastCaptainLocation(c.ActorID, lat, lng)

	case EventLogout:
		return false

	default:
		c.sendError("unknown event type")
	}

	return true
}

// trySend queues a message without blocking. Returns false when the client
// has been closed or its buffer is full.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel. Safe to call more than once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) sendError(message string) {
	data, err := json.Marshal(newEvent(EventError, map[string]interface{}{"message": message}))
	if err != nil {
		return
	}
	c.trySend(data)
}
