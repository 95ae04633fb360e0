package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hersh/blockdrop/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// Conn is one websocket client of the relay.
type Conn struct {
	id     uint64
	ws     *websocket.Conn
	sendCh chan []byte
	logger *log.Logger

	mu       sync.Mutex
	role     protocol.Role
	name     string
	snapshot *protocol.BoardSnapshotPayload
	closed   bool
}

func newConn(id uint64, ws *websocket.Conn, logger *log.Logger) *Conn {
	return &Conn{
		id:     id,
		ws:     ws,
		sendCh: make(chan []byte, 256),
		logger: logger,
	}
}

func (c *Conn) Role() protocol.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

func (c *Conn) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Conn) hello(p protocol.HelloPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.role = p.Role
	c.name = p.Name
}

func (c *Conn) setSnapshot(p *protocol.BoardSnapshotPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = p
}

// Snapshot returns the latest board this player sent, or nil.
func (c *Conn) Snapshot() *protocol.BoardSnapshotPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// send marshals an envelope and queues it. Messages to a slow or closed
// connection are dropped.
func (c *Conn) send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.logger.Printf("marshal error for conn %d: %v", c.id, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.sendCh <- data:
	default:
		c.logger.Printf("send channel full for conn %d, dropping message", c.id)
	}
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
}

// writePump sends messages from sendCh to the WebSocket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.sendCh:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
