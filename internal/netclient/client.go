package netclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hersh/blockdrop/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

var (
	ErrQueueFull = errors.New("netclient: send queue full")
	ErrClosed    = errors.New("netclient: closed")
)

// ServerMsg is a tea.Msg that wraps an incoming server message.
type ServerMsg struct {
	Type protocol.MessageType
	Raw  json.RawMessage
}

// ConnectedMsg is sent when the relay assigns this client its id.
type ConnectedMsg struct {
	ID uint64
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Client manages the WebSocket connection to the spectator relay.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	sendCh  chan []byte
	program *tea.Program
	done    chan struct{}
	closed  bool
	started bool
	logger  *log.Logger
}

// Dial connects to the relay and introduces the client with role and name.
// Call Start to begin pumping messages.
func Dial(serverURL string, role protocol.Role, name string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	c := &Client{
		conn:   conn,
		sendCh: make(chan []byte, 256),
		done:   make(chan struct{}),
		logger: log.New(io.Discard, "", 0),
	}
	if err := c.Send(protocol.Envelope{
		Type:    protocol.MsgHello,
		Payload: protocol.HelloPayload{Role: role, Name: name},
	}); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// SetLogger replaces the default discarding logger.
func (c *Client) SetLogger(l *log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

// SetProgram sets the bubbletea program so the client can send messages to it.
func (c *Client) SetProgram(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
	go c.writePump()
	go c.readPump()
}

// Send marshals and queues an envelope for the relay.
func (c *Client) Send(env protocol.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", env.Type, err)
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.sendCh <- data:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close shuts down the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	// Once started, writePump is the only writer and sends the close frame.
	if !c.started {
		c.conn.Close()
	}
}

func (c *Client) state() (*tea.Program, *log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.program, c.logger
}

// readPump reads messages from the WebSocket and sends them to the bubbletea program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		if p, _ := c.state(); p != nil {
			p.Send(DisconnectedMsg{Err: readErr})
		}
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
			_, logger := c.state()
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Printf("readPump error: %v", err)
				readErr = err
			}
			return
		}

		var env protocol.RawEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			_, logger := c.state()
			logger.Printf("client unmarshal error: %v", err)
			continue
		}

		p, _ := c.state()
		if p == nil {
			continue
		}

		switch env.Type {
		case protocol.MsgAssignID:
			var payload protocol.AssignIDPayload
			if protocol.DecodePayload(env, &payload) == nil {
				p.Send(ConnectedMsg{ID: payload.PlayerID})
			}
		default:
			p.Send(ServerMsg{Type: env.Type, Raw: env.Payload})
		}
	}
}

// writePump writes messages from sendCh to the WebSocket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
