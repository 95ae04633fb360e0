// Package server relays board snapshots from players to spectators.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hersh/blockdrop/internal/protocol"
)

const defaultBroadcastInterval = 100 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub accepts websocket connections, keeps the latest snapshot of every
// player and periodically pushes all of them to every watcher.
type Hub struct {
	roster   *Roster
	nextID   atomic.Uint64
	interval time.Duration
	logger   *log.Logger
}

type Option func(*Hub)

func WithBroadcastInterval(d time.Duration) Option {
	return func(h *Hub) { h.interval = d }
}

func WithLogger(l *log.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		roster:   NewRoster(),
		interval: defaultBroadcastInterval,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Roster() *Roster { return h.roster }

// Handler serves the websocket endpoint at /ws and a health check at /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Run broadcasts spectate updates until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.broadcastBoards()
		case <-ctx.Done():
			return
		}
	}
}

// ServeWS upgrades the request and serves the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade error: %v", err)
		return
	}

	c := newConn(h.nextID.Add(1), ws, h.logger)
	h.roster.Add(c)
	c.send(protocol.Envelope{
		Type:    protocol.MsgAssignID,
		Payload: protocol.AssignIDPayload{PlayerID: c.id},
	})

	go c.writePump()
	h.readPump(c)

	wasPlayer := c.Role() == protocol.RolePlayer
	h.roster.Remove(c.id)
	h.logger.Printf("conn %d (%s) disconnected", c.id, c.Name())
	if wasPlayer {
		h.broadcastRoster()
	}
}

// readPump reads messages from the WebSocket and dispatches them.
func (h *Hub) readPump(c *Conn) {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("read error for conn %d: %v", c.id, err)
			}
			return
		}

		var env protocol.RawEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			h.logger.Printf("unmarshal error from conn %d: %v", c.id, err)
			continue
		}
		h.handleMessage(c, env)
	}
}

// handleMessage dispatches a client message.
func (h *Hub) handleMessage(c *Conn, env protocol.RawEnvelope) {
	switch env.Type {
	case protocol.MsgHello:
		var payload protocol.HelloPayload
		if err := protocol.DecodePayload(env, &payload); err != nil {
			h.logger.Printf("bad hello from conn %d: %v", c.id, err)
			return
		}
		if payload.Role != protocol.RolePlayer && payload.Role != protocol.RoleWatcher {
			h.logger.Printf("conn %d sent unknown role %q", c.id, payload.Role)
			return
		}
		c.hello(payload)
		h.logger.Printf("conn %d joined as %s (%s)", c.id, payload.Role, payload.Name)
		if payload.Role == protocol.RoleWatcher {
			c.send(protocol.Envelope{
				Type:    protocol.MsgRosterUpdate,
				Payload: protocol.RosterUpdatePayload{Players: h.roster.Players()},
			})
			return
		}
		h.broadcastRoster()

	case protocol.MsgBoardSnapshot:
		if c.Role() != protocol.RolePlayer {
			h.logger.Printf("ignoring snapshot from non-player conn %d", c.id)
			return
		}
		var payload protocol.BoardSnapshotPayload
		if err := protocol.DecodePayload(env, &payload); err != nil {
			h.logger.Printf("bad snapshot from conn %d: %v", c.id, err)
			return
		}
		if err := payload.Validate(); err != nil {
			h.logger.Printf("dropping snapshot from conn %d: %v", c.id, err)
			return
		}
		c.setSnapshot(&payload)

	default:
		h.logger.Printf("unknown message type from conn %d: %s", c.id, env.Type)
	}
}

func (h *Hub) broadcastRoster() {
	env := protocol.Envelope{
		Type:    protocol.MsgRosterUpdate,
		Payload: protocol.RosterUpdatePayload{Players: h.roster.Players()},
	}
	for _, w := range h.roster.WithRole(protocol.RoleWatcher) {
		w.send(env)
	}
}

// broadcastBoards sends every watcher the latest board of every player that
// has sent one.
func (h *Hub) broadcastBoards() {
	watchers := h.roster.WithRole(protocol.RoleWatcher)
	if len(watchers) == 0 {
		return
	}

	var boards []protocol.BoardState
	for _, p := range h.roster.WithRole(protocol.RolePlayer) {
		snap := p.Snapshot()
		if snap == nil {
			continue
		}
		boards = append(boards, protocol.BoardState{
			PlayerID:             p.id,
			PlayerName:           p.Name(),
			BoardSnapshotPayload: *snap,
		})
	}

	env := protocol.Envelope{
		Type:    protocol.MsgSpectateUpdate,
		Payload: protocol.SpectateUpdatePayload{Boards: boards},
	}
	for _, w := range watchers {
		w.send(env)
	}
}
