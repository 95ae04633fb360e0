package server

import (
	"sync"

	"github.com/hersh/blockdrop/internal/protocol"
	"github.com/kamstrup/intmap"
)

// Roster tracks every live connection by id, in join order.
type Roster struct {
	mu    sync.RWMutex
	conns *intmap.Map[uint64, *Conn]
	order []uint64
}

func NewRoster() *Roster {
	return &Roster{
		conns: intmap.New[uint64, *Conn](64),
	}
}

func (r *Roster) Add(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns.Get(c.id); !ok {
		r.order = append(r.order, c.id)
	}
	r.conns.Put(c.id, c)
}

// Remove drops the connection and closes its send queue.
func (r *Roster) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns.Get(id)
	if !ok {
		return
	}
	c.close()
	r.conns.Del(id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// WithRole returns the connections that announced role, in join order.
func (r *Roster) WithRole(role protocol.Role) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Conn, 0, len(r.order))
	for _, id := range r.order {
		c, _ := r.conns.Get(id)
		if c.Role() == role {
			out = append(out, c)
		}
	}
	return out
}

// Players lists the connected players for a roster update.
func (r *Roster) Players() []protocol.RosterEntry {
	players := r.WithRole(protocol.RolePlayer)
	entries := make([]protocol.RosterEntry, 0, len(players))
	for _, c := range players {
		entries = append(entries, protocol.RosterEntry{PlayerID: c.id, Name: c.Name()})
	}
	return entries
}
