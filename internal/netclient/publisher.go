package netclient

import (
	"github.com/hersh/blockdrop/internal/driver"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/hersh/blockdrop/internal/protocol"
)

// Sender is the part of Client a Publisher needs.
type Sender interface {
	Send(protocol.Envelope) error
}

// Publisher is a driver.Renderer that forwards frames to the relay. It sends
// every nth tick, on every lock, and once when the game ends.
type Publisher struct {
	sender   Sender
	every    uint64
	sentOver bool
}

func NewPublisher(s Sender, every int) *Publisher {
	return &Publisher{sender: s, every: uint64(max(every, 1))}
}

func (p *Publisher) Render(f driver.Frame) error {
	over := f.Snapshot.Phase == game.GameOver
	if !over {
		p.sentOver = false
	}
	due := f.Tick%p.every == 0 || f.Event.Locked || (over && !p.sentOver)
	if !due || (over && p.sentOver) {
		return nil
	}
	if over {
		p.sentOver = true
	}
	return p.sender.Send(protocol.Envelope{
		Type:    protocol.MsgBoardSnapshot,
		Payload: protocol.NewBoardSnapshot(f.Tick, f.Visible(), f.Snapshot),
	})
}
