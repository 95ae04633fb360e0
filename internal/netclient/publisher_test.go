package netclient_test

import (
	"testing"

	"github.com/hersh/blockdrop/internal/driver"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/hersh/blockdrop/internal/netclient"
	"github.com/hersh/blockdrop/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	sent []protocol.Envelope
}

func (r *recorder) Send(env protocol.Envelope) error {
	r.sent = append(r.sent, env)
	return nil
}

func frameAt(tick uint64, phase game.Phase, ev game.Event) driver.Frame {
	g := game.New(game.DefaultRules(), game.NewUniformGenerator(1))
	snap := g.Snapshot()
	snap.Phase = phase
	return driver.Frame{Tick: tick, VisibleRows: game.VisibleRows, Snapshot: snap, Event: ev}
}

func TestPublisherCadence(t *testing.T) {
	rec := &recorder{}
	p := netclient.NewPublisher(rec, 3)

	for tick := uint64(1); tick <= 9; tick++ {
		require.NoError(t, p.Render(frameAt(tick, game.Falling, game.Event{})))
	}
	assert.Len(t, rec.sent, 3)

	require.NoError(t, p.Render(frameAt(10, game.Falling, game.Event{Locked: true})))
	assert.Len(t, rec.sent, 4, "locks are always published")

	payload, ok := rec.sent[0].Payload.(protocol.BoardSnapshotPayload)
	require.True(t, ok)
	assert.Equal(t, uint64(3), payload.Tick)
	assert.Equal(t, protocol.MsgBoardSnapshot, rec.sent[0].Type)
}

func TestPublisherSendsGameOverOnce(t *testing.T) {
	rec := &recorder{}
	p := netclient.NewPublisher(rec, 2)

	require.NoError(t, p.Render(frameAt(7, game.GameOver, game.Event{Locked: true, GameOver: true})))
	for tick := uint64(8); tick < 20; tick++ {
		require.NoError(t, p.Render(frameAt(tick, game.GameOver, game.Event{})))
	}
	require.Len(t, rec.sent, 1)
	assert.True(t, rec.sent[0].Payload.(protocol.BoardSnapshotPayload).GameOver())

	require.NoError(t, p.Render(frameAt(20, game.Falling, game.Event{})))
	assert.Len(t, rec.sent, 2, "a restarted game publishes again")
}
