// Package driver runs the fixed-rate game loop: poll input, advance the game
// one tick, hand a read-only frame to every renderer.
package driver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/hersh/blockdrop/internal/game"
)

// ErrQuit is returned by Step when the input source asked to exit.
var ErrQuit = errors.New("driver: quit requested")

// Controls is one tick's worth of input.
type Controls struct {
	game.Input
	Quit bool
}

// InputSource is polled exactly once per tick. Implementations report every
// rotation key-down edge seen since the previous poll and the current held
// state of the movement keys.
type InputSource interface {
	Poll() Controls
}

// Frame is what renderers see. The snapshot is a copy, so renderers may keep
// it or pass it to other goroutines.
type Frame struct {
	Tick        uint64
	VisibleRows int
	Snapshot    game.Snapshot
	Event       game.Event
}

// Visible returns the playable interior with row 0 nearest the floor.
func (f Frame) Visible() [][]game.Cell {
	return f.Snapshot.Board.Visible(f.VisibleRows)
}

type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

func (f RendererFunc) Render(fr Frame) error { return f(fr) }

type Driver struct {
	game        *game.Game
	input       InputSource
	renderers   []Renderer
	interval    time.Duration
	visibleRows int
	logger      *log.Logger
	tick        uint64
	last        Frame
}

type Option func(*Driver)

func WithRenderer(r Renderer) Option {
	return func(d *Driver) { d.renderers = append(d.renderers, r) }
}

func WithInterval(interval time.Duration) Option {
	return func(d *Driver) { d.interval = interval }
}

func WithVisibleRows(rows int) Option {
	return func(d *Driver) { d.visibleRows = rows }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// New wires a driver around g. Without options it ticks at 30 Hz, shows
// the reference 20 visible rows and discards log output.
func New(g *game.Game, input InputSource, opts ...Option) *Driver {
	d := &Driver{
		game:        g,
		input:       input,
		interval:    time.Second / 30,
		visibleRows: game.VisibleRows,
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.last = d.frame(game.Event{})
	return d
}

func (d *Driver) Game() *game.Game { return d.game }

// Frame returns the most recent frame.
func (d *Driver) Frame() Frame { return d.last }

// Step runs one tick. It returns ErrQuit when the input source asked to exit;
// renderer failures are logged and do not stop the loop.
func (d *Driver) Step() error {
	c := d.input.Poll()
	if c.Quit {
		return ErrQuit
	}

	ev := d.game.Tick(c.Input)
	d.tick++
	d.logEvent(ev)
	d.render(d.frame(ev))
	return nil
}

// Restart begins a new game on the same driver.
func (d *Driver) Restart() {
	d.game.Reset()
	d.logger.Printf("new game, first piece %v", d.game.Status().Type)
	d.render(d.frame(game.Event{}))
}

// Run steps at the configured rate until the input source quits or ctx is
// cancelled. Cancellation is observed between ticks.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if err := d.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (d *Driver) frame(ev game.Event) Frame {
	return Frame{
		Tick:        d.tick,
		VisibleRows: d.visibleRows,
		Snapshot:    d.game.Snapshot(),
		Event:       ev,
	}
}

func (d *Driver) render(f Frame) {
	d.last = f
	for _, r := range d.renderers {
		if err := r.Render(f); err != nil {
			d.logger.Printf("render error at tick %d: %v", f.Tick, err)
		}
	}
}

func (d *Driver) logEvent(ev game.Event) {
	if ev.Cleared > 0 {
		d.logger.Printf("tick %d: cleared %d line(s), %d total", d.tick, ev.Cleared, d.game.Lines())
	}
	if ev.GameOver {
		d.logger.Printf("tick %d: game over after %d pieces, %d lines", d.tick, d.game.Locks(), d.game.Lines())
	}
}
