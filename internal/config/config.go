// Package config holds the tunables shared by the game frontends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/hersh/blockdrop/internal/game"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	RandomUniform = "uniform"
	RandomBag     = "bag"
)

type Config struct {
	Width        int
	Height       int
	SpawnX       int
	SpawnY       int
	VisibleRows  int
	TPS          int
	GravityTicks int
	LateralEvery int
	Seed         int64
	Randomizer   string

	// ServerURL, when set, is the spectator relay to publish snapshots to.
	ServerURL     string
	SnapshotEvery int
	PlayerName    string
}

// Default returns the reference sizing: a 12x25 board with a 10x20 visible
// interior, 30 ticks per second and gravity every 10 ticks.
func Default() Config {
	return Config{
		Width:         game.BoardWidth,
		Height:        game.BoardHeight,
		SpawnX:        game.SpawnX,
		SpawnY:        game.SpawnY,
		VisibleRows:   game.VisibleRows,
		TPS:           30,
		GravityTicks:  game.GravityTicks,
		LateralEvery:  2,
		Randomizer:    RandomUniform,
		SnapshotEvery: 3,
		PlayerName:    "Player",
	}
}

// RegisterFlags binds the user-facing fields to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.GravityTicks, "gravity", c.GravityTicks, "ticks between gravity steps")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")
	fs.StringVar(&c.Randomizer, "random", c.Randomizer, "piece randomizer: uniform or bag")
	fs.StringVar(&c.ServerURL, "server", c.ServerURL, "spectator relay to publish to, e.g. ws://localhost:8080/ws")
	fs.IntVar(&c.SnapshotEvery, "snapshot-every", c.SnapshotEvery, "ticks between published snapshots")
	fs.StringVar(&c.PlayerName, "name", c.PlayerName, "name shown to spectators")
}

func (c Config) Rules() game.Rules {
	return game.Rules{
		Width:        c.Width,
		Height:       c.Height,
		Spawn:        game.Point{X: c.SpawnX, Y: c.SpawnY},
		GravityTicks: c.GravityTicks,
		LateralEvery: c.LateralEvery,
	}
}

// TickInterval is the wall-clock length of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TPS)
}

// NewRandomizer builds the configured piece randomizer.
func (c Config) NewRandomizer() (game.Randomizer, error) {
	switch c.Randomizer {
	case RandomUniform, "":
		return game.NewUniformGenerator(c.Seed), nil
	case RandomBag:
		return game.NewBagGenerator(c.Seed), nil
	}
	return nil, fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
}

// Validate checks the board can hold its border and that every playable
// shape, at every rotation, fits strictly inside the walls at the spawn
// point. With that in place a piece is always rejected by the wall before
// any of its cells can leave the grid.
func (c Config) Validate() error {
	if c.Width < 5 || c.Height < 6 {
		return fmt.Errorf("%w: board %dx%d too small", ErrInvalid, c.Width, c.Height)
	}
	if c.VisibleRows < 1 || c.VisibleRows > c.Height-1 {
		return fmt.Errorf("%w: visible rows %d outside 1..%d", ErrInvalid, c.VisibleRows, c.Height-1)
	}
	if c.TPS < 1 {
		return fmt.Errorf("%w: tps must be positive", ErrInvalid)
	}
	if c.GravityTicks < 1 || c.LateralEvery < 1 {
		return fmt.Errorf("%w: gravity and lateral cadence must be positive", ErrInvalid)
	}
	if c.SnapshotEvery < 1 {
		return fmt.Errorf("%w: snapshot-every must be positive", ErrInvalid)
	}
	if _, err := c.NewRandomizer(); err != nil {
		return err
	}

	for _, t := range game.Playable {
		shape := game.ShapeOf(t)
		for r := 0; r < shape.Order; r++ {
			for _, p := range game.Footprint(game.NewStatus(c.SpawnX, c.SpawnY, t, r)) {
				if p.X < 1 || p.X > c.Width-2 || p.Y < 1 || p.Y > c.Height-2 {
					return fmt.Errorf("%w: %v rotation %d at spawn (%d,%d) reaches (%d,%d)",
						ErrInvalid, t, r, c.SpawnX, c.SpawnY, p.X, p.Y)
				}
			}
		}
	}
	return nil
}
