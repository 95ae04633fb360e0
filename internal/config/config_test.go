package config_test

import (
	"flag"
	"testing"
	"time"

	"github.com/hersh/blockdrop/internal/config"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
	assert.Equal(t, time.Second/30, cfg.TickInterval())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"tiny board", func(c *config.Config) { c.Width = 4 }},
		{"spawn too high", func(c *config.Config) { c.SpawnY = c.Height - 2 }},
		{"spawn against the wall", func(c *config.Config) { c.SpawnX = 2 }},
		{"zero tps", func(c *config.Config) { c.TPS = 0 }},
		{"zero gravity", func(c *config.Config) { c.GravityTicks = 0 }},
		{"visible rows past the board", func(c *config.Config) { c.VisibleRows = c.Height }},
		{"unknown randomizer", func(c *config.Config) { c.Randomizer = "lucky" }},
		{"zero snapshot cadence", func(c *config.Config) { c.SnapshotEvery = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := config.Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"-seed", "9", "-random", "bag", "-tps", "60", "-server", "ws://x/ws"}))
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, config.RandomBag, cfg.Randomizer)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, "ws://x/ws", cfg.ServerURL)

	r, err := cfg.NewRandomizer()
	require.NoError(t, err)
	assert.IsType(t, &game.BagGenerator{}, r)
}
