package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hersh/blockdrop/internal/config"
	"github.com/hersh/blockdrop/internal/driver"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/hersh/blockdrop/internal/gfx"
	"github.com/hersh/blockdrop/internal/netclient"
	"github.com/hersh/blockdrop/internal/protocol"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	rand, err := cfg.NewRandomizer()
	if err != nil {
		return err
	}
	g := game.New(cfg.Rules(), rand)
	input := gfx.NewInput()

	opts := []driver.Option{
		driver.WithVisibleRows(cfg.VisibleRows),
		driver.WithLogger(log.Default()),
	}
	if cfg.ServerURL != "" {
		client, err := netclient.Dial(cfg.ServerURL, protocol.RolePlayer, cfg.PlayerName)
		if err != nil {
			return fmt.Errorf("connect to relay: %w", err)
		}
		defer client.Close()
		client.SetLogger(log.Default())
		client.Start()
		opts = append(opts, driver.WithRenderer(netclient.NewPublisher(client, cfg.SnapshotEvery)))
	}

	d := driver.New(g, input, opts...)
	w := gfx.NewWindow(d, input, cfg.Width-2, cfg.VisibleRows)

	width, height := w.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Blockdrop")
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(w)
}
