package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockdrop/internal/config"
	"github.com/hersh/blockdrop/internal/driver"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/hersh/blockdrop/internal/netclient"
	"github.com/hersh/blockdrop/internal/protocol"
	"github.com/hersh/blockdrop/internal/tui"
)

// This is the terminal single-player entry point.
// For spectating, use:
//   Relay:   go run ./cmd/server
//   Player:  go run . --server ws://localhost:8080/ws --name YourName
//   Watcher: go run ./cmd/client --server ws://localhost:8080/ws

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

	// The alt screen owns stdout, so logs only go to a file when asked for.
	if path := os.Getenv("BLOCKDROP_LOG"); path != "" {
		f, err := tea.LogToFile(path, "blockdrop")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	rand, err := cfg.NewRandomizer()
	if err != nil {
		return err
	}
	g := game.New(cfg.Rules(), rand)
	keys := tui.NewKeyInput()

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

	d := driver.New(g, keys, opts...)
	model := tui.NewModel(d, keys, cfg.TickInterval(), cfg.PlayerName)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
