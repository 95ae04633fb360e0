package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockdrop/internal/netclient"
	"github.com/hersh/blockdrop/internal/protocol"
	"github.com/hersh/blockdrop/internal/tui"
)

func main() {
	serverAddr := flag.String("server", "ws://localhost:8080/ws", "WebSocket relay address")
	watcherName := flag.String("name", "", "Watcher name (defaults to OS username)")
	flag.Parse()

	name := *watcherName
	if name == "" {
		if u, err := user.Current(); err == nil && u.Username != "" {
			name = u.Username
		} else {
			name = "Watcher"
		}
	}

	if path := os.Getenv("BLOCKDROP_LOG"); path != "" {
		if f, err := tea.LogToFile(path, "watch"); err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	client, err := netclient.Dial(*serverAddr, protocol.RoleWatcher, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to relay at %s: %v\n", *serverAddr, err)
		fmt.Fprintf(os.Stderr, "Make sure the relay is running (go run ./cmd/server)\n")
		os.Exit(1)
	}
	defer client.Close()
	client.SetLogger(log.Default())

	p := tea.NewProgram(tui.NewWatchModel(client.Close), tea.WithAltScreen())

	// Wire the program into the client so readPump can send tea.Msgs
	client.SetProgram(p)
	client.Start()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
