package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockdrop/internal/netclient"
	"github.com/hersh/blockdrop/internal/protocol"
)

const watchColumns = 4

// WatchModel shows the boards a spectator relay forwards.
type WatchModel struct {
	connected    bool
	id           uint64
	roster       []protocol.RosterEntry
	boards       []protocol.BoardState
	width        int
	height       int
	err          error
	disconnected bool
	onQuit       func()
}

// NewWatchModel builds the spectator view. onQuit, if set, runs before the
// program exits.
func NewWatchModel(onQuit func()) WatchModel {
	return WatchModel{onQuit: onQuit}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case netclient.ConnectedMsg:
		m.connected = true
		m.id = msg.ID
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
	case netclient.ServerMsg:
		return m.handleServerMsg(msg)
	}
	return m, nil
}

func (m WatchModel) handleServerMsg(msg netclient.ServerMsg) (tea.Model, tea.Cmd) {
	env := protocol.RawEnvelope{Type: msg.Type, Payload: msg.Raw}
	switch msg.Type {
	case protocol.MsgRosterUpdate:
		var payload protocol.RosterUpdatePayload
		if protocol.DecodePayload(env, &payload) == nil {
			m.roster = payload.Players
			m.boards = keepRostered(m.boards, payload.Players)
		}
	case protocol.MsgSpectateUpdate:
		var payload protocol.SpectateUpdatePayload
		if protocol.DecodePayload(env, &payload) == nil {
			m.boards = payload.Boards
		}
	}
	return m, nil
}

// keepRostered drops boards of players that have left.
func keepRostered(boards []protocol.BoardState, roster []protocol.RosterEntry) []protocol.BoardState {
	present := make(map[uint64]bool, len(roster))
	for _, p := range roster {
		present[p.PlayerID] = true
	}
	out := boards[:0:0]
	for _, b := range boards {
		if present[b.PlayerID] {
			out = append(out, b)
		}
	}
	return out
}

func (m WatchModel) View() string {
	var content string
	switch {
	case m.disconnected:
		content = "Disconnected from server.\nPress Q to exit."
		if m.err != nil {
			content = fmt.Sprintf("Disconnected from server: %v\nPress Q to exit.", m.err)
		}
	case !m.connected:
		content = "Connecting to server..."
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			RenderRoster(m.roster),
			RenderWatchBoards(m.boards, watchColumns),
		)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
