package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockdrop/internal/driver"
)

// TickMsg drives one game tick.
type TickMsg time.Time

// Model is the single-player terminal frontend. The driver owns the game;
// the model feeds it key presses and asks it to step on every TickMsg.
type Model struct {
	driver     *driver.Driver
	keys       *KeyInput
	interval   time.Duration
	playerName string
	width      int
	height     int
}

// NewModel wraps d, which must have been built with keys as its input source.
func NewModel(d *driver.Driver, keys *KeyInput, interval time.Duration, playerName string) Model {
	return Model{
		driver:     d,
		keys:       keys,
		interval:   interval,
		playerName: playerName,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && m.driver.Game().Over() {
		m.driver.Restart()
		return m, nil
	}
	m.keys.Press(msg.String())
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if err := m.driver.Step(); err != nil {
		if errors.Is(err, driver.ErrQuit) {
			return m, tea.Quit
		}
	}
	return m, tickCmd(m.interval)
}

func (m Model) View() string {
	frame := m.driver.Frame()
	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(m.playerName, frame.Snapshot))

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderBoard(frame.Visible()))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel))
}
