package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/hersh/blockdrop/internal/protocol"
)

var (
	colors = map[game.BlockType]string{
		game.Wall:   "245",
		game.BlockI: "51",
		game.BlockO: "226",
		game.BlockZ: "196",
		game.BlockT: "201",
		game.BlockJ: "21",
		game.BlockS: "46",
		game.BlockL: "208",
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// RenderBoard draws visible rows (row 0 nearest the floor) top down.
func RenderBoard(rows [][]game.Cell) string {
	var sb strings.Builder

	for i := len(rows) - 1; i >= 0; i-- {
		for _, cell := range rows[i] {
			if !cell.Filled {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(colors[cell.Type])).
				Render("██"))
		}
		if i > 0 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

func RenderInfo(name string, snap game.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("BLOCKDROP") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", name)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Piece:  %s", snap.Status.Type)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Pieces: %d", snap.Locks)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines:  %d", snap.Lines)) + "\n")

	if snap.Phase == game.GameOver {
		sb.WriteString("\n" + gameOverStyle.Render("GAME OVER") + "\n")
		sb.WriteString(infoStyle.Render("ENTER to play again") + "\n")
	}

	sb.WriteString(RenderControls())
	return sb.String()
}

func RenderControls() string {
	return infoStyle.Render(`
Controls:
  ← →    Move left/right
  ↓      Soft drop
  ↑/X    Rotate
  Esc/Q  Quit
`)
}

// RenderWatchBoard renders one remote player's board with a caption.
func RenderWatchBoard(b protocol.BoardState) string {
	var sb strings.Builder

	nameStyle := lipgloss.NewStyle().
		MaxWidth(b.Width * 2).
		Foreground(lipgloss.Color("15"))
	sb.WriteString(nameStyle.Render(b.PlayerName) + "\n")
	sb.WriteString(RenderBoard(b.Rows()) + "\n")

	if b.GameOver() {
		sb.WriteString(gameOverStyle.Render("OUT"))
	} else {
		sb.WriteString(infoStyle.Render(fmt.Sprintf("P:%d L:%d", b.Locks, b.Lines)))
	}
	return sb.String()
}

// RenderWatchBoards lays boards out in rows of cols.
func RenderWatchBoards(boards []protocol.BoardState, cols int) string {
	if len(boards) == 0 {
		return infoStyle.Render("Waiting for players...")
	}

	var lines []string
	var row []string
	for _, b := range boards {
		row = append(row, lipgloss.NewStyle().
			Padding(0, 1).
			Render(RenderWatchBoard(b)))
		if len(row) == cols {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderRoster(players []protocol.RosterEntry) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("=== PLAYERS ===") + "\n")
	for _, p := range players {
		sb.WriteString(fmt.Sprintf("#%d %s\n", p.PlayerID, p.Name))
	}
	return sb.String()
}
