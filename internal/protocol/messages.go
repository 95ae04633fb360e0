package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hersh/blockdrop/internal/game"
)

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Client messages
	MsgAssignID       MessageType = "assign_id"
	MsgRosterUpdate   MessageType = "roster_update"
	MsgSpectateUpdate MessageType = "spectate_update"

	// Client -> Server messages
	MsgHello         MessageType = "hello"
	MsgBoardSnapshot MessageType = "board_snapshot"
)

// Role is what a connection does once it has said hello.
type Role string

const (
	RolePlayer  Role = "player"
	RoleWatcher Role = "watcher"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// RawEnvelope is an Envelope whose payload has not been decoded yet.
type RawEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// --- Server -> Client payloads ---

// AssignIDPayload is sent when a client first connects.
type AssignIDPayload struct {
	PlayerID uint64 `json:"player_id"`
}

// RosterEntry is one connected player.
type RosterEntry struct {
	PlayerID uint64 `json:"player_id"`
	Name     string `json:"name"`
}

// RosterUpdatePayload is sent to watchers whenever players join or leave.
type RosterUpdatePayload struct {
	Players []RosterEntry `json:"players"`
}

// BoardState is the latest known board of one player.
type BoardState struct {
	PlayerID   uint64 `json:"player_id"`
	PlayerName string `json:"player_name"`
	BoardSnapshotPayload
}

// SpectateUpdatePayload carries every player's latest board.
type SpectateUpdatePayload struct {
	Boards []BoardState `json:"boards"`
}

// --- Client -> Server payloads ---

// HelloPayload is the first message a client sends.
type HelloPayload struct {
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// BoardSnapshotPayload is a player's visible board.
type BoardSnapshotPayload struct {
	Tick   uint64 `json:"tick"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Cells is row-major with row 0 nearest the floor. Values are CellCode.
	Cells []int  `json:"cells"`
	Piece string `json:"piece"`
	Phase string `json:"phase"`
	Lines int    `json:"lines"`
	Locks int    `json:"locks"`
}

// MaxBoardSide bounds both dimensions of a snapshot accepted off the wire.
const MaxBoardSide = 64

// ErrBadSnapshot is returned by Validate for a malformed snapshot.
var ErrBadSnapshot = errors.New("protocol: bad board snapshot")

// Validate checks the dimensions are within 1..MaxBoardSide and that Cells
// holds exactly Width*Height codes.
func (p BoardSnapshotPayload) Validate() error {
	if p.Width < 1 || p.Width > MaxBoardSide || p.Height < 1 || p.Height > MaxBoardSide {
		return fmt.Errorf("%w: size %dx%d", ErrBadSnapshot, p.Width, p.Height)
	}
	if len(p.Cells) != p.Width*p.Height {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrBadSnapshot, len(p.Cells), p.Width, p.Height)
	}
	return nil
}

// GameOver reports whether the snapshot was taken after the game ended.
func (p BoardSnapshotPayload) GameOver() bool {
	return p.Phase == game.GameOver.String()
}

// Wire cell codes. 0 is empty so that a zero-filled board reads as clear.
var cellCodes = map[game.BlockType]int{
	game.Wall:   1,
	game.BlockI: 2,
	game.BlockO: 3,
	game.BlockZ: 4,
	game.BlockT: 5,
	game.BlockJ: 6,
	game.BlockS: 7,
	game.BlockL: 8,
}

var codeTypes = func() map[int]game.BlockType {
	m := make(map[int]game.BlockType, len(cellCodes))
	for t, c := range cellCodes {
		m[c] = t
	}
	return m
}()

// CellCode encodes a board cell for the wire.
func CellCode(c game.Cell) int {
	if !c.Filled {
		return 0
	}
	return cellCodes[c.Type]
}

// DecodeCell is the inverse of CellCode. Unknown codes decode as wall.
func DecodeCell(code int) game.Cell {
	if code == 0 {
		return game.Cell{}
	}
	t, ok := codeTypes[code]
	if !ok {
		t = game.Wall
	}
	return game.Cell{Filled: true, Type: t}
}

// NewBoardSnapshot flattens the visible rows of snap.
func NewBoardSnapshot(tick uint64, visible [][]game.Cell, snap game.Snapshot) BoardSnapshotPayload {
	p := BoardSnapshotPayload{
		Tick:   tick,
		Height: len(visible),
		Piece:  snap.Status.Type.String(),
		Phase:  snap.Phase.String(),
		Lines:  snap.Lines,
		Locks:  snap.Locks,
	}
	if len(visible) > 0 {
		p.Width = len(visible[0])
	}
	p.Cells = make([]int, 0, p.Width*p.Height)
	for _, row := range visible {
		for _, c := range row {
			p.Cells = append(p.Cells, CellCode(c))
		}
	}
	return p
}

// Rows rebuilds the visible rows, row 0 nearest the floor. An invalid
// snapshot yields no rows.
func (p BoardSnapshotPayload) Rows() [][]game.Cell {
	if p.Validate() != nil {
		return nil
	}
	rows := make([][]game.Cell, p.Height)
	for y := range rows {
		rows[y] = make([]game.Cell, p.Width)
		for x := range rows[y] {
			rows[y][x] = DecodeCell(p.Cells[y*p.Width+x])
		}
	}
	return rows
}

// DecodePayload unmarshals the payload of raw into target.
func DecodePayload(raw RawEnvelope, target interface{}) error {
	return json.Unmarshal(raw.Payload, target)
}
