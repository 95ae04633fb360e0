package game

import "fmt"

// Reference sizing. Row 0 and the outer columns are wall; rows above
// VisibleRows form the spawn buffer.
const (
	BoardWidth   = 12
	BoardHeight  = 25
	VisibleRows  = 20
	SpawnX       = 5
	SpawnY       = 21
	GravityTicks = 10
)

type Cell struct {
	Filled bool
	Type   BlockType
}

// Board is indexed Cells[y][x] with y = 0 at the floor.
type Board struct {
	Cells  [][]Cell
	Width  int
	Height int
}

// NewBoard returns an empty board of the given size with its wall border set.
func NewBoard(width, height int) *Board {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			if x == 0 || x == width-1 || y == 0 {
				cells[y][x] = Cell{Filled: true, Type: Wall}
			}
		}
	}
	return &Board{
		Cells:  cells,
		Width:  width,
		Height: height,
	}
}

func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// IsBorder reports whether (x, y) belongs to the permanent wall.
func (b *Board) IsBorder(x, y int) bool {
	return x == 0 || x == b.Width-1 || y == 0
}

// At returns the cell at p. Reading outside the board is a programming error:
// the wall border always rejects a piece before it can leave the grid.
func (b *Board) At(p Point) Cell {
	return *b.cell(p)
}

func (b *Board) Occupied(p Point) bool {
	return b.cell(p).Filled
}

func (b *Board) cell(p Point) *Cell {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("game: cell (%d,%d) outside %dx%d board", p.X, p.Y, b.Width, b.Height))
	}
	return &b.Cells[p.Y][p.X]
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.Cells[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// clearTop is the highest row that takes part in line compaction.
func (b *Board) clearTop() int {
	return b.Height - 2
}

// ClearLines compacts every full row between the floor and the spawn buffer
// and returns how many rows were removed. A row index is rechecked after each
// shift, so rows that become full by shifting are removed in the same pass.
// The top row of the range stays as it is and is copied down with the rest;
// it is only emptied when it is itself full, otherwise it would refill the
// row below forever.
func (b *Board) ClearLines() int {
	top := b.clearTop()
	cleared := 0
	for y := 1; y < top; y++ {
		for b.rowFull(y) {
			for r := y; r < top; r++ {
				copy(b.Cells[r], b.Cells[r+1])
			}
			if b.rowFull(top) {
				b.resetRow(top)
			}
			cleared++
		}
	}
	return cleared
}

// resetRow empties the interior of row y, leaving its wall cells alone.
func (b *Board) resetRow(y int) {
	for x := range b.Cells[y] {
		if b.IsBorder(x, y) {
			continue
		}
		b.Cells[y][x] = Cell{}
	}
}

// Flatten turns every occupied cell into wall. Occupancy is unchanged.
func (b *Board) Flatten() {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			if b.Cells[y][x].Filled {
				b.Cells[y][x].Type = Wall
			}
		}
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (b *Board) Clone() *Board {
	cells := make([][]Cell, len(b.Cells))
	for y := range b.Cells {
		cells[y] = make([]Cell, len(b.Cells[y]))
		copy(cells[y], b.Cells[y])
	}
	return &Board{
		Cells:  cells,
		Width:  b.Width,
		Height: b.Height,
	}
}

// Visible returns the playable interior, rows 1..rows and columns
// 1..Width-2, with out[0] being the row nearest the floor.
func (b *Board) Visible(rows int) [][]Cell {
	rows = min(rows, b.Height-1)
	out := make([][]Cell, rows)
	for i := range out {
		row := b.Cells[i+1]
		out[i] = make([]Cell, b.Width-2)
		copy(out[i], row[1:b.Width-1])
	}
	return out
}
