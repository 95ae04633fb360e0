package game_test

import (
	"testing"

	"github.com/hersh/blockdrop/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefBoard() *game.Board {
	return game.NewBoard(game.BoardWidth, game.BoardHeight)
}

func fillRow(b *game.Board, y int, t game.BlockType) {
	for x := 1; x < b.Width-1; x++ {
		b.Cells[y][x] = game.Cell{Filled: true, Type: t}
	}
}

func occupancy(b *game.Board) [][]bool {
	out := make([][]bool, b.Height)
	for y := range b.Cells {
		out[y] = make([]bool, b.Width)
		for x, c := range b.Cells[y] {
			out[y][x] = c.Filled
		}
	}
	return out
}

func assertBorder(t *testing.T, b *game.Board) {
	t.Helper()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !b.IsBorder(x, y) {
				continue
			}
			c := b.Cells[y][x]
			require.True(t, c.Filled, "border (%d,%d) emptied", x, y)
			require.Equal(t, game.Wall, c.Type, "border (%d,%d) overwritten", x, y)
		}
	}
}

func TestNewBoardBorder(t *testing.T) {
	b := newRefBoard()
	assert.Equal(t, game.BoardWidth, b.Width)
	assert.Equal(t, game.BoardHeight, b.Height)
	assertBorder(t, b)

	for y := 1; y < b.Height; y++ {
		for x := 1; x < b.Width-1; x++ {
			assert.False(t, b.Cells[y][x].Filled)
		}
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	b := newRefBoard()
	assert.Panics(t, func() { b.At(game.Point{-1, 3}) })
	assert.Panics(t, func() { b.At(game.Point{3, b.Height}) })
	assert.NotPanics(t, func() { b.At(game.Point{b.Width - 1, b.Height - 1}) })
}

func TestClearLines(t *testing.T) {
	t.Run("single row drops the row above", func(t *testing.T) {
		b := newRefBoard()
		fillRow(b, 1, game.BlockI)
		b.Cells[2][3] = game.Cell{Filled: true, Type: game.BlockT}
		b.Cells[2][7] = game.Cell{Filled: true, Type: game.BlockS}

		assert.Equal(t, 1, b.ClearLines())
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockT}, b.Cells[1][3])
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockS}, b.Cells[1][7])
		assert.False(t, b.Cells[1][4].Filled)
		assert.False(t, b.Cells[2][3].Filled)
		assertBorder(t, b)
	})

	t.Run("double clear collapses in one pass", func(t *testing.T) {
		b := newRefBoard()
		fillRow(b, 3, game.BlockO)
		fillRow(b, 4, game.BlockZ)
		b.Cells[5][2] = game.Cell{Filled: true, Type: game.BlockL}
		b.Cells[2][9] = game.Cell{Filled: true, Type: game.BlockJ}

		assert.Equal(t, 2, b.ClearLines())
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockL}, b.Cells[3][2])
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockJ}, b.Cells[2][9])
		for y := 4; y < b.Height; y++ {
			for x := 1; x < b.Width-1; x++ {
				assert.False(t, b.Cells[y][x].Filled, "(%d,%d)", x, y)
			}
		}
		assertBorder(t, b)
	})

	t.Run("separated rows", func(t *testing.T) {
		b := newRefBoard()
		fillRow(b, 1, game.BlockI)
		b.Cells[2][5] = game.Cell{Filled: true, Type: game.BlockT}
		fillRow(b, 3, game.BlockI)
		b.Cells[4][6] = game.Cell{Filled: true, Type: game.BlockS}

		assert.Equal(t, 2, b.ClearLines())
		assert.True(t, b.Cells[1][5].Filled)
		assert.True(t, b.Cells[2][6].Filled)
		assert.False(t, b.Cells[3][6].Filled)
	})

	t.Run("no full rows", func(t *testing.T) {
		b := newRefBoard()
		b.Cells[1][1] = game.Cell{Filled: true, Type: game.BlockI}
		before := b.Clone()
		assert.Zero(t, b.ClearLines())
		assert.Equal(t, before, b)
	})

	t.Run("full rows in the spawn buffer still terminate", func(t *testing.T) {
		b := newRefBoard()
		top := b.Height - 2
		fillRow(b, top, game.BlockI)
		fillRow(b, top-1, game.BlockI)
		assert.Equal(t, 2, b.ClearLines())
		assert.False(t, b.Cells[top][4].Filled)
		assert.False(t, b.Cells[top-1][4].Filled)
		assertBorder(t, b)
	})

	t.Run("partial top row is copied down and kept", func(t *testing.T) {
		b := newRefBoard()
		top := b.Height - 2
		b.Cells[top][5] = game.Cell{Filled: true, Type: game.BlockT}
		fillRow(b, top-1, game.BlockI)

		assert.Equal(t, 1, b.ClearLines())
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockT}, b.Cells[top-1][5])
		assert.Equal(t, game.Cell{Filled: true, Type: game.BlockT}, b.Cells[top][5])
		assert.False(t, b.Cells[top-1][4].Filled)
		assertBorder(t, b)
	})
}

func TestFlattenPreservesOccupancy(t *testing.T) {
	b := newRefBoard()
	b.Cells[1][2] = game.Cell{Filled: true, Type: game.BlockT}
	b.Cells[5][6] = game.Cell{Filled: true, Type: game.BlockS}
	fillRow(b, 3, game.BlockJ)
	before := occupancy(b)

	b.Flatten()

	assert.Equal(t, before, occupancy(b))
	for y := range b.Cells {
		for _, c := range b.Cells[y] {
			if c.Filled {
				assert.Equal(t, game.Wall, c.Type)
			}
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := newRefBoard()
	c := b.Clone()
	c.Cells[4][4] = game.Cell{Filled: true, Type: game.BlockO}
	assert.False(t, b.Cells[4][4].Filled)
}

func TestVisible(t *testing.T) {
	b := newRefBoard()
	b.Cells[1][1] = game.Cell{Filled: true, Type: game.BlockI}
	b.Cells[20][10] = game.Cell{Filled: true, Type: game.BlockL}
	b.Cells[21][5] = game.Cell{Filled: true, Type: game.BlockO}

	v := b.Visible(game.VisibleRows)
	require.Len(t, v, game.VisibleRows)
	require.Len(t, v[0], game.BoardWidth-2)
	assert.Equal(t, game.BlockI, v[0][0].Type)
	assert.Equal(t, game.BlockL, v[19][9].Type)
	for _, row := range v {
		for _, c := range row {
			assert.NotEqual(t, game.BlockO, c.Type)
		}
	}
}
