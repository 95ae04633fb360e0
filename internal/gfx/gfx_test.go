package gfx

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hersh/blockdrop/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestAtlasRowsAreDistinct(t *testing.T) {
	seen := map[int]game.BlockType{}
	for _, typ := range append([]game.BlockType{game.Wall}, game.Playable...) {
		row, ok := atlasRow[typ]
		assert.True(t, ok, "%v has no atlas row", typ)
		if other, dup := seen[row]; dup {
			t.Fatalf("%v and %v share atlas row %d", typ, other, row)
		}
		seen[row] = typ
		_, ok = tileColors[typ]
		assert.True(t, ok, "%v has no colour", typ)
	}
}

func TestTileRect(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, srcTile, srcTile), tileRect(game.Wall))
	assert.Equal(t, image.Rect(0, 5*srcTile, srcTile, 6*srcTile), tileRect(game.BlockL))
	assert.Equal(t, image.Rect(0, 7*srcTile, srcTile, 8*srcTile), tileRect(game.BlockJ))
}

func TestCellOriginFlipsRows(t *testing.T) {
	x, y := cellOrigin(0, 0, game.VisibleRows)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, float64((game.VisibleRows-1)*dstTile), y)

	x, y = cellOrigin(3, game.VisibleRows-1, game.VisibleRows)
	assert.Equal(t, float64(3*dstTile), x)
	assert.Equal(t, 0.0, y)
}

type fakeKeyboard struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func (f fakeKeyboard) Pressed(k ebiten.Key) bool     { return f.pressed[k] }
func (f fakeKeyboard) JustPressed(k ebiten.Key) bool { return f.just[k] }

func TestInputPoll(t *testing.T) {
	in := &Input{kb: fakeKeyboard{
		pressed: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyArrowDown: true, ebiten.KeyArrowUp: true},
		just:    map[ebiten.Key]bool{ebiten.KeyX: true},
	}}
	c := in.Poll()
	assert.True(t, c.Left)
	assert.False(t, c.Right)
	assert.True(t, c.Down)
	assert.Equal(t, 1, c.Rotate, "a held rotate key does not repeat")
	assert.False(t, c.Quit)
	assert.False(t, in.RestartRequested())

	in.kb = fakeKeyboard{just: map[ebiten.Key]bool{ebiten.KeyEscape: true, ebiten.KeyEnter: true}}
	assert.True(t, in.Poll().Quit)
	assert.True(t, in.RestartRequested())
}
