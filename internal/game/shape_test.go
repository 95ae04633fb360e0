package game_test

import (
	"testing"

	"github.com/hersh/blockdrop/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestShapeOrders(t *testing.T) {
	tests := []struct {
		typ   game.BlockType
		order int
	}{
		{game.Wall, 1},
		{game.BlockI, 2},
		{game.BlockO, 1},
		{game.BlockZ, 2},
		{game.BlockT, 4},
		{game.BlockJ, 4},
		{game.BlockS, 2},
		{game.BlockL, 4},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.order, game.ShapeOf(tt.typ).Order)
		})
	}
	assert.Empty(t, game.ShapeOf(game.Wall).Offsets)
}

func TestQuarterTurnsReturnToStart(t *testing.T) {
	for _, typ := range game.Playable {
		for _, off := range game.ShapeOf(typ).Offsets {
			assert.Equal(t, off, off.Rotate(4), "%v offset %v", typ, off)
		}
	}
}

func TestRotationRepeatsAfterOrder(t *testing.T) {
	for _, typ := range game.Playable {
		t.Run(typ.String(), func(t *testing.T) {
			order := game.ShapeOf(typ).Order
			for r := 0; r < 4; r++ {
				base := game.Footprint(game.NewStatus(5, 10, typ, r))
				assert.Equal(t, base, game.Footprint(game.NewStatus(5, 10, typ, r+order)))
				assert.Equal(t, base, game.Footprint(game.NewStatus(5, 10, typ, r-order)))
			}
		})
	}
}

func TestEffectiveRotationNegative(t *testing.T) {
	s := game.ShapeOf(game.BlockT)
	assert.Equal(t, 3, s.EffectiveRotation(-1))
	assert.Equal(t, 0, s.EffectiveRotation(-4))
	assert.Equal(t, 1, s.EffectiveRotation(9))
}

func TestFootprintIPiece(t *testing.T) {
	upright := game.Footprint(game.NewStatus(5, 21, game.BlockI, 0))
	assert.ElementsMatch(t, []game.Point{{5, 21}, {5, 20}, {5, 22}, {5, 23}}, upright)
	assert.Equal(t, game.Point{5, 21}, upright[0])

	flat := game.Footprint(game.NewStatus(5, 21, game.BlockI, 1))
	assert.ElementsMatch(t, []game.Point{{5, 21}, {6, 21}, {4, 21}, {3, 21}}, flat)
}

func TestBlockTypeString(t *testing.T) {
	assert.Equal(t, "wall", game.Wall.String())
	assert.Equal(t, "J", game.BlockJ.String())
	assert.Equal(t, "BlockType(42)", game.BlockType(42).String())
}
