package game_test

import (
	"testing"

	"github.com/hersh/blockdrop/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestUniformGeneratorDeterministic(t *testing.T) {
	a := game.NewUniformGenerator(42)
	b := game.NewUniformGenerator(42)
	seen := map[game.BlockType]int{}
	for range 700 {
		ta := a.Next()
		assert.Equal(t, ta, b.Next())
		assert.NotEqual(t, game.Wall, ta)
		seen[ta]++
	}
	assert.Len(t, seen, len(game.Playable))
}

func TestBagGeneratorDealsEveryTypePerBag(t *testing.T) {
	g := game.NewBagGenerator(3)
	for bag := 0; bag < 5; bag++ {
		got := make([]game.BlockType, 0, len(game.Playable))
		for range game.Playable {
			got = append(got, g.Next())
		}
		assert.ElementsMatch(t, game.Playable, got, "bag %d", bag)
	}
}
