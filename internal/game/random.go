package game

import (
	"math/rand"
	"time"
)

// Randomizer picks the type of the next piece to spawn.
type Randomizer interface {
	Next() BlockType
}

// UniformGenerator draws each piece independently and uniformly from the
// playable types. Two generators with the same seed produce the same sequence.
type UniformGenerator struct {
	rng *rand.Rand
}

func NewUniformGenerator(seed int64) *UniformGenerator {
	return &UniformGenerator{rng: rand.New(rand.NewSource(resolveSeed(seed)))}
}

func (g *UniformGenerator) Next() BlockType {
	return Playable[g.rng.Intn(len(Playable))]
}

// BagGenerator produces pieces using the 7-bag randomizer system: every run of
// seven spawns contains each playable type exactly once.
type BagGenerator struct {
	rng *rand.Rand
	bag []BlockType
}

// NewBagGenerator creates a seeded 7-bag piece generator.
func NewBagGenerator(seed int64) *BagGenerator {
	return &BagGenerator{rng: rand.New(rand.NewSource(resolveSeed(seed)))}
}

// Next returns the next piece type from the bag.
func (g *BagGenerator) Next() BlockType {
	if len(g.bag) == 0 {
		g.refillBag()
	}
	t := g.bag[0]
	g.bag = g.bag[1:]
	return t
}

func (g *BagGenerator) refillBag() {
	g.bag = append(g.bag[:0], Playable...)
	// Fisher-Yates shuffle
	for i := len(g.bag) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
	}
}

// resolveSeed maps the zero seed to a time-based one.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
