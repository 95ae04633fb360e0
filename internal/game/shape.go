package game

import "fmt"

// BlockType tags a shape. Board cells store the tag itself, so a locked cell
// always knows which shape put it there.
type BlockType int

const (
	Wall BlockType = iota
	BlockI
	BlockO
	BlockZ
	BlockT
	BlockJ
	BlockS
	BlockL
)

// Playable lists the types a falling piece can take, in spawn-table order.
var Playable = []BlockType{BlockI, BlockO, BlockZ, BlockT, BlockJ, BlockS, BlockL}

var blockNames = map[BlockType]string{
	Wall:   "wall",
	BlockI: "I",
	BlockO: "O",
	BlockZ: "Z",
	BlockT: "T",
	BlockJ: "J",
	BlockS: "S",
	BlockL: "L",
}

func (t BlockType) String() string {
	if name, ok := blockNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BlockType(%d)", int(t))
}

// Point is a board coordinate or an offset from a piece anchor. Y grows away
// from the floor.
type Point struct {
	X, Y int
}

// Rotate turns p by a quarter-turn n times.
func (p Point) Rotate(n int) Point {
	for range n {
		p.X, p.Y = -p.Y, p.X
	}
	return p
}

// Shape is the immutable geometry of one block type: the cells it occupies
// besides its anchor and how many distinct rotations it has.
type Shape struct {
	Order   int
	Offsets []Point
}

// EffectiveRotation folds an unbounded rotation count into [0, Order).
func (s Shape) EffectiveRotation(rotation int) int {
	r := rotation % s.Order
	if r < 0 {
		r += s.Order
	}
	return r
}

var shapes = map[BlockType]Shape{
	Wall:   {Order: 1},
	BlockI: {Order: 2, Offsets: []Point{{0, -1}, {0, 1}, {0, 2}}},
	BlockO: {Order: 1, Offsets: []Point{{0, 1}, {1, 0}, {1, 1}}},
	BlockZ: {Order: 2, Offsets: []Point{{0, -1}, {1, 0}, {1, 1}}},
	BlockT: {Order: 4, Offsets: []Point{{0, -1}, {-1, 0}, {1, 0}}},
	BlockJ: {Order: 4, Offsets: []Point{{-1, 0}, {1, 0}, {1, -1}}},
	BlockS: {Order: 2, Offsets: []Point{{0, 1}, {1, 0}, {1, -1}}},
	BlockL: {Order: 4, Offsets: []Point{{1, 0}, {-1, 0}, {-1, -1}}},
}

// ShapeOf returns the shape for t. Unknown tags are a programming error.
func ShapeOf(t BlockType) Shape {
	s, ok := shapes[t]
	if !ok {
		panic(fmt.Sprintf("game: no shape for %v", t))
	}
	return s
}
