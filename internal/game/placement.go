package game

import "errors"

// ErrCollision is returned when a piece would overlap an occupied cell. The
// wall border is made of ordinary occupied cells, so this also covers walls
// and the floor.
var ErrCollision = errors.New("game: collision")

// Status is the falling piece: its anchor, shape, rotation count and the
// per-tick counter that paces gravity and input.
type Status struct {
	X, Y     int
	Type     BlockType
	Rotation int
	Counter  int
}

// NewStatus returns a fresh status with a zero counter.
func NewStatus(x, y int, t BlockType, rotation int) Status {
	return Status{X: x, Y: y, Type: t, Rotation: rotation}
}

// Footprint returns the absolute cells covered by s, anchor first.
func Footprint(s Status) []Point {
	shape := ShapeOf(s.Type)
	r := shape.EffectiveRotation(s.Rotation)
	cells := make([]Point, 0, len(shape.Offsets)+1)
	cells = append(cells, Point{s.X, s.Y})
	for _, off := range shape.Offsets {
		d := off.Rotate(r)
		cells = append(cells, Point{s.X + d.X, s.Y + d.Y})
	}
	return cells
}

// Check reports ErrCollision if any cell of s is occupied. It never mutates
// the board. Cells are visited anchor first and the scan stops at the first
// hit, which keeps wide offsets from reaching past the wall.
func (b *Board) Check(s Status) error {
	for _, p := range Footprint(s) {
		if b.Occupied(p) {
			return ErrCollision
		}
	}
	return nil
}

// Place stamps s onto the board if every cell is free. On ErrCollision the
// board is left untouched.
func (b *Board) Place(s Status) error {
	if err := b.Check(s); err != nil {
		return err
	}
	for _, p := range Footprint(s) {
		*b.cell(p) = Cell{Filled: true, Type: s.Type}
	}
	return nil
}

// Remove clears the cells of s. Call it before placing a candidate derived
// from the same piece, otherwise the piece collides with itself.
func (b *Board) Remove(s Status) {
	for _, p := range Footprint(s) {
		*b.cell(p) = Cell{}
	}
}
