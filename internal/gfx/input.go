package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hersh/blockdrop/internal/driver"
)

type keyboard interface {
	Pressed(ebiten.Key) bool
	JustPressed(ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeyboard) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Input reads the keyboard once per tick. Rotation and quit are edge
// triggered so key repeat never adds rotations; movement is held state.
type Input struct {
	kb keyboard
}

func NewInput() *Input {
	return &Input{kb: ebitenKeyboard{}}
}

func (in *Input) Poll() driver.Controls {
	var c driver.Controls
	c.Quit = in.kb.JustPressed(ebiten.KeyEscape)
	if in.kb.JustPressed(ebiten.KeyArrowUp) {
		c.Rotate++
	}
	if in.kb.JustPressed(ebiten.KeyX) {
		c.Rotate++
	}
	c.Left = in.kb.Pressed(ebiten.KeyArrowLeft)
	c.Right = in.kb.Pressed(ebiten.KeyArrowRight)
	c.Down = in.kb.Pressed(ebiten.KeyArrowDown)
	return c
}

// RestartRequested reports an Enter key-down edge.
func (in *Input) RestartRequested() bool {
	return in.kb.JustPressed(ebiten.KeyEnter)
}
