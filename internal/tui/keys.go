package tui

import (
	"github.com/hersh/blockdrop/internal/driver"
)

// latchPolls is how many polls a single key message keeps a movement key
// held. Two consecutive polls always include exactly one even counter, so a
// tap moves exactly once; terminal key repeat refreshes the latch while the
// key stays down.
const latchPolls = 2

// KeyInput turns bubbletea key messages into driver controls. Terminals only
// report key presses, never releases, so held state is a short latch.
type KeyInput struct {
	left, right, down int
	rotations         int
	quit              bool
}

func NewKeyInput() *KeyInput {
	return &KeyInput{}
}

// Press records one key message. It reports whether the key is bound.
func (k *KeyInput) Press(key string) bool {
	switch key {
	case "left", "h":
		k.left = latchPolls
		k.right = 0
	case "right", "l":
		k.right = latchPolls
		k.left = 0
	case "down", "j":
		k.down = latchPolls
	case "up", "k", "x":
		k.rotations++
	case "esc", "q", "ctrl+c":
		k.quit = true
	default:
		return false
	}
	return true
}

// Poll drains pending rotations and ages the movement latches.
func (k *KeyInput) Poll() driver.Controls {
	c := driver.Controls{Quit: k.quit}
	c.Rotate = k.rotations
	c.Left = k.left > 0
	c.Right = k.right > 0
	c.Down = k.down > 0

	k.rotations = 0
	k.left = max(k.left-1, 0)
	k.right = max(k.right-1, 0)
	k.down = max(k.down-1, 0)
	return c
}
