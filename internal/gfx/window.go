package gfx

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hersh/blockdrop/internal/driver"
)

// Window adapts a driver to ebiten.Game. Ebiten calls Update at the
// configured TPS, which makes it the fixed-rate loop.
type Window struct {
	driver *driver.Driver
	input  *Input
	atlas  *ebiten.Image
	cols   int
	rows   int
}

// NewWindow wraps d, which must read its controls from input.
func NewWindow(d *driver.Driver, input *Input, cols, rows int) *Window {
	return &Window{
		driver: d,
		input:  input,
		atlas:  NewAtlas(),
		cols:   cols,
		rows:   rows,
	}
}

// Size is the logical screen size in pixels.
func (w *Window) Size() (int, int) {
	return w.cols * dstTile, w.rows * dstTile
}

func (w *Window) Update() error {
	if w.driver.Game().Over() && w.input.RestartRequested() {
		w.driver.Restart()
		return nil
	}
	if err := w.driver.Step(); err != nil {
		if errors.Is(err, driver.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	frame := w.driver.Frame()
	scale := float64(dstTile) / float64(srcTile)
	for i, row := range frame.Visible() {
		for j, cell := range row {
			if !cell.Filled {
				continue
			}
			x, y := cellOrigin(j, i, w.rows)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(x, y)
			screen.DrawImage(w.atlas.SubImage(tileRect(cell.Type)).(*ebiten.Image), op)
		}
	}

	if w.driver.Game().Over() {
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nENTER to play again", dstTile, dstTile)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.Size()
}
