// Package gfx is the ebiten window frontend.
package gfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hersh/blockdrop/internal/game"
	"golang.org/x/image/colornames"
)

const (
	srcTile = 60
	dstTile = 30
	bevel   = 6
)

// Atlas rows are stacked top down in this order. The mapping is declared
// here rather than derived from BlockType values.
var atlasRow = map[game.BlockType]int{
	game.Wall:   0,
	game.BlockI: 1,
	game.BlockO: 2,
	game.BlockZ: 3,
	game.BlockT: 4,
	game.BlockL: 5,
	game.BlockS: 6,
	game.BlockJ: 7,
}

var tileColors = map[game.BlockType]color.RGBA{
	game.Wall:   colornames.Slategray,
	game.BlockI: colornames.Deepskyblue,
	game.BlockO: colornames.Gold,
	game.BlockZ: colornames.Crimson,
	game.BlockT: colornames.Mediumorchid,
	game.BlockL: colornames.Darkorange,
	game.BlockS: colornames.Limegreen,
	game.BlockJ: colornames.Royalblue,
}

// tileRect is the source rectangle of t inside the atlas.
func tileRect(t game.BlockType) image.Rectangle {
	row := atlasRow[t]
	return image.Rect(0, row*srcTile, srcTile, (row+1)*srcTile)
}

// NewAtlas paints one bevelled tile per block type into a single image.
func NewAtlas() *ebiten.Image {
	atlas := ebiten.NewImage(srcTile, srcTile*len(atlasRow))
	for t, c := range tileColors {
		r := tileRect(t)
		atlas.SubImage(r).(*ebiten.Image).Fill(shade(c, 0.6))
		inner := r.Inset(bevel)
		atlas.SubImage(inner).(*ebiten.Image).Fill(c)
	}
	return atlas
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// cellOrigin is the screen position of visible cell (col, row) where row 0 is
// nearest the floor and is drawn at the bottom.
func cellOrigin(col, row, rows int) (float64, float64) {
	return float64(col * dstTile), float64((rows - 1 - row) * dstTile)
}
