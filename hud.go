package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 14

type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) draw(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(4, float64(4+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, line, h.face, op)
	}
}
