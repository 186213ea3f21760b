package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ScreenCanvas draws cached textures onto an ebiten image.
type ScreenCanvas struct {
	tm          *TextureManager
	screen      *ebiten.Image
	missing     map[string]bool
	placeholder *ebiten.Image
}

func NewScreenCanvas(tm *TextureManager) *ScreenCanvas {
	return &ScreenCanvas{tm: tm, missing: map[string]bool{}}
}

// Target sets the image the next draw calls render into. Call it once per
// frame with the screen handed to Draw.
func (c *ScreenCanvas) Target(screen *ebiten.Image) *ScreenCanvas {
	c.screen = screen
	return c
}

func (c *ScreenCanvas) DrawTile(key string, margin, spacing, x, y, width, height, row, col int) {
	c.draw(key, TileSourceRect(margin, spacing, width, height, row, col), x, y, width, height, false)
}

func (c *ScreenCanvas) DrawFrame(key string, x, y, width, height, row, frame int, flip bool) {
	c.draw(key, FrameSourceRect(width, height, row, frame), x, y, width, height, flip)
}

func (c *ScreenCanvas) draw(key string, src image.Rectangle, x, y, width, height int, flip bool) {
	if c.screen == nil || width <= 0 || height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(width), 0)
	}
	op.GeoM.Translate(float64(x), float64(y))

	img := c.tm.Image(key)
	if img == nil || !src.In(img.Bounds()) {
		if !c.missing[key] {
			c.missing[key] = true
			c.tm.log.Warn("texture draw failed", zap.String("key", key), zap.Stringer("src", src))
		}
		c.screen.DrawImage(c.placeholderImage(width, height), op)
		return
	}
	sub, ok := img.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	c.screen.DrawImage(sub, op)
}

func (c *ScreenCanvas) placeholderImage(width, height int) *ebiten.Image {
	if c.placeholder == nil || c.placeholder.Bounds().Dx() != width || c.placeholder.Bounds().Dy() != height {
		c.placeholder = ebiten.NewImage(width, height)
		c.placeholder.Fill(color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff})
	}
	return c.placeholder
}
