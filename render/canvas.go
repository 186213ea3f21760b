package render

import "image"

// Canvas receives draw requests from layers and entities. Implementations
// decide how a texture key maps to pixels (GPU image, terminal cell, test
// recorder).
type Canvas interface {
	// DrawTile draws the tile at row/col of the texture stored under key.
	DrawTile(key string, margin, spacing, x, y, width, height, row, col int)
	// DrawFrame draws one animation frame of a sprite sheet row.
	DrawFrame(key string, x, y, width, height, row, frame int, flip bool)
}

// TileSourceRect returns the pixel rectangle of a tile inside a tileset image
// laid out with an outer margin and spacing between tiles.
func TileSourceRect(margin, spacing, width, height, row, col int) image.Rectangle {
	x := margin + (spacing+width)*col
	y := margin + (spacing+height)*row
	return image.Rect(x, y, x+width, y+height)
}

// FrameSourceRect returns the pixel rectangle of an animation frame in a
// sheet where frames are packed without gaps.
func FrameSourceRect(width, height, row, frame int) image.Rectangle {
	return image.Rect(width*frame, height*row, width*(frame+1), height*(row+1))
}
