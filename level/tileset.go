package level

import (
	"image"

	"github.com/milk9111/tilescene/render"
)

// Tileset describes one tile palette image. Tilesets are values and are not
// modified after the map is loaded.
type Tileset struct {
	FirstGID    uint32
	TileWidth   int
	TileHeight  int
	Spacing     int
	Margin      int
	ImageWidth  int
	ImageHeight int
	Columns     int
	Name        string
	Source      string
}

// columnsFor returns how many tiles fit across an image of the given width.
func columnsFor(imageWidth, tileWidth, spacing int) int {
	if tileWidth+spacing <= 0 {
		return 0
	}
	return imageWidth / (tileWidth + spacing)
}

// Locate returns the column and row of id inside the tileset image.
func (ts Tileset) Locate(id uint32) (col, row int) {
	if ts.Columns <= 0 || id < ts.FirstGID || id == 0 {
		return 0, 0
	}
	local := int((id - 1) - (ts.FirstGID - 1))
	return local % ts.Columns, local / ts.Columns
}

// SourceRect returns the pixel rectangle of id inside the tileset image.
func (ts Tileset) SourceRect(id uint32) image.Rectangle {
	col, row := ts.Locate(id)
	return render.TileSourceRect(ts.Margin, ts.Spacing, ts.TileWidth, ts.TileHeight, row, col)
}

// Tilesets is the ordered tileset table of a map.
type Tilesets []Tileset

// Resolve finds the tileset owning id. Each tileset owns the ids from its
// FirstGID up to the next tileset's FirstGID; the last one owns everything
// above. A miss returns the zero Tileset and false.
func (t Tilesets) Resolve(id GID) (Tileset, bool) {
	raw := id.ID()
	if raw == 0 {
		return Tileset{}, false
	}
	for i, ts := range t {
		if raw < ts.FirstGID {
			continue
		}
		if i+1 < len(t) && raw >= t[i+1].FirstGID {
			continue
		}
		return ts, true
	}
	return Tileset{}, false
}

// Sorted reports whether the table is in ascending FirstGID order.
func (t Tilesets) Sorted() bool {
	for i := 1; i < len(t); i++ {
		if t[i].FirstGID < t[i-1].FirstGID {
			return false
		}
	}
	return true
}
