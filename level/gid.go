package level

// Flip flags Tiled stores in the top bits of a global tile id.
const (
	FlippedHorizontallyFlag uint32 = 0x80000000
	FlippedVerticallyFlag   uint32 = 0x40000000
	FlippedDiagonallyFlag   uint32 = 0x20000000

	flipMask = FlippedHorizontallyFlag | FlippedVerticallyFlag | FlippedDiagonallyFlag
)

// GID is a global tile id as stored in a tile layer. 0 means no tile.
type GID uint32

// ID returns the tile id with the flip flags cleared.
func (g GID) ID() uint32 {
	return uint32(g) &^ flipMask
}

func (g GID) Empty() bool {
	return g.ID() == 0
}

func (g GID) FlippedHorizontally() bool {
	return uint32(g)&FlippedHorizontallyFlag != 0
}

func (g GID) FlippedVertically() bool {
	return uint32(g)&FlippedVerticallyFlag != 0
}

func (g GID) FlippedDiagonally() bool {
	return uint32(g)&FlippedDiagonallyFlag != 0
}

// Grid is a row-major tile id grid, Grid[row][col].
type Grid [][]GID

// NewGrid allocates a zeroed width x height grid backed by one slice.
func NewGrid(width, height int) Grid {
	cells := make([]GID, width*height)
	g := make(Grid, height)
	for r := range g {
		g[r] = cells[r*width : (r+1)*width : (r+1)*width]
	}
	return g
}

func (g Grid) Height() int {
	return len(g)
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the id at col,row or 0 when the cell is outside the grid.
func (g Grid) At(col, row int) GID {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return 0
	}
	return g[row][col]
}
