package level

import (
	"math"

	"github.com/milk9111/tilescene/common"
	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/render"
	"go.uber.org/zap"
)

// DefaultScrollSpeed is the horizontal scroll applied to tile layers each tick.
const DefaultScrollSpeed = 5.0

// Layer is one slice of a map, drawn in document order.
type Layer interface {
	Name() string
	Update()
	Render(c render.Canvas)
}

// TileLayer is a scrolling grid of tiles drawn through the map's tilesets.
type TileLayer struct {
	Position    common.Vector2
	Velocity    common.Vector2
	ScrollSpeed float64
	Visible     bool

	// Columns and Rows are the number of tiles that fit in the viewport.
	Columns int
	Rows    int

	name       string
	tileSize   int
	grid       Grid
	tilesets   Tilesets
	properties map[string]string

	log    *zap.Logger
	missed map[uint32]bool
}

// NewTileLayer builds a layer over grid sized for a viewportW x viewportH view.
func NewTileLayer(name string, tileSize int, grid Grid, tilesets Tilesets, viewportW, viewportH int, log *zap.Logger) *TileLayer {
	if log == nil {
		log = zap.NewNop()
	}
	l := &TileLayer{
		ScrollSpeed: DefaultScrollSpeed,
		Visible:     true,
		name:        name,
		tileSize:    tileSize,
		grid:        grid,
		tilesets:    tilesets,
		properties:  map[string]string{},
		log:         log,
		missed:      map[uint32]bool{},
	}
	if tileSize > 0 {
		l.Columns = viewportW / tileSize
		l.Rows = viewportH / tileSize
	}
	return l
}

func (l *TileLayer) Name() string { return l.name }

func (l *TileLayer) TileSize() int { return l.tileSize }

func (l *TileLayer) Grid() Grid { return l.grid }

func (l *TileLayer) Tilesets() Tilesets { return l.tilesets }

// TileAt returns the raw id at col,row, 0 outside the grid.
func (l *TileLayer) TileAt(col, row int) GID {
	return l.grid.At(col, row)
}

// Property returns a layer property and whether it was set.
func (l *TileLayer) Property(name string) (string, bool) {
	v, ok := l.properties[name]
	return v, ok
}

func (l *TileLayer) SetProperty(name, value string) {
	l.properties[name] = value
}

func (l *TileLayer) setProperties(props map[string]string) {
	for k, v := range props {
		l.SetProperty(k, v)
	}
}

// Update scrolls the layer. The horizontal velocity is reset to ScrollSpeed
// after each step.
func (l *TileLayer) Update() {
	l.Position = l.Position.Add(l.Velocity)
	l.Velocity.X = l.ScrollSpeed
}

// Render issues one DrawTile per non-empty visible cell. Columns wrap around
// the grid width so the layer scrolls endlessly; rows outside the grid are
// skipped.
func (l *TileLayer) Render(c render.Canvas) {
	if c == nil || !l.Visible || l.tileSize <= 0 {
		return
	}
	width := l.grid.Width()
	if width == 0 {
		return
	}

	ts := l.tileSize
	px, py := int(math.Floor(l.Position.X)), int(math.Floor(l.Position.Y))
	leftCol, topRow := common.FloorDiv(px, ts), common.FloorDiv(py, ts)
	offX, offY := common.FloorMod(px, ts), common.FloorMod(py, ts)

	for i := 0; i <= l.Rows; i++ {
		row := i + topRow
		if row < 0 || row >= l.grid.Height() {
			continue
		}
		for j := 0; j <= l.Columns; j++ {
			col := common.FloorMod(j+leftCol, width)
			id := l.grid[row][col]
			if id.Empty() {
				continue
			}
			tileset, ok := l.tilesets.Resolve(id)
			if !ok {
				l.miss(id)
				continue
			}
			srcCol, srcRow := tileset.Locate(id.ID())
			c.DrawTile(tileset.Name, tileset.Margin, tileset.Spacing,
				j*ts-offX, i*ts-offY, ts, ts, srcRow, srcCol)
		}
	}
}

func (l *TileLayer) miss(id GID) {
	if l.missed[id.ID()] {
		return
	}
	l.missed[id.ID()] = true
	l.log.Warn("tileset resolution miss", zap.String("layer", l.name), zap.Uint32("gid", id.ID()))
}

// ObjectLayer holds entities in document order.
type ObjectLayer struct {
	name       string
	objects    []entity.Entity
	properties map[string]string
}

func NewObjectLayer(name string) *ObjectLayer {
	return &ObjectLayer{name: name, properties: map[string]string{}}
}

func (l *ObjectLayer) Name() string { return l.name }

// Objects returns the layer's entities. The slice is owned by the layer.
func (l *ObjectLayer) Objects() []entity.Entity { return l.objects }

func (l *ObjectLayer) Add(e entity.Entity) {
	if e == nil {
		return
	}
	l.objects = append(l.objects, e)
}

func (l *ObjectLayer) Property(name string) (string, bool) {
	v, ok := l.properties[name]
	return v, ok
}

func (l *ObjectLayer) Update() {
	for _, e := range l.objects {
		e.Update()
	}
}

func (l *ObjectLayer) Render(c render.Canvas) {
	for _, e := range l.objects {
		e.Render(c)
	}
}

// Clean cleans every entity and empties the layer.
func (l *ObjectLayer) Clean() {
	for _, e := range l.objects {
		e.Clean()
	}
	l.objects = nil
}
