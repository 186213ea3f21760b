// Package physics builds static chipmunk colliders from a map's collidable
// tile layers.
package physics

import (
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilescene/level"
)

// CollidableProperty marks a tile layer whose non-empty tiles are solid.
const CollidableProperty = "collidable"

const tileFriction = 0.8

// Rect is a collider in pixels.
type Rect struct {
	X, Y, W, H float64
}

type World struct {
	space     *cp.Space
	colliders []Rect
}

// NewWorld creates a space with one static box per merged run of solid
// tiles in every collidable layer of m.
func NewWorld(m *level.Map) *World {
	w := &World{space: cp.NewSpace()}
	w.space.Iterations = 20
	if m == nil {
		return w
	}
	for _, l := range m.TileLayers() {
		if !Collidable(l) {
			continue
		}
		for _, r := range mergeSolid(l.Grid(), float64(m.TileSize)) {
			w.addStatic(r)
		}
	}
	return w
}

// Collidable reports whether the layer's collidable property is true.
func Collidable(l *level.TileLayer) bool {
	v, ok := l.Property(CollidableProperty)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func (w *World) addStatic(r Rect) {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(tileFriction)
	w.space.AddShape(shape)
	w.colliders = append(w.colliders, r)
}

// Colliders returns the merged static rectangles in the order they were added.
func (w *World) Colliders() []Rect {
	return w.colliders
}

// Solid reports whether the rectangle overlaps any static collider. Touching
// edges do not count.
func (w *World) Solid(x, y, width, height float64) bool {
	query := cp.BB{L: x, B: y, R: x + width, T: y + height}
	hit := false
	w.space.BBQuery(query, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		bb := shape.BB()
		if query.L < bb.R && bb.L < query.R && query.B < bb.T && bb.B < query.T {
			hit = true
		}
	}, nil)
	return hit
}

func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

func (w *World) Space() *cp.Space {
	return w.space
}

// mergeSolid greedily grows rectangles over non-empty cells, first along the
// row and then down while every cell of the next row is solid.
func mergeSolid(g level.Grid, tileSize float64) []Rect {
	width, height := g.Width(), g.Height()
	if width == 0 || height == 0 {
		return nil
	}
	visited := make([]bool, width*height)
	solid := func(x, y int) bool {
		return !visited[y*width+x] && !g[y][x].Empty()
	}

	var out []Rect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(x, y) {
				continue
			}

			w := 1
			for x+w < width && solid(x+w, y) {
				w++
			}

			h := 1
		grow:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					visited[yy*width+xx] = true
				}
			}
			out = append(out, Rect{
				X: float64(x) * tileSize,
				Y: float64(y) * tileSize,
				W: float64(w) * tileSize,
				H: float64(h) * tileSize,
			})
		}
	}
	return out
}
