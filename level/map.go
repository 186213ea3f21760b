package level

import (
	"github.com/milk9111/tilescene/render"
)

// TextureClearer drops textures from the texture cache.
type TextureClearer interface {
	Clear(key string)
}

// Map is a loaded scene: header, tileset table and layers in document order.
type Map struct {
	TileSize int
	// Width and Height are in tiles.
	Width  int
	Height int

	Tilesets Tilesets
	Layers   []Layer
	// Textures lists the texture keys the map loaded, tilesets first.
	Textures   []string
	Properties map[string]string
}

func (m *Map) Update() {
	for _, l := range m.Layers {
		l.Update()
	}
}

func (m *Map) Render(c render.Canvas) {
	for _, l := range m.Layers {
		l.Render(c)
	}
}

func (m *Map) TileLayers() []*TileLayer {
	var out []*TileLayer
	for _, l := range m.Layers {
		if tl, ok := l.(*TileLayer); ok {
			out = append(out, tl)
		}
	}
	return out
}

func (m *Map) ObjectLayers() []*ObjectLayer {
	var out []*ObjectLayer
	for _, l := range m.Layers {
		if ol, ok := l.(*ObjectLayer); ok {
			out = append(out, ol)
		}
	}
	return out
}

// Layer returns the first layer with the given name.
func (m *Map) Layer(name string) (Layer, bool) {
	for _, l := range m.Layers {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// PixelSize returns the map size in pixels.
func (m *Map) PixelSize() (int, int) {
	return m.Width * m.TileSize, m.Height * m.TileSize
}

// Clean releases the map's entities and, when tc is non-nil, the textures it
// loaded. The map must not be used afterwards.
func (m *Map) Clean(tc TextureClearer) {
	for _, ol := range m.ObjectLayers() {
		ol.Clean()
	}
	if tc != nil {
		for _, key := range m.Textures {
			tc.Clear(key)
		}
	}
	m.Layers = nil
	m.Textures = nil
}

// KeepTextures wraps tc so that Clear skips keys in keep. It lets a reload
// drop the old map without evicting textures the new map shares with it.
func KeepTextures(tc TextureClearer, keep []string) TextureClearer {
	set := make(map[string]bool, len(keep))
	for _, k := range keep {
		set[k] = true
	}
	return keepClearer{tc: tc, keep: set}
}

type keepClearer struct {
	tc   TextureClearer
	keep map[string]bool
}

func (k keepClearer) Clear(key string) {
	if k.tc == nil || k.keep[key] {
		return
	}
	k.tc.Clear(key)
}
