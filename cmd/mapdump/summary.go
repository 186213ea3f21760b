package main

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/tilescene/level"
	"github.com/milk9111/tilescene/physics"
)

func writeSummary(w io.Writer, name string, m *level.Map, loads []textureLoad) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	pw, ph := m.PixelSize()
	fmt.Fprintf(tw, "map\t%s\n", name)
	fmt.Fprintf(tw, "size\t%dx%d tiles of %dpx (%dx%d px)\n", m.Width, m.Height, m.TileSize, pw, ph)

	fmt.Fprintln(tw, "\ntileset\tfirstgid\ttile\tcolumns\tsource")
	for _, ts := range m.Tilesets {
		fmt.Fprintf(tw, "%s\t%d\t%dx%d\t%d\t%s\n", ts.Name, ts.FirstGID, ts.TileWidth, ts.TileHeight, ts.Columns, ts.Source)
	}

	fmt.Fprintln(tw, "\nlayer\tkind\tcontents")
	for _, l := range m.Layers {
		switch l := l.(type) {
		case *level.TileLayer:
			extra := ""
			if physics.Collidable(l) {
				extra = ", collidable"
			}
			fmt.Fprintf(tw, "%s\ttiles\t%d non-empty, %d unresolved%s\n", l.Name(), countTiles(l), countMisses(l), extra)
		case *level.ObjectLayer:
			fmt.Fprintf(tw, "%s\tobjects\t%s\n", l.Name(), objectCounts(l))
		}
	}

	fmt.Fprintln(tw, "\ntexture\tpath")
	for _, t := range loads {
		fmt.Fprintf(tw, "%s\t%s\n", t.key, t.path)
	}

	fmt.Fprintf(tw, "\ncolliders\t%d\n", len(physics.NewWorld(m).Colliders()))
	return tw.Flush()
}

func countTiles(l *level.TileLayer) int {
	n := 0
	for _, row := range l.Grid() {
		for _, id := range row {
			if !id.Empty() {
				n++
			}
		}
	}
	return n
}

func countMisses(l *level.TileLayer) int {
	n := 0
	for _, row := range l.Grid() {
		for _, id := range row {
			if id.Empty() {
				continue
			}
			if _, ok := l.Tilesets().Resolve(id); !ok {
				n++
			}
		}
	}
	return n
}

func kindName(e any) string {
	t := reflect.TypeOf(e)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// objectCounts lists entity kinds and how many of each the layer holds.
func objectCounts(l *level.ObjectLayer) string {
	counts := map[string]int{}
	for _, e := range l.Objects() {
		counts[kindName(e)]++
	}
	if len(counts) == 0 {
		return "none"
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s x%d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
