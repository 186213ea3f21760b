package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/level"
	"github.com/milk9111/tilescene/levels"
	"github.com/milk9111/tilescene/render"
)

func loadDemo(t *testing.T, name string) (*level.Map, []textureLoad) {
	t.Helper()
	data, err := readMap(name)
	if err != nil {
		t.Fatal(err)
	}
	textures := &textureLog{}
	m, err := level.NewParser(testFactory(t), textures, nil).ParseBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return m, textures.loads
}

func testFactory(t *testing.T) *entity.Factory {
	t.Helper()
	f, err := entity.LoadFactory(nil)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestWriteSummary(t *testing.T) {
	m, loads := loadDemo(t, "demo.tmx")
	var buf bytes.Buffer
	if err := writeSummary(&buf, "demo.tmx", m, loads); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"40x15 tiles of 32px",
		"tiles",
		"sprites",
		"Ground",
		"collidable",
		"MenuButton x2",
		"Scripted x1",
		"assets/tiles.png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

type stamp struct{}

func (stamp) Load(entity.LoaderParams) {}
func (stamp) Update()                  {}
func (stamp) Render(render.Canvas)     {}
func (stamp) Clean()                   {}

func TestObjectCountsValueEntities(t *testing.T) {
	l := level.NewObjectLayer("Objects")
	l.Add(stamp{})
	l.Add(stamp{})
	l.Add(entity.NewPlayer())
	if got := objectCounts(l); got != "Player x1, stamp x2" {
		t.Fatalf("unexpected counts %q", got)
	}
}

func TestReencodeRoundTrip(t *testing.T) {
	for _, name := range levels.Names() {
		for _, comp := range []level.Compression{level.CompressionNone, level.CompressionZlib, level.CompressionGzip, level.CompressionZstd} {
			data, err := levels.Open(name)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := reencodeMap(data, comp, &buf); err != nil {
				t.Fatalf("%s/%s: reencode: %v", name, comp, err)
			}

			before, _ := loadDemo(t, name)
			after, err := level.NewParser(testFactory(t), &textureLog{}, nil).ParseBytes(context.Background(), buf.Bytes())
			if err != nil {
				t.Fatalf("%s/%s: parse reencoded: %v", name, comp, err)
			}
			for i, tl := range before.TileLayers() {
				got := after.TileLayers()[i].Grid()
				for r := range tl.Grid() {
					for c := range tl.Grid()[r] {
						if got[r][c] != tl.Grid()[r][c] {
							t.Fatalf("%s/%s: layer %s cell %d,%d changed", name, comp, tl.Name(), c, r)
						}
					}
				}
			}
		}
	}
}

func TestTermCanvasDrawsTiles(t *testing.T) {
	m, _ := loadDemo(t, "strip.tmx")
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(10, 6)

	v := newTUIView(s, m)
	v.draw()

	// strip.tmx row 3 is all id 3, local index 2
	if r, _, _, _ := s.GetContent(0, 3); r != rune(tileRunes[2]) {
		t.Fatalf("expected %q at 0,3, got %q", tileRunes[2], r)
	}
	if r, _, _, _ := s.GetContent(5, 1); r != rune(tileRunes[3]) {
		t.Fatalf("expected %q at 5,1, got %q", tileRunes[3], r)
	}

	v.scroll(1, 0)
	if m.TileLayers()[0].Position.X != 32 {
		t.Fatalf("expected one tile of scroll, got %v", m.TileLayers()[0].Position.X)
	}
	v.draw()
	// scrolled one tile: screen column 4 now shows grid column 5
	if r, _, _, _ := s.GetContent(4, 1); r != rune(tileRunes[3]) {
		t.Fatalf("expected %q at 4,1 after scrolling, got %q", tileRunes[3], r)
	}

	v.step()
	if v.ticks != 1 {
		t.Fatalf("expected a stepped tick")
	}
}
