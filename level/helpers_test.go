package level

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/tilescene/entity"
)

type tileCall struct {
	key                 string
	margin, spacing     int
	x, y, width, height int
	row, col            int
}

type recordingCanvas struct {
	tiles  []tileCall
	frames int
}

func (c *recordingCanvas) DrawTile(key string, margin, spacing, x, y, width, height, row, col int) {
	c.tiles = append(c.tiles, tileCall{key, margin, spacing, x, y, width, height, row, col})
}

func (c *recordingCanvas) DrawFrame(key string, x, y, width, height, row, frame int, flip bool) {
	c.frames++
}

// fakeTextures records loads and fails for paths in fail.
type fakeTextures struct {
	loaded  map[string]string
	cleared []string
	fail    map[string]bool
}

func newFakeTextures(fail ...string) *fakeTextures {
	ft := &fakeTextures{loaded: map[string]string{}, fail: map[string]bool{}}
	for _, f := range fail {
		ft.fail[f] = true
	}
	return ft
}

func (f *fakeTextures) Load(path, key string) error {
	if f.fail[path] {
		return errors.New("no such image")
	}
	f.loaded[key] = path
	return nil
}

func (f *fakeTextures) Clear(key string) {
	f.cleared = append(f.cleared, key)
}

func newTestFactory() *entity.Factory {
	f := entity.NewFactory()
	entity.RegisterDefaults(f)
	return f
}

type tilesetDef struct {
	firstGID int
	name     string
	extra    string
}

// tmx builds a map document. layers is raw XML placed after the tilesets.
func tmx(t *testing.T, width, height, tileSize int, tilesets []tilesetDef, layers string) []byte {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="orthogonal" width="%d" height="%d" tilewidth="%d" tileheight="%d">
`, width, height, tileSize, tileSize)
	for _, ts := range tilesets {
		fmt.Fprintf(&b, ` <tileset firstgid="%d" name="%s" tilewidth="%d" tileheight="%d" %s>
  <image source="%s.png" width="64" height="64"/>
 </tileset>
`, ts.firstGID, ts.name, tileSize, tileSize, ts.extra, ts.name)
	}
	b.WriteString(layers)
	b.WriteString("</map>\n")
	return []byte(b.String())
}

func tileLayerXML(t *testing.T, name string, g Grid, comp Compression) string {
	t.Helper()
	text, err := EncodeGrid(g, comp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	attr := ""
	if comp != CompressionZlib {
		attr = fmt.Sprintf(` compression="%s"`, compressionName(comp))
	}
	return fmt.Sprintf(` <layer name="%s">
  <data encoding="base64"%s>
   %s
  </data>
 </layer>
`, name, attr, text)
}
