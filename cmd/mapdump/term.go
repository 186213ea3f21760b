package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilescene/common"
	"github.com/milk9111/tilescene/level"
)

const tileRunes = "#=%&*+oxOX@$~^:;"

var tilesetColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorTeal,
	tcell.ColorOlive,
	tcell.ColorPurple,
	tcell.ColorMaroon,
	tcell.ColorNavy,
}

// termCanvas draws each map tile as one terminal cell.
type termCanvas struct {
	screen   tcell.Screen
	tileSize int
	columns  map[string]int
	styles   map[string]tcell.Style
}

func newTermCanvas(screen tcell.Screen, m *level.Map) *termCanvas {
	c := &termCanvas{
		screen:   screen,
		tileSize: m.TileSize,
		columns:  map[string]int{},
		styles:   map[string]tcell.Style{},
	}
	for i, ts := range m.Tilesets {
		c.columns[ts.Name] = ts.Columns
		c.styles[ts.Name] = tcell.StyleDefault.Foreground(tilesetColors[i%len(tilesetColors)])
	}
	return c
}

func (c *termCanvas) cell(x, y int) (int, int, bool) {
	if c.tileSize <= 0 {
		return 0, 0, false
	}
	cx := (x - common.FloorMod(x, c.tileSize)) / c.tileSize
	cy := (y - common.FloorMod(y, c.tileSize)) / c.tileSize
	w, h := c.screen.Size()
	// the last line is the status bar
	if cx < 0 || cy < 0 || cx >= w || cy >= h-1 {
		return 0, 0, false
	}
	return cx, cy, true
}

func (c *termCanvas) DrawTile(key string, margin, spacing, x, y, width, height, row, col int) {
	cx, cy, ok := c.cell(x, y)
	if !ok {
		return
	}
	local := row*c.columns[key] + col
	r := rune(tileRunes[common.FloorMod(local, len(tileRunes))])
	c.screen.SetContent(cx, cy, r, nil, c.styles[key])
}

func (c *termCanvas) DrawFrame(key string, x, y, width, height, row, frame int, flip bool) {
	cx, cy, ok := c.cell(x, y)
	if !ok {
		return
	}
	r := '>'
	if flip {
		r = '<'
	}
	c.screen.SetContent(cx, cy, r, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
}

// tuiView holds what the terminal viewer needs between frames.
type tuiView struct {
	screen tcell.Screen
	m      *level.Map
	canvas *termCanvas
	ticks  int
}

func newTUIView(screen tcell.Screen, m *level.Map) *tuiView {
	return &tuiView{screen: screen, m: m, canvas: newTermCanvas(screen, m)}
}

func (v *tuiView) draw() {
	v.screen.Clear()
	v.m.Render(v.canvas)

	pos := common.Vector2{}
	if tls := v.m.TileLayers(); len(tls) > 0 {
		pos = tls[0].Position
	}
	status := fmt.Sprintf(" %dx%d  pos %.0f,%.0f  tick %d  arrows scroll, space steps, q quits",
		v.m.Width, v.m.Height, pos.X, pos.Y, v.ticks)
	_, h := v.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		v.screen.SetContent(i, h-1, r, nil, style)
	}
	v.screen.Show()
}

// scroll moves every tile layer by dx, dy tiles.
func (v *tuiView) scroll(dx, dy int) {
	for _, l := range v.m.TileLayers() {
		l.Position = l.Position.Add(common.Vector2{X: float64(dx * v.m.TileSize), Y: float64(dy * v.m.TileSize)})
	}
}

func (v *tuiView) step() {
	v.m.Update()
	v.ticks++
}

// handle applies one event and reports whether the viewer should keep running.
func (v *tuiView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.scroll(-1, 0)
		case tcell.KeyRight:
			v.scroll(1, 0)
		case tcell.KeyUp:
			v.scroll(0, -1)
		case tcell.KeyDown:
			v.scroll(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.step()
			}
		}
	}
	return true
}

func runTUI(m *level.Map) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	v := newTUIView(s, m)
	for {
		v.draw()
		if !v.handle(s.PollEvent()) {
			return nil
		}
	}
}
