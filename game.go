package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilescene/common"
	"github.com/milk9111/tilescene/config"
	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/level"
	"github.com/milk9111/tilescene/levels"
	"github.com/milk9111/tilescene/physics"
	"github.com/milk9111/tilescene/prefabs"
	"github.com/milk9111/tilescene/render"
	"go.uber.org/zap"
)

// Callback ids map objects' callbackID property to viewer actions.
const (
	callbackNone = iota
	callbackPause
	callbackReload
)

type Game struct {
	ctx   context.Context
	cfg   config.Config
	log   *zap.Logger
	debug bool

	textures *render.TextureManager
	canvas   *render.ScreenCanvas
	watcher  *prefabs.Watcher
	hud      *hud

	level   *level.Map
	world   *physics.World
	player  *entity.Player
	buttons []*entity.MenuButton

	frames        int
	paused        bool
	reloadPending bool
	lastErr       error
}

func NewGame(ctx context.Context, cfg config.Config, log *zap.Logger, debug bool) (*Game, error) {
	textures := render.NewTextureManager(log.Named("textures"))
	g := &Game{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		debug:    debug,
		textures: textures,
		canvas:   render.NewScreenCanvas(textures),
		hud:      newHUD(),
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	if cfg.Watch {
		g.startWatcher()
	}
	return g, nil
}

// load parses the configured map and swaps it in. The previous map is kept
// when the new one fails to load.
func (g *Game) load() error {
	factory, err := entity.LoadFactory(g.log.Named("entity"))
	if err != nil {
		return err
	}
	data, err := g.readMap()
	if err != nil {
		return err
	}

	p := level.NewParser(factory, g.textures, g.log.Named("level"))
	p.AssetDir = g.cfg.AssetDir
	p.ViewportWidth, p.ViewportHeight = g.cfg.Width, g.cfg.Height
	p.ScrollSpeed = g.cfg.ScrollSpeed
	p.SortTilesets = g.cfg.SortTilesets
	if g.level != nil {
		p.Cleanup = level.KeepTextures(g.textures, g.level.Textures)
	}

	m, err := p.ParseBytes(g.ctx, data)
	if err != nil {
		return err
	}

	if g.level != nil {
		g.level.Clean(level.KeepTextures(g.textures, m.Textures))
	}
	g.level = m
	g.world = physics.NewWorld(m)
	g.player = nil
	g.buttons = nil

	callbacks := []func(){
		callbackPause:  g.togglePause,
		callbackReload: g.requestReload,
	}
	for _, ol := range m.ObjectLayers() {
		entity.AssignCallbacks(ol.Objects(), callbacks)
		for _, e := range ol.Objects() {
			switch e := e.(type) {
			case *entity.Player:
				if g.player == nil {
					g.player = e
				}
			case *entity.MenuButton:
				g.buttons = append(g.buttons, e)
			}
		}
	}
	g.log.Info("level ready",
		zap.String("map", g.cfg.Map),
		zap.Int("colliders", len(g.world.Colliders())),
		zap.Int("buttons", len(g.buttons)),
	)
	return nil
}

func (g *Game) readMap() ([]byte, error) {
	if levels.Exists(g.cfg.Map) {
		return levels.Open(g.cfg.Map)
	}
	b, err := os.ReadFile(g.cfg.Map)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", g.cfg.Map, err)
	}
	return b, nil
}

func (g *Game) startWatcher() {
	var dirs []string
	if !levels.Exists(g.cfg.Map) {
		dirs = append(dirs, filepath.Dir(g.cfg.Map))
	}
	for _, d := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn("file watching disabled", zap.Error(err))
		return
	}
	g.watcher = w
}

func (g *Game) togglePause() {
	g.paused = !g.paused
}

func (g *Game) requestReload() {
	g.reloadPending = true
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("file changed", zap.String("path", path))
			g.reloadPending = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("watch error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.requestReload()
	}
	g.updateButtons()
	g.pollWatcher()

	if g.reloadPending {
		g.reloadPending = false
		if err := g.load(); err != nil {
			g.lastErr = err
			g.log.Error("reload failed, keeping current level", zap.Error(err))
		} else {
			g.lastErr = nil
		}
	}

	if g.paused || g.level == nil {
		return nil
	}
	g.steerPlayer()
	g.level.Update()
	g.world.Step(1.0 / common.TicksPerSecond)
	return nil
}

func (g *Game) updateButtons() {
	mx, my := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	for _, b := range g.buttons {
		over := b.Contains(mx, my)
		if released {
			b.Release()
		}
		b.Hover(over)
		if over && pressed {
			b.Press()
		}
	}
}

// steerPlayer sets the player's velocity from the arrow keys and cancels
// movement into solid tiles.
func (g *Game) steerPlayer() {
	p := g.player
	if p == nil {
		return
	}
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	p.Steer(dx, dy)

	w, h := float64(p.Width), float64(p.Height)
	if g.world.Solid(p.Position.X+p.Velocity.X, p.Position.Y, w, h) {
		p.Velocity.X = 0
	}
	if g.world.Solid(p.Position.X, p.Position.Y+p.Velocity.Y, w, h) {
		p.Velocity.Y = 0
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.level != nil {
		g.level.Render(g.canvas.Target(screen))
	}
	g.hud.draw(screen, g.status())
}

func (g *Game) status() []string {
	lines := []string{fmt.Sprintf("%s  FPS %.0f", g.cfg.Map, ebiten.ActualFPS())}
	if g.paused {
		lines = append(lines, "PAUSED (P)")
	}
	if g.lastErr != nil {
		lines = append(lines, "reload failed: "+g.lastErr.Error())
	}
	if g.debug && g.level != nil {
		lines = append(lines,
			fmt.Sprintf("frames %d  layers %d  textures %d", g.frames, len(g.level.Layers), len(g.textures.Keys())),
			fmt.Sprintf("colliders %d", len(g.world.Colliders())),
		)
		if tls := g.level.TileLayers(); len(tls) > 0 {
			lines = append(lines, fmt.Sprintf("scroll %.0f,%.0f", tls[0].Position.X, tls[0].Position.Y))
		}
	}
	return lines
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.level != nil {
		g.level.Clean(g.textures)
	}
}
