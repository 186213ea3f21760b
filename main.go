package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilescene/config"
	"github.com/milk9111/tilescene/logging"
	"github.com/milk9111/tilescene/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "tilescene.yaml", "config file")
	mapName := flag.String("map", "", "embedded level name or map file path (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("note: %v", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *mapName != "" {
		cfg.Map = *mapName
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("tilescene")

	game, err := NewGame(ctx, cfg, logger, *debug)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
