// Command mapdump loads a map without a window and prints what the loader
// made of it. With -tui it draws the tile layers in the terminal; with
// -reencode it rewrites every tile layer using another compression.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/level"
	"github.com/milk9111/tilescene/levels"
	"github.com/milk9111/tilescene/logging"
	"go.uber.org/zap"
)

func main() {
	mapName := flag.String("map", "demo.tmx", "embedded level name or map file path")
	tui := flag.Bool("tui", false, "draw the map in the terminal")
	reencode := flag.String("reencode", "", "write the map to stdout with tile layers recompressed (none, zlib, gzip, zstd)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log, *mapName, *tui, *reencode); err != nil {
		log.Error("mapdump failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger, name string, tui bool, reencode string) error {
	data, err := readMap(name)
	if err != nil {
		return err
	}

	if reencode != "" {
		comp, err := level.ParseCompression(reencode)
		if err != nil {
			return err
		}
		return reencodeMap(data, comp, os.Stdout)
	}

	f, err := entity.LoadFactory(log)
	if err != nil {
		return err
	}

	textures := &textureLog{}
	p := level.NewParser(f, textures, log)
	m, err := p.ParseBytes(ctx, data)
	if err != nil {
		return err
	}

	if tui {
		return runTUI(m)
	}
	return writeSummary(os.Stdout, name, m, textures.loads)
}

func readMap(name string) ([]byte, error) {
	if levels.Exists(name) {
		return levels.Open(name)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	return b, nil
}

// textureLog stands in for the texture cache; mapdump never decodes images.
type textureLog struct {
	loads []textureLoad
}

type textureLoad struct {
	key, path string
}

func (t *textureLog) Load(path, key string) error {
	t.loads = append(t.loads, textureLoad{key: key, path: path})
	return nil
}
