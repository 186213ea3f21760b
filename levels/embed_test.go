package levels_test

import (
	"context"
	"strings"
	"testing"

	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/level"
	"github.com/milk9111/tilescene/levels"
	"github.com/milk9111/tilescene/physics"
)

type nopTextures struct{ keys []string }

func (n *nopTextures) Load(path, key string) error {
	n.keys = append(n.keys, key)
	return nil
}

func TestNames(t *testing.T) {
	names := levels.Names()
	if strings.Join(names, ",") != "demo.tmx,strip.tmx" {
		t.Fatalf("unexpected embedded levels %v", names)
	}
	if !levels.Exists("demo.tmx") || levels.Exists("nope.tmx") {
		t.Fatalf("unexpected Exists results")
	}
	if _, err := levels.Open("nope.tmx"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func TestEmbeddedLevelsParse(t *testing.T) {
	f, err := entity.LoadFactory(nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range levels.Names() {
		t.Run(name, func(t *testing.T) {
			b, err := levels.Open(name)
			if err != nil {
				t.Fatal(err)
			}
			textures := &nopTextures{}
			p := level.NewParser(f, textures, nil)
			lm, err := p.ParseBytes(context.Background(), b)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			if len(lm.TileLayers()) == 0 {
				t.Fatalf("expected tile layers in %s", name)
			}
			if len(physics.NewWorld(lm).Colliders()) == 0 {
				t.Fatalf("expected colliders in %s", name)
			}
		})
	}
}

func TestDemoLevelObjects(t *testing.T) {
	f, err := entity.LoadFactory(nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := levels.Open("demo.tmx")
	if err != nil {
		t.Fatal(err)
	}
	textures := &nopTextures{}
	lm, err := level.NewParser(f, textures, nil).ParseBytes(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(textures.keys, ",") != "tiles,sprites,helicopter,button" {
		t.Fatalf("unexpected texture loads %v", textures.keys)
	}
	objs := lm.ObjectLayers()[0].Objects()
	if len(objs) != 7 {
		t.Fatalf("expected 7 objects, got %d", len(objs))
	}
	if n := entity.AssignCallbacks(objs, []func(){nil, func() {}, func() {}}); n != 2 {
		t.Fatalf("expected 2 buttons bound, got %d", n)
	}
}
