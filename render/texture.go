package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilescene/assets"
	"go.uber.org/zap"
)

// TextureManager caches images by key. It is owned by the application and
// passed to whatever needs to load or draw textures.
type TextureManager struct {
	images map[string]*ebiten.Image
	paths  map[string]string
	decode func(path string) (*ebiten.Image, error)
	log    *zap.Logger
}

func NewTextureManager(log *zap.Logger) *TextureManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextureManager{
		images: map[string]*ebiten.Image{},
		paths:  map[string]string{},
		decode: loadImageFromAssetsOrFS,
		log:    log,
	}
}

// Load reads the image at path and caches it under key. Loading the same
// path under a cached key is a no-op; a different path replaces the image.
func (tm *TextureManager) Load(path, key string) error {
	if key == "" {
		return fmt.Errorf("texture: empty key for %q", path)
	}
	if _, ok := tm.images[key]; ok && tm.paths[key] == path {
		return nil
	}
	img, err := tm.decode(path)
	if err != nil {
		return err
	}
	if old, ok := tm.paths[key]; ok && old != path {
		tm.log.Warn("texture replaced", zap.String("key", key), zap.String("old", old), zap.String("path", path))
	}
	tm.Register(key, img)
	tm.paths[key] = path
	tm.log.Debug("texture loaded", zap.String("key", key), zap.String("path", path))
	return nil
}

// Register stores an already decoded image by key, replacing any image
// cached under it.
func (tm *TextureManager) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	tm.images[key] = img
	delete(tm.paths, key)
}

// Image returns a cached image by key.
func (tm *TextureManager) Image(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return tm.images[key]
}

// Clear drops the image cached under key.
func (tm *TextureManager) Clear(key string) {
	if img, ok := tm.images[key]; ok {
		img.Deallocate()
		delete(tm.images, key)
		delete(tm.paths, key)
	}
}

// Keys returns the cached keys in sorted order.
func (tm *TextureManager) Keys() []string {
	keys := make([]string, 0, len(tm.images))
	for k := range tm.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if assets.Exists(path) {
		return assets.LoadImage(path)
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
