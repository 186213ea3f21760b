package level

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/milk9111/tilescene/entity"
	"github.com/milk9111/tilescene/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Creator builds entities from object type tags. *entity.Factory satisfies it.
type Creator interface {
	Create(tag string) (entity.Entity, error)
}

// TextureLoader loads an image into the texture cache under key.
// *render.TextureManager satisfies it.
type TextureLoader interface {
	Load(path, key string) error
}

const (
	DefaultAssetDir       = "assets"
	DefaultViewportWidth  = 640
	DefaultViewportHeight = 480
)

// Parser turns a map document into a Map. A Parser holds no per-load state
// and may be reused, but loads are not safe to run concurrently because they
// share the texture cache.
type Parser struct {
	Creator  Creator
	Textures TextureLoader
	Log      *zap.Logger
	Tracer   trace.Tracer

	// AssetDir is joined with tileset image sources.
	AssetDir       string
	ViewportWidth  int
	ViewportHeight int
	ScrollSpeed    float64
	// SortTilesets orders the tileset table by FirstGID after loading.
	SortTilesets bool

	// Cleanup clears the textures a failed load had already cached. When nil,
	// Textures is used if it is also a TextureClearer.
	Cleanup TextureClearer
}

func NewParser(creator Creator, textures TextureLoader, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		Creator:        creator,
		Textures:       textures,
		Log:            log,
		Tracer:         telemetry.Tracer("level"),
		AssetDir:       DefaultAssetDir,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		ScrollSpeed:    DefaultScrollSpeed,
		SortTilesets:   true,
	}
}

// ParseFile reads and parses a map file from disk.
func (p *Parser) ParseFile(ctx context.Context, filename string) (*Map, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filename); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, filename, err)
	}
	return p.Parse(ctx, doc)
}

// ParseFS reads and parses a map file from fsys.
func (p *Parser) ParseFS(ctx context.Context, fsys fs.FS, name string) (*Map, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", name, err)
	}
	return p.ParseBytes(ctx, b)
}

func (p *Parser) ParseBytes(ctx context.Context, b []byte) (*Map, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return p.Parse(ctx, doc)
}

// Parse builds a Map from doc. Phases run in order: header, tilesets, layers,
// global textures. Any fatal error aborts the load and no Map is returned.
func (p *Parser) Parse(ctx context.Context, doc *etree.Document) (*Map, error) {
	log := p.logger()
	ctx, span := p.tracer().Start(ctx, "level.parse")
	defer span.End()

	m, err := p.parse(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("map load failed", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Int("map.tile_size", m.TileSize),
		attribute.Int("map.tilesets", len(m.Tilesets)),
		attribute.Int("map.layers", len(m.Layers)),
	)
	log.Info("map loaded",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("tileSize", m.TileSize),
		zap.Int("tilesets", len(m.Tilesets)),
		zap.Int("layers", len(m.Layers)),
	)
	return m, nil
}

func (p *Parser) parse(ctx context.Context, doc *etree.Document) (*Map, error) {
	root := doc.Root()
	if root == nil || root.Tag != "map" {
		return nil, fmt.Errorf("%w: root element is not <map>", ErrMalformedDocument)
	}

	m := &Map{}
	phases := []struct {
		name string
		run  func(*etree.Element, *Map) error
	}{
		{"header", p.readHeader},
		{"tilesets", p.readTilesets},
		{"layers", p.readLayers},
		{"textures", p.readTextures},
	}
	for _, ph := range phases {
		_, span := p.tracer().Start(ctx, "level."+ph.name)
		err := ph.run(root, m)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if err != nil {
			p.discard(m)
			return nil, err
		}
	}
	return m, nil
}

// discard drops the textures cached by a load that did not finish.
func (p *Parser) discard(m *Map) {
	tc := p.Cleanup
	if tc == nil {
		tc, _ = p.Textures.(TextureClearer)
	}
	if tc == nil || len(m.Textures) == 0 {
		return
	}
	for _, key := range m.Textures {
		tc.Clear(key)
	}
	p.logger().Debug("textures released after failed load", zap.Strings("keys", m.Textures))
	m.Textures = nil
}

func (p *Parser) readHeader(root *etree.Element, m *Map) error {
	var err error
	if m.TileSize, err = requiredPositive(root, "tilewidth"); err != nil {
		return err
	}
	if m.Width, err = requiredPositive(root, "width"); err != nil {
		return err
	}
	if m.Height, err = requiredPositive(root, "height"); err != nil {
		return err
	}
	m.Properties = readProperties(root)
	return nil
}

func (p *Parser) readTilesets(root *etree.Element, m *Map) error {
	seen := map[string]bool{}
	for _, e := range root.SelectElements("tileset") {
		ts, err := parseTileset(e)
		if err != nil {
			return err
		}
		// textures are keyed by tileset name
		if seen[ts.Name] {
			return fmt.Errorf("%w: duplicate tileset name %q", ErrMalformedDocument, ts.Name)
		}
		seen[ts.Name] = true
		if err := p.loadTexture(ts.Source, ts.Name); err != nil {
			return fmt.Errorf("%w: tileset %q: %v", ErrTextureLoad, ts.Name, err)
		}
		m.Tilesets = append(m.Tilesets, ts)
		m.Textures = append(m.Textures, ts.Name)
	}

	if p.SortTilesets && !m.Tilesets.Sorted() {
		sort.SliceStable(m.Tilesets, func(i, j int) bool {
			return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
		})
		p.logger().Warn("tilesets reordered by firstgid", zap.Strings("order", tilesetNames(m.Tilesets)))
	}
	return nil
}

func parseTileset(e *etree.Element) (Tileset, error) {
	var ts Tileset
	first, err := requiredPositive(e, "firstgid")
	if err != nil {
		return ts, err
	}
	ts.FirstGID = uint32(first)
	if ts.TileWidth, err = requiredPositive(e, "tilewidth"); err != nil {
		return ts, err
	}
	if ts.TileHeight, err = requiredPositive(e, "tileheight"); err != nil {
		return ts, err
	}
	if ts.Name, err = requiredString(e, "name"); err != nil {
		return ts, err
	}
	if ts.Spacing, err = optionalInt(e, "spacing", 0); err != nil {
		return ts, err
	}
	if ts.Margin, err = optionalInt(e, "margin", 0); err != nil {
		return ts, err
	}

	img := e.SelectElement("image")
	if img == nil {
		return ts, fmt.Errorf("%w: tileset %q has no <image>", ErrMalformedDocument, ts.Name)
	}
	if ts.Source, err = requiredString(img, "source"); err != nil {
		return ts, err
	}
	if ts.ImageWidth, err = requiredPositive(img, "width"); err != nil {
		return ts, err
	}
	if ts.ImageHeight, err = requiredPositive(img, "height"); err != nil {
		return ts, err
	}

	ts.Columns = columnsFor(ts.ImageWidth, ts.TileWidth, ts.Spacing)
	if ts.Columns < 1 {
		return ts, fmt.Errorf("%w: tileset %q image is narrower than one tile", ErrMalformedDocument, ts.Name)
	}
	return ts, nil
}

func (p *Parser) readLayers(root *etree.Element, m *Map) error {
	for _, e := range root.ChildElements() {
		switch e.Tag {
		case "layer":
			l, err := p.parseTileLayer(e, m)
			if err != nil {
				return err
			}
			m.Layers = append(m.Layers, l)
		case "objectgroup":
			m.Layers = append(m.Layers, p.parseObjectLayer(e))
		}
	}
	return nil
}

func (p *Parser) parseTileLayer(e *etree.Element, m *Map) (*TileLayer, error) {
	name := e.SelectAttrValue("name", "")
	data := e.SelectElement("data")
	if data == nil {
		return nil, fmt.Errorf("%w: layer %q has no <data>", ErrDecodeFailure, name)
	}

	enc := Encoding(strings.ToLower(data.SelectAttrValue("encoding", string(EncodingBase64))))
	comp := CompressionNone
	if enc == EncodingBase64 {
		var err error
		comp, err = ParseCompression(data.SelectAttrValue("compression", string(CompressionZlib)))
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", name, err)
		}
	}

	grid, err := DecodeGrid(data.Text(), enc, comp, m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", name, err)
	}

	l := NewTileLayer(name, m.TileSize, grid, m.Tilesets, p.ViewportWidth, p.ViewportHeight, p.logger())
	l.ScrollSpeed = p.ScrollSpeed
	l.Visible = e.SelectAttrValue("visible", "1") != "0"
	l.setProperties(readProperties(e))
	return l, nil
}

func (p *Parser) parseObjectLayer(e *etree.Element) *ObjectLayer {
	log := p.logger()
	l := NewObjectLayer(e.SelectAttrValue("name", ""))
	for k, v := range readProperties(e) {
		l.properties[k] = v
	}

	for _, o := range e.SelectElements("object") {
		tag := o.SelectAttrValue("type", "")
		if tag == "" {
			tag = o.SelectAttrValue("class", "")
		}
		if tag == "" {
			log.Warn("object has no type, skipped", zap.String("layer", l.name), zap.String("object", o.SelectAttrValue("name", "")))
			continue
		}
		if p.Creator == nil {
			log.Warn("no entity creator, object skipped", zap.String("type", tag))
			continue
		}
		ent, err := p.Creator.Create(tag)
		if err != nil || ent == nil {
			log.Warn("entity type not registered, object skipped",
				zap.String("layer", l.name), zap.String("type", tag), zap.Error(err))
			continue
		}

		ent.Load(p.loaderParams(o, tag))
		l.Add(ent)
	}
	return l
}

// loaderParams reads an object's position and typed properties. Unparsable
// values are logged and left at their defaults.
func (p *Parser) loaderParams(o *etree.Element, tag string) entity.LoaderParams {
	log := p.logger().With(zap.String("type", tag))
	intOr := func(raw string, def int, what string) int {
		v, err := truncInt(raw)
		if err != nil {
			log.Warn("invalid object value", zap.String("name", what), zap.String("value", raw))
			return def
		}
		return v
	}

	params := entity.LoaderParams{FrameCount: 1}
	if a := o.SelectAttr("x"); a != nil {
		params.X = intOr(a.Value, 0, "x")
	}
	if a := o.SelectAttr("y"); a != nil {
		params.Y = intOr(a.Value, 0, "y")
	}
	if a := o.SelectAttr("width"); a != nil {
		params.Width = intOr(a.Value, 0, "width")
	}
	if a := o.SelectAttr("height"); a != nil {
		params.Height = intOr(a.Value, 0, "height")
	}

	props := readProperties(o)
	intProp := func(name string, dst *int) {
		if raw, ok := props[name]; ok {
			*dst = intOr(raw, *dst, name)
		}
	}
	intProp("numFrames", &params.FrameCount)
	intProp("textureWidth", &params.Width)
	intProp("textureHeight", &params.Height)
	intProp("callbackID", &params.CallbackID)
	intProp("animSpeed", &params.AnimSpeed)
	params.TextureID = props["textureID"]
	return params
}

// readTextures preloads the textures named in the map's root properties.
// A failed preload is logged and skipped.
func (p *Parser) readTextures(root *etree.Element, m *Map) error {
	log := p.logger()
	for _, group := range root.SelectElements("properties") {
		for _, e := range group.SelectElements("property") {
			key := e.SelectAttrValue("name", "")
			src := e.SelectAttrValue("value", "")
			if key == "" || src == "" {
				continue
			}
			if err := p.loadTexture(src, key); err != nil {
				log.Warn("texture preload failed", zap.String("key", key), zap.String("path", src), zap.Error(err))
				continue
			}
			m.Textures = append(m.Textures, key)
		}
	}
	return nil
}

func (p *Parser) loadTexture(src, key string) error {
	if p.Textures == nil {
		return nil
	}
	return p.Textures.Load(p.assetPath(src), key)
}

// assetPath joins relative sources with AssetDir unless they already start
// with it.
func (p *Parser) assetPath(src string) string {
	if p.AssetDir == "" || filepath.IsAbs(src) {
		return src
	}
	clean := path.Clean(filepath.ToSlash(src))
	dir := path.Clean(filepath.ToSlash(p.AssetDir))
	if clean == dir || strings.HasPrefix(clean, dir+"/") {
		return clean
	}
	return path.Join(dir, clean)
}

func (p *Parser) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p *Parser) tracer() trace.Tracer {
	if p.Tracer == nil {
		return telemetry.NoopTracer()
	}
	return p.Tracer
}

func tilesetNames(t Tilesets) []string {
	names := make([]string, len(t))
	for i, ts := range t {
		names[i] = ts.Name + ":" + strconv.FormatUint(uint64(ts.FirstGID), 10)
	}
	return names
}
