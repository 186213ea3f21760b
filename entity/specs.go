package entity

import (
	"fmt"

	"github.com/milk9111/tilescene/prefabs"
	"go.uber.org/zap"
)

// ScriptSource loads entity scripts by name.
type ScriptSource func(name string) ([]byte, error)

// RegisterSpecs registers every tag of a prefab manifest. A tag that is
// already registered is logged and skipped; an unknown kind or a script that
// fails to compile is an error.
func RegisterSpecs(f *Factory, specs []prefabs.TypeSpec, scripts ScriptSource, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	registered := 0
	for _, spec := range specs {
		ctor, err := constructorFor(spec, scripts, log)
		if err != nil {
			return registered, fmt.Errorf("entity: register %q: %w", spec.Tag, err)
		}
		if !f.Register(spec.Tag, ctor) {
			log.Warn("entity type already registered", zap.String("tag", spec.Tag), zap.String("kind", spec.Kind))
			continue
		}
		registered++
	}
	return registered, nil
}

func constructorFor(spec prefabs.TypeSpec, scripts ScriptSource, log *zap.Logger) (Constructor, error) {
	switch spec.Kind {
	case prefabs.KindPlayer:
		return func() Entity { return NewPlayer() }, nil
	case prefabs.KindEnemy:
		patrol, speed := spec.Range, spec.Speed
		return func() Entity { return NewEnemy(patrol, speed) }, nil
	case prefabs.KindButton:
		return func() Entity { return NewMenuButton() }, nil
	case prefabs.KindAnimated:
		return func() Entity { return NewAnimatedGraphic() }, nil
	case prefabs.KindScripted:
		if scripts == nil {
			return nil, fmt.Errorf("no script source for %q", spec.Script)
		}
		src, err := scripts(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("load script %q: %w", spec.Script, err)
		}
		compiled, err := CompileScript(src)
		if err != nil {
			return nil, fmt.Errorf("compile script %q: %w", spec.Script, err)
		}
		scriptLog := log.With(zap.String("tag", spec.Tag))
		return func() Entity { return NewScripted(compiled.Clone(), scriptLog) }, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", spec.Kind)
	}
}

// LoadFactory returns a factory holding the built-in kinds and every type in
// the prefab manifest.
func LoadFactory(log *zap.Logger) (*Factory, error) {
	manifest, err := prefabs.LoadEntityManifest()
	if err != nil {
		return nil, err
	}
	f := NewFactory()
	RegisterDefaults(f)
	if _, err := RegisterSpecs(f, manifest.Types, prefabs.LoadScript, log); err != nil {
		return nil, err
	}
	return f, nil
}
