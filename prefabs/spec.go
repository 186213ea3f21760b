package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entity kinds a TypeSpec can map a tag to.
const (
	KindPlayer   = "player"
	KindEnemy    = "enemy"
	KindButton   = "button"
	KindAnimated = "animated"
	KindScripted = "scripted"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TypeSpec registers a map object type tag as one of the built-in kinds.
type TypeSpec struct {
	Tag    string  `yaml:"tag"`
	Kind   string  `yaml:"kind"`
	Script string  `yaml:"script"`
	Range  float64 `yaml:"range"`
	Speed  float64 `yaml:"speed"`
}

type EntityManifest struct {
	Types []TypeSpec `yaml:"types"`
}

func LoadEntityManifest() (*EntityManifest, error) {
	spec, err := LoadSpec[EntityManifest]("entities.yaml")
	if err != nil {
		return nil, err
	}
	for i, t := range spec.Types {
		if t.Tag == "" {
			return nil, fmt.Errorf("prefabs: entities.yaml: type %d has no tag", i)
		}
		if t.Kind == KindScripted && t.Script == "" {
			return nil, fmt.Errorf("prefabs: entities.yaml: scripted type %q has no script", t.Tag)
		}
	}
	return &spec, nil
}
