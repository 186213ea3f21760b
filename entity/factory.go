package entity

import (
	"errors"
	"fmt"
	"sort"
)

var ErrTypeNotRegistered = errors.New("entity: type not registered")

// Constructor returns a fresh, not yet loaded entity.
type Constructor func() Entity

// Factory maps type tags to constructors. The zero value is ready to use.
type Factory struct {
	creators map[string]Constructor
}

func NewFactory() *Factory {
	return &Factory{creators: map[string]Constructor{}}
}

// Register adds a constructor for tag. The first registration of a tag wins;
// later ones are discarded and Register returns false.
func (f *Factory) Register(tag string, ctor Constructor) bool {
	if tag == "" || ctor == nil {
		return false
	}
	if _, ok := f.creators[tag]; ok {
		return false
	}
	if f.creators == nil {
		f.creators = map[string]Constructor{}
	}
	f.creators[tag] = ctor
	return true
}

// Create builds a new entity for tag.
func (f *Factory) Create(tag string) (Entity, error) {
	ctor, ok := f.creators[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotRegistered, tag)
	}
	e := ctor()
	if e == nil {
		return nil, fmt.Errorf("entity: constructor for %q returned nil", tag)
	}
	return e, nil
}

func (f *Factory) Registered(tag string) bool {
	_, ok := f.creators[tag]
	return ok
}

// Types returns the registered tags in sorted order.
func (f *Factory) Types() []string {
	tags := make([]string, 0, len(f.creators))
	for tag := range f.creators {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// RegisterDefaults registers the built-in kinds under their canonical tags.
func RegisterDefaults(f *Factory) {
	f.Register("Player", func() Entity { return NewPlayer() })
	f.Register("Enemy", func() Entity { return NewEnemy(0, 0) })
	f.Register("MenuButton", func() Entity { return NewMenuButton() })
	f.Register("AnimatedGraphic", func() Entity { return NewAnimatedGraphic() })
}
