package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

var scriptVars = []string{"x", "y", "vx", "vy"}

// CompileScript compiles a movement script. Scripts see x, y, vx, vy and tick
// and steer the entity by assigning vx and vy.
func CompileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range scriptVars {
		if err := script.Add(name, 0.0); err != nil {
			return nil, err
		}
	}
	if err := script.Add("tick", 0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// Scripted is an entity whose velocity is decided by a tengo script each tick.
type Scripted struct {
	Object

	compiled *tengo.Compiled
	log      *zap.Logger
	tick     int
	failed   bool
}

// NewScripted takes ownership of compiled; pass a Clone when sharing one
// compiled script between instances.
func NewScripted(compiled *tengo.Compiled, log *zap.Logger) *Scripted {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scripted{compiled: compiled, log: log}
}

func (s *Scripted) Update() {
	if !s.failed && s.compiled != nil {
		if err := s.step(); err != nil {
			s.failed = true
			s.log.Warn("entity script stopped", zap.String("texture", s.TextureID), zap.Error(err))
		}
	}
	s.Object.Update()
}

func (s *Scripted) step() error {
	values := map[string]any{
		"x":    s.Position.X,
		"y":    s.Position.Y,
		"vx":   s.Velocity.X,
		"vy":   s.Velocity.Y,
		"tick": s.tick,
	}
	for name, v := range values {
		if err := s.compiled.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return err
	}
	s.Velocity.X = s.compiled.Get("vx").Float()
	s.Velocity.Y = s.compiled.Get("vy").Float()
	s.tick++
	return nil
}

func (s *Scripted) Clean() {
	s.compiled = nil
	s.Object.Clean()
}
