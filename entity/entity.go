// Package entity holds the game objects that map object layers are made of
// and the factory that builds them from type tags.
package entity

import (
	"github.com/milk9111/tilescene/common"
	"github.com/milk9111/tilescene/render"
)

// Entity is the capability set every map object provides. Concrete types are
// only known to whoever registers them with a Factory.
type Entity interface {
	Load(params LoaderParams)
	Update()
	Render(c render.Canvas)
	Clean()
}

// LoaderParams is the fixed set of values a new entity is initialised with.
type LoaderParams struct {
	X, Y          int
	Width, Height int
	TextureID     string
	FrameCount    int
	CallbackID    int
	AnimSpeed     int
}

// Object is the shared state of the built-in entities: a textured, optionally
// animated sprite moving with a constant velocity.
type Object struct {
	Position     common.Vector2
	Velocity     common.Vector2
	Width        int
	Height       int
	TextureID    string
	FrameCount   int
	CurrentFrame int
	CurrentRow   int
	AnimSpeed    int
	Flip         bool

	params LoaderParams
	ticks  int
}

func (o *Object) Load(params LoaderParams) {
	o.params = params
	o.Position = common.Vector2{X: float64(params.X), Y: float64(params.Y)}
	o.Width = params.Width
	o.Height = params.Height
	o.TextureID = params.TextureID
	o.FrameCount = params.FrameCount
	o.AnimSpeed = params.AnimSpeed
	o.CurrentFrame = 0
	o.ticks = 0
}

// Params returns the values the object was loaded with.
func (o *Object) Params() LoaderParams {
	return o.params
}

func (o *Object) Update() {
	o.Position = o.Position.Add(o.Velocity)
	o.animate()
}

// animate advances the frame counter. AnimSpeed is in frames per second.
func (o *Object) animate() {
	o.ticks++
	if o.AnimSpeed <= 0 || o.FrameCount <= 1 {
		return
	}
	o.CurrentFrame = (o.ticks * o.AnimSpeed / common.TicksPerSecond) % o.FrameCount
}

func (o *Object) Render(c render.Canvas) {
	if c == nil || o.TextureID == "" {
		return
	}
	c.DrawFrame(o.TextureID, int(o.Position.X), int(o.Position.Y), o.Width, o.Height, o.CurrentRow, o.CurrentFrame, o.Flip)
}

func (o *Object) Clean() {
	o.Velocity = common.Vector2{}
}
