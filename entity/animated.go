package entity

// AnimatedGraphic is a stationary animated sprite.
type AnimatedGraphic struct {
	Object
}

func NewAnimatedGraphic() *AnimatedGraphic {
	return &AnimatedGraphic{}
}

func (a *AnimatedGraphic) Update() {
	a.animate()
}
