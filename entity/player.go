package entity

import "github.com/milk9111/tilescene/common"

const defaultPlayerSpeed = 3.0

// Player is steered from outside (input is not the entity's concern).
type Player struct {
	Object
	Speed float64
}

func NewPlayer() *Player {
	return &Player{Speed: defaultPlayerSpeed}
}

// Steer sets the direction of travel; components are expected in [-1, 1].
func (p *Player) Steer(dx, dy float64) {
	p.Velocity = common.Vector2{X: dx, Y: dy}.Scale(p.Speed)
	if dx < 0 {
		p.Flip = true
	} else if dx > 0 {
		p.Flip = false
	}
}
