package entity

const (
	defaultPatrolRange = 64.0
	defaultPatrolSpeed = 2.0
)

// Enemy patrols vertically around the point it was loaded at and turns
// around when it leaves the patrol range.
type Enemy struct {
	Object
	Range float64
	Speed float64

	originY float64
}

func NewEnemy(patrolRange, speed float64) *Enemy {
	if patrolRange <= 0 {
		patrolRange = defaultPatrolRange
	}
	if speed <= 0 {
		speed = defaultPatrolSpeed
	}
	return &Enemy{Range: patrolRange, Speed: speed}
}

func (e *Enemy) Load(params LoaderParams) {
	e.Object.Load(params)
	e.originY = e.Position.Y
	e.Velocity.Y = e.Speed
}

func (e *Enemy) Update() {
	if e.Position.Y >= e.originY+e.Range {
		e.Velocity.Y = -e.Speed
	} else if e.Position.Y <= e.originY-e.Range {
		e.Velocity.Y = e.Speed
	}
	e.Object.Update()
}
