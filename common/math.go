package common

// TicksPerSecond is the fixed update rate entities animate against.
const TicksPerSecond = 60

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Vector2 is a 2-D float vector used for scroll positions and velocities.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// FloorMod returns a mod n in the range [0, n) for n > 0.
func FloorMod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// FloorDiv returns a / n rounded toward negative infinity for n > 0.
func FloorDiv(a, n int) int {
	if n <= 0 {
		return 0
	}
	q := a / n
	if a%n < 0 {
		q--
	}
	return q
}
