package entity

// Button states double as frame indices in the button sheet.
const (
	ButtonOut = iota
	ButtonOver
	ButtonClicked
)

// MenuButton fires its callback when pressed.
type MenuButton struct {
	Object

	callbackID int
	callback   func()
	state      int
	released   bool
}

func NewMenuButton() *MenuButton {
	return &MenuButton{released: true}
}

func (b *MenuButton) Load(params LoaderParams) {
	b.Object.Load(params)
	b.callbackID = params.CallbackID
	b.state = ButtonOut
}

func (b *MenuButton) CallbackID() int {
	return b.callbackID
}

func (b *MenuButton) SetCallback(cb func()) {
	b.callback = cb
}

func (b *MenuButton) State() int {
	return b.state
}

// Contains reports whether the point lies on the button.
func (b *MenuButton) Contains(x, y int) bool {
	px, py := int(b.Position.X), int(b.Position.Y)
	return x >= px && x < px+b.Width && y >= py && y < py+b.Height
}

// Hover moves the button between the out and over states.
func (b *MenuButton) Hover(over bool) {
	if b.state == ButtonClicked {
		return
	}
	if over {
		b.state = ButtonOver
	} else {
		b.state = ButtonOut
	}
}

// Press fires the callback once per press; Release re-arms it.
func (b *MenuButton) Press() bool {
	if !b.released {
		return false
	}
	b.released = false
	b.state = ButtonClicked
	if b.callback != nil {
		b.callback()
	}
	return true
}

func (b *MenuButton) Release() {
	b.released = true
	if b.state == ButtonClicked {
		b.state = ButtonOver
	}
}

func (b *MenuButton) Update() {
	b.CurrentFrame = b.state
}

func (b *MenuButton) Clean() {
	b.callback = nil
	b.Object.Clean()
}
