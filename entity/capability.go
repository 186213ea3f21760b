package entity

// Callbacker is implemented by entities that trigger a game callback, such as
// menu buttons. The callback is chosen by the entity's callback id.
type Callbacker interface {
	CallbackID() int
	SetCallback(cb func())
}

// AsCallbacker reports whether e can carry a callback.
func AsCallbacker(e Entity) (Callbacker, bool) {
	cb, ok := e.(Callbacker)
	return cb, ok
}

// AssignCallbacks binds callbacks[id] to every callback-bearing entity whose
// callback id is in range and non-nil. It returns how many were bound.
func AssignCallbacks(entities []Entity, callbacks []func()) int {
	bound := 0
	for _, e := range entities {
		cb, ok := AsCallbacker(e)
		if !ok {
			continue
		}
		id := cb.CallbackID()
		if id < 0 || id >= len(callbacks) || callbacks[id] == nil {
			continue
		}
		cb.SetCallback(callbacks[id])
		bound++
	}
	return bound
}
