package scroll

// listeners is a subscription list that fires in registration order.
type listeners[T any] struct {
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns a function that removes it.
func (l *listeners[T]) add(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// fire calls every listener registered at the time of the call. Listeners
// may subscribe or unsubscribe while firing.
func (l *listeners[T]) fire(r *Region, event string, v T) {
	if len(l.subs) == 0 {
		return
	}
	subs := make([]subscription[T], len(l.subs))
	copy(subs, l.subs)
	for _, s := range subs {
		r.safely(event, -1, func() { s.fn(v) })
	}
}
