// Package interaction holds the client-side state machines of the site:
// scroll-reactive chrome, the overlay navigation menu, the services accordion
// and the contact form composer. Each value is owned by one session and is
// not safe for concurrent use; callers serialize events.
package interaction

// observers is an ordered listener list. Listeners run synchronously, in
// subscription order, on the goroutine that performed the transition.
type observers[T any] struct {
	next  int
	items []observer[T]
}

type observer[T any] struct {
	id int
	fn func(T)
}

func (o *observers[T]) subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	o.next++
	id := o.next
	o.items = append(o.items, observer[T]{id: id, fn: fn})
	return func() { o.remove(id) }
}

func (o *observers[T]) remove(id int) {
	for i, it := range o.items {
		if it.id == id {
			o.items = append(o.items[:i:i], o.items[i+1:]...)
			return
		}
	}
}

func (o *observers[T]) notify(v T) {
	// Snapshot so a listener can unsubscribe itself mid-notify.
	items := append([]observer[T](nil), o.items...)
	for _, it := range items {
		it.fn(v)
	}
}

func (o *observers[T]) len() int { return len(o.items) }
