// Package notify is a synchronous listener registry.
package notify

// List holds change listeners. The zero value is ready to use.
// Listeners are called in registration order on the caller's goroutine and
// must not re-enter the object that fired them.
type List struct {
	next int
	subs []sub
}

type sub struct {
	id int
	fn func()
}

// Add registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (l *List) Add(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	l.next++
	id := l.next
	l.subs = append(l.subs, sub{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered listeners.
func (l *List) Len() int { return len(l.subs) }

// Fire calls every listener once.
func (l *List) Fire() {
	for _, s := range l.subs {
		s.fn()
	}
}
