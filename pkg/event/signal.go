// Package event provides typed change notifications.
//
// Each logical event (data updated, colors updated, margin updated, ...) is
// its own [Signal], so subscribers only hear about the concern they asked
// for and never depend on the ordering of a generic "anything changed"
// notification.
//
// Signals are not safe for concurrent use. They are owned by a single
// component that emits on its own goroutine.
package event

// Signal is a list of handlers for one kind of event carrying a T.
type Signal[T any] struct {
	handlers []*handler[T]
}

type handler[T any] struct {
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	h := &handler[T]{fn: fn}
	s.handlers = append(s.handlers, h)
	return func() {
		for i, cur := range s.handlers {
			if cur == h {
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler in subscription order. Handlers added or removed
// during Emit take effect on the next call.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]*handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len reports the number of subscribed handlers.
func (s *Signal[T]) Len() int { return len(s.handlers) }
