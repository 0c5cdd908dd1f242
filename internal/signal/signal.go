// Package signal provides typed notification points in the style of
// wl_signal.
package signal

import (
	"deedles.dev/notch/internal/util"
	"golang.org/x/exp/slices"
)

// Signal is a list of functions that are called, in the order that
// they were added, when the signal is emitted. The zero value is ready
// to use.
type Signal[T any] struct {
	slots []*slot[T]
}

type slot[T any] struct {
	f       func(T)
	removed bool
}

// Listener is a handle to a function added to a Signal.
type Listener struct {
	destroy func()
}

// Destroy removes the function from the signal that it was added to.
// It is safe to call more than once and from inside of the function
// itself.
func (l Listener) Destroy() {
	if l.destroy != nil {
		l.destroy()
	}
}

// Add adds f to the signal.
func (s *Signal[T]) Add(f func(T)) Listener {
	sl := &slot[T]{f: f}
	s.slots = append(s.slots, sl)

	return Listener{
		destroy: func() {
			if sl.removed {
				return
			}
			sl.removed = true
			s.slots = util.Remove(s.slots, sl)
		},
	}
}

// Emit calls every function currently attached to s with v. Functions
// removed during emission are not called if they haven't been yet, and
// functions added during emission are not called until the next one.
func (s *Signal[T]) Emit(v T) {
	for _, sl := range slices.Clone(s.slots) {
		if !sl.removed {
			sl.f(v)
		}
	}
}

// Len returns the number of functions attached to s.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}
