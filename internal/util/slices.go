package util

import "golang.org/x/exp/slices"

// FindFunc returns the first element of s for which f returns true.
func FindFunc[E any](s []E, f func(E) bool) (e E, ok bool) {
	for _, e := range s {
		if f(e) {
			return e, true
		}
	}
	return e, false
}

// Remove removes every occurrence of v from s, returning the modified
// slice.
func Remove[S ~[]E, E comparable](s S, v E) S {
	return slices.DeleteFunc(s, func(e E) bool { return e == v })
}
