// Package filter provides sequence operators that decide which elements of
// an iter.Seq pass through: predicates, limits, conditional composition and
// key-based set operations.
package filter

import "iter"

// Where returns a sequence of the elements of source matching predicate.
// A nil predicate keeps every element. A nil source yields nothing.
func Where[T any](source iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		if source == nil {
			return
		}
		for v := range source {
			if predicate != nil && !predicate(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Exclude returns a sequence of the elements of source not matching predicate.
// This is the inverse of Where.
func Exclude[T any](source iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	if predicate == nil {
		return Where(source, nil)
	}
	return Where(source, func(v T) bool { return !predicate(v) })
}
