package filter

import "iter"

// Take returns a sequence of the first n elements of source.
// Enumeration of source stops as soon as n elements have been yielded.
// If n <= 0, the sequence is empty and source is never enumerated.
func Take[T any](source iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if source == nil || n <= 0 {
			return
		}
		count := 0
		for v := range source {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}

// Skip returns a sequence that bypasses the first n elements of source,
// then yields the rest. If n <= 0, all elements are yielded.
func Skip[T any](source iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if source == nil {
			return
		}
		skipped := 0
		for v := range source {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
