package filter

import "iter"

// WhereIf filters source with predicate only if condition is true.
// Otherwise source is returned as is, without wrapping.
func WhereIf[T any](source iter.Seq[T], condition bool, predicate func(T) bool) iter.Seq[T] {
	if !condition {
		return source
	}
	return Where(source, predicate)
}

// TakeIf limits source to its first n elements only if condition is true.
func TakeIf[T any](source iter.Seq[T], condition bool, n int) iter.Seq[T] {
	if !condition {
		return source
	}
	return Take(source, n)
}

// SkipIf bypasses the first n elements of source only if condition is true.
func SkipIf[T any](source iter.Seq[T], condition bool, n int) iter.Seq[T] {
	if !condition {
		return source
	}
	return Skip(source, n)
}
