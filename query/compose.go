package query

import (
	"iter"
	"slices"
)

// Stage transforms a sequence into another sequence of the same type.
type Stage[T any] func(iter.Seq[T]) iter.Seq[T]

// FromSlice returns a sequence over items.
func FromSlice[T any](items []T) iter.Seq[T] {
	return slices.Values(items)
}

// FromPull adapts a pull-style iterator, such as the next function returned
// by iter.Pull, to a sequence. The sequence is single-use: it drains next,
// and a second enumeration yields only what next still produces. A nil next
// yields nothing.
func FromPull[T any](next func() (T, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		if next == nil {
			return
		}
		for {
			v, ok := next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Pipe applies stages to source from left to right.
// With no stages it returns source.
func Pipe[T any](source iter.Seq[T], stages ...Stage[T]) iter.Seq[T] {
	result := source
	for _, stage := range stages {
		if stage != nil {
			result = stage(result)
		}
	}
	return result
}

// Filtered is a Stage form of WhereIf.
func Filtered[T any](condition bool, predicate func(T) bool) Stage[T] {
	return func(source iter.Seq[T]) iter.Seq[T] {
		return WhereIf(source, condition, predicate)
	}
}

// Limited is a Stage form of TakeIf.
func Limited[T any](condition bool, n int) Stage[T] {
	return func(source iter.Seq[T]) iter.Seq[T] {
		return TakeIf(source, condition, n)
	}
}

// Skipped is a Stage form of SkipIf.
func Skipped[T any](condition bool, n int) Stage[T] {
	return func(source iter.Seq[T]) iter.Seq[T] {
		return SkipIf(source, condition, n)
	}
}
