// Package transform provides sequence operators that reshape or observe the
// elements of an iter.Seq without filtering them.
package transform

import (
	"iter"

	"github.com/lguimbarda/min-query/query/core"
)

// ForEach returns a sequence that calls action on each element of source as
// it is consumed and then yields the element unchanged. Nothing runs until
// the returned sequence is enumerated.
func ForEach[T any](source iter.Seq[T], action func(T)) (iter.Seq[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if action == nil {
		return nil, core.NilArgument("action")
	}
	return func(yield func(T) bool) {
		for v := range source {
			action(v)
			if !yield(v) {
				return
			}
		}
	}, nil
}

// ForEachIndexed is ForEach with the zero-based position of each element.
// The index restarts at zero on every enumeration.
func ForEachIndexed[T any](source iter.Seq[T], action func(T, int)) (iter.Seq[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if action == nil {
		return nil, core.NilArgument("action")
	}
	return func(yield func(T) bool) {
		index := 0
		for v := range source {
			action(v, index)
			index++
			if !yield(v) {
				return
			}
		}
	}, nil
}

// Flatten returns a depth-first, pre-order sequence of every element of
// source and every element reachable from it through children.
//
// keep, if non-nil, is applied at every level before descending: a rejected
// element is not yielded and its children are not visited. children, if
// nil, treats an element that is itself an iter.Seq[T] or []T as its own
// children. A nil child sequence marks a leaf.
//
// Unlike the other operators a nil source is not an error; it yields
// nothing.
func Flatten[T any](source iter.Seq[T], keep func(T) bool, children func(T) iter.Seq[T]) iter.Seq[T] {
	if children == nil {
		children = nestedSeq[T]
	}
	return func(yield func(T) bool) {
		flatten(source, keep, children, yield)
	}
}

// flatten reports false once yield has asked to stop.
func flatten[T any](source iter.Seq[T], keep func(T) bool, children func(T) iter.Seq[T], yield func(T) bool) bool {
	if source == nil {
		return true
	}
	for node := range source {
		if keep != nil && !keep(node) {
			continue
		}
		if !yield(node) {
			return false
		}
		if !flatten(children(node), keep, children, yield) {
			return false
		}
	}
	return true
}

func nestedSeq[T any](node T) iter.Seq[T] {
	switch v := any(node).(type) {
	case iter.Seq[T]:
		return v
	case []T:
		if v == nil {
			return nil
		}
		return func(yield func(T) bool) {
			for _, item := range v {
				if !yield(item) {
					return
				}
			}
		}
	}
	return nil
}
