// Package aggregate provides operators that consume a whole sequence and
// reduce it to a summary value.
package aggregate

import (
	"iter"

	"github.com/lguimbarda/min-query/query/core"
)

// HasDuplicates reports whether any element of source occurs more than once.
// Enumeration stops at the first repeated element.
func HasDuplicates[T comparable](source iter.Seq[T]) (bool, error) {
	if source == nil {
		return false, core.NilArgument("source")
	}
	return HasDuplicatesBy(source, func(v T) T { return v })
}

// HasDuplicatesBy reports whether two elements of source share a key.
// Enumeration stops at the first repeated key.
func HasDuplicatesBy[T any, K comparable](source iter.Seq[T], key func(T) K) (bool, error) {
	if source == nil {
		return false, core.NilArgument("source")
	}
	if key == nil {
		return false, core.NilArgument("key")
	}
	seen := make(map[K]struct{})
	for v := range source {
		k := key(v)
		if _, ok := seen[k]; ok {
			return true, nil
		}
		seen[k] = struct{}{}
	}
	return false, nil
}

// Group is the set of elements sharing a key, in source order.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy groups the elements of source by key. Groups are returned in the
// order their key was first seen.
func GroupBy[T any, K comparable](source iter.Seq[T], key func(T) K) ([]Group[K, T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	var groups []Group[K, T]
	index := make(map[K]int)
	for v := range source {
		k := key(v)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, v)
	}
	return groups, nil
}

// CountBy counts the elements of source per key.
func CountBy[T any, K comparable](source iter.Seq[T], key func(T) K) (map[K]int, error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	counts := make(map[K]int)
	for v := range source {
		counts[key(v)]++
	}
	return counts, nil
}
