package filter

import (
	"iter"

	"github.com/lguimbarda/min-query/query/core"
)

// DistinctBy returns a sequence of the elements of source whose key has not
// been seen before. The first element for each key wins; later ones are
// dropped. Arguments are validated before the sequence is returned.
func DistinctBy[T any, K comparable](source iter.Seq[T], key func(T) K) (iter.Seq[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for v := range source {
			k := key(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// DistinctByEqual is DistinctBy with a custom key equality. Keys are kept
// in a list and compared linearly, so prefer DistinctBy when K is
// comparable.
func DistinctByEqual[T, K any](source iter.Seq[T], key func(T) K, equal func(a, b K) bool) (iter.Seq[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	if equal == nil {
		return nil, core.NilArgument("equal")
	}
	return func(yield func(T) bool) {
		var seen keyList[K]
		for v := range source {
			if !seen.add(key(v), equal) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// ExceptBy returns the elements of first whose key is not the key of any
// element of second. This is a set operation: each yielded key joins the
// exclusion set, so when several elements of first share a key only the
// first of them is returned.
//
// The keys of second are collected when enumeration starts; elements of
// first are streamed.
func ExceptBy[T any, K comparable](first, second iter.Seq[T], key func(T) K) (iter.Seq[T], error) {
	if first == nil {
		return nil, core.NilArgument("first")
	}
	if second == nil {
		return nil, core.NilArgument("second")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	return func(yield func(T) bool) {
		excluded := make(map[K]struct{})
		for v := range second {
			excluded[key(v)] = struct{}{}
		}
		for v := range first {
			k := key(v)
			if _, ok := excluded[k]; ok {
				continue
			}
			if !yield(v) {
				return
			}
			excluded[k] = struct{}{}
		}
	}, nil
}

// ExceptByEqual is ExceptBy with a custom key equality.
func ExceptByEqual[T, K any](first, second iter.Seq[T], key func(T) K, equal func(a, b K) bool) (iter.Seq[T], error) {
	if first == nil {
		return nil, core.NilArgument("first")
	}
	if second == nil {
		return nil, core.NilArgument("second")
	}
	if key == nil {
		return nil, core.NilArgument("key")
	}
	if equal == nil {
		return nil, core.NilArgument("equal")
	}
	return func(yield func(T) bool) {
		var excluded keyList[K]
		for v := range second {
			excluded.add(key(v), equal)
		}
		for v := range first {
			k := key(v)
			if excluded.contains(k, equal) {
				continue
			}
			if !yield(v) {
				return
			}
			excluded = append(excluded, k)
		}
	}, nil
}

// keyList is a set of keys for types without built-in equality.
type keyList[K any] []K

func (l keyList[K]) contains(k K, equal func(a, b K) bool) bool {
	for _, existing := range l {
		if equal(existing, k) {
			return true
		}
	}
	return false
}

// add appends k unless an equal key is present and reports whether it did.
func (l *keyList[K]) add(k K, equal func(a, b K) bool) bool {
	if l.contains(k, equal) {
		return false
	}
	*l = append(*l, k)
	return true
}
