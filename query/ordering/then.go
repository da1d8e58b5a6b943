package ordering

import (
	"cmp"

	"github.com/lguimbarda/min-query/query/core"
)

// ThenByProperty breaks ties left by ordered with the property called name,
// ascending.
func ThenByProperty[T any](ordered *core.Ordered[T], name string, opts ...core.Option) (*core.Ordered[T], error) {
	return thenByProperty(ordered, name, core.Ascending, opts)
}

// ThenByPropertyDescending breaks ties with the property called name,
// descending.
func ThenByPropertyDescending[T any](ordered *core.Ordered[T], name string, opts ...core.Option) (*core.Ordered[T], error) {
	return thenByProperty(ordered, name, core.Descending, opts)
}

// ThenByPropertyOrDefault breaks ties with the property called name, or
// with fallback when the property cannot be used.
func ThenByPropertyOrDefault[T any, K cmp.Ordered](ordered *core.Ordered[T], name string, fallback func(T) K, opts ...core.Option) (*core.Ordered[T], error) {
	return thenByPropertyOrDefault(ordered, name, keyCompare(fallback), core.Ascending, opts)
}

// ThenByPropertyOrDefaultDescending is ThenByPropertyOrDefault in
// descending order.
func ThenByPropertyOrDefaultDescending[T any, K cmp.Ordered](ordered *core.Ordered[T], name string, fallback func(T) K, opts ...core.Option) (*core.Ordered[T], error) {
	return thenByPropertyOrDefault(ordered, name, keyCompare(fallback), core.Descending, opts)
}

// ThenByDirection breaks ties with key in the given direction.
func ThenByDirection[T any, K cmp.Ordered](ordered *core.Ordered[T], direction core.Direction, key func(T) K) (*core.Ordered[T], error) {
	if key == nil {
		return nil, core.NilArgument("key")
	}
	return ThenByFuncDirection(ordered, direction, keyCompare(key))
}

// ThenByFuncDirection breaks ties with compare in the given direction.
func ThenByFuncDirection[T any](ordered *core.Ordered[T], direction core.Direction, compare func(a, b T) int) (*core.Ordered[T], error) {
	if ordered == nil {
		return nil, core.NilArgument("source")
	}
	if compare == nil {
		return nil, core.NilArgument("compare")
	}
	return ordered.Then(core.SortKey{Direction: direction}, directed(compare, direction))
}

func thenByProperty[T any](ordered *core.Ordered[T], name string, direction core.Direction, opts []core.Option) (*core.Ordered[T], error) {
	if ordered == nil {
		return nil, core.NilArgument("source")
	}
	acc, err := Resolve[T](name, opts...)
	if err != nil {
		return nil, err
	}
	return ordered.Then(core.SortKey{Property: name, Direction: direction}, directed(acc.Compare, direction))
}

func thenByPropertyOrDefault[T any](ordered *core.Ordered[T], name string, fallback func(a, b T) int, direction core.Direction, opts []core.Option) (*core.Ordered[T], error) {
	if ordered == nil {
		return nil, core.NilArgument("source")
	}
	key, compare, err := resolveOrDefault[T](name, fallback, direction, opts)
	if err != nil {
		return nil, err
	}
	return ordered.Then(key, compare)
}
