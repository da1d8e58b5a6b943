package ordering

import (
	"cmp"
	"iter"

	"github.com/lguimbarda/min-query/query/core"
)

// OrderByProperty sorts source ascending by the property called name.
//
// Example:
//
//	ordered, err := ordering.OrderByProperty(slices.Values(users), "CreatedAt")
//	if err != nil {
//		return err
//	}
//	for u := range ordered.All() {
//		...
//	}
func OrderByProperty[T any](source iter.Seq[T], name string, opts ...core.Option) (*core.Ordered[T], error) {
	return orderByProperty(source, name, core.Ascending, opts)
}

// OrderByPropertyDescending sorts source descending by the property called name.
func OrderByPropertyDescending[T any](source iter.Seq[T], name string, opts ...core.Option) (*core.Ordered[T], error) {
	return orderByProperty(source, name, core.Descending, opts)
}

// OrderByPropertyOrDefault sorts source ascending by the property called
// name, or by fallback when the property cannot be used. It fails only when
// the property cannot be used and fallback is nil.
func OrderByPropertyOrDefault[T any, K cmp.Ordered](source iter.Seq[T], name string, fallback func(T) K, opts ...core.Option) (*core.Ordered[T], error) {
	return orderByPropertyOrDefault(source, name, keyCompare(fallback), core.Ascending, opts)
}

// OrderByPropertyOrDefaultDescending is OrderByPropertyOrDefault in
// descending order.
func OrderByPropertyOrDefaultDescending[T any, K cmp.Ordered](source iter.Seq[T], name string, fallback func(T) K, opts ...core.Option) (*core.Ordered[T], error) {
	return orderByPropertyOrDefault(source, name, keyCompare(fallback), core.Descending, opts)
}

// OrderByDirection sorts source by key in the given direction.
func OrderByDirection[T any, K cmp.Ordered](source iter.Seq[T], direction core.Direction, key func(T) K) (*core.Ordered[T], error) {
	if key == nil {
		return nil, core.NilArgument("key")
	}
	return OrderByFuncDirection(source, direction, keyCompare(key))
}

// OrderByFuncDirection sorts source by compare in the given direction.
func OrderByFuncDirection[T any](source iter.Seq[T], direction core.Direction, compare func(a, b T) int) (*core.Ordered[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if compare == nil {
		return nil, core.NilArgument("compare")
	}
	return core.NewOrdered(source, core.SortKey{Direction: direction}, directed(compare, direction))
}

func orderByProperty[T any](source iter.Seq[T], name string, direction core.Direction, opts []core.Option) (*core.Ordered[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	acc, err := Resolve[T](name, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewOrdered(source, core.SortKey{Property: name, Direction: direction}, directed(acc.Compare, direction))
}

func orderByPropertyOrDefault[T any](source iter.Seq[T], name string, fallback func(a, b T) int, direction core.Direction, opts []core.Option) (*core.Ordered[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	key, compare, err := resolveOrDefault[T](name, fallback, direction, opts)
	if err != nil {
		return nil, err
	}
	return core.NewOrdered(source, key, compare)
}

// resolveOrDefault returns the directed comparison for name, falling back
// to the fallback comparison when name cannot be used.
func resolveOrDefault[T any](name string, fallback func(a, b T) int, direction core.Direction, opts []core.Option) (core.SortKey, func(a, b T) int, error) {
	cfg := core.ApplyOptions(opts...)
	acc, err := resolve[T](name, cfg)
	if err == nil {
		cfg.Resolved(acc.typ.String(), name)
		return core.SortKey{Property: name, Direction: direction}, directed(acc.Compare, direction), nil
	}
	if fallback == nil {
		cfg.Rejected(typeName[T](), name, err)
		return core.SortKey{}, nil, err
	}
	cfg.Fallback(typeName[T](), name, err)
	return core.SortKey{Direction: direction}, directed(fallback, direction), nil
}

func keyCompare[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	if key == nil {
		return nil
	}
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

func directed[T any](compare func(a, b T) int, direction core.Direction) func(a, b T) int {
	if direction == core.Ascending {
		return compare
	}
	return func(a, b T) int { return direction.Apply(compare(a, b)) }
}
