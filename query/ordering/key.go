package ordering

import (
	"cmp"
	"iter"
	"strings"

	"github.com/lguimbarda/min-query/query/core"
)

type keyKind int

const (
	keyNone keyKind = iota
	keyProperty
	keyFunc
)

// Key is either a property named at runtime or a typed comparison.
// The zero Key is invalid.
type Key[T any] struct {
	kind    keyKind
	name    string
	compare func(a, b T) int
}

// Property returns a key that resolves name on T when the ordering is built.
func Property[T any](name string) Key[T] {
	return Key[T]{kind: keyProperty, name: name}
}

// Selector returns a key ordering by the value selector returns.
func Selector[T any, K cmp.Ordered](selector func(T) K) Key[T] {
	return Key[T]{kind: keyFunc, compare: keyCompare(selector)}
}

// Compare returns a key ordering by compare.
func Compare[T any](compare func(a, b T) int) Key[T] {
	return Key[T]{kind: keyFunc, compare: compare}
}

// Property reports the property name of a named key.
func (k Key[T]) Property() (string, bool) {
	return k.name, k.kind == keyProperty
}

func (k Key[T]) String() string {
	switch k.kind {
	case keyProperty:
		return k.name
	case keyFunc:
		return "<selector>"
	}
	return "<invalid>"
}

// resolve turns the key into a directed comparison.
func (k Key[T]) resolve(direction core.Direction, cfg core.Config) (core.SortKey, func(a, b T) int, error) {
	switch k.kind {
	case keyProperty:
		acc, err := resolve[T](k.name, cfg)
		if err != nil {
			cfg.Rejected(typeName[T](), k.name, err)
			return core.SortKey{}, nil, err
		}
		cfg.Resolved(acc.typ.String(), k.name)
		return core.SortKey{Property: k.name, Direction: direction}, directed(acc.Compare, direction), nil
	case keyFunc:
		if k.compare == nil {
			return core.SortKey{}, nil, core.NilArgument("key")
		}
		return core.SortKey{Direction: direction}, directed(k.compare, direction), nil
	}
	return core.SortKey{}, nil, core.InvalidArgument("key", "zero key")
}

// Directive pairs a key with a direction.
type Directive[T any] struct {
	Key       Key[T]
	Direction core.Direction
}

// Asc returns an ascending directive for key.
func Asc[T any](key Key[T]) Directive[T] {
	return Directive[T]{Key: key, Direction: core.Ascending}
}

// Desc returns a descending directive for key.
func Desc[T any](key Key[T]) Directive[T] {
	return Directive[T]{Key: key, Direction: core.Descending}
}

func (d Directive[T]) String() string {
	return d.Key.String() + " " + d.Direction.String()
}

// Sort orders source by directives, the first being the primary key.
func Sort[T any](source iter.Seq[T], directives []Directive[T], opts ...core.Option) (*core.Ordered[T], error) {
	if source == nil {
		return nil, core.NilArgument("source")
	}
	if len(directives) == 0 {
		return nil, core.InvalidArgument("directives", "at least one directive is required")
	}
	cfg := core.ApplyOptions(opts...)

	var ordered *core.Ordered[T]
	for _, d := range directives {
		key, compare, err := d.Key.resolve(d.Direction, cfg)
		if err != nil {
			return nil, err
		}
		if ordered == nil {
			ordered, err = core.NewOrdered(source, key, compare)
		} else {
			ordered, err = ordered.Then(key, compare)
		}
		if err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// ParseSort parses a sort expression of comma-separated terms. Each term is
// "name", "+name" or "name asc" for ascending and "-name" or "name desc" for
// descending. Names are not resolved until the directives are used.
//
//	ParseSort[User]("-created_at, name")
func ParseSort[T any](text string) ([]Directive[T], error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.InvalidArgument("sort", "no sort terms")
	}

	var directives []Directive[T]
	for _, term := range strings.Split(text, ",") {
		d, err := parseTerm[T](strings.TrimSpace(term))
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

func parseTerm[T any](term string) (Directive[T], error) {
	direction, name, signed := core.Ascending, term, false
	switch {
	case strings.HasPrefix(name, "-"):
		direction, name, signed = core.Descending, name[1:], true
	case strings.HasPrefix(name, "+"):
		name, signed = name[1:], true
	}

	fields := strings.Fields(name)
	switch {
	case len(fields) == 1:
	case len(fields) == 2 && !signed:
		d, err := core.ParseDirection(fields[1])
		if err != nil {
			return Directive[T]{}, err
		}
		direction = d
	default:
		return Directive[T]{}, core.InvalidArgument("sort", "malformed sort term %q", term)
	}
	return Directive[T]{Key: Property[T](fields[0]), Direction: direction}, nil
}
