// Package core defines the core abstractions shared by the query packages:
// sort directions, ordered sequences, argument errors and the options and
// hooks that configure the ordering engine.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other query packages.
package core

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Direction is the direction of a sort key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, InvalidArgument("direction", "unknown sort direction %q", s)
}

// Apply orients a comparison result for this direction.
func (d Direction) Apply(c int) int {
	if d == Descending {
		return -c
	}
	return c
}

// SortKey describes one link of an ordering chain. Property is empty when
// the key came from a selector function rather than a named property.
type SortKey struct {
	Property  string
	Direction Direction
}

func (k SortKey) String() string {
	name := k.Property
	if name == "" {
		name = "<selector>"
	}
	return name + " " + k.Direction.String()
}

type orderKey[T any] struct {
	SortKey
	compare func(a, b T) int
}

// Ordered is a sequence together with a chain of sort keys. The first key
// is the primary order; each later key only breaks ties left by the keys
// before it. Sorting happens when the sequence is enumerated and is stable,
// so elements that compare equal on every key keep their input order.
//
// Ordered values are immutable: Then returns a new chain and leaves the
// receiver untouched.
type Ordered[T any] struct {
	source iter.Seq[T]
	keys   []orderKey[T]
}

// NewOrdered starts an ordering chain over source. compare must already
// account for direction; key only describes it.
func NewOrdered[T any](source iter.Seq[T], key SortKey, compare func(a, b T) int) (*Ordered[T], error) {
	if source == nil {
		return nil, NilArgument("source")
	}
	if compare == nil {
		return nil, NilArgument("compare")
	}
	return &Ordered[T]{
		source: source,
		keys:   []orderKey[T]{{SortKey: key, compare: compare}},
	}, nil
}

// Then appends a tie-breaking key.
func (o *Ordered[T]) Then(key SortKey, compare func(a, b T) int) (*Ordered[T], error) {
	if o == nil {
		return nil, NilArgument("source")
	}
	if compare == nil {
		return nil, NilArgument("compare")
	}
	keys := make([]orderKey[T], len(o.keys), len(o.keys)+1)
	copy(keys, o.keys)
	return &Ordered[T]{
		source: o.source,
		keys:   append(keys, orderKey[T]{SortKey: key, compare: compare}),
	}, nil
}

// Keys returns the descriptors of the chain, primary key first.
func (o *Ordered[T]) Keys() []SortKey {
	if o == nil {
		return nil
	}
	out := make([]SortKey, len(o.keys))
	for i, k := range o.keys {
		out[i] = k.SortKey
	}
	return out
}

// Compare compares two elements using the full chain.
func (o *Ordered[T]) Compare(a, b T) int {
	for _, k := range o.keys {
		if c := k.compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// All sorts the source and returns an iterator over the result. The source
// is enumerated once per call of the returned iterator.
func (o *Ordered[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o == nil {
			return
		}
		items := slices.Collect(o.source)
		slices.SortStableFunc(items, o.Compare)
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}
