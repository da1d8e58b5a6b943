// Package query provides sequence helpers and runtime property ordering
// over Go's iter.Seq.
//
// This package is the primary user-facing API. Most users should only
// need to import this package. The subpackages hold the individual
// operations and the query/sql and query/observe adapters.
package query

import (
	"cmp"
	"iter"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/filter"
	"github.com/lguimbarda/min-query/query/ordering"
	"github.com/lguimbarda/min-query/query/page"
	"github.com/lguimbarda/min-query/query/transform"
)

// Type aliases for core abstractions.
// These allow users to work with the library without importing core directly.
type (
	// Direction is the direction of a sort key.
	Direction = core.Direction

	// SortKey describes one link of an ordering chain.
	SortKey = core.SortKey

	// Ordered is a sequence with a deferred, stable, multi-key ordering.
	Ordered[T any] = core.Ordered[T]

	// Option configures property resolution.
	Option = core.Option

	// Hooks observe property resolution.
	Hooks = core.Hooks

	// ArgumentError describes a rejected argument.
	ArgumentError = core.ArgumentError

	// Key is a named property or a typed comparison.
	Key[T any] = ordering.Key[T]

	// Directive pairs a Key with a Direction.
	Directive[T any] = ordering.Directive[T]

	// PageRequest identifies one page of an ordering.
	PageRequest = page.Request
)

// Sort directions.
const (
	Ascending  = core.Ascending
	Descending = core.Descending
)

// Errors matched with errors.Is.
var (
	ErrInvalidArgument  = core.ErrInvalidArgument
	ErrPropertyNotFound = ordering.ErrPropertyNotFound
	ErrNotOrderable     = ordering.ErrNotOrderable
)

// Options.

// WithFieldTag makes property names also match the named struct tag.
func WithFieldTag(tag string) Option {
	return core.WithFieldTag(tag)
}

// WithHooks attaches resolution hooks.
func WithHooks(hooks Hooks) Option {
	return core.WithHooks(hooks)
}

// Ordering.

// OrderBy sorts source ascending by the property called name.
func OrderBy[T any](source iter.Seq[T], name string, opts ...Option) (*Ordered[T], error) {
	return ordering.OrderByProperty(source, name, opts...)
}

// OrderByDescending sorts source descending by the property called name.
func OrderByDescending[T any](source iter.Seq[T], name string, opts ...Option) (*Ordered[T], error) {
	return ordering.OrderByPropertyDescending(source, name, opts...)
}

// OrderByOrDefault sorts by the property called name or, when it cannot be
// used, by fallback.
func OrderByOrDefault[T any, K cmp.Ordered](source iter.Seq[T], name string, fallback func(T) K, opts ...Option) (*Ordered[T], error) {
	return ordering.OrderByPropertyOrDefault(source, name, fallback, opts...)
}

// OrderByKey sorts source by key in the given direction.
func OrderByKey[T any, K cmp.Ordered](source iter.Seq[T], direction Direction, key func(T) K) (*Ordered[T], error) {
	return ordering.OrderByDirection(source, direction, key)
}

// ThenBy breaks ties of ordered by the property called name, ascending.
func ThenBy[T any](ordered *Ordered[T], name string, opts ...Option) (*Ordered[T], error) {
	return ordering.ThenByProperty(ordered, name, opts...)
}

// ThenByDescending breaks ties by the property called name, descending.
func ThenByDescending[T any](ordered *Ordered[T], name string, opts ...Option) (*Ordered[T], error) {
	return ordering.ThenByPropertyDescending(ordered, name, opts...)
}

// Sort orders source by directives.
func Sort[T any](source iter.Seq[T], directives []Directive[T], opts ...Option) (*Ordered[T], error) {
	return ordering.Sort(source, directives, opts...)
}

// SortBy parses text with ParseSort and orders source by the result.
func SortBy[T any](source iter.Seq[T], text string, opts ...Option) (*Ordered[T], error) {
	directives, err := ordering.ParseSort[T](text)
	if err != nil {
		return nil, err
	}
	return ordering.Sort(source, directives, opts...)
}

// ParseSort parses an API-style sort expression such as "-created,name".
func ParseSort[T any](text string) ([]Directive[T], error) {
	return ordering.ParseSort[T](text)
}

// Page returns page number of ordered, each holding size elements.
func Page[T any](ordered *Ordered[T], number, size int) (iter.Seq[T], error) {
	return page.Slice(ordered, number, size)
}

// Filtering.

// Where keeps the elements of source that satisfy predicate.
func Where[T any](source iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	return filter.Where(source, predicate)
}

// WhereIf filters source only if condition is true.
func WhereIf[T any](source iter.Seq[T], condition bool, predicate func(T) bool) iter.Seq[T] {
	return filter.WhereIf(source, condition, predicate)
}

// TakeIf limits source to n elements only if condition is true.
func TakeIf[T any](source iter.Seq[T], condition bool, n int) iter.Seq[T] {
	return filter.TakeIf(source, condition, n)
}

// SkipIf skips n elements of source only if condition is true.
func SkipIf[T any](source iter.Seq[T], condition bool, n int) iter.Seq[T] {
	return filter.SkipIf(source, condition, n)
}

// DistinctBy keeps the first element for each key.
func DistinctBy[T any, K comparable](source iter.Seq[T], key func(T) K) (iter.Seq[T], error) {
	return filter.DistinctBy(source, key)
}

// ExceptBy yields the elements of first whose key is not in second.
func ExceptBy[T any, K comparable](first, second iter.Seq[T], key func(T) K) (iter.Seq[T], error) {
	return filter.ExceptBy(first, second, key)
}

// Transformation.

// Flatten walks nested sequences depth first.
func Flatten[T any](source iter.Seq[T], keep func(T) bool, children func(T) iter.Seq[T]) iter.Seq[T] {
	return transform.Flatten(source, keep, children)
}

// ForEach calls action for every element as it is consumed.
func ForEach[T any](source iter.Seq[T], action func(T)) (iter.Seq[T], error) {
	return transform.ForEach(source, action)
}
