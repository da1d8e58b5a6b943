// Package page cuts ordered sequences into fixed-size pages.
package page

import (
	"iter"
	"math"
	"net/url"
	"strconv"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/filter"
)

// Query parameter names read by FromValues.
const (
	ParamPage = "page"
	ParamSize = "size"
)

// Request identifies one page. Number is 1-based. Size 0 means the page is
// unbounded, which is only meaningful for the first page.
type Request struct {
	Number int
	Size   int
}

// Validate checks the page number and size combination.
func (r Request) Validate() error {
	switch {
	case r.Number < 1:
		return core.InvalidArgument("page", "page must be positive")
	case r.Size < 0:
		return core.InvalidArgument("size", "size must not be negative")
	case r.Size == 0 && r.Number > 1:
		return core.InvalidArgument("size", "size 0 is only valid with page 1")
	case r.Size > 0 && r.Number-1 > math.MaxInt/r.Size:
		return core.InvalidArgument("page", "page %d of size %d is out of range", r.Number, r.Size)
	}
	return nil
}

// Offset returns the number of elements before the page.
func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

// Limit returns the maximum number of elements on the page, 0 for no limit.
func (r Request) Limit() int {
	return r.Size
}

// FromValues reads a request from URL query values. A missing page is 1 and
// a missing size is 0. The result is validated.
func FromValues(values url.Values) (Request, error) {
	r := Request{Number: 1}
	if s := values.Get(ParamPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Request{}, core.InvalidArgument("page", "page %q is not a number", s)
		}
		r.Number = n
	}
	if s := values.Get(ParamSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Request{}, core.InvalidArgument("size", "size %q is not a number", s)
		}
		r.Size = n
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// Slice returns page number of ordered, each page holding size elements.
// With size 0 the only valid page is 1, which holds everything.
//
// Example:
//
//	ordered, _ := ordering.OrderByProperty(slices.Values(users), "Name")
//	second, err := page.Slice(ordered, 2, 20)
func Slice[T any](ordered *core.Ordered[T], number, size int) (iter.Seq[T], error) {
	return Apply(ordered, Request{Number: number, Size: size})
}

// Apply is Slice with the page described by r.
func Apply[T any](ordered *core.Ordered[T], r Request) (iter.Seq[T], error) {
	if ordered == nil {
		return nil, core.NilArgument("source")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	seq := filter.Skip(ordered.All(), r.Offset())
	return filter.TakeIf(seq, r.Size > 0, r.Limit()), nil
}
