// Package ordering sorts sequences by properties named at runtime.
//
// A property name is resolved once, when the ordering is built, against the
// static element type: exported struct fields (including promoted ones),
// niladic single-result methods and, with core.WithFieldTag, struct tag
// values. Matching is exact and case-sensitive. Sorting itself is deferred
// to enumeration of the returned *core.Ordered and is stable in both
// directions.
package ordering

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/expr"
)

var (
	// ErrPropertyNotFound is wrapped when the element type has no member
	// with the requested name.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrNotOrderable is wrapped when the member exists but its type has no
	// natural order.
	ErrNotOrderable = errors.New("property is not orderable")
)

// Accessor reads and compares one named property of T.
type Accessor[T any] struct {
	name    string
	typ     reflect.Type
	member  *expr.MemberInfo
	compare func(a, b reflect.Value) int
	lambda  *expr.LambdaExpr
}

// Resolve looks up name on T and returns an accessor for it. Failures wrap
// core.ErrInvalidArgument and either ErrPropertyNotFound or ErrNotOrderable.
func Resolve[T any](name string, opts ...core.Option) (*Accessor[T], error) {
	cfg := core.ApplyOptions(opts...)
	acc, err := resolve[T](name, cfg)
	if err != nil {
		cfg.Rejected(typeName[T](), name, err)
		return nil, err
	}
	cfg.Resolved(acc.typ.String(), name)
	return acc, nil
}

// resolve does not report to hooks; callers decide whether a failure is a
// rejection or a fallback.
func resolve[T any](name string, cfg core.Config) (*Accessor[T], error) {
	typ := reflect.TypeFor[T]()
	member, ok := expr.LookupMember(typ, name, cfg.FieldTag)
	if !ok {
		return nil, &core.ArgumentError{
			Name:   "property",
			Reason: fmt.Sprintf("type %s has no property %q", typ, name),
			Cause:  ErrPropertyNotFound,
		}
	}
	compare, ok := comparerFor(member.Type)
	if !ok {
		return nil, &core.ArgumentError{
			Name:   "property",
			Reason: fmt.Sprintf("property %q of type %s has unorderable type %s", name, typ, member.Type),
			Cause:  ErrNotOrderable,
		}
	}

	param := &expr.ParamExpr{Name: "x", Type: typ}
	var body expr.Node = &expr.MemberExpr{Target: param, Member: member.Name}
	if member.IsMethod() {
		body = &expr.CallExpr{Object: param, Method: member.Name}
	}
	return &Accessor[T]{
		name:    name,
		typ:     typ,
		member:  member,
		compare: compare,
		lambda:  &expr.LambdaExpr{Params: []*expr.ParamExpr{param}, Body: body},
	}, nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// Name returns the property name the accessor was resolved from.
func (a *Accessor[T]) Name() string { return a.name }

// Member returns the resolved field or method.
func (a *Accessor[T]) Member() *expr.MemberInfo { return a.member }

// Lambda returns the expression x => x.<Member> the accessor evaluates.
func (a *Accessor[T]) Lambda() *expr.LambdaExpr { return a.lambda }

// Value reads the property from v. It reports false when a nil pointer or
// nil interface prevents the read.
func (a *Accessor[T]) Value(v T) (any, bool) {
	rv, ok := a.get(v)
	if !ok {
		return nil, false
	}
	return rv.Interface(), true
}

func (a *Accessor[T]) get(v T) (reflect.Value, bool) {
	// Going through a pointer keeps the static type of T, so interface
	// method indexes stay valid.
	return a.member.Get(reflect.ValueOf(&v).Elem())
}

// Compare orders x and y by the property. Elements whose value cannot be
// read sort before all others.
func (a *Accessor[T]) Compare(x, y T) int {
	vx, okx := a.get(x)
	vy, oky := a.get(y)
	switch {
	case !okx && !oky:
		return 0
	case !okx:
		return -1
	case !oky:
		return 1
	}
	return a.compare(vx, vy)
}

var intType = reflect.TypeFor[int]()

// comparerFor returns the natural order of values of type t.
func comparerFor(t reflect.Type) (func(a, b reflect.Value) int, bool) {
	if c, ok := compareMethod(t); ok {
		if t.Kind() == reflect.Pointer {
			return nilFirst(c), true
		}
		return c, true
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }, true
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }, true
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }, true
	case reflect.Bool:
		return func(a, b reflect.Value) int { return compareBool(a.Bool(), b.Bool()) }, true
	case reflect.Pointer:
		elem, ok := comparerFor(t.Elem())
		if !ok {
			return nil, false
		}
		return nilFirst(func(a, b reflect.Value) int { return elem(a.Elem(), b.Elem()) }), true
	}
	return nil, false
}

// compareMethod finds a method Compare(t) int on t, as time.Time has.
func compareMethod(t reflect.Type) (func(a, b reflect.Value) int, bool) {
	m, ok := t.MethodByName("Compare")
	if !ok || t.Kind() == reflect.Interface {
		return nil, false
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.In(1) != t || mt.NumOut() != 1 || mt.Out(0) != intType {
		return nil, false
	}
	index := m.Index
	return func(a, b reflect.Value) int {
		return int(a.Method(index).Call([]reflect.Value{b})[0].Int())
	}, true
}

func nilFirst(c func(a, b reflect.Value) int) func(a, b reflect.Value) int {
	return func(a, b reflect.Value) int {
		switch an, bn := a.IsNil(), b.IsNil(); {
		case an && bn:
			return 0
		case an:
			return -1
		case bn:
			return 1
		}
		return c(a, b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
