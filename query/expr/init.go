package expr

import (
	"reflect"

	"github.com/lguimbarda/min-query/query/core"
)

// ---------- Construction ----------

// NewExpr represents constructing a value of Type from Args. Members, when
// set, names the field each argument initializes.
type NewExpr struct {
	Type    reflect.Type
	Args    []Node
	Members []string
}

func (*NewExpr) exprNode() {}

// Kind implements Node.
func (*NewExpr) Kind() Kind { return New }

// Deconstruct returns the constructed type, the arguments and the member names.
func (n *NewExpr) Deconstruct() (op Kind, typ reflect.Type, args []Node, members []string, err error) {
	if n == nil {
		return KindInvalid, nil, nil, nil, nilNode()
	}
	return New, n.Type, n.Args, n.Members, nil
}

// NewArrayExpr represents creating a slice, either from its elements
// (NewArrayInit) or from its bounds (NewArrayBounds).
type NewArrayExpr struct {
	Op    Kind
	Elem  reflect.Type
	Exprs []Node
}

func (*NewArrayExpr) exprNode() {}

// Kind implements Node.
func (n *NewArrayExpr) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.Op
}

// Deconstruct returns the operation and the element or bound expressions.
func (n *NewArrayExpr) Deconstruct() (op Kind, exprs []Node, err error) {
	if n == nil {
		return KindInvalid, nil, nilNode()
	}
	return n.Op, n.Exprs, nil
}

// ElementInit is one call of an add-style method during list initialization.
type ElementInit struct {
	Method string
	Args   []Node
}

// Deconstruct returns the arguments and the add method.
func (e *ElementInit) Deconstruct() (args []Node, method string, err error) {
	if e == nil {
		return nil, "", core.NilArgument("initializer")
	}
	return e.Args, e.Method, nil
}

// BindingType identifies the variant of a MemberBinding.
type BindingType int

// BindingType constants.
const (
	BindAssignment BindingType = iota
	BindMember
	BindList
)

// MemberBinding initializes one member inside a MemberInitExpr.
// It is implemented by *MemberAssignment, *MemberMemberBinding and
// *MemberListBinding.
type MemberBinding interface {
	BindingType() BindingType
	MemberName() string
	bindingNode()
}

// MemberAssignment assigns Value to Member.
type MemberAssignment struct {
	Member string
	Value  Node
}

func (*MemberAssignment) bindingNode() {}

// BindingType implements MemberBinding.
func (*MemberAssignment) BindingType() BindingType { return BindAssignment }

// MemberName implements MemberBinding.
func (m *MemberAssignment) MemberName() string { return m.Member }

// Deconstruct returns the assigned value, the member and the binding type.
func (m *MemberAssignment) Deconstruct() (value Node, member string, binding BindingType, err error) {
	if m == nil {
		return nil, "", BindAssignment, core.NilArgument("binding")
	}
	return m.Value, m.Member, BindAssignment, nil
}

// MemberMemberBinding recursively initializes the members of Member.
type MemberMemberBinding struct {
	Member   string
	Bindings []MemberBinding
}

func (*MemberMemberBinding) bindingNode() {}

// BindingType implements MemberBinding.
func (*MemberMemberBinding) BindingType() BindingType { return BindMember }

// MemberName implements MemberBinding.
func (m *MemberMemberBinding) MemberName() string { return m.Member }

// Deconstruct returns the member, the nested bindings and the binding type.
func (m *MemberMemberBinding) Deconstruct() (member string, bindings []MemberBinding, binding BindingType, err error) {
	if m == nil {
		return "", nil, BindMember, core.NilArgument("binding")
	}
	return m.Member, m.Bindings, BindMember, nil
}

// MemberListBinding initializes the collection held by Member.
type MemberListBinding struct {
	Member       string
	Initializers []*ElementInit
}

func (*MemberListBinding) bindingNode() {}

// BindingType implements MemberBinding.
func (*MemberListBinding) BindingType() BindingType { return BindList }

// MemberName implements MemberBinding.
func (m *MemberListBinding) MemberName() string { return m.Member }

// Deconstruct returns the member, the binding type and the initializers.
func (m *MemberListBinding) Deconstruct() (member string, binding BindingType, initializers []*ElementInit, err error) {
	if m == nil {
		return "", BindList, nil, core.NilArgument("binding")
	}
	return m.Member, BindList, m.Initializers, nil
}

// MemberInitExpr represents construction followed by member initialization.
type MemberInitExpr struct {
	New      *NewExpr
	Bindings []MemberBinding
}

func (*MemberInitExpr) exprNode() {}

// Kind implements Node.
func (*MemberInitExpr) Kind() Kind { return MemberInit }

// Deconstruct returns the construction and the bindings.
func (m *MemberInitExpr) Deconstruct() (op Kind, newExpr *NewExpr, bindings []MemberBinding, err error) {
	if m == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return MemberInit, m.New, m.Bindings, nil
}

// ListInitExpr represents construction of a collection followed by adds.
type ListInitExpr struct {
	New          *NewExpr
	Initializers []*ElementInit
}

func (*ListInitExpr) exprNode() {}

// Kind implements Node.
func (*ListInitExpr) Kind() Kind { return ListInit }

// Deconstruct returns the construction and the initializers.
func (l *ListInitExpr) Deconstruct() (op Kind, newExpr *NewExpr, initializers []*ElementInit, err error) {
	if l == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return ListInit, l.New, l.Initializers, nil
}
