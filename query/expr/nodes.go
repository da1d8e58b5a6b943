package expr

import "reflect"

// ---------- Operators ----------

// BinaryExpr represents an operator applied to two operands.
type BinaryExpr struct {
	Op    Kind
	Left  Node
	Right Node
}

func (*BinaryExpr) exprNode() {}

// Kind implements Node.
func (b *BinaryExpr) Kind() Kind {
	if b == nil {
		return KindInvalid
	}
	return b.Op
}

// Deconstruct returns the operator and both operands.
func (b *BinaryExpr) Deconstruct() (op Kind, left, right Node, err error) {
	if b == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return b.Op, b.Left, b.Right, nil
}

// UnaryExpr represents an operator applied to one operand.
type UnaryExpr struct {
	Op      Kind
	Operand Node
	// Type is the target type of Convert and TypeAs.
	Type reflect.Type
}

func (*UnaryExpr) exprNode() {}

// Kind implements Node.
func (u *UnaryExpr) Kind() Kind {
	if u == nil {
		return KindInvalid
	}
	return u.Op
}

// Deconstruct returns the operator and the operand.
func (u *UnaryExpr) Deconstruct() (op Kind, operand Node, err error) {
	if u == nil {
		return KindInvalid, nil, nilNode()
	}
	return u.Op, u.Operand, nil
}

// TypeBinaryExpr tests the runtime type of an operand (TypeIs or TypeEqual).
type TypeBinaryExpr struct {
	Op      Kind
	Operand Node
	Test    reflect.Type
}

func (*TypeBinaryExpr) exprNode() {}

// Kind implements Node.
func (t *TypeBinaryExpr) Kind() Kind {
	if t == nil {
		return KindInvalid
	}
	return t.Op
}

// Deconstruct returns the operator, the operand and the tested type.
func (t *TypeBinaryExpr) Deconstruct() (op Kind, operand Node, test reflect.Type, err error) {
	if t == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return t.Op, t.Operand, t.Test, nil
}

// CondExpr represents a ternary test ? ifTrue : ifFalse.
type CondExpr struct {
	Test    Node
	IfTrue  Node
	IfFalse Node
}

func (*CondExpr) exprNode() {}

// Kind implements Node.
func (*CondExpr) Kind() Kind { return Conditional }

// Deconstruct returns the test and both branches.
func (c *CondExpr) Deconstruct() (op Kind, test, ifTrue, ifFalse Node, err error) {
	if c == nil {
		return KindInvalid, nil, nil, nil, nilNode()
	}
	return Conditional, c.Test, c.IfTrue, c.IfFalse, nil
}

// ---------- Leaves ----------

// ConstExpr represents a literal value. Type defaults to the dynamic type
// of Value when nil.
type ConstExpr struct {
	Value any
	Type  reflect.Type
}

func (*ConstExpr) exprNode() {}

// Kind implements Node.
func (*ConstExpr) Kind() Kind { return Constant }

// Deconstruct returns the type and the value of the constant.
func (c *ConstExpr) Deconstruct() (op Kind, typ reflect.Type, value any, err error) {
	if c == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	typ = c.Type
	if typ == nil && c.Value != nil {
		typ = reflect.TypeOf(c.Value)
	}
	return Constant, typ, c.Value, nil
}

// DefaultExpr represents the zero value of a type.
type DefaultExpr struct {
	Type reflect.Type
}

func (*DefaultExpr) exprNode() {}

// Kind implements Node.
func (*DefaultExpr) Kind() Kind { return Default }

// Deconstruct returns the type whose zero value the node produces.
func (d *DefaultExpr) Deconstruct() (op Kind, typ reflect.Type, err error) {
	if d == nil {
		return KindInvalid, nil, nilNode()
	}
	return Default, d.Type, nil
}

// ParamExpr represents a named parameter or block variable.
type ParamExpr struct {
	Name  string
	Type  reflect.Type
	ByRef bool
}

func (*ParamExpr) exprNode() {}

// Kind implements Node.
func (*ParamExpr) Kind() Kind { return Parameter }

// Deconstruct returns the type, name and by-reference flag.
func (p *ParamExpr) Deconstruct() (op Kind, typ reflect.Type, name string, byRef bool, err error) {
	if p == nil {
		return KindInvalid, nil, "", false, nilNode()
	}
	return Parameter, p.Type, p.Name, p.ByRef, nil
}

// ---------- Access and calls ----------

// MemberExpr represents access to a field or niladic method of Target.
type MemberExpr struct {
	Target Node
	Member string
}

func (*MemberExpr) exprNode() {}

// Kind implements Node.
func (*MemberExpr) Kind() Kind { return MemberAccess }

// Deconstruct returns the target and the member name.
func (m *MemberExpr) Deconstruct() (op Kind, target Node, member string, err error) {
	if m == nil {
		return KindInvalid, nil, "", nilNode()
	}
	return MemberAccess, m.Target, m.Member, nil
}

// CallExpr represents a method call. Object is nil for package-level functions.
type CallExpr struct {
	Object Node
	Method string
	Args   []Node
}

func (*CallExpr) exprNode() {}

// Kind implements Node.
func (*CallExpr) Kind() Kind { return Call }

// Deconstruct returns the receiver, the method name and the arguments.
func (c *CallExpr) Deconstruct() (op Kind, object Node, method string, args []Node, err error) {
	if c == nil {
		return KindInvalid, nil, "", nil, nilNode()
	}
	return Call, c.Object, c.Method, c.Args, nil
}

// InvokeExpr represents the invocation of a function-valued expression.
type InvokeExpr struct {
	Target Node
	Args   []Node
}

func (*InvokeExpr) exprNode() {}

// Kind implements Node.
func (*InvokeExpr) Kind() Kind { return Invoke }

// Deconstruct returns the invoked expression and the arguments.
func (i *InvokeExpr) Deconstruct() (op Kind, target Node, args []Node, err error) {
	if i == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return Invoke, i.Target, i.Args, nil
}

// IndexExpr represents indexing into an array, slice or map.
type IndexExpr struct {
	Object Node
	Args   []Node
}

func (*IndexExpr) exprNode() {}

// Kind implements Node.
func (*IndexExpr) Kind() Kind { return Index }

// Deconstruct returns the indexed object and the index arguments.
func (i *IndexExpr) Deconstruct() (op Kind, object Node, args []Node, err error) {
	if i == nil {
		return KindInvalid, nil, nil, nilNode()
	}
	return Index, i.Object, i.Args, nil
}

// LambdaExpr represents a function literal.
type LambdaExpr struct {
	Name   string
	Params []*ParamExpr
	Body   Node
}

func (*LambdaExpr) exprNode() {}

// Kind implements Node.
func (*LambdaExpr) Kind() Kind { return Lambda }

// Deconstruct returns the parameters and the body.
func (l *LambdaExpr) Deconstruct() (params []*ParamExpr, body Node, err error) {
	if l == nil {
		return nil, nil, nilNode()
	}
	return l.Params, l.Body, nil
}
